package contact

import "time"

const (
	// DefaultSubmitDelay simulates the network latency of the send.
	DefaultSubmitDelay = 2 * time.Second
	// DefaultFeedbackTTL is how long a feedback line stays on screen.
	DefaultFeedbackTTL = 5 * time.Second
)

// Timing holds the two delays the controller schedules.
type Timing struct {
	SubmitDelay time.Duration
	FeedbackTTL time.Duration
}

// DefaultTiming returns the production delays.
func DefaultTiming() Timing {
	return Timing{SubmitDelay: DefaultSubmitDelay, FeedbackTTL: DefaultFeedbackTTL}
}

func (t Timing) normalized() Timing {
	if t.SubmitDelay < 0 {
		t.SubmitDelay = 0
	}
	if t.FeedbackTTL <= 0 {
		t.FeedbackTTL = DefaultFeedbackTTL
	}
	return t
}

// Phase is the coarse lifecycle position of the form.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseSubmitting    Phase = "submitting"
	PhaseSettledOK     Phase = "settled-success"
	PhaseSettledFailed Phase = "settled-error"
)

// State is the full contact form state container.
type State struct {
	Phase      Phase      `json:"phase"`
	Form       FormState  `json:"values"`
	Errors     ErrorState `json:"errors"`
	Feedback   Feedback   `json:"feedback"`
	Submitting bool       `json:"submitting"`

	// Pending is the snapshot taken when a submission was accepted.
	Pending FormState `json:"-"`
	// FeedbackSeq identifies the feedback currently shown so an expiry
	// scheduled for an older message is ignored.
	FeedbackSeq uint64 `json:"-"`
}

// NewState returns the idle, empty state.
func NewState() State {
	return State{Phase: PhaseIdle}
}

// SubmitLabel is the text of the submit control for the current state.
func (s State) SubmitLabel() string {
	if s.Submitting {
		return LabelSubmitting
	}
	return LabelSubmit
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// Input records a keystroke-level change of one field.
type Input struct {
	Field Field
	Value string
}

// Submit is a submit attempt.
type Submit struct{}

// SubmissionDone fires when the simulated send completes.
type SubmissionDone struct{}

// FeedbackExpired fires when a feedback line has been visible long enough.
type FeedbackExpired struct {
	Seq uint64
}

// Reset tears the form down, as when the view is unmounted.
type Reset struct{}

func (Input) event()           {}
func (Submit) event()          {}
func (SubmissionDone) event()  {}
func (FeedbackExpired) event() {}
func (Reset) event()           {}

// TimerKind names a timer slot owned by the controller. Scheduling a kind
// replaces whatever was pending in that slot.
type TimerKind string

const (
	TimerSubmission TimerKind = "submission"
	TimerFeedback   TimerKind = "feedback"
)

// Effect is a deferred action requested by a transition.
type Effect interface {
	effect()
}

// Schedule asks for Event to be dispatched after the delay.
type Schedule struct {
	Timer TimerKind
	After time.Duration
	Event Event
}

// Cancel asks for the pending timer of a kind to be stopped.
type Cancel struct {
	Timer TimerKind
}

// Attempted reports the verdict of a submit attempt.
type Attempted struct {
	Valid bool
}

// Deliver hands an accepted form over once the send completes.
type Deliver struct {
	Form FormState
}

func (Schedule) effect()  {}
func (Cancel) effect()    {}
func (Attempted) effect() {}
func (Deliver) effect()   {}

// Reduce computes the state following event e and the effects the caller
// must run. It never mutates s.
func Reduce(timing Timing, s State, e Event) (State, []Effect) {
	timing = timing.normalized()

	switch ev := e.(type) {
	case Input:
		return reduceInput(s, ev), nil

	case Submit:
		if s.Submitting {
			return s, nil
		}
		effects := []Effect{Cancel{Timer: TimerFeedback}}

		errs, valid := ValidateForm(s.Form)
		s.Errors = errs
		effects = append(effects, Attempted{Valid: valid})

		if !valid {
			s.Phase = PhaseSettledFailed
			s = showFeedback(s, errorFeedback(MsgCheckFields))
			return s, append(effects, expireFeedback(timing, s))
		}

		s.Phase = PhaseSubmitting
		s.Submitting = true
		s.Pending = s.Form
		s = showFeedback(s, Feedback{Message: MsgSending, Kind: FeedbackNone})
		return s, append(effects, Schedule{
			Timer: TimerSubmission,
			After: timing.SubmitDelay,
			Event: SubmissionDone{},
		})

	case SubmissionDone:
		if !s.Submitting {
			return s, nil
		}
		accepted := s.Pending
		s.Phase = PhaseSettledOK
		s.Submitting = false
		s.Pending = FormState{}
		s.Form = FormState{}
		s.Errors = ErrorState{}
		s = showFeedback(s, successFeedback(MsgSent))
		return s, []Effect{
			Deliver{Form: accepted},
			expireFeedback(timing, s),
		}

	case FeedbackExpired:
		if ev.Seq != s.FeedbackSeq || !s.Feedback.Visible() {
			return s, nil
		}
		s.Feedback = Feedback{}
		if !s.Submitting {
			s.Phase = PhaseIdle
		}
		return s, nil

	case Reset:
		next := NewState()
		next.FeedbackSeq = s.FeedbackSeq
		return next, []Effect{
			Cancel{Timer: TimerSubmission},
			Cancel{Timer: TimerFeedback},
		}
	}

	return s, nil
}

func reduceInput(s State, in Input) State {
	value := in.Value
	switch in.Field {
	case FieldPhone:
		value = FormatPhone(value)
	case FieldName, FieldEmail, FieldMessage:
		s.Errors, _ = s.Errors.Check(in.Field, value)
	case FieldSubject:
	default:
		return s
	}
	s.Form = s.Form.With(in.Field, value)
	return s
}

func showFeedback(s State, f Feedback) State {
	s.Feedback = f
	s.FeedbackSeq++
	return s
}

func expireFeedback(timing Timing, s State) Schedule {
	return Schedule{
		Timer: TimerFeedback,
		After: timing.FeedbackTTL,
		Event: FeedbackExpired{Seq: s.FeedbackSeq},
	}
}
