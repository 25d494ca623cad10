package contact_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/goliatone/go-assessoria/pkg/contact"
	"github.com/goliatone/go-assessoria/pkg/contact/mocks"
)

// fakeScheduler fires callbacks inline when Advance moves past their
// deadline, which keeps the controller on the test goroutine.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (s *fakeScheduler) AfterFunc(d time.Duration, fn func()) contact.Timer {
	t := &fakeTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		due := s.due(target)
		if due == nil {
			break
		}
		s.now = due.at
		due.fired = true
		due.fn()
	}
	s.now = target
}

func (s *fakeScheduler) due(target time.Duration) *fakeTimer {
	var pending []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= target {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].at < pending[j].at })
	return pending[0]
}

func (s *fakeScheduler) active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func newTestController(t *testing.T, opts ...contact.Option) (*contact.Controller, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	base := []contact.Option{
		contact.WithScheduler(sched),
		contact.WithTiming(testTiming),
	}
	return contact.NewController(append(base, opts...)...), sched
}

func TestController_InvalidSubmitShowsErrorsThenClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	obs.EXPECT().Attempted(false).Times(1)

	c, sched := newTestController(t, contact.WithObserver(obs))
	c.Input(contact.FieldEmail, "bad")
	s := c.Submit()

	if s.Errors.Name == "" || s.Errors.Email == "" || s.Errors.Message == "" {
		t.Fatalf("expected three errors, got %+v", s.Errors)
	}
	if s.Feedback.Kind != contact.FeedbackError {
		t.Fatalf("feedback kind = %q", s.Feedback.Kind)
	}
	if s.Form.Email != "bad" {
		t.Fatalf("form should be untouched, email=%q", s.Form.Email)
	}
	if !c.Pending(contact.TimerFeedback) {
		t.Fatalf("feedback clear should be armed")
	}

	sched.Advance(4999 * time.Millisecond)
	if !c.State().Feedback.Visible() {
		t.Fatalf("feedback cleared too early")
	}
	sched.Advance(time.Millisecond)
	if c.State().Feedback.Visible() {
		t.Fatalf("feedback should clear after 5s")
	}
	if c.State().Errors.Email == "" {
		t.Fatalf("field errors stay until the field changes")
	}
}

func TestController_ValidSubmitResetsAfterDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	gomock.InOrder(
		obs.EXPECT().Attempted(true),
		obs.EXPECT().Delivered(gomock.Any()).Do(func(msg contact.Message) {
			if msg.Name != "Ana" || msg.Email != "ana@x.com" || msg.Body != "Oi" {
				t.Errorf("unexpected message: %+v", msg)
			}
			if msg.ID == "" {
				t.Errorf("message id missing")
			}
		}),
	)

	var states []contact.State
	c, sched := newTestController(t,
		contact.WithObserver(obs),
		contact.WithStateListener(func(s contact.State) { states = append(states, s) }),
	)

	c.Input(contact.FieldName, "Ana")
	c.Input(contact.FieldEmail, "ana@x.com")
	c.Input(contact.FieldMessage, "Oi")
	s := c.Submit()
	if !s.Submitting || s.Feedback.Message != contact.MsgSending {
		t.Fatalf("expected submitting immediately, got %+v", s)
	}

	sched.Advance(1999 * time.Millisecond)
	if !c.State().Submitting {
		t.Fatalf("submission finished early")
	}
	sched.Advance(time.Millisecond)

	s = c.State()
	if s.Submitting {
		t.Fatalf("flag should be cleared")
	}
	if s.Form != (contact.FormState{}) {
		t.Fatalf("form should be reset, got %+v", s.Form)
	}
	if s.Feedback.Kind != contact.FeedbackSuccess {
		t.Fatalf("feedback = %+v", s.Feedback)
	}

	sched.Advance(5 * time.Second)
	if c.State().Feedback.Visible() {
		t.Fatalf("success feedback should clear")
	}
	if len(states) != 6 {
		t.Fatalf("expected 6 notifications, got %d", len(states))
	}
}

func TestController_NewSubmitCancelsPendingFeedbackClear(t *testing.T) {
	c, sched := newTestController(t)

	c.Submit()
	sched.Advance(4 * time.Second)

	c.Input(contact.FieldName, "Ana")
	c.Input(contact.FieldEmail, "ana@x.com")
	c.Input(contact.FieldMessage, "Oi")
	c.Submit()

	sched.Advance(1500 * time.Millisecond)
	if got := c.State().Feedback.Message; got != contact.MsgSending {
		t.Fatalf("earlier clear timer leaked into the new attempt: feedback=%q", got)
	}

	sched.Advance(500 * time.Millisecond)
	if c.State().Feedback.Kind != contact.FeedbackSuccess {
		t.Fatalf("expected success, got %+v", c.State().Feedback)
	}
}

func TestController_CloseCancelsInFlightSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	obs.EXPECT().Attempted(true)
	obs.EXPECT().Delivered(gomock.Any()).Times(0)

	c, sched := newTestController(t, contact.WithObserver(obs))
	c.Input(contact.FieldName, "Ana")
	c.Input(contact.FieldEmail, "ana@x.com")
	c.Input(contact.FieldMessage, "Oi")
	c.Submit()

	c.Close()
	if sched.active() != 0 {
		t.Fatalf("timers still armed after close: %d", sched.active())
	}
	sched.Advance(10 * time.Second)

	if c.State().Submitting {
		t.Fatalf("closed controller should not be submitting")
	}
	if s := c.Input(contact.FieldName, "late"); s.Form.Name != "" {
		t.Fatalf("events after close must be ignored")
	}
}

func TestController_WithLoopSerializesTimerCallbacks(t *testing.T) {
	loop := contact.NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settled := make(chan contact.State, 1)
	listener := func(s contact.State) {
		if s.Phase == contact.PhaseSettledOK {
			select {
			case settled <- s:
			default:
			}
		}
	}

	c := contact.NewController(
		contact.WithLoop(loop),
		contact.WithTiming(contact.Timing{SubmitDelay: 10 * time.Millisecond, FeedbackTTL: time.Hour}),
		contact.WithStateListener(listener),
	)

	go func() { _ = loop.Run(ctx) }()

	loop.Post(func() {
		c.Input(contact.FieldName, "Ana")
		c.Input(contact.FieldEmail, "ana@x.com")
		c.Input(contact.FieldMessage, "Oi")
		c.Submit()
	})

	select {
	case s := <-settled:
		if s.Feedback.Kind != contact.FeedbackSuccess {
			t.Fatalf("feedback = %+v", s.Feedback)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("submission never settled")
	}

	done := make(chan struct{})
	loop.Post(func() {
		c.Close()
		close(done)
	})
	<-done
}

func TestLoop_StopRejectsPosts(t *testing.T) {
	loop := contact.NewLoop(1)
	loop.Stop()
	if loop.Post(func() {}) {
		t.Fatalf("post after stop should fail")
	}
	if err := loop.Run(context.Background()); err != contact.ErrLoopStopped {
		t.Fatalf("Run() = %v, want ErrLoopStopped", err)
	}
}

func TestNewMessage_StripsMarkup(t *testing.T) {
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	msg := contact.NewMessage(contact.FormState{
		Name:    "  <b>Ana</b> ",
		Email:   "ana@x.com",
		Message: "Oi <script>alert(1)</script>& tchau",
	}, at)

	if msg.Name != "Ana" {
		t.Fatalf("name = %q", msg.Name)
	}
	if msg.Body != "Oi & tchau" {
		t.Fatalf("body = %q", msg.Body)
	}
	if !msg.ReceivedAt.Equal(at) || msg.ReceivedAt.Location() != time.UTC {
		t.Fatalf("received at = %v", msg.ReceivedAt)
	}
	if got := msg.MaskedEmail(); got != "a***@x.com" {
		t.Fatalf("masked email = %q", got)
	}
}
