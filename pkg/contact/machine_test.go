package contact_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-assessoria/pkg/contact"
)

var testTiming = contact.Timing{SubmitDelay: 2 * time.Second, FeedbackTTL: 5 * time.Second}

func TestReduce_InputMasksPhoneWithoutValidation(t *testing.T) {
	s, effects := contact.Reduce(testTiming, contact.NewState(), contact.Input{Field: contact.FieldPhone, Value: "119876543210"})
	if len(effects) != 0 {
		t.Fatalf("input should not schedule anything, got %#v", effects)
	}
	if s.Form.Phone != "(11) 98765-4321" {
		t.Fatalf("phone = %q", s.Form.Phone)
	}
	if s.Errors.Any() {
		t.Fatalf("phone input must not produce errors: %+v", s.Errors)
	}
}

func TestReduce_InputValidatesRequiredFields(t *testing.T) {
	s := contact.NewState()
	s, _ = contact.Reduce(testTiming, s, contact.Input{Field: contact.FieldEmail, Value: "ana"})
	if s.Errors.Email != contact.MsgEmailInvalid {
		t.Fatalf("email error = %q", s.Errors.Email)
	}
	if s.Errors.Name != "" || s.Errors.Message != "" {
		t.Fatalf("other fields must stay untouched: %+v", s.Errors)
	}

	s, _ = contact.Reduce(testTiming, s, contact.Input{Field: contact.FieldEmail, Value: "ana@x.com"})
	if s.Errors.Email != "" {
		t.Fatalf("email error should clear, got %q", s.Errors.Email)
	}

	s, _ = contact.Reduce(testTiming, s, contact.Input{Field: contact.FieldSubject, Value: "  "})
	if s.Form.Subject != "  " || s.Errors.Any() {
		t.Fatalf("subject stored as-is without errors: %+v", s)
	}
}

func TestReduce_InvalidSubmitSetsAllErrors(t *testing.T) {
	start := contact.NewState()
	start.Form = contact.FormState{Email: "bad", Phone: "(11", Subject: "Oi"}

	s, effects := contact.Reduce(testTiming, start, contact.Submit{})

	wantErrs := contact.ErrorState{
		Name:    contact.MsgNameRequired,
		Email:   contact.MsgEmailInvalid,
		Message: contact.MsgMessageRequired,
	}
	if diff := cmp.Diff(wantErrs, s.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(start.Form, s.Form); diff != "" {
		t.Fatalf("form must stay unchanged (-want +got):\n%s", diff)
	}
	if s.Feedback.Kind != contact.FeedbackError || s.Feedback.Message != contact.MsgCheckFields {
		t.Fatalf("feedback = %+v", s.Feedback)
	}
	if s.Submitting || s.Phase != contact.PhaseSettledFailed {
		t.Fatalf("unexpected lifecycle: phase=%s submitting=%v", s.Phase, s.Submitting)
	}

	wantEffects := []contact.Effect{
		contact.Cancel{Timer: contact.TimerFeedback},
		contact.Attempted{Valid: false},
		contact.Schedule{
			Timer: contact.TimerFeedback,
			After: 5 * time.Second,
			Event: contact.FeedbackExpired{Seq: s.FeedbackSeq},
		},
	}
	if diff := cmp.Diff(wantEffects, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_ValidSubmitLifecycle(t *testing.T) {
	start := contact.NewState()
	start.Form = contact.FormState{Name: "Ana", Email: "ana@x.com", Message: "Oi", Phone: "(11) 98765-4321"}

	s, effects := contact.Reduce(testTiming, start, contact.Submit{})
	if !s.Submitting || s.Phase != contact.PhaseSubmitting {
		t.Fatalf("expected submitting, got phase=%s", s.Phase)
	}
	if s.Feedback != (contact.Feedback{Message: contact.MsgSending, Kind: contact.FeedbackNone}) {
		t.Fatalf("feedback = %+v", s.Feedback)
	}
	if s.SubmitLabel() != contact.LabelSubmitting {
		t.Fatalf("label = %q", s.SubmitLabel())
	}
	wantEffects := []contact.Effect{
		contact.Cancel{Timer: contact.TimerFeedback},
		contact.Attempted{Valid: true},
		contact.Schedule{Timer: contact.TimerSubmission, After: 2 * time.Second, Event: contact.SubmissionDone{}},
	}
	if diff := cmp.Diff(wantEffects, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}

	again, effects := contact.Reduce(testTiming, s, contact.Submit{})
	if len(effects) != 0 || !again.Submitting {
		t.Fatalf("submit while submitting must be ignored")
	}

	done, effects := contact.Reduce(testTiming, s, contact.SubmissionDone{})
	if done.Submitting || done.Phase != contact.PhaseSettledOK {
		t.Fatalf("expected settled success, got %s", done.Phase)
	}
	if done.Form != (contact.FormState{}) || done.Errors.Any() {
		t.Fatalf("form and errors should reset: %+v", done)
	}
	if done.Feedback.Kind != contact.FeedbackSuccess || done.Feedback.Message != contact.MsgSent {
		t.Fatalf("feedback = %+v", done.Feedback)
	}
	if len(effects) != 2 {
		t.Fatalf("expected deliver + expiry, got %#v", effects)
	}
	if diff := cmp.Diff(contact.Deliver{Form: start.Form}, effects[0]); diff != "" {
		t.Fatalf("deliver mismatch (-want +got):\n%s", diff)
	}

	cleared, _ := contact.Reduce(testTiming, done, contact.FeedbackExpired{Seq: done.FeedbackSeq})
	if cleared.Feedback.Visible() || cleared.Phase != contact.PhaseIdle {
		t.Fatalf("feedback should clear back to idle: %+v", cleared)
	}
}

func TestReduce_StaleExpiryIgnored(t *testing.T) {
	s := contact.NewState()
	s, _ = contact.Reduce(testTiming, s, contact.Submit{})
	stale := s.FeedbackSeq

	s.Form = contact.FormState{Name: "Ana", Email: "ana@x.com", Message: "Oi"}
	s, _ = contact.Reduce(testTiming, s, contact.Submit{})

	after, _ := contact.Reduce(testTiming, s, contact.FeedbackExpired{Seq: stale})
	if after.Feedback.Message != contact.MsgSending {
		t.Fatalf("stale expiry cleared the sending feedback: %+v", after.Feedback)
	}
}

func TestReduce_SubmissionDoneWithoutSubmitIsNoop(t *testing.T) {
	s := contact.NewState()
	s.Form.Name = "Ana"
	got, effects := contact.Reduce(testTiming, s, contact.SubmissionDone{})
	if len(effects) != 0 || got.Form.Name != "Ana" {
		t.Fatalf("unexpected transition: %+v %#v", got, effects)
	}
}

func TestReduce_ResetCancelsTimers(t *testing.T) {
	s := contact.NewState()
	s.Form = contact.FormState{Name: "Ana", Email: "ana@x.com", Message: "Oi"}
	s, _ = contact.Reduce(testTiming, s, contact.Submit{})

	reset, effects := contact.Reduce(testTiming, s, contact.Reset{})
	if reset.Submitting || reset.Form != (contact.FormState{}) || reset.Phase != contact.PhaseIdle {
		t.Fatalf("reset state = %+v", reset)
	}
	want := []contact.Effect{
		contact.Cancel{Timer: contact.TimerSubmission},
		contact.Cancel{Timer: contact.TimerFeedback},
	}
	if diff := cmp.Diff(want, effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}
