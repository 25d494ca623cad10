package contact

// FeedbackKind tags the feedback line under the form.
type FeedbackKind string

const (
	FeedbackNone    FeedbackKind = ""
	FeedbackSuccess FeedbackKind = "success"
	FeedbackError   FeedbackKind = "error"
)

// Feedback is the transient status message shown after a submit attempt.
type Feedback struct {
	Message string       `json:"message"`
	Kind    FeedbackKind `json:"kind"`
}

// Visible reports whether there is something to show.
func (f Feedback) Visible() bool {
	return f.Message != ""
}

func errorFeedback(msg string) Feedback {
	return Feedback{Message: msg, Kind: FeedbackError}
}

func successFeedback(msg string) Feedback {
	return Feedback{Message: msg, Kind: FeedbackSuccess}
}
