package contact

import (
	"html"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Message is an accepted contact request, reduced to plain text.
type Message struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject,omitempty"`
	Body       string    `json:"body"`
}

// NewMessage snapshots form as a Message. Markup is stripped from every
// value and surrounding whitespace trimmed.
func NewMessage(form FormState, at time.Time) Message {
	return Message{
		ID:         uuid.NewString(),
		ReceivedAt: at.UTC(),
		Name:       PlainText(form.Name),
		Email:      PlainText(form.Email),
		Phone:      PlainText(form.Phone),
		Subject:    PlainText(form.Subject),
		Body:       PlainText(form.Message),
	}
}

// PlainText removes any markup from raw and returns unescaped text.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// MaskedEmail hides most of the local part, for logs.
func (m Message) MaskedEmail() string {
	at := strings.IndexByte(m.Email, '@')
	if at <= 0 {
		return "***"
	}
	return m.Email[:1] + "***" + m.Email[at:]
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// Observer is told about submit attempts and delivered messages.
type Observer interface {
	Attempted(valid bool)
	Delivered(msg Message)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) Attempted(bool)    {}
func (NopObserver) Delivered(Message) {}

// ObserverFuncs adapts plain functions to Observer. Nil members are skipped.
type ObserverFuncs struct {
	OnAttempted func(valid bool)
	OnDelivered func(msg Message)
}

func (o ObserverFuncs) Attempted(valid bool) {
	if o.OnAttempted != nil {
		o.OnAttempted(valid)
	}
}

func (o ObserverFuncs) Delivered(msg Message) {
	if o.OnDelivered != nil {
		o.OnDelivered(msg)
	}
}

// Observers fans notifications out in order.
type Observers []Observer

func (obs Observers) Attempted(valid bool) {
	for _, o := range obs {
		if o != nil {
			o.Attempted(valid)
		}
	}
}

func (obs Observers) Delivered(msg Message) {
	for _, o := range obs {
		if o != nil {
			o.Delivered(msg)
		}
	}
}
