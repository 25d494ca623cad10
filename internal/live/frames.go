package live

import "github.com/goliatone/go-assessoria/pkg/contact"

// Frame types exchanged over the socket.
const (
	FrameInput   = "input"
	FrameSubmit  = "submit"
	FrameVisible = "visible"
	FrameState   = "state"
	FrameReveal  = "reveal"
)

// ClientFrame is a message sent by the browser.
type ClientFrame struct {
	Type      string `json:"type"`
	Field     string `json:"field,omitempty"`
	Value     string `json:"value,omitempty"`
	ID        string `json:"id,omitempty"`
	Animation string `json:"animation,omitempty"`
}

// ServerFrame is a message pushed to the browser.
type ServerFrame struct {
	Type    string     `json:"type"`
	State   *StateView `json:"state,omitempty"`
	ID      string     `json:"id,omitempty"`
	Classes string     `json:"classes,omitempty"`
}

// StateView is the contact state plus the submit control label.
type StateView struct {
	contact.State
	SubmitLabel string `json:"submitLabel"`
}

// NewStateView snapshots s for the wire.
func NewStateView(s contact.State) *StateView {
	return &StateView{State: s, SubmitLabel: s.SubmitLabel()}
}
