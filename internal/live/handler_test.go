package live_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-assessoria/internal/live"
	"github.com/goliatone/go-assessoria/pkg/contact"
)

type countingHooks struct {
	opened chan struct{}
	closed chan struct{}
}

func newCountingHooks() *countingHooks {
	return &countingHooks{opened: make(chan struct{}, 4), closed: make(chan struct{}, 4)}
}

func (h *countingHooks) SessionOpened() { h.opened <- struct{}{} }
func (h *countingHooks) SessionClosed() { h.closed <- struct{}{} }

func dial(t *testing.T, opts ...live.Option) (*websocket.Conn, *live.Handler) {
	t.Helper()
	handler := live.NewHandler(opts...)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		handler.Close()
		srv.Close()
	})

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, handler
}

func readFrame(t *testing.T, conn *websocket.Conn) live.ServerFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var frame live.ServerFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func send(t *testing.T, conn *websocket.Conn, frame live.ClientFrame) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(frame))
}

func TestSession_InputAppliesPhoneMask(t *testing.T) {
	conn, _ := dial(t)

	send(t, conn, live.ClientFrame{Type: live.FrameInput, Field: "phone", Value: "1198"})
	frame := readFrame(t, conn)

	require.Equal(t, live.FrameState, frame.Type)
	require.NotNil(t, frame.State)
	assert.Equal(t, "(11) 98", frame.State.Form.Phone)
	assert.Equal(t, contact.LabelSubmit, frame.State.SubmitLabel)
}

func TestSession_InvalidSubmitReportsEveryError(t *testing.T) {
	conn, _ := dial(t)

	send(t, conn, live.ClientFrame{Type: live.FrameInput, Field: "email", Value: "bad"})
	readFrame(t, conn)
	send(t, conn, live.ClientFrame{Type: live.FrameSubmit})
	frame := readFrame(t, conn)

	require.NotNil(t, frame.State)
	assert.Equal(t, contact.MsgNameRequired, frame.State.Errors.Name)
	assert.Equal(t, contact.MsgEmailInvalid, frame.State.Errors.Email)
	assert.Equal(t, contact.MsgMessageRequired, frame.State.Errors.Message)
	assert.Equal(t, contact.FeedbackError, frame.State.Feedback.Kind)
	assert.Equal(t, "bad", frame.State.Form.Email)
}

func TestSession_ValidSubmitDeliversAfterDelay(t *testing.T) {
	delivered := make(chan contact.Message, 1)
	conn, _ := dial(t,
		live.WithTiming(contact.Timing{SubmitDelay: 20 * time.Millisecond, FeedbackTTL: time.Hour}),
		live.WithObserver(contact.ObserverFuncs{OnDelivered: func(m contact.Message) { delivered <- m }}),
	)

	for _, in := range []live.ClientFrame{
		{Type: live.FrameInput, Field: "name", Value: "Ana"},
		{Type: live.FrameInput, Field: "email", Value: "ana@x.com"},
		{Type: live.FrameInput, Field: "message", Value: "Oi"},
	} {
		send(t, conn, in)
		readFrame(t, conn)
	}

	send(t, conn, live.ClientFrame{Type: live.FrameSubmit})
	busy := readFrame(t, conn)
	require.NotNil(t, busy.State)
	assert.True(t, busy.State.Submitting)
	assert.Equal(t, contact.LabelSubmitting, busy.State.SubmitLabel)

	done := readFrame(t, conn)
	require.NotNil(t, done.State)
	assert.False(t, done.State.Submitting)
	assert.Equal(t, contact.FeedbackSuccess, done.State.Feedback.Kind)
	assert.Equal(t, contact.FormState{}, done.State.Form)

	select {
	case msg := <-delivered:
		assert.Equal(t, "Ana", msg.Name)
	case <-time.After(2 * time.Second):
		t.Fatalf("message never delivered")
	}
}

func TestSession_RevealOncePerElement(t *testing.T) {
	conn, _ := dial(t)

	send(t, conn, live.ClientFrame{Type: live.FrameVisible, ID: "faq-0", Animation: "fade"})
	frame := readFrame(t, conn)
	assert.Equal(t, live.FrameReveal, frame.Type)
	assert.Equal(t, "faq-0", frame.ID)
	assert.Equal(t, "transition-opacity duration-700 ease-out opacity-100", frame.Classes)

	send(t, conn, live.ClientFrame{Type: live.FrameVisible, ID: "faq-0", Animation: "fade"})
	send(t, conn, live.ClientFrame{Type: live.FrameInput, Field: "subject", Value: "Oi"})
	next := readFrame(t, conn)
	assert.Equal(t, live.FrameState, next.Type, "a second visible report must not reveal again")
}

func TestSession_RevealLimitDropsNewIDs(t *testing.T) {
	conn, _ := dial(t, live.WithRevealLimit(2))

	for _, id := range []string{"faq-0", "faq-1"} {
		send(t, conn, live.ClientFrame{Type: live.FrameVisible, ID: id, Animation: "up"})
		frame := readFrame(t, conn)
		assert.Equal(t, live.FrameReveal, frame.Type)
		assert.Equal(t, id, frame.ID)
	}

	send(t, conn, live.ClientFrame{Type: live.FrameVisible, ID: "faq-2", Animation: "up"})
	send(t, conn, live.ClientFrame{Type: live.FrameInput, Field: "subject", Value: "Oi"})
	next := readFrame(t, conn)
	assert.Equal(t, live.FrameState, next.Type, "ids past the limit must not be revealed")
}

func TestSession_IgnoresUnknownFrames(t *testing.T) {
	conn, _ := dial(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	send(t, conn, live.ClientFrame{Type: "dance"})
	send(t, conn, live.ClientFrame{Type: live.FrameInput, Field: "cpf", Value: "1"})
	send(t, conn, live.ClientFrame{Type: live.FrameInput, Field: "name", Value: "Ana"})

	frame := readFrame(t, conn)
	require.NotNil(t, frame.State)
	assert.Equal(t, "Ana", frame.State.Form.Name)
}

func TestHandler_HooksAndClose(t *testing.T) {
	hooks := newCountingHooks()
	conn, handler := dial(t, live.WithHooks(hooks))

	select {
	case <-hooks.opened:
	case <-time.After(2 * time.Second):
		t.Fatalf("session never opened")
	}

	handler.Close()
	select {
	case <-hooks.closed:
	case <-time.After(2 * time.Second):
		t.Fatalf("session never closed")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
