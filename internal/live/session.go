package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-assessoria/pkg/contact"
	"github.com/goliatone/go-assessoria/pkg/reveal"
)

const (
	writeWait      = 10 * time.Second
	maxFrameBytes  = 8 << 10
	outboxSize     = 32
	loopBufferSize = 32
)

// keepDelay leaves out the delay class; the element keeps the one it was
// rendered with.
const keepDelay = -1

// Session is one live connection. The reader goroutine turns frames into
// events posted on the session Loop; the loop goroutine owns the contact
// controller; the writer goroutine owns every socket write.
type Session struct {
	ID string

	conn    *websocket.Conn
	logger  zerolog.Logger
	loop    *contact.Loop
	ctrl    *contact.Controller
	tracker *reveal.Tracker
	out     chan ServerFrame

	mu          sync.Mutex
	ctx         context.Context
	group       *errgroup.Group
	revealed    map[string]struct{}
	revealLimit int
}

func newSession(conn *websocket.Conn, cfg handlerConfig) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		conn:        conn,
		loop:        contact.NewLoop(loopBufferSize),
		tracker:     reveal.NewTracker(),
		out:         make(chan ServerFrame, outboxSize),
		revealed:    make(map[string]struct{}),
		revealLimit: cfg.revealLimit,
	}
	s.logger = cfg.logger.With().Str("session", s.ID).Logger()
	s.ctrl = contact.NewController(
		contact.WithTiming(cfg.timing),
		contact.WithScheduler(cfg.scheduler),
		contact.WithLoop(s.loop),
		contact.WithObserver(cfg.observer),
		contact.WithStateListener(func(state contact.State) {
			s.send(ServerFrame{Type: FrameState, State: NewStateView(state)})
		}),
	)
	return s
}

// Run serves the session until the peer disconnects or ctx ends. Pending
// timers are cancelled and the form is reset before Run returns.
func (s *Session) Run(ctx context.Context) error {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("live.session", s.ID))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	s.mu.Lock()
	s.ctx = ctx
	s.group = g
	s.mu.Unlock()

	s.conn.SetReadLimit(maxFrameBytes)

	g.Go(func() error {
		err := s.loop.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, contact.ErrLoopStopped) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return s.write(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return s.read(ctx, span)
	})

	err := g.Wait()
	s.ctrl.Close()
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *Session) read(ctx context.Context, span trace.Span) error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}
			return fmt.Errorf("live: read: %w", err)
		}

		var frame ClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			s.logger.Debug().Err(err).Msg("live_frame_malformed")
			continue
		}
		s.handle(ctx, span, frame)
	}
}

func (s *Session) handle(ctx context.Context, span trace.Span, frame ClientFrame) {
	switch frame.Type {
	case FrameInput:
		field, ok := contact.ParseField(frame.Field)
		if !ok {
			s.logger.Debug().Str("field", frame.Field).Msg("live_unknown_field")
			return
		}
		value := frame.Value
		s.loop.Post(func() { s.ctrl.Input(field, value) })
	case FrameSubmit:
		span.AddEvent("contact.submit")
		s.loop.Post(func() { s.ctrl.Submit() })
	case FrameVisible:
		s.visible(ctx, frame.ID, reveal.ParseAnimation(frame.Animation))
	default:
		s.logger.Debug().Str("type", frame.Type).Msg("live_unknown_frame")
	}
}

// visible reports id as on screen. The first report for an id arms a
// one-shot reveal; later reports find no observer and do nothing. Once the
// session tracks revealLimit ids, reports for new ids are dropped.
func (s *Session) visible(ctx context.Context, id string, anim reveal.Animation) {
	if id == "" {
		return
	}
	s.mu.Lock()
	_, seen := s.revealed[id]
	if !seen && len(s.revealed) >= s.revealLimit {
		s.mu.Unlock()
		s.logger.Debug().Str("id", id).Int("limit", s.revealLimit).Msg("live_reveal_limit")
		return
	}
	if !seen {
		s.revealed[id] = struct{}{}
		shown := reveal.Once(ctx, s.tracker, id)
		s.group.Go(func() error {
			if v, ok := <-shown; ok && v {
				s.send(ServerFrame{Type: FrameReveal, ID: id, Classes: reveal.Classes(anim, keepDelay, true)})
			}
			return nil
		})
	}
	s.mu.Unlock()
	s.tracker.Report(id, true)
}

func (s *Session) send(frame ServerFrame) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		return
	}
	select {
	case s.out <- frame:
	case <-ctx.Done():
	}
}

func (s *Session) write(ctx context.Context) error {
	defer s.conn.Close()
	for {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return nil
		case frame := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				return fmt.Errorf("live: write: %w", err)
			}
		}
	}
}
