// Package live serves the websocket session that drives the contact form
// and the reveal animations from the server.
package live

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-assessoria/pkg/contact"
)

// SessionHooks is notified when sessions open and close.
type SessionHooks interface {
	SessionOpened()
	SessionClosed()
}

type nopHooks struct{}

func (nopHooks) SessionOpened() {}
func (nopHooks) SessionClosed() {}

// Option configures a Handler.
type Option func(*handlerConfig)

// DefaultRevealLimit bounds how many distinct elements one session tracks.
// The longest page renders well under this many reveal targets.
const DefaultRevealLimit = 64

type handlerConfig struct {
	logger      zerolog.Logger
	timing      contact.Timing
	scheduler   contact.Scheduler
	observer    contact.Observer
	hooks       SessionHooks
	checkOrigin func(*http.Request) bool
	revealLimit int
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *handlerConfig) {
		cfg.logger = logger
	}
}

// WithTiming sets the contact controller delays.
func WithTiming(timing contact.Timing) Option {
	return func(cfg *handlerConfig) {
		cfg.timing = timing
	}
}

// WithScheduler overrides the timer source of every session.
func WithScheduler(s contact.Scheduler) Option {
	return func(cfg *handlerConfig) {
		if s != nil {
			cfg.scheduler = s
		}
	}
}

// WithObserver registers the contact observer shared by every session.
func WithObserver(o contact.Observer) Option {
	return func(cfg *handlerConfig) {
		if o != nil {
			cfg.observer = o
		}
	}
}

// WithHooks registers session open/close hooks.
func WithHooks(h SessionHooks) Option {
	return func(cfg *handlerConfig) {
		if h != nil {
			cfg.hooks = h
		}
	}
}

// WithCheckOrigin overrides the upgrader origin check. The default accepts
// same-origin requests only.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(cfg *handlerConfig) {
		cfg.checkOrigin = fn
	}
}

// WithRevealLimit caps the distinct reveal ids a session accepts. Reports
// for new ids past the cap are dropped.
func WithRevealLimit(n int) Option {
	return func(cfg *handlerConfig) {
		if n > 0 {
			cfg.revealLimit = n
		}
	}
}

// Handler upgrades requests into live sessions.
type Handler struct {
	cfg      handlerConfig
	upgrader websocket.Upgrader

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHandler builds a Handler.
func NewHandler(options ...Option) *Handler {
	cfg := handlerConfig{
		logger:    zerolog.Nop(),
		timing:    contact.DefaultTiming(),
		scheduler: contact.SystemScheduler{},
		observer:  contact.NopObserver{},
		hooks:     nopHooks{},

		revealLimit: DefaultRevealLimit,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	base, cancel := context.WithCancel(context.Background())
	return &Handler{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.checkOrigin,
		},
		base:   base,
		cancel: cancel,
	}
}

// ServeHTTP upgrades the connection and blocks until the session ends.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.base.Err() != nil {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.cfg.logger.Debug().Err(err).Msg("live_upgrade_failed")
		return
	}

	h.wg.Add(1)
	defer h.wg.Done()

	// Hijacked connections outlive the request context, so sessions hang
	// off the handler context and keep only the request span.
	ctx := trace.ContextWithSpan(h.base, trace.SpanFromContext(r.Context()))
	ctx, span := otel.Tracer("github.com/goliatone/go-assessoria/internal/live").Start(ctx, "live.session")
	defer span.End()

	session := newSession(conn, h.cfg)
	h.cfg.hooks.SessionOpened()
	defer h.cfg.hooks.SessionClosed()

	session.logger.Info().Msg("live_session_opened")
	if err := session.Run(ctx); err != nil {
		session.logger.Warn().Err(err).Msg("live_session_failed")
		return
	}
	session.logger.Info().Msg("live_session_closed")
}

// Close ends every open session and waits for them to finish.
func (h *Handler) Close() {
	h.cancel()
	h.wg.Wait()
}
