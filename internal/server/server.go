// Package server exposes the site over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-assessoria/internal/live"
	"github.com/goliatone/go-assessoria/internal/logging"
	"github.com/goliatone/go-assessoria/internal/metrics"
	"github.com/goliatone/go-assessoria/pkg/contact"
	"github.com/goliatone/go-assessoria/pkg/openapi"
	"github.com/goliatone/go-assessoria/pkg/render"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTiming sets the contact submit delay and feedback lifetime.
func WithTiming(timing contact.Timing) Option {
	return func(s *Server) {
		s.timing = timing
	}
}

// WithDefaultVariant sets the theme variant used when a request names none.
func WithDefaultVariant(variant string) Option {
	return func(s *Server) {
		s.defaultVariant = variant
	}
}

// WithObserver adds a contact observer next to the built-in log and metrics
// observers.
func WithObserver(o contact.Observer) Option {
	return func(s *Server) {
		if o != nil {
			s.extra = append(s.extra, o)
		}
	}
}

// WithClock overrides the time source used to stamp delivered messages.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// Server routes requests to the page renderer, the contact endpoints and
// the live session handler.
type Server struct {
	pages          render.Renderer
	document       openapi.Document
	logger         zerolog.Logger
	metrics        *metrics.Metrics
	timing         contact.Timing
	defaultVariant string
	extra          contact.Observers
	now            func() time.Time

	observer contact.Observer
	live     *live.Handler
}

// New builds a Server around the page renderer.
func New(pages render.Renderer, options ...Option) (*Server, error) {
	if pages == nil {
		return nil, errors.New("server: page renderer is required")
	}
	s := &Server{
		pages:    pages,
		document: openapi.ContactDocument(),
		logger:   zerolog.Nop(),
		timing:   contact.DefaultTiming(),
		now:      time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	observers := contact.Observers{logObserver(s.logger)}
	if s.metrics != nil {
		observers = append(observers, s.metrics)
	}
	s.observer = append(observers, s.extra...)

	liveOpts := []live.Option{
		live.WithLogger(s.logger),
		live.WithTiming(s.timing),
		live.WithObserver(s.observer),
	}
	if s.metrics != nil {
		liveOpts = append(liveOpts, live.WithHooks(s.metrics))
	}
	s.live = live.NewHandler(liveOpts...)
	return s, nil
}

// Routes returns the router with every endpoint and middleware mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.RequestLogger(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	s.Register(r)
	return r
}

// Register mounts the endpoints on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.page(render.SlugHome))
	r.Get("/servicos", s.page(render.SlugServicos))
	r.Get("/equipe", s.page(render.SlugEquipe))
	r.Get("/faq", s.page(render.SlugFAQ))
	r.Get("/contato", s.page(render.SlugContato))
	r.Post("/contato", s.HandleContact)
	r.Method(http.MethodGet, render.DefaultLiveURL, s.live)

	r.Get("/openapi.yaml", s.HandleOpenAPI)
	r.Get("/healthz", HandleHealth)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(render.AssetsFS()))))
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.NotFound(s.HandleNotFound)
}

// Serve accepts connections on ln until ctx ends, then shuts down
// gracefully and closes the live sessions.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("server_listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.live.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info().Msg("server_stopped")
		return nil
	})
	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func logObserver(logger zerolog.Logger) contact.Observer {
	return contact.ObserverFuncs{
		OnAttempted: func(valid bool) {
			logger.Debug().Bool("valid", valid).Msg("contact_attempt")
		},
		OnDelivered: func(msg contact.Message) {
			logger.Info().
				Str("message_id", msg.ID).
				Str("email", msg.MaskedEmail()).
				Bool("phone", msg.Phone != "").
				Msg("contact_delivered")
		},
	}
}
