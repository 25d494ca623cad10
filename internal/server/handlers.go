package server

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/goliatone/go-assessoria/pkg/contact"
	"github.com/goliatone/go-assessoria/pkg/render"
	"github.com/goliatone/go-assessoria/pkg/site"
)

func (s *Server) page(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := render.RenderOptions{
			Path:       r.URL.Path,
			Disclosure: r.URL.Query().Get(site.DisclosureParam),
			Variant:    s.variant(r),
		}
		s.write(w, r, slug, http.StatusOK, opts)
	}
}

// HandleNotFound renders the not-found page for unknown paths.
func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	s.write(w, r, render.SlugNotFound, http.StatusNotFound, render.RenderOptions{
		Path:    r.URL.Path,
		Variant: s.variant(r),
	})
}

// HandleContact handles POST /contato from browsers without the live
// session. Invalid input answers 422 with the errors inline; accepted input
// waits out the submit delay and answers with the success feedback and an
// empty form.
func (s *Server) HandleContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("github.com/goliatone/go-assessoria/internal/server").Start(r.Context(), "contact.submit")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		span.RecordError(err)
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(contact.Fields()))
	for _, field := range contact.Fields() {
		values[string(field)] = r.PostForm.Get(string(field))
	}

	state := contact.NewState()
	state.Form = contact.FormFromValues(values)
	state, effects := contact.Reduce(s.timing, state, contact.Submit{})
	s.apply(effects)

	if !state.Submitting {
		span.SetAttributes(attribute.Bool("contact.valid", false))
		opts := render.ContactOptions(state)
		opts.Variant = s.variant(r)
		s.write(w, r, render.SlugContato, http.StatusUnprocessableEntity, opts)
		return
	}
	span.SetAttributes(attribute.Bool("contact.valid", true))

	if err := sleep(ctx, s.timing.SubmitDelay); err != nil {
		span.RecordError(err)
		s.logger.Debug().Err(err).Msg("contact_submit_abandoned")
		return
	}

	state, effects = contact.Reduce(s.timing, state, contact.SubmissionDone{})
	s.apply(effects)

	opts := render.ContactOptions(state)
	opts.Variant = s.variant(r)
	s.write(w, r, render.SlugContato, http.StatusOK, opts)
}

// HandleOpenAPI serves the contact operation document.
func (s *Server) HandleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.document.Raw())
}

// HandleHealth answers liveness probes.
func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// apply runs the notifications requested by a transition. Timer effects
// are left to the caller, which waits synchronously.
func (s *Server) apply(effects []contact.Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case contact.Attempted:
			s.observer.Attempted(e.Valid)
		case contact.Deliver:
			s.observer.Delivered(contact.NewMessage(e.Form, s.now()))
		}
	}
}

func (s *Server) variant(r *http.Request) string {
	if v := r.URL.Query().Get(render.VariantParam); v != "" {
		return v
	}
	return s.defaultVariant
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, slug string, status int, opts render.RenderOptions) {
	body, err := s.pages.Render(r.Context(), slug, opts)
	if err != nil {
		s.logger.Error().Err(err).Str("page", slug).Msg("render_failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	s.metrics.PageViewed(slug)

	w.Header().Set("Content-Type", s.pages.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
