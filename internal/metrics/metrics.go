// Package metrics exposes the site's Prometheus collectors on a dedicated
// registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-assessoria/internal/logging"
	"github.com/goliatone/go-assessoria/pkg/contact"
)

const namespace = "assessoria"

// Metrics holds the site collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	PageViews        *prometheus.CounterVec
	ContactAttempts  *prometheus.CounterVec
	ContactDelivered prometheus.Counter
	LiveSessions     prometheus.Gauge
}

var _ contact.Observer = (*Metrics)(nil)

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		PageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_views_total",
			Help:      "Rendered pages by slug.",
		}, []string{"page"}),
		ContactAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_attempts_total",
			Help:      "Contact form submit attempts by outcome.",
		}, []string{"outcome"}),
		ContactDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_delivered_total",
			Help:      "Contact messages accepted after the simulated send.",
		}),
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Open live contact sessions.",
		}),
	}
	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.PageViews,
		m.ContactAttempts,
		m.ContactDelivered,
		m.LiveSessions,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest counts one request and observes its duration.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	statusLabel := strconv.Itoa(status)
	m.HTTPRequests.WithLabelValues(method, path, statusLabel).Inc()
	m.HTTPDuration.WithLabelValues(method, path, statusLabel).Observe(d.Seconds())
}

// PageViewed counts a rendered page.
func (m *Metrics) PageViewed(slug string) {
	if m != nil {
		m.PageViews.WithLabelValues(slug).Inc()
	}
}

// Attempted implements contact.Observer.
func (m *Metrics) Attempted(valid bool) {
	if m == nil {
		return
	}
	outcome := "invalid"
	if valid {
		outcome = "accepted"
	}
	m.ContactAttempts.WithLabelValues(outcome).Inc()
}

// Delivered implements contact.Observer.
func (m *Metrics) Delivered(contact.Message) {
	if m != nil {
		m.ContactDelivered.Inc()
	}
}

// SessionOpened increments the live session gauge.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.LiveSessions.Inc()
	}
}

// SessionClosed decrements the live session gauge.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.LiveSessions.Dec()
	}
}

// Middleware records every request against the matched route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RecordHTTPRequest(r.Method, logging.RoutePattern(r), status, time.Since(start))
	})
}
