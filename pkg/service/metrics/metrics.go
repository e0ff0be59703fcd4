// Package metrics exposes render and HTTP counters in Prometheus format.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "riskcard"

// Metrics owns a private registry. All methods are no-ops on a nil receiver
// so callers can leave metrics disabled without nil checks.
type Metrics struct {
	registry       *prometheus.Registry
	renders        *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
}

type Option func(*options)

type options struct {
	runtime bool
}

// WithRuntimeCollectors adds the Go runtime and process collectors
func WithRuntimeCollectors() Option {
	return func(o *options) {
		o.runtime = true
	}
}

func New(opts ...Option) (*Metrics, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_total",
			Help:      "Number of report renders by output format.",
		}, []string{"format"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Number of failed report renders by output format.",
		}, []string{"format"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Report render latency by output format.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"format"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
	}

	cs := []prometheus.Collector{m.renders, m.renderErrors, m.renderDuration, m.httpRequests}
	if o.runtime {
		cs = append(cs,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	for _, c := range cs {
		if err := m.registry.Register(c); err != nil {
			return nil, goerr.Wrap(err, "failed to register collector")
		}
	}

	return m, nil
}

// ObserveRender records one render pass in format
func (m *Metrics) ObserveRender(format string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(format).Inc()
	m.renderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
	if err != nil {
		m.renderErrors.WithLabelValues(format).Inc()
	}
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
