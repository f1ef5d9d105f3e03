package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultEmpty   = "empty"
	ResultLimited = "limited"
)

// Metrics counts bot outcomes on a caller-supplied registry.
type Metrics struct {
	Submissions   *prometheus.CounterVec
	Rankings      *prometheus.CounterVec
	Registrations *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "botw",
			Name:      "submissions_total",
			Help:      "Drop submissions handled, by result.",
		}, []string{"result"}),
		Rankings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "botw",
			Name:      "ranking_requests_total",
			Help:      "Ranking requests handled, by result.",
		}, []string{"result"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "botw",
			Name:      "command_registrations_total",
			Help:      "Slash command registrations, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Submissions, m.Rankings, m.Registrations)
	return m
}

// Handler serves the registry in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}

// Submission, Ranking and Registration are safe to call on a nil *Metrics.
func (m *Metrics) Submission(result string) {
	if m != nil {
		m.Submissions.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Ranking(result string) {
	if m != nil {
		m.Rankings.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Registration(result string) {
	if m != nil {
		m.Registrations.WithLabelValues(result).Inc()
	}
}
