package digo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registration passes.
// A nil *Metrics records nothing.
type Metrics struct {
	BindingsTotal        *prometheus.CounterVec
	IgnoredSurfacesTotal prometheus.Counter
	CandidatesTotal      prometheus.Counter
	ConflictsTotal       prometheus.Counter
}

// NewMetrics creates the registration metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "digo_bindings_total",
			Help: "Total number of bindings appended to a registry, by lifetime",
		}, []string{"lifetime"}),
		IgnoredSurfacesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "digo_ignored_surfaces_total",
			Help: "Total number of candidate surfaces skipped by ignore rules",
		}),
		CandidatesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "digo_candidates_total",
			Help: "Total number of candidates processed by Resolve",
		}),
		ConflictsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "digo_lifetime_conflicts_total",
			Help: "Total number of candidates rejected for multiple lifetime declarations",
		}),
	}
}

func (m *Metrics) bound(l Lifetime) {
	if m == nil {
		return
	}
	m.BindingsTotal.WithLabelValues(l.String()).Inc()
}

func (m *Metrics) ignored() {
	if m == nil {
		return
	}
	m.IgnoredSurfacesTotal.Inc()
}

func (m *Metrics) candidate() {
	if m == nil {
		return
	}
	m.CandidatesTotal.Inc()
}

func (m *Metrics) conflict() {
	if m == nil {
		return
	}
	m.ConflictsTotal.Inc()
}
