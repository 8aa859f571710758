package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const _namespace = "media"

type Pipeline struct {
	uploads   *prometheus.CounterVec
	deletions *prometheus.CounterVec
	stages    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Pipeline {
	p := &Pipeline{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "uploads_total",
			Help:      "Upload calls by storage subdirectory and outcome.",
		}, []string{"subdir", "outcome"}),
		deletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: _namespace,
			Name:      "deletions_total",
			Help:      "Asset deletions by outcome.",
		}, []string{"outcome"}),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: _namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"stage"}),
	}

	reg.MustRegister(p.uploads, p.deletions, p.stages)

	return p
}

func (p *Pipeline) ObserveUpload(subdir, outcome string) {
	p.uploads.WithLabelValues(subdir, outcome).Inc()
}

func (p *Pipeline) ObserveStage(stage string, d time.Duration) {
	p.stages.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *Pipeline) ObserveDeletion(outcome string) {
	p.deletions.WithLabelValues(outcome).Inc()
}
