package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AVN-Software/skern-tag-system/internal/domain"
)

// Metrics holds the application-level Prometheus metrics. Methods are
// nil-safe so tests can pass a nil *Metrics without registering collectors.
type Metrics struct {
	TagsIssued       prometheus.Counter
	IssueCollisions  prometheus.Counter
	ScansTotal       *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
}

// New creates and registers all metrics. Call once per process.
func New() *Metrics {
	return &Metrics{
		TagsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skern_tags_issued_total",
			Help: "Total number of tags issued",
		}),
		IssueCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skern_issue_cert_id_collisions_total",
			Help: "Total number of cert ID collisions rejected by the registry at issuance",
		}),
		ScansTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skern_scans_total",
			Help: "Total number of verification scans by verdict",
		}, []string{"verdict"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "skern_analysis_duration_seconds",
			Help:    "Duration of photograph analysis",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncTagsIssued() {
	if m != nil {
		m.TagsIssued.Inc()
	}
}

func (m *Metrics) IncIssueCollisions() {
	if m != nil {
		m.IssueCollisions.Inc()
	}
}

func (m *Metrics) ObserveScan(verdict domain.Verdict, analysisDuration time.Duration) {
	if m != nil {
		m.ScansTotal.WithLabelValues(string(verdict)).Inc()
		m.AnalysisDuration.Observe(analysisDuration.Seconds())
	}
}
