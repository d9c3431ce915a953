// Package metrics collects ranking and extraction counters for a Prometheus textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector owns a private registry so batch runs can dump it with WriteTextfile.
// It satisfies ranking.Observer.
type Collector struct {
	registry *prometheus.Registry

	CandidatesScored   prometheus.Counter
	CandidatesSkipped  prometheus.Counter
	MatchScores        prometheus.Histogram
	DocumentsExtracted *prometheus.CounterVec
	StageDuration      *prometheus.HistogramVec
}

// NewCollector registers every metric on a new registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		CandidatesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_match_candidates_scored_total",
			Help: "Total number of candidates scored against a job",
		}),
		CandidatesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "campus_match_candidates_skipped_total",
			Help: "Total number of candidates skipped because scoring failed",
		}),
		MatchScores: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "campus_match_match_score",
			Help:    "Distribution of overall match scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		DocumentsExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campus_match_documents_extracted_total",
				Help: "Total number of documents run through extraction",
			},
			[]string{"kind"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "campus_match_stage_duration_seconds",
				Help: "Duration of pipeline stages in seconds",
			},
			[]string{"stage"},
		),
	}
}

// CandidateScored records one scored candidate
func (c *Collector) CandidateScored(score float64) {
	c.CandidatesScored.Inc()
	c.MatchScores.Observe(score)
}

// CandidateSkipped records one candidate dropped from ranking
func (c *Collector) CandidateSkipped() {
	c.CandidatesSkipped.Inc()
}

// DocumentExtracted counts a résumé or job description by kind
func (c *Collector) DocumentExtracted(kind string) {
	c.DocumentsExtracted.WithLabelValues(kind).Inc()
}

// TimeStage returns a func that records the elapsed time of stage when called
func (c *Collector) TimeStage(stage string) func() {
	start := time.Now()
	return func() {
		c.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

// WriteTextfile writes every metric in the text exposition format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
