package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Insert outcome labels.
const (
	OutcomeCreated = "created"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

var (
	// SeedRowsTotal counts insert attempts by table and outcome.
	SeedRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinedex_seed_rows_total",
		Help: "Total number of seed insert attempts by table and outcome",
	}, []string{"table", "outcome"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cinedex_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StageDuration records how long each seed stage took.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cinedex_seed_stage_duration_seconds",
		Help:    "Seed stage duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
	}, []string{"stage"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinedex_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordOutcome increments the seed row counter for the table.
func RecordOutcome(table, outcome string) {
	SeedRowsTotal.WithLabelValues(table, outcome).Inc()
}

// TrackStage returns a function that records the stage duration when called.
func TrackStage(stage string) func() {
	start := time.Now()
	return func() {
		StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

// PushMetrics sends the default registry to a Prometheus Pushgateway.
// It is a no-op when url is empty.
func PushMetrics(ctx context.Context, url, job, runID string) error {
	if url == "" {
		return nil
	}
	pusher := push.New(url, job).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("run_id", runID)
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
