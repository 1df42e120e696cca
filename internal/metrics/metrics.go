package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/miradorstack/tenant-posture/internal/models"
)

const (
	// OutcomeSuccess labels successful calls.
	OutcomeSuccess = "success"
	// OutcomeError labels failed calls.
	OutcomeError = "error"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tenant_posture",
			Name:      "requests_total",
			Help:      "Total number of posture requests handled, partitioned by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tenant_posture",
			Name:      "request_seconds",
			Help:      "Posture request latency in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation"},
	)

	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tenant_posture",
			Name:      "upstream_requests_total",
			Help:      "Management API calls, partitioned by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	upstreamDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tenant_posture",
			Name:      "upstream_request_seconds",
			Help:      "Management API call latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	mergedStandards = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "tenant_posture",
			Name:      "merged_standards",
			Help:      "Number of distinct standards in effect per aggregation.",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 200},
		},
	)

	standardActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tenant_posture",
			Name:      "standard_actions_total",
			Help:      "Standard actions counted across aggregations, partitioned by action.",
		},
		[]string{"action"},
	)
)

// Register attaches tenant-posture collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		requestsTotal,
		requestDurationSeconds,
		upstreamRequestsTotal,
		upstreamDurationSeconds,
		mergedStandards,
		standardActionsTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRequest records a request duration and outcome for operation.
func ObserveRequest(operation string, duration time.Duration, outcome string) {
	requestsTotal.WithLabelValues(operation, normaliseOutcome(outcome)).Inc()
	requestDurationSeconds.WithLabelValues(operation).Observe(clampDuration(duration).Seconds())
}

// ObserveUpstream records one management API call.
func ObserveUpstream(endpoint string, duration time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	upstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	upstreamDurationSeconds.WithLabelValues(endpoint).Observe(clampDuration(duration).Seconds())
}

// ObserveActionCounts records the shape of one aggregation result.
func ObserveActionCounts(counts models.ActionCounts) {
	mergedStandards.Observe(float64(counts.Total))
	standardActionsTotal.WithLabelValues("remediate").Add(float64(counts.RemediateCount))
	standardActionsTotal.WithLabelValues("alert").Add(float64(counts.AlertCount))
	standardActionsTotal.WithLabelValues("report").Add(float64(counts.ReportCount))
}

func normaliseOutcome(outcome string) string {
	if outcome != OutcomeError {
		return OutcomeSuccess
	}
	return OutcomeError
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
