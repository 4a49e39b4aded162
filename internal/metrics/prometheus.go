// Package metrics exposes Prometheus counters for the apply and
// checkpoint paths.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all engine metrics.
type Registry struct {
	// Apply transaction metrics
	AppliesTotal   prometheus.Counter
	ApplyFailures  *prometheus.CounterVec
	VerifyFailures prometheus.Counter

	// Checkpoint lifecycle metrics
	CheckpointsCreated   prometheus.Counter
	CheckpointsDestroyed prometheus.Counter
	Rollbacks            prometheus.Counter
	RollbackSettleTime   prometheus.Histogram

	// Enumeration metrics
	EnumerationRaces *prometheus.CounterVec
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = newRegistry()
	})
	return registry
}

func newRegistry() *Registry {
	r := &Registry{}

	r.AppliesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ifstate_applies_total",
		Help: "Total apply transactions started",
	})

	r.ApplyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ifstate_apply_failures_total",
		Help: "Apply transactions that failed, by phase",
	}, []string{"phase"})

	r.VerifyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ifstate_verify_failures_total",
		Help: "Post-apply verifications that found drift",
	})

	r.CheckpointsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ifstate_checkpoints_created_total",
		Help: "Checkpoints created on the daemon",
	})

	r.CheckpointsDestroyed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ifstate_checkpoints_destroyed_total",
		Help: "Checkpoints destroyed (committed)",
	})

	r.Rollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ifstate_rollbacks_total",
		Help: "Checkpoint rollbacks issued",
	})

	r.RollbackSettleTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ifstate_rollback_settle_seconds",
		Help:    "Time for device state to settle after a rollback",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
	})

	r.EnumerationRaces = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ifstate_enumeration_races_total",
		Help: "Objects that vanished between listing and resolution",
	}, []string{"kind"})

	return r
}
