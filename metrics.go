package stablemat

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordInitialize is called after each Initialize call.
	// duration is the total time taken, err is nil if successful.
	RecordInitialize(duration time.Duration, err error)

	// RecordMultiply is called after each multiply call.
	// engine names the engine that ran ("heap", "vectorized", "scalar"),
	// duration is the time taken, err is nil if successful.
	RecordMultiply(engine string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInitialize(time.Duration, error)       {}
func (NoopMetricsCollector) RecordMultiply(string, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InitializeCount      atomic.Int64
	InitializeErrors     atomic.Int64
	InitializeTotalNanos atomic.Int64
	MultiplyCount        atomic.Int64
	MultiplyErrors       atomic.Int64
	MultiplyTotalNanos   atomic.Int64
}

// RecordInitialize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInitialize(duration time.Duration, err error) {
	b.InitializeCount.Add(1)
	b.InitializeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InitializeErrors.Add(1)
	}
}

// RecordMultiply implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMultiply(_ string, duration time.Duration, err error) {
	b.MultiplyCount.Add(1)
	b.MultiplyTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MultiplyErrors.Add(1)
	}
}
