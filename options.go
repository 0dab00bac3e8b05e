package stablemat

import (
	"github.com/hupe1980/stablemat/engine"
)

type options struct {
	groupSize        int
	logger           *Logger
	metricsCollector MetricsCollector
	forcedEngine     *engine.Kind
}

// Option configures an Instance.
type Option func(*options)

// WithGroupSize sets the tiling parameter of the heap engine. Group sizes
// larger than n are clamped to n; otherwise n must be a multiple of the
// group size and the heap engine rejects remainders.
//
// The default is 64.
func WithGroupSize(groupSize int) Option {
	return func(o *options) {
		o.groupSize = groupSize
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetricsCollector sets the metrics collector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithEngine forces the engine MultiplyStable uses instead of capability
// selection. The forced engine must be available on the instance's store.
func WithEngine(kind engine.Kind) Option {
	return func(o *options) {
		o.forcedEngine = &kind
	}
}
