package neodb

import (
	"log/slog"

	"github.com/hupe1980/neodb/codec"
	"github.com/hupe1980/neodb/index"
	"github.com/hupe1980/neodb/internal/resource"
)

type options struct {
	strategy         index.Strategy
	codec            codec.Codec
	skipMalformed    bool
	metricsCollector MetricsCollector
	logger           *Logger
	rc               *resource.Controller
}

// Option configures database construction and loading.
type Option func(*options)

// WithIndexStrategy selects the designation and name index implementation.
//
// index.StrategyMap (default) gives O(1) lookups. index.StrategyTrie walks
// the key byte by byte and shares storage between designations with common
// prefixes.
func WithIndexStrategy(s index.Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithCodec configures the codec used to decode JSON close approach data in Open.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithSkipMalformed makes Open skip records with malformed fields instead of
// failing. Skipped records are logged at warn level.
func WithSkipMalformed(skip bool) Option {
	return func(o *options) {
		o.skipMalformed = skip
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &neodb.BasicMetricsCollector{}
//	db, _ := neodb.New(neos, approaches, neodb.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := neodb.NewJSONLogger(slog.LevelInfo)
//	db, _ := neodb.New(neos, approaches, neodb.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMemoryLimit caps the input bytes Open holds in memory at once, counting
// both the compressed and decompressed form of compressed files. Loading
// fails with an error wrapping ErrMemoryLimitExceeded when a file is larger.
// Zero disables the limit.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.rc = resource.NewController(resource.Config{MemoryLimitBytes: bytes})
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		strategy:         index.StrategyMap,
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
