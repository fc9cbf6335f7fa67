package reconcile

import "time"

// Config holds configuration for link reconciliation.
type Config struct {
	// MaxConcurrency bounds the number of in-flight operations per reconciliation. Zero means unbounded.
	MaxConcurrency int `mapstructure:"max_concurrency" default:"8"`
	// OperationTimeoutSeconds is the deadline of a single link or unlink call. Zero disables it.
	OperationTimeoutSeconds int `mapstructure:"operation_timeout_seconds" default:"10"`
	// CacheTTLSeconds is how long grouped baselines are cached. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
	// ArchiveReports enables writing every outcome to object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
	// ArchivePrefix is the object prefix for archived outcomes.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"reports/links"`
}

// Options converts the configuration into reconciler options.
func (c Config) Options() []Option {
	return []Option{
		WithConcurrency(c.MaxConcurrency),
		WithOperationTimeout(time.Duration(c.OperationTimeoutSeconds) * time.Second),
	}
}

// CacheTTL returns the baseline cache TTL.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Option configures a reconciliation.
type Option func(*options)

type options struct {
	concurrency int
	timeout     time.Duration
}

// WithConcurrency limits how many operations run at the same time. n <= 0 means unbounded.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithOperationTimeout sets a deadline on every operation. d <= 0 disables it.
func WithOperationTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
