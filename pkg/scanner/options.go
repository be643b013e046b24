package scanner

import (
	"errors"
	"time"
)

// Options is the immutable configuration snapshot shared read-only by all
// workers for the duration of a scan.
type Options struct {
	// Timeout bounds a single connect attempt.
	Timeout time.Duration
	// Workers caps the number of in-flight probes.
	Workers int
	// Verbose enables per-probe debug logging.
	Verbose bool
	// Dialer performs the actual connection attempts. Defaults to a plain
	// net.Dialer; tests and proxy setups substitute their own.
	Dialer Dialer
}

// DefaultOptions returns the default scan configuration.
func DefaultOptions() *Options {
	return &Options{
		Timeout: 1 * time.Second,
		Workers: 100,
	}
}

// Option mutates Options before a scanner is built.
type Option func(*Options)

// WithTimeout sets the per-probe connect timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

// WithWorkers sets the worker pool capacity.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

// WithVerbose enables per-probe debug logging.
func WithVerbose(verbose bool) Option {
	return func(o *Options) {
		o.Verbose = verbose
	}
}

// WithDialer substitutes the dialer used for connection attempts.
func WithDialer(dialer Dialer) Option {
	return func(o *Options) {
		o.Dialer = dialer
	}
}

// Validate rejects configurations that must never reach the concurrent phase.
func (o *Options) Validate() error {
	if o.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if o.Workers < 1 {
		return errors.New("worker count must be at least 1")
	}
	return nil
}
