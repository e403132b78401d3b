package digo

import "github.com/rs/zerolog"

// Option configures a registration pipeline.
type Option func(*options)

type options struct {
	logger            zerolog.Logger
	metrics           *Metrics
	excludeErrorTypes bool
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}

// WithLogger sets the logger used for the registration pass.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records the registration pass in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithErrorTypesExcluded turns on the legacy exclusion policy: candidates
// that are error types and declare no lifetime are dropped with the
// explicitly excluded ones. An error type opts back in by declaring a lifetime.
func WithErrorTypesExcluded() Option {
	return func(o *options) {
		o.excludeErrorTypes = true
	}
}

func (o options) excludes(c Candidate) bool {
	if c.IsExcluded() {
		return true
	}
	return o.excludeErrorTypes && c.IsError() && len(c.lifetimes) == 0
}
