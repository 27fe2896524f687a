package resilience

import (
	"context"
	"time"
)

// TimeoutConfig defines the request timeout hierarchy. HTTPHandler must
// exceed the processor client timeout so a slow confirmation is reported by
// the client rather than cut off by the handler.
type TimeoutConfig struct {
	HTTPHandler time.Duration
	// Migration bounds one background legacy migration batch
	Migration time.Duration
}

// DefaultTimeoutConfig returns production timeout values
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		HTTPHandler: 90 * time.Second,
		Migration:   5 * time.Minute,
	}
}

// HandlerContext creates a context with timeout for HTTP handlers
func (tc *TimeoutConfig) HandlerContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.HTTPHandler)
}

// MigrationContext creates a context with timeout for one migration batch
func (tc *TimeoutConfig) MigrationContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.Migration)
}
