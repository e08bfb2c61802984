// Package sentry wraps getsentry/sentry-go for request-fatal error
// reporting (CatalogueUnavailable and friends, per spec.md §7's
// fail-request policy). A blank DSN disables reporting — local
// development and tests never need a Sentry account.
package sentry

import (
	"time"

	"github.com/coursematch/recoengine/internal/config"
	sentrygo "github.com/getsentry/sentry-go"
)

// Init configures the global Sentry SDK. Safe to call with an empty
// DSN, in which case CaptureRequestFatal becomes a no-op.
func Init(cfg config.SentryConfig) error {
	if cfg.DSN == "" {
		return nil
	}
	return sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		TracesSampleRate: cfg.TracesSampleRate,
	})
}

// Flush blocks until buffered events are sent or timeout elapses.
func Flush(timeout time.Duration) {
	sentrygo.Flush(timeout)
}

// CaptureRequestFatal reports an error from the fail-request error
// class (§7: CatalogueUnavailable) with course-recommendation context
// attached. No-op when Sentry was never initialized.
func CaptureRequestFatal(err error, kind string, tags map[string]string) {
	if err == nil {
		return
	}
	sentrygo.WithScope(func(scope *sentrygo.Scope) {
		scope.SetTag("error_kind", kind)
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentrygo.CaptureException(err)
	})
}
