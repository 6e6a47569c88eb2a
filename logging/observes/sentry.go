package observes

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryOptions configures error reporting
type SentryOptions struct {
	Dsn         string
	Name        string
	Release     string
	Environment string
}

// NewSentry initializes sentry and returns a flush function. Without a DSN it
// does nothing.
func NewSentry(opt *SentryOptions) (func(), error) {
	if opt == nil || opt.Dsn == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opt.Dsn,
		AttachStacktrace: true,
		ServerName:       opt.Name,
		Release:          opt.Release,
		Environment:      opt.Environment,
	})
	if err != nil {
		return nil, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureError reports err when sentry is initialized
func CaptureError(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
