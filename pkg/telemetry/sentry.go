package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/dune-crafting-api/pkg/config"
)

// SetupSentry initializes the Sentry SDK. No-ops if DSN is empty.
// Only 5xx responses and panics are worth reporting on a read-only catalog,
// so 4xx captures are dropped in BeforeSend.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		TracesSampleRate: 0.2,
		BeforeSend:       dropClientErrors,
	}); err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

// SentryFlush flushes buffered events before process exit.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware returns a net/http middleware that captures panics and errors.
// Repanic: true so the outer Recovery middleware still handles the 500 response.
func SentryMiddleware() func(http.Handler) http.Handler {
	h := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return h.Handle
}

// dropClientErrors discards events tagged with a 4xx status.
func dropClientErrors(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if status, ok := event.Tags["http.status_code"]; ok && len(status) == 3 && status[0] == '4' {
		return nil
	}
	return event
}

// CaptureError reports err to Sentry when it has been initialized.
func CaptureError(err error) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.CaptureException(err)
}
