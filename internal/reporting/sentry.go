package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/tkleiven/nametag/internal/config"
	"github.com/tkleiven/nametag/internal/logging"
)

var uuidRx = regexp.MustCompile(`[0-9a-fA-F]{8}-?([0-9a-fA-F]{4}-?){3}[0-9a-fA-F]{12}`)
var hostRx = regexp.MustCompile(`\[:{0,2}([0-9a-f]{0,4}:?){1,8}\]:\d+`)

// Usernames are user data and should not end up in issue fingerprints.
var usernameRx = regexp.MustCompile(`username "[^"]*"`)

func sanitizeError(err string) string {
	err = uuidRx.ReplaceAllString(err, "<uuid>")
	err = hostRx.ReplaceAllString(err, "<host>")
	err = usernameRx.ReplaceAllString(err, `username "<username>"`)
	return err
}

func Report(ctx context.Context, err error, extras ...map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	logger := logging.FromContext(ctx)
	if hub == nil {
		logger.Warn("Failed to get Sentry hub from context", "Error:", err, "Extras:", extras)
		return
	}

	logger.Error(
		"Reporting error to Sentry",
		slog.String("error", err.Error()),
		slog.Any("extras", extras),
	)

	hub.WithScope(func(scope *sentry.Scope) {
		meta := MetaFromContext(ctx)
		scope.SetTags(meta.tags)
		for key, value := range meta.extras {
			scope.SetExtra(key, value)
		}
		scope.SetExtra("secondsSinceStart", time.Since(meta.startedAt).Seconds())

		for _, extra := range extras {
			if extra == nil {
				continue
			}
			for key, value := range extra {
				scope.SetExtra(key, value)
			}
		}

		if err == nil {
			err = errors.New("No error provided")
		}

		scope.SetFingerprint([]string{"{{ default }}", sanitizeError(err.Error())})
		hub.CaptureException(err)
	})
}

// InitSentry initializes the global Sentry client and binds a hub to the
// returned context. The returned flush func must run before the process exits.
func InitSentry(ctx context.Context, sentryDSN string) (context.Context, func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn: sentryDSN,
	})
	if err != nil {
		return nil, nil, err
	}

	hub := sentry.CurrentHub().Clone()
	ctx = sentry.SetHubOnContext(ctx, hub)
	ctx = setStartedAtInContext(ctx, time.Now())

	flush := func() {
		sentry.Flush(5 * time.Second)
	}

	return ctx, flush, nil
}

func InitSentryOrMock(ctx context.Context, config config.Config) (context.Context, func(), error) {
	if config.SentryDSN() != "" {
		return InitSentry(ctx, config.SentryDSN())
	}

	if config.IsDevelopment() {
		return setStartedAtInContext(ctx, time.Now()), func() {}, nil
	}

	return nil, nil, fmt.Errorf("Missing Sentry DSN in non-development environment")
}
