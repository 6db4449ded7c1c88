package errutil

import (
	"context"
	"errors"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/utils/ctxlog"
)

// IsFetchError reports whether err is (or wraps) a non-200 response
func IsFetchError(err error) bool {
	var fetchErr *model.FetchError
	return errors.As(err, &fetchErr)
}

// Handle logs err and reports it to Sentry. Non-200 responses are an expected
// outcome of a check and are only logged.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	ctxlog.From(ctx).Error(msg, "error", err)
	Capture(ctx, err)
}

// Capture reports err to Sentry without logging it. Non-200 responses are skipped.
func Capture(ctx context.Context, err error) {
	if err == nil || IsFetchError(err) {
		return
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
