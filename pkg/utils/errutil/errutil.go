package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err with its goerr values and stack, reports it to Sentry when a
// client is configured and returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logging.From(ctx).Error(msg, errorAttrs(err)...)
	capture(ctx, err, msg)
	return err
}

// HandleHTTP logs err and writes a JSON error body with the given status code.
// Only 5xx errors are reported to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	attrs := append([]any{"status", statusCode}, errorAttrs(err)...)
	if statusCode >= http.StatusInternalServerError {
		logging.From(ctx).Error("HTTP error", attrs...)
		capture(ctx, err, "HTTP error")
	} else {
		logging.From(ctx).Warn("HTTP error", attrs...)
	}

	WriteJSONError(w, err.Error(), statusCode, false)
}

// WriteJSONError writes the backend's error envelope.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int, requiresConfirmation bool) {
	body := struct {
		Error                string `json:"error"`
		RequiresConfirmation bool   `json:"requiresConfirmation,omitempty"`
	}{
		Error:                message,
		RequiresConfirmation: requiresConfirmation,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func errorAttrs(err error) []any {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		return []any{
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		}
	}
	return []any{"error", err.Error()}
}

func capture(ctx context.Context, err error, msg string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		var ge *goerr.Error
		if errors.As(err, &ge) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		}
		hub.CaptureException(err)
	})
	logging.From(ctx).Debug("error reported to sentry", slog.String("message", msg))
}
