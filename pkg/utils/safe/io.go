package safe

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lexdesk/claimsync/pkg/utils/logging"
)

// Close closes c and logs any error. Nil closers are ignored.
func Close(ctx context.Context, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs any error. Nil writers are ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}

// OpenOutput returns a writer for path. "-" and "" map to stdout and
// "stderr" maps to stderr; those are never closed by the returned closer.
func OpenOutput(path string) (io.Writer, func(), error) {
	switch path {
	case "", "-", "stdout":
		return os.Stdout, func() {}, nil
	case "stderr":
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { Close(context.Background(), f) }, nil
}
