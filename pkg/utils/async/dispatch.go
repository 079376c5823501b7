package async

import (
	"context"
	"fmt"

	"github.com/lexdesk/claimsync/pkg/utils/errutil"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Dispatch runs handler in its own goroutine on a context detached from the
// caller's cancellation but carrying its logger. Errors and panics are sent to
// errutil.Handle. The returned channel is closed when handler returns.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) <-chan struct{} {
	bgCtx := logging.With(context.WithoutCancel(ctx), logging.From(ctx))
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in async handler", goerr.V("panic", fmt.Sprint(r))), "async handler panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()

	return done
}
