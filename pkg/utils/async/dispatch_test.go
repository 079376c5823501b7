package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lexdesk/claimsync/pkg/utils/async"
	"github.com/m-mizutani/gt"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not finish")
	}
}

func TestDispatch(t *testing.T) {
	t.Run("runs handler after caller context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		called := make(chan error, 1)

		done := async.Dispatch(ctx, func(ctx context.Context) error {
			cancel()
			called <- ctx.Err()
			return nil
		})
		waitDone(t, done)
		gt.NoError(t, <-called)
	})

	t.Run("survives handler error", func(t *testing.T) {
		done := async.Dispatch(context.Background(), func(ctx context.Context) error {
			return errors.New("slack unavailable")
		})
		waitDone(t, done)
	})

	t.Run("recovers panic", func(t *testing.T) {
		done := async.Dispatch(context.Background(), func(ctx context.Context) error {
			panic("unexpected")
		})
		waitDone(t, done)
	})
}
