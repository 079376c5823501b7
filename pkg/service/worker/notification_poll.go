package worker

import (
	"context"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/utils/logging"
)

// DefaultPollInterval is how often notifications are polled
const DefaultPollInterval = 15 * time.Second

// NotificationFetcher refreshes the notification state of the logged in user
type NotificationFetcher interface {
	Fetch(ctx context.Context) error
}

// NotificationPollWorker polls notifications on a fixed interval. The first
// poll runs as soon as the worker starts.
type NotificationPollWorker struct {
	fetcher  NotificationFetcher
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

func NewNotificationPollWorker(fetcher NotificationFetcher, interval time.Duration) *NotificationPollWorker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &NotificationPollWorker{
		fetcher:  fetcher,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins polling in a background goroutine and returns immediately
func (w *NotificationPollWorker) Start(ctx context.Context) error {
	logging.From(ctx).Info("Notification poll worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for the loop to exit. Calling it
// more than once is safe.
func (w *NotificationPollWorker) Stop() {
	w.stopOnce.Do(func() {
		logging.Default().Info("Notification poll worker stopping")
		close(w.stopCh)
	})
	<-w.doneCh
}

func (w *NotificationPollWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.poll(ctx)

		case <-w.stopCh:
			logging.Default().Info("Notification poll worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Notification poll worker context cancelled")
			return
		}
	}
}

func (w *NotificationPollWorker) poll(ctx context.Context) {
	if err := w.fetcher.Fetch(ctx); err != nil {
		logging.From(ctx).Warn("Notification poll failed (will retry next interval)",
			"error", err.Error())
	}
}
