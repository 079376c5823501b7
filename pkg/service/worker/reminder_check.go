package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
)

// DefaultReminderInterval is how often the backend is asked to dispatch due
// reminders
const DefaultReminderInterval = time.Minute

// ReminderChecker asks the backend to send due task reminders
type ReminderChecker interface {
	CheckReminders(ctx context.Context) (int, error)
}

// ReminderCheckWorker triggers the reminder check on a cron schedule and
// polls notifications right after, so reminders the check produced show up
// without waiting for the next poll
type ReminderCheckWorker struct {
	checker  ReminderChecker
	fetcher  NotificationFetcher
	interval time.Duration

	mu   sync.Mutex
	cron *cron.Cron
}

func NewReminderCheckWorker(checker ReminderChecker, fetcher NotificationFetcher, interval time.Duration) *ReminderCheckWorker {
	if interval <= 0 {
		interval = DefaultReminderInterval
	}
	return &ReminderCheckWorker{
		checker:  checker,
		fetcher:  fetcher,
		interval: interval,
	}
}

// Start schedules the check. Runs that are still in progress when the next
// tick arrives make that tick a no-op.
func (w *ReminderCheckWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cron != nil {
		return goerr.New("reminder check worker already started")
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc("@every "+w.interval.String(), func() {
		if err := w.RunOnce(ctx); err != nil {
			logging.From(ctx).Warn("Reminder check failed (will retry next interval)",
				"error", err.Error())
		}
	}); err != nil {
		return goerr.Wrap(err, "failed to schedule reminder check", goerr.V("interval", w.interval.String()))
	}

	logging.From(ctx).Info("Reminder check worker starting",
		"interval", w.interval.String())
	w.cron = c
	c.Start()
	return nil
}

// Stop halts the schedule and waits for a running check to finish
func (w *ReminderCheckWorker) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()

	if c == nil {
		return
	}
	logging.Default().Info("Reminder check worker stopping")
	<-c.Stop().Done()
	logging.Default().Info("Reminder check worker stopped")
}

// RunOnce performs one reminder check followed by a notification poll. The
// poll runs even when the check fails. A nil fetcher skips the poll, which is
// how the reference backend schedules checks server side.
func (w *ReminderCheckWorker) RunOnce(ctx context.Context) error {
	var errs []error

	sent, err := w.checker.CheckReminders(ctx)
	if err != nil {
		errs = append(errs, goerr.Wrap(err, "failed to check reminders"))
	} else if sent > 0 {
		logging.From(ctx).Info("Reminders dispatched", "count", sent)
	}

	if w.fetcher != nil {
		if err := w.fetcher.Fetch(ctx); err != nil {
			errs = append(errs, goerr.Wrap(err, "failed to poll notifications after reminder check"))
		}
	}

	return errors.Join(errs...)
}
