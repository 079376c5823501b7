package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexdesk/claimsync/pkg/cli/config"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/service/worker"
	"github.com/lexdesk/claimsync/pkg/usecase"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdWatch() *cli.Command {
	var setup clientSetup
	var slackCfg config.Slack

	flags := setup.flags()
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "watch",
		Aliases: []string{"w"},
		Usage:   "Log in, keep client state in sync and print notifications",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			forwarder, err := slackCfg.Configure()
			if err != nil {
				return err
			}
			var sinks []interfaces.ToastSink
			if forwarder != nil {
				sinks = append(sinks, forwarder)
				defer forwarder.Wait()
				logging.Default().Info("Forwarding alerts to Slack", "slack", slackCfg)
			}

			uc, settings, err := setup.start(ctx, c.Root().Writer, sinks...)
			if err != nil {
				return err
			}
			defer uc.Session.Logout(context.WithoutCancel(ctx))

			if err := initialFetch(ctx, uc); err != nil {
				return err
			}

			poller := worker.NewNotificationPollWorker(uc.Notification, time.Duration(settings.Sync.NotificationPollInterval))
			reminders := worker.NewReminderCheckWorker(uc, uc.Notification, time.Duration(settings.Sync.ReminderCheckInterval))

			if err := poller.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start notification poller")
			}
			defer poller.Stop()

			if err := reminders.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start reminder checker")
			}
			defer reminders.Stop()

			logging.Default().Info("Watching for notifications",
				"user_id", uc.Session.Current().UserID,
				"claims", len(uc.Store.Claims()),
				"tasks", len(uc.Store.Tasks()),
			)

			<-ctx.Done()
			logging.Default().Info("Received shutdown signal, stopping workers")
			return nil
		},
	}
}

// initialFetch loads claims, tasks and the first contact page concurrently.
// Notifications are left to the poller, which fetches on start.
func initialFetch(ctx context.Context, uc *usecase.UseCases) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return uc.Claim.FetchAll(ctx)
	})
	eg.Go(func() error {
		return uc.Task.Fetch(ctx, model.TaskFilter{})
	})
	eg.Go(func() error {
		return uc.Contact.FetchPage(ctx, 1, model.DefaultPageLimit, model.ContactFilter{})
	})

	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "initial fetch failed")
	}
	return nil
}
