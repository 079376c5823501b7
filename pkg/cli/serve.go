package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexdesk/claimsync/pkg/cli/config"
	httpctrl "github.com/lexdesk/claimsync/pkg/controller/http"
	"github.com/lexdesk/claimsync/pkg/service/worker"
	"github.com/lexdesk/claimsync/pkg/usecase/backend"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/lexdesk/claimsync/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var accessLog bool
	var reminderCron bool
	var repoCfg config.Repository
	var settingsCfg config.SettingsFile

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CLAIMSYNC_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "access-log",
			Usage:       "Log every HTTP request",
			Value:       true,
			Sources:     cli.EnvVars("CLAIMSYNC_ACCESS_LOG"),
			Destination: &accessLog,
		},
		&cli.BoolFlag{
			Name:        "reminder-cron",
			Usage:       "Dispatch due task reminders on the server without waiting for clients",
			Sources:     cli.EnvVars("CLAIMSYNC_REMINDER_CRON"),
			Destination: &reminderCron,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, settingsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the reference claims backend",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			settings, err := settingsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load settings")
			}
			backendOpts, err := settings.BackendOptions()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			svc := backend.New(repo, backendOpts...)
			logging.Default().Info("Backend configured", "repository", repoCfg, "settings", *settings)

			var reminderWorker *worker.ReminderCheckWorker
			if reminderCron {
				reminderWorker = worker.NewReminderCheckWorker(svc, nil, time.Duration(settings.Sync.ReminderCheckInterval))
				if err := reminderWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start reminder check worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(svc, httpctrl.WithAccessLog(accessLog)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				if reminderWorker != nil {
					reminderWorker.Stop()
				}
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if reminderWorker != nil {
					reminderWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
