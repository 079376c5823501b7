package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lexdesk/claimsync/pkg/cli/config"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const defaultEnvFile = ".env"

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var envFile string
	var closers []func()

	if err := loadEnvFile(args); err != nil {
		return err
	}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "Path to a .env file loaded before flags are read",
			Value:       defaultEnvFile,
			Destination: &envFile,
		},
	}
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:    "claimsync",
		Usage:   "Claims CRM state sync client and reference backend",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			closeLog, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, closeLog)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Info("Starting claimsync", "logger", loggerCfg, "sentry", sentryCfg, "env_file", envFile)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdWatch(),
			cmdClaims(),
			cmdTasks(),
			cmdTickets(),
			cmdServe(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

// loadEnvFile loads the file named by --env-file, or .env when present.
// It runs before flag parsing so the values can feed env sourced flags.
// Variables already set in the environment win.
func loadEnvFile(args []string) error {
	path, explicit := envFileArg(args)
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}

func envFileArg(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		switch {
		case arg == "--env-file" && i+1 < len(args):
			return args[i+1], true
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file="), true
		}
	}
	if v := os.Getenv("CLAIMSYNC_ENV_FILE"); v != "" {
		return v, true
	}
	return defaultEnvFile, false
}
