package config

import (
	"log/slog"
	"regexp"

	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/lexdesk/claimsync/pkg/utils/safe"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds flags for the process wide logger
type Logger struct {
	level  string
	format string
	output string
}

var (
	sortCodePattern  = regexp.MustCompile(`\b\d{2}-\d{2}-\d{2}\b`)
	emailPattern     = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	ukPhonePattern   = regexp.MustCompile(`(?:\+44\s?7\d{3}|\b07\d{3})\s?\d{3}\s?\d{3}\b`)
	slackTokenPrefix = regexp.MustCompile(`xox[abposr]-[0-9A-Za-z\-]+`)
)

func (x *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"l"},
			Usage:       "Log level [debug|info|warn|error]",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("CLAIMSYNC_LOG_LEVEL"),
			Destination: &x.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [console|json]",
			Category:    "Logging",
			Value:       "console",
			Sources:     cli.EnvVars("CLAIMSYNC_LOG_FORMAT"),
			Destination: &x.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [stdout|stderr|<file path>]",
			Category:    "Logging",
			Value:       "stderr",
			Sources:     cli.EnvVars("CLAIMSYNC_LOG_OUTPUT"),
			Destination: &x.output,
		},
	}
}

func (x Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", x.level),
		slog.String("format", x.format),
		slog.String("output", x.output),
	)
}

// NewRedactor returns the attribute filter applied to every log record. It
// hides fields tagged `masq:"secret"` and values that look like bank details,
// contact details or Slack tokens.
func NewRedactor() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("AccountNumber"),
		masq.WithFieldName("SortCode"),
		masq.WithFieldName("Token"),
		masq.WithRegex(sortCodePattern),
		masq.WithRegex(emailPattern),
		masq.WithRegex(ukPhonePattern),
		masq.WithRegex(slackTokenPrefix),
	)
}

// Configure builds the logger, installs it as default and returns a closer
// for the output file, if any.
func (x *Logger) Configure() (func(), error) {
	closer := func() {}

	levelMap := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	level, ok := levelMap[x.level]
	if !ok {
		return closer, goerr.New("invalid log level", goerr.V("level", x.level))
	}

	w, closeOutput, err := safe.OpenOutput(x.output)
	if err != nil {
		return closer, goerr.Wrap(err, "failed to open log output", goerr.V("path", x.output))
	}
	closer = closeOutput

	var handler slog.Handler
	switch x.format {
	case "console":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(NewRedactor()),
			clog.WithSource(true),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: NewRedactor(),
		})
	default:
		closer()
		return func() {}, goerr.New("invalid log format", goerr.V("format", x.format))
	}

	logging.SetDefault(slog.New(handler))
	return closer, nil
}
