package config

import (
	"log/slog"

	"github.com/lexdesk/claimsync/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds flags for forwarding alerts to a Slack channel
type Slack struct {
	botToken   string
	channelID  string
	withErrors bool
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token used to post alerts",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("CLAIMSYNC_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel that receives alerts",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("CLAIMSYNC_SLACK_CHANNEL_ID"),
		},
		&cli.BoolFlag{
			Name:        "slack-forward-errors",
			Usage:       "Also forward error notices",
			Category:    "Slack",
			Destination: &x.withErrors,
			Sources:     cli.EnvVars("CLAIMSYNC_SLACK_FORWARD_ERRORS"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel-id", x.channelID),
		slog.Bool("forward-errors", x.withErrors),
	)
}

// IsConfigured reports whether alert forwarding is enabled
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" || x.channelID != ""
}

// Configure returns the forwarder, or nil when Slack is not configured
func (x *Slack) Configure() (*slack.Forwarder, error) {
	if !x.IsConfigured() {
		return nil, nil
	}
	if x.botToken == "" || x.channelID == "" {
		return nil, goerr.Wrap(ErrMissingValue, "both --slack-bot-token and --slack-channel-id are required to forward alerts")
	}

	fwd, err := slack.New(x.botToken, x.channelID, slack.WithErrorNotices(x.withErrors))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack forwarder")
	}
	return fwd, nil
}
