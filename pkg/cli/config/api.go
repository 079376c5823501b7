package config

import (
	"log/slog"
	"time"

	"github.com/lexdesk/claimsync/pkg/service/api"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// API holds flags for the REST client used by the sync commands
type API struct {
	baseURL    string
	userID     string
	userName   string
	timeout    time.Duration
	retryCount int
	retryWait  time.Duration
}

func (x *API) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-url",
			Usage:       "Base URL of the claims backend",
			Category:    "API",
			Value:       "http://localhost:8080/api",
			Sources:     cli.EnvVars("CLAIMSYNC_API_URL"),
			Destination: &x.baseURL,
		},
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "ID of the user to act as",
			Category:    "API",
			Sources:     cli.EnvVars("CLAIMSYNC_USER_ID"),
			Destination: &x.userID,
		},
		&cli.StringFlag{
			Name:        "user-name",
			Usage:       "Display name of the user to act as",
			Category:    "API",
			Sources:     cli.EnvVars("CLAIMSYNC_USER_NAME"),
			Destination: &x.userName,
		},
		&cli.DurationFlag{
			Name:        "api-timeout",
			Usage:       "Timeout of one backend request",
			Category:    "API",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("CLAIMSYNC_API_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.IntFlag{
			Name:        "api-retry",
			Usage:       "Retries of failed read requests",
			Category:    "API",
			Value:       2,
			Sources:     cli.EnvVars("CLAIMSYNC_API_RETRY"),
			Destination: &x.retryCount,
		},
		&cli.DurationFlag{
			Name:        "api-retry-wait",
			Usage:       "Wait between read retries",
			Category:    "API",
			Value:       500 * time.Millisecond,
			Sources:     cli.EnvVars("CLAIMSYNC_API_RETRY_WAIT"),
			Destination: &x.retryWait,
		},
	}
}

func (x API) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", x.baseURL),
		slog.String("user_id", x.userID),
		slog.String("timeout", x.timeout.String()),
		slog.Int("retry", x.retryCount),
	)
}

// UserID returns the acting user
func (x *API) UserID() string {
	return x.userID
}

// UserName returns the acting user's display name, falling back to the ID
func (x *API) UserName() string {
	if x.userName == "" {
		return x.userID
	}
	return x.userName
}

// Configure builds the REST client
func (x *API) Configure() (*api.Client, error) {
	if x.baseURL == "" {
		return nil, goerr.Wrap(ErrMissingValue, "api-url is required")
	}
	if x.userID == "" {
		return nil, goerr.Wrap(ErrMissingValue, "user-id is required")
	}

	client := api.New(x.baseURL,
		api.WithTimeout(x.timeout),
		api.WithRetry(x.retryCount, x.retryWait),
	)
	client.SetUser(x.userID, x.UserName())
	return client, nil
}
