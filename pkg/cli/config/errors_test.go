package config_test

import (
	"errors"
	"testing"

	"github.com/lexdesk/claimsync/pkg/cli/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestConfigErrors_SentinelIdentification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrConfigNotFound can be identified", goerr.Wrap(config.ErrConfigNotFound, "failed to load config"), config.ErrConfigNotFound},
		{"ErrInvalidConfig can be identified", goerr.Wrap(config.ErrInvalidConfig, "validation failed"), config.ErrInvalidConfig},
		{"ErrInvalidDuration can be identified", goerr.Wrap(config.ErrInvalidDuration, "bad value"), config.ErrInvalidDuration},
		{"ErrDuplicateLender can be identified", goerr.Wrap(config.ErrDuplicateLender, "found duplicate"), config.ErrDuplicateLender},
		{"ErrMissingValue can be identified", goerr.Wrap(config.ErrMissingValue, "flag missing"), config.ErrMissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Bool(t, errors.Is(tt.err, tt.sentinel)).True()
		})
	}
}

func TestConfigErrors_Distinct(t *testing.T) {
	err := goerr.Wrap(config.ErrDuplicateLender, "found duplicate")
	gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).False()
	gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).False()
}

func TestConfigErrors_Values(t *testing.T) {
	err := goerr.Wrap(config.ErrInvalidConfig, "bad setting",
		goerr.V(config.FieldKey, "sync.time_zone"),
		goerr.V(config.ValueKey, "Mars/Olympus"),
	)

	var ge *goerr.Error
	gt.Bool(t, errors.As(err, &ge)).True()
	values := ge.Values()
	gt.Value(t, values[config.FieldKey]).Equal(any("sync.time_zone"))
	gt.Value(t, values[config.ValueKey]).Equal(any("Mars/Olympus"))
}
