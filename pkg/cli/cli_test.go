package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexdesk/claimsync/pkg/cli"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestEnvFileArg(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantPath     string
		wantExplicit bool
	}{
		{"default", []string{"claimsync", "watch"}, cli.DefaultEnvFile, false},
		{"separate value", []string{"claimsync", "--env-file", "prod.env", "watch"}, "prod.env", true},
		{"inline value", []string{"claimsync", "--env-file=dev.env", "serve"}, "dev.env", true},
		{"after terminator is ignored", []string{"claimsync", "--", "--env-file=x.env"}, cli.DefaultEnvFile, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLAIMSYNC_ENV_FILE", "")
			path, explicit := cli.EnvFileArg(tt.args)
			gt.Value(t, path).Equal(tt.wantPath)
			gt.Value(t, explicit).Equal(tt.wantExplicit)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("missing default file is ignored", func(t *testing.T) {
		t.Setenv("CLAIMSYNC_ENV_FILE", "")
		t.Chdir(t.TempDir())
		gt.NoError(t, cli.LoadEnvFile([]string{"claimsync"}))
	})

	t.Run("missing explicit file fails", func(t *testing.T) {
		t.Setenv("CLAIMSYNC_ENV_FILE", "")
		err := cli.LoadEnvFile([]string{"claimsync", "--env-file", filepath.Join(t.TempDir(), "none.env")})
		gt.Value(t, err).NotNil()
	})

	t.Run("values are loaded without overriding the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		gt.NoError(t, os.WriteFile(path, []byte("CLAIMSYNC_TEST_FROM_FILE=file\nCLAIMSYNC_TEST_PRESET=file\n"), 0600)).Required()
		t.Setenv("CLAIMSYNC_ENV_FILE", "")
		t.Setenv("CLAIMSYNC_TEST_PRESET", "env")
		t.Setenv("CLAIMSYNC_TEST_FROM_FILE", "")
		gt.NoError(t, os.Unsetenv("CLAIMSYNC_TEST_FROM_FILE")).Required()

		gt.NoError(t, cli.LoadEnvFile([]string{"claimsync", "--env-file=" + path})).Required()
		gt.Value(t, os.Getenv("CLAIMSYNC_TEST_FROM_FILE")).Equal("file")
		gt.Value(t, os.Getenv("CLAIMSYNC_TEST_PRESET")).Equal("env")
	})
}

func TestParseReminderOffsets(t *testing.T) {
	t.Run("comma separated offsets", func(t *testing.T) {
		offsets, err := cli.ParseReminderOffsets("30m, 1h,2d")
		gt.NoError(t, err).Required()
		gt.Array(t, offsets).Length(3).Required()
		gt.Value(t, offsets[0].Unit).Equal(types.ReminderUnitMinutes)
		gt.Value(t, offsets[1].Unit).Equal(types.ReminderUnitHours)
		gt.Value(t, offsets[2].Amount()).Equal(2)
	})

	t.Run("empty means no reminders", func(t *testing.T) {
		offsets, err := cli.ParseReminderOffsets("")
		gt.NoError(t, err).Required()
		gt.Array(t, offsets).Length(0)
	})

	t.Run("unknown unit", func(t *testing.T) {
		_, err := cli.ParseReminderOffsets("30m,5w")
		gt.Value(t, err).NotNil()
	})
}

func TestGetIndexConfig(t *testing.T) {
	cfg := cli.GetIndexConfig("staging_")
	gt.Array(t, cfg.Collections).Length(4).Required()
	for _, c := range cfg.Collections {
		gt.Array(t, c.Indexes).Length(1).Required()
		gt.Array(t, c.Indexes[0].Fields).Length(2)
	}
	gt.Value(t, cfg.Collections[0].Name).Equal("staging_notifications")
	gt.Value(t, cfg.Collections[3].Name).Equal("staging_tickets")
}

func TestTerminalSink(t *testing.T) {
	var buf bytes.Buffer
	sink := cli.NewTerminalSink(&buf)

	sink.Deliver(context.Background(), &model.Toast{Kind: types.ToastKindNotice, Level: types.ToastLevelSuccess, Message: "Claim moved"})
	sink.Deliver(context.Background(), &model.Toast{Kind: types.ToastKindAlert, Level: types.ToastLevelInfo, Title: "Meeting Scheduled", Message: "Call with Jane at 10:00"})

	out := buf.String()
	gt.String(t, out).Contains("Claim moved")
	gt.String(t, out).Contains("[ALERT]")
	gt.String(t, out).Contains("Meeting Scheduled")
}

func TestResultError(t *testing.T) {
	gt.NoError(t, cli.ResultError(model.OK("done")))

	cause := errors.New("boom")
	err := cli.ResultError(model.Failed("Failed to update claim status", cause))
	gt.Error(t, err).Is(cause)

	gt.Value(t, cli.ResultError(model.Invalid("No claims selected"))).NotNil()
}

func TestClaimCriteria(t *testing.T) {
	criteria, err := cli.ClaimCriteria("ford", "LOA Sent", 7)
	gt.NoError(t, err).Required()
	gt.Value(t, criteria).Equal(model.ClaimCriteria{Lender: "ford", Status: types.ClaimStatusLOASent, MinDaysInStage: 7})

	empty, err := cli.ClaimCriteria("", "", 0)
	gt.NoError(t, err).Required()
	gt.Bool(t, empty.IsEmpty()).True()

	_, err = cli.ClaimCriteria("", "Closed", 0)
	gt.Value(t, err).NotNil()
	_, err = cli.ClaimCriteria("", "", -1)
	gt.Value(t, err).NotNil()
}
