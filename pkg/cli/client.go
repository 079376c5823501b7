package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/lexdesk/claimsync/pkg/cli/config"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/usecase"
	"github.com/lexdesk/claimsync/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// terminalSink prints toasts as coloured lines and rings the bell on alerts
type terminalSink struct {
	mu  sync.Mutex
	out io.Writer
}

var _ interfaces.ToastSink = &terminalSink{}

func newTerminalSink(out io.Writer) *terminalSink {
	return &terminalSink{out: out}
}

func (s *terminalSink) Deliver(ctx context.Context, toast *model.Toast) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if toast.Kind == types.ToastKindAlert {
		_, _ = fmt.Fprint(s.out, "\a")
	}
	label := toastLabel(toast)
	if toast.Title != "" {
		_, _ = fmt.Fprintf(s.out, "%s %s: %s\n", label, color.New(color.Bold).Sprint(toast.Title), toast.Message)
		return
	}
	_, _ = fmt.Fprintf(s.out, "%s %s\n", label, toast.Message)
}

func toastLabel(toast *model.Toast) string {
	if toast.Kind == types.ToastKindAlert {
		return color.New(color.FgMagenta, color.Bold).Sprint("[ALERT]")
	}
	switch toast.Level {
	case types.ToastLevelSuccess:
		return color.GreenString("[OK]")
	case types.ToastLevelError:
		return color.RedString("[ERROR]")
	default:
		return color.CyanString("[INFO]")
	}
}

// clientSetup holds what every client side command needs
type clientSetup struct {
	api      config.API
	settings config.SettingsFile
}

func (x *clientSetup) flags() []cli.Flag {
	return append(x.api.Flags(), x.settings.Flags()...)
}

// start builds the use cases over the REST client and logs the user in
func (x *clientSetup) start(ctx context.Context, out io.Writer, sinks ...interfaces.ToastSink) (*usecase.UseCases, *config.Settings, error) {
	settings, err := x.settings.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load settings")
	}
	client, err := x.api.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to configure API client")
	}

	opts, err := settings.UseCaseOptions()
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, usecase.WithToastSink(newTerminalSink(out)))
	for _, sink := range sinks {
		opts = append(opts, usecase.WithToastSink(sink))
	}

	uc := usecase.New(client, opts...)
	if _, err := uc.Session.Login(ctx, x.api.UserID(), x.api.UserName()); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to log in")
	}
	logging.From(ctx).Debug("client configured", "api", x.api, "settings", *settings)
	return uc, settings, nil
}

// resultError turns a failed mutation result into a command error
func resultError(res *model.Result) error {
	if res.Success {
		return nil
	}
	if res.Err != nil {
		return goerr.Wrap(res.Err, res.Message, goerr.V("kind", res.Kind))
	}
	return goerr.New(res.Message, goerr.V("kind", res.Kind))
}
