package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/service/worker"
	"github.com/lexdesk/claimsync/pkg/usecase"
	"github.com/lexdesk/claimsync/pkg/usecase/backend"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Duration is a time.Duration written as "30s" or "1m" in TOML
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return goerr.Wrap(ErrInvalidDuration, err.Error(), goerr.V(ValueKey, string(text)))
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Settings is the optional TOML settings file. Zero values keep defaults.
type Settings struct {
	Sync      SyncSettings      `toml:"sync"`
	Toast     ToastSettings     `toml:"toast"`
	FirstLoad FirstLoadSettings `toml:"first_load"`
	Backend   BackendSettings   `toml:"backend"`
}

type SyncSettings struct {
	StalenessWindow          Duration `toml:"staleness_window"`
	NotificationPollInterval Duration `toml:"notification_poll_interval"`
	ReminderCheckInterval    Duration `toml:"reminder_check_interval"`
	TimeZone                 string   `toml:"time_zone"`
}

type ToastSettings struct {
	NoticeLifetime Duration `toml:"notice_lifetime"`
	NoticeExit     Duration `toml:"notice_exit"`
	AlertLifetime  Duration `toml:"alert_lifetime"`
	AlertExit      Duration `toml:"alert_exit"`
}

type FirstLoadSettings struct {
	Window Duration `toml:"window"`
	Cap    int      `toml:"cap"`
}

type BackendSettings struct {
	Category3Lenders []string `toml:"category3_lenders"`
	// SupportUsers see every support ticket and are notified of new ones
	SupportUsers []string `toml:"support_users"`
}

// DefaultSettings returns the settings used when no file is given
func DefaultSettings() *Settings {
	timings := model.DefaultToastTimings()
	return &Settings{
		Sync: SyncSettings{
			StalenessWindow:          Duration(usecase.DefaultStalenessWindow),
			NotificationPollInterval: Duration(worker.DefaultPollInterval),
			ReminderCheckInterval:    Duration(worker.DefaultReminderInterval),
			TimeZone:                 "Europe/London",
		},
		Toast: ToastSettings{
			NoticeLifetime: Duration(timings.NoticeLifetime),
			NoticeExit:     Duration(timings.NoticeExit),
			AlertLifetime:  Duration(timings.AlertLifetime),
			AlertExit:      Duration(timings.AlertExit),
		},
		FirstLoad: FirstLoadSettings{
			Window: Duration(usecase.DefaultFirstLoadWindow),
			Cap:    usecase.DefaultFirstLoadCap,
		},
	}
}

// Validate checks the settings after defaults are applied
func (s *Settings) Validate() error {
	positive := map[string]Duration{
		"sync.staleness_window":           s.Sync.StalenessWindow,
		"sync.notification_poll_interval": s.Sync.NotificationPollInterval,
		"sync.reminder_check_interval":    s.Sync.ReminderCheckInterval,
		"toast.notice_lifetime":           s.Toast.NoticeLifetime,
		"toast.alert_lifetime":            s.Toast.AlertLifetime,
		"first_load.window":               s.FirstLoad.Window,
	}
	for field, d := range positive {
		if d <= 0 {
			return goerr.Wrap(ErrInvalidConfig, "duration must be positive", goerr.V(FieldKey, field), goerr.V(ValueKey, time.Duration(d).String()))
		}
	}
	if s.Toast.NoticeExit < 0 || s.Toast.AlertExit < 0 {
		return goerr.Wrap(ErrInvalidConfig, "exit duration must not be negative")
	}
	if s.FirstLoad.Cap < 0 {
		return goerr.Wrap(ErrInvalidConfig, "first load cap must not be negative", goerr.V(FieldKey, "first_load.cap"), goerr.V(ValueKey, s.FirstLoad.Cap))
	}
	if _, err := s.Location(); err != nil {
		return err
	}

	seen := make(map[string]struct{})
	for _, lender := range s.Backend.Category3Lenders {
		key := strings.ToLower(strings.TrimSpace(lender))
		if key == "" {
			return goerr.Wrap(ErrInvalidConfig, "empty category 3 lender", goerr.V(FieldKey, "backend.category3_lenders"))
		}
		if _, dup := seen[key]; dup {
			return goerr.Wrap(ErrDuplicateLender, "duplicate category 3 lender", goerr.V(ValueKey, lender))
		}
		seen[key] = struct{}{}
	}
	for _, userID := range s.Backend.SupportUsers {
		if strings.TrimSpace(userID) == "" {
			return goerr.Wrap(ErrInvalidConfig, "empty support user", goerr.V(FieldKey, "backend.support_users"))
		}
	}
	return nil
}

// Location returns the configured time zone
func (s *Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Sync.TimeZone)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "unknown time zone", goerr.V(FieldKey, "sync.time_zone"), goerr.V(ValueKey, s.Sync.TimeZone))
	}
	return loc, nil
}

// UseCaseOptions converts the settings into client options
func (s *Settings) UseCaseOptions() ([]usecase.Option, error) {
	loc, err := s.Location()
	if err != nil {
		return nil, err
	}
	return []usecase.Option{
		usecase.WithLocation(loc),
		usecase.WithStalenessWindow(time.Duration(s.Sync.StalenessWindow)),
		usecase.WithToastTimings(model.ToastTimings{
			NoticeLifetime: time.Duration(s.Toast.NoticeLifetime),
			NoticeExit:     time.Duration(s.Toast.NoticeExit),
			AlertLifetime:  time.Duration(s.Toast.AlertLifetime),
			AlertExit:      time.Duration(s.Toast.AlertExit),
		}),
		usecase.WithFirstLoad(time.Duration(s.FirstLoad.Window), s.FirstLoad.Cap),
	}, nil
}

// BackendOptions converts the settings into reference backend options
func (s *Settings) BackendOptions() ([]backend.Option, error) {
	loc, err := s.Location()
	if err != nil {
		return nil, err
	}
	return []backend.Option{
		backend.WithLocation(loc),
		backend.WithCategory3Lenders(s.Backend.Category3Lenders),
		backend.WithSupportUsers(s.Backend.SupportUsers),
	}, nil
}

func (s Settings) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("staleness_window", time.Duration(s.Sync.StalenessWindow).String()),
		slog.String("poll_interval", time.Duration(s.Sync.NotificationPollInterval).String()),
		slog.String("reminder_interval", time.Duration(s.Sync.ReminderCheckInterval).String()),
		slog.String("time_zone", s.Sync.TimeZone),
		slog.Int("category3_lenders", len(s.Backend.Category3Lenders)),
		slog.Int("support_users", len(s.Backend.SupportUsers)),
	)
}

// LoadSettings reads a settings file on top of the defaults
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "settings file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read settings file", goerr.V(ConfigPathKey, path))
	}

	if err := toml.Unmarshal(data, settings); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML settings", goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}
	if err := settings.Validate(); err != nil {
		return nil, goerr.Wrap(err, "settings validation failed", goerr.V(ConfigPathKey, path))
	}
	return settings, nil
}

// SettingsFile holds the --config flag
type SettingsFile struct {
	path string
}

func (x *SettingsFile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to TOML settings file",
			Sources:     cli.EnvVars("CLAIMSYNC_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Configure loads the settings file, or returns defaults without one
func (x *SettingsFile) Configure() (*Settings, error) {
	if x.path == "" {
		return DefaultSettings(), nil
	}
	return LoadSettings(x.path)
}
