package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultStartTime is used for tasks without a start time
	DefaultStartTime = "09:00"

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// ReminderOffset is a reminder as typed by the user: an amount before the
// event and its unit. Value is kept raw because it comes from free text.
type ReminderOffset struct {
	Value string
	Unit  types.ReminderUnit
}

// Amount returns the numeric offset. Malformed or negative values count as 0.
func (o ReminderOffset) Amount() int {
	n, err := strconv.Atoi(strings.TrimSpace(o.Value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Before returns the reminder instant for an event at eventTime. Days are
// calendar days, so a reminder keeps its wall clock time across DST changes.
// An unknown unit yields eventTime itself.
func (o ReminderOffset) Before(eventTime time.Time) time.Time {
	n := o.Amount()
	switch o.Unit {
	case types.ReminderUnitMinutes:
		return eventTime.Add(-time.Duration(n) * time.Minute)
	case types.ReminderUnitHours:
		return eventTime.Add(-time.Duration(n) * time.Hour)
	case types.ReminderUnitDays:
		return eventTime.AddDate(0, 0, -n)
	default:
		return eventTime
	}
}

// ParseReminderOffset parses the short form used on the command line, for
// example "30m", "2h" or "1d".
func ParseReminderOffset(s string) (ReminderOffset, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return ReminderOffset{}, goerr.New("invalid reminder offset", goerr.V("offset", s))
	}

	var unit types.ReminderUnit
	switch s[len(s)-1] {
	case 'm':
		unit = types.ReminderUnitMinutes
	case 'h':
		unit = types.ReminderUnitHours
	case 'd':
		unit = types.ReminderUnitDays
	default:
		return ReminderOffset{}, goerr.New("unknown reminder unit", goerr.V("offset", s))
	}

	value := s[:len(s)-1]
	if _, err := strconv.Atoi(value); err != nil {
		return ReminderOffset{}, goerr.Wrap(err, "invalid reminder amount", goerr.V("offset", s))
	}
	return ReminderOffset{Value: value, Unit: unit}, nil
}

// EventTime combines a YYYY-MM-DD date and an optional HH:MM start time in
// loc. An empty start time means DefaultStartTime.
func EventTime(date, startTime string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if startTime == "" {
		startTime = DefaultStartTime
	}

	t, err := time.ParseInLocation(dateTimeLayout, date+" "+startTime, loc)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid task date or start time",
			goerr.V("date", date), goerr.V("start_time", startTime))
	}
	return t, nil
}

// ValidateDate checks a YYYY-MM-DD date
func ValidateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return goerr.Wrap(err, "invalid date", goerr.V("date", date))
	}
	return nil
}

// ComputeReminderTimes returns one absolute reminder time per offset, in the
// same order.
func ComputeReminderTimes(date, startTime string, offsets []ReminderOffset, loc *time.Location) ([]time.Time, error) {
	eventTime, err := EventTime(date, startTime, loc)
	if err != nil {
		return nil, err
	}

	times := make([]time.Time, len(offsets))
	for i, o := range offsets {
		times[i] = o.Before(eventTime)
	}
	return times, nil
}

// ShiftReminders moves unsent reminders by delta and re-arms them. It is used
// when a task moves to a new slot.
func ShiftReminders(reminders []TaskReminder, delta time.Duration) []TaskReminder {
	shifted := make([]TaskReminder, len(reminders))
	for i, r := range reminders {
		r.ReminderTime = r.ReminderTime.Add(delta)
		r.IsSent = false
		r.SentAt = nil
		shifted[i] = r
	}
	return shifted
}
