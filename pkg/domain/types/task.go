package types

import "fmt"

// TaskType is the kind of calendar entry
type TaskType string

const (
	TaskTypeAppointment TaskType = "appointment"
	TaskTypeCall        TaskType = "call"
	TaskTypeMeeting     TaskType = "meeting"
	TaskTypeDeadline    TaskType = "deadline"
	TaskTypeReminder    TaskType = "reminder"
	TaskTypeFollowUp    TaskType = "follow_up"
)

// AllTaskTypes returns all valid task types
func AllTaskTypes() []TaskType {
	return []TaskType{
		TaskTypeAppointment,
		TaskTypeCall,
		TaskTypeMeeting,
		TaskTypeDeadline,
		TaskTypeReminder,
		TaskTypeFollowUp,
	}
}

// IsValid checks if the task type is valid
func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeAppointment,
		TaskTypeCall,
		TaskTypeMeeting,
		TaskTypeDeadline,
		TaskTypeReminder,
		TaskTypeFollowUp:
		return true
	default:
		return false
	}
}

func (t TaskType) String() string {
	return string(t)
}

// ParseTaskType parses a string into a TaskType
func ParseTaskType(s string) (TaskType, error) {
	t := TaskType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid task type: %s", s)
	}
	return t, nil
}

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "pending"
	TaskStatusInProgress  TaskStatus = "in_progress"
	TaskStatusCompleted   TaskStatus = "completed"
	TaskStatusCancelled   TaskStatus = "cancelled"
	TaskStatusRescheduled TaskStatus = "rescheduled"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusCancelled,
		TaskStatusRescheduled,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending,
		TaskStatusInProgress,
		TaskStatusCompleted,
		TaskStatusCancelled,
		TaskStatusRescheduled:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the task still needs work. Rescheduled tasks are
// historical records and not open.
func (s TaskStatus) IsOpen() bool {
	return s == TaskStatusPending || s == TaskStatusInProgress
}

func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}

// RecurrencePattern describes how a recurring task repeats. Occurrences are
// never expanded client side.
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "daily"
	RecurrenceWeekly  RecurrencePattern = "weekly"
	RecurrenceMonthly RecurrencePattern = "monthly"
)

// IsValid checks if the recurrence pattern is valid
func (p RecurrencePattern) IsValid() bool {
	switch p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

func (p RecurrencePattern) String() string {
	return string(p)
}

// ParseRecurrencePattern parses a string into a RecurrencePattern
func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	p := RecurrencePattern(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid recurrence pattern: %s", s)
	}
	return p, nil
}

// ReminderUnit is the unit of a reminder offset
type ReminderUnit string

const (
	ReminderUnitMinutes ReminderUnit = "minutes"
	ReminderUnitHours   ReminderUnit = "hours"
	ReminderUnitDays    ReminderUnit = "days"
)

// IsValid checks if the reminder unit is valid
func (u ReminderUnit) IsValid() bool {
	switch u {
	case ReminderUnitMinutes, ReminderUnitHours, ReminderUnitDays:
		return true
	default:
		return false
	}
}

func (u ReminderUnit) String() string {
	return string(u)
}

// ReminderChannel is how a reminder reaches the assignee
type ReminderChannel string

const (
	ReminderChannelInApp ReminderChannel = "in_app"
	ReminderChannelEmail ReminderChannel = "email"
	ReminderChannelSlack ReminderChannel = "slack"
)

// IsValid checks if the reminder channel is valid
func (c ReminderChannel) IsValid() bool {
	switch c {
	case ReminderChannelInApp, ReminderChannelEmail, ReminderChannelSlack:
		return true
	default:
		return false
	}
}

func (c ReminderChannel) String() string {
	return string(c)
}
