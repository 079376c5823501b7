package model

import (
	"sort"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// Task is a calendar entry assigned to an agent
type Task struct {
	ID                string                  `json:"id"`
	Title             string                  `json:"title"`
	Description       string                  `json:"description,omitempty"`
	Type              types.TaskType          `json:"type"`
	Status            types.TaskStatus        `json:"status"`
	Date              string                  `json:"date"`
	StartTime         string                  `json:"startTime,omitempty"`
	EndTime           string                  `json:"endTime,omitempty"`
	AssignedTo        string                  `json:"assignedTo,omitempty"`
	AssignedBy        string                  `json:"assignedBy,omitempty"`
	IsRecurring       bool                    `json:"isRecurring"`
	RecurrencePattern types.RecurrencePattern `json:"recurrencePattern,omitempty"`
	RecurrenceEndDate string                  `json:"recurrenceEndDate,omitempty"`
	ParentTaskID      string                  `json:"parentTaskId,omitempty"`
	ContactIDs        []string                `json:"contactIds,omitempty"`
	ClaimIDs          []string                `json:"claimIds,omitempty"`
	Reminders         []TaskReminder          `json:"reminders,omitempty"`
	CreatedBy         string                  `json:"createdBy,omitempty"`
	CompletedBy       string                  `json:"completedBy,omitempty"`
	CompletedAt       *time.Time              `json:"completedAt,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

// TaskReminder is one scheduled reminder of a task
type TaskReminder struct {
	ID           string                `json:"id"`
	TaskID       string                `json:"taskId"`
	ReminderTime time.Time             `json:"reminderTime"`
	Channel      types.ReminderChannel `json:"reminderType"`
	IsSent       bool                  `json:"isSent"`
	SentAt       *time.Time            `json:"sentAt,omitempty"`
}

// Clone returns a deep copy of the task
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	copied := *t
	copied.ContactIDs = cloneStrings(t.ContactIDs)
	copied.ClaimIDs = cloneStrings(t.ClaimIDs)
	if t.Reminders != nil {
		copied.Reminders = make([]TaskReminder, len(t.Reminders))
		for i, r := range t.Reminders {
			copied.Reminders[i] = r
			if r.SentAt != nil {
				sentAt := *r.SentAt
				copied.Reminders[i].SentAt = &sentAt
			}
		}
	}
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		copied.CompletedAt = &completedAt
	}
	return &copied
}

// MarkRescheduled turns the task into the historical record of a moved
// occurrence
func (t *Task) MarkRescheduled() {
	t.Status = types.TaskStatusRescheduled
}

// TaskFilter narrows a task list request. Dates are inclusive YYYY-MM-DD.
type TaskFilter struct {
	StartDate  string
	EndDate    string
	Status     types.TaskStatus
	AssignedTo string
}

// Match reports whether t passes the filter
func (f TaskFilter) Match(t *Task) bool {
	if f.StartDate != "" && t.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.Date > f.EndDate {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo != f.AssignedTo {
		return false
	}
	return true
}

// RescheduleRequest moves a task to a new slot
type RescheduleRequest struct {
	NewDate       string
	NewStartTime  string
	RescheduledBy string
}

// Reschedule is the backend's answer to a reschedule. NewTask is set when the
// backend minted a successor occurrence instead of moving the task in place.
type Reschedule struct {
	Task    *Task
	NewTask *Task
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	copied := make([]string, len(s))
	copy(copied, s)
	return copied
}

// SortTasks orders tasks by date, then start time, then ID
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Date != tasks[j].Date {
			return tasks[i].Date < tasks[j].Date
		}
		if tasks[i].StartTime != tasks[j].StartTime {
			return tasks[i].StartTime < tasks[j].StartTime
		}
		return LessID(tasks[i].ID, tasks[j].ID)
	})
}
