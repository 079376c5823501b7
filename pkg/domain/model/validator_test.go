package model_test

import (
	"testing"

	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func validTask() *model.Task {
	return &model.Task{
		Title:     "Call client about DSAR",
		Type:      types.TaskTypeCall,
		Date:      "2024-03-15",
		StartTime: "10:00",
		EndTime:   "10:30",
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*model.Task)
		wantErr error
	}{
		{name: "valid", modify: func(*model.Task) {}},
		{name: "missing title", modify: func(t *model.Task) { t.Title = " " }, wantErr: model.ErrMissingRequired},
		{name: "unknown type", modify: func(t *model.Task) { t.Type = "lunch" }, wantErr: model.ErrInvalidValue},
		{name: "bad date", modify: func(t *model.Task) { t.Date = "15-03-2024" }, wantErr: model.ErrInvalidValue},
		{name: "bad start", modify: func(t *model.Task) { t.StartTime = "9am" }, wantErr: model.ErrInvalidValue},
		{name: "end before start", modify: func(t *model.Task) { t.EndTime = "09:00" }, wantErr: model.ErrInvalidValue},
		{
			name: "recurring without pattern",
			modify: func(t *model.Task) {
				t.IsRecurring = true
			},
			wantErr: model.ErrInvalidValue,
		},
		{
			name: "recurrence ends before start",
			modify: func(t *model.Task) {
				t.IsRecurring = true
				t.RecurrencePattern = types.RecurrenceWeekly
				t.RecurrenceEndDate = "2024-03-01"
			},
			wantErr: model.ErrInvalidValue,
		},
		{
			name: "valid recurrence",
			modify: func(t *model.Task) {
				t.IsRecurring = true
				t.RecurrencePattern = types.RecurrenceMonthly
				t.RecurrenceEndDate = "2024-12-31"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.modify(task)
			err := task.Validate()
			if tt.wantErr == nil {
				gt.NoError(t, err)
				return
			}
			gt.Error(t, err).Is(tt.wantErr)
		})
	}
}

func TestContact_Validate(t *testing.T) {
	gt.NoError(t, (&model.Contact{FirstName: "Ada"}).Validate())
	gt.Error(t, (&model.Contact{}).Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, (&model.Contact{FullName: "Ada", Email: "nope"}).Validate()).Is(model.ErrInvalidValue)
	gt.Error(t, (&model.Contact{FullName: "Ada", DateOfBirth: "1/1/80"}).Validate()).Is(model.ErrInvalidValue)
}

func TestClaim_Validate(t *testing.T) {
	gt.NoError(t, (&model.Claim{Lender: "Vanquis"}).Validate())
	gt.Error(t, (&model.Claim{}).Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, (&model.Claim{Lender: "Vanquis", Status: "Closed"}).Validate()).Is(model.ErrInvalidValue)
	gt.Error(t, (&model.Claim{Lender: "Vanquis", ClaimValue: -1}).Validate()).Is(model.ErrInvalidValue)
}

func TestClaimDetails_Validate(t *testing.T) {
	gt.NoError(t, model.ClaimDetails{Lender: "Vanquis", StartDate: "2020-01-31"}.Validate())
	gt.Error(t, model.ClaimDetails{Lender: " "}.Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, model.ClaimDetails{Lender: "Vanquis", ClaimValue: -5}.Validate()).Is(model.ErrInvalidValue)
	gt.Error(t, model.ClaimDetails{Lender: "Vanquis", StartDate: "31/01/2020"}.Validate()).Is(model.ErrInvalidValue)
}

func TestNote_Validate(t *testing.T) {
	gt.NoError(t, (&model.Note{ContactID: "1", Content: "Called"}).Validate())
	gt.Error(t, (&model.Note{ContactID: "1"}).Validate()).Is(model.ErrMissingRequired)
}

func TestTicket_Validate(t *testing.T) {
	gt.NoError(t, (&model.Ticket{Title: "Export broken", Description: "The workbook is empty"}).Validate())
	gt.Error(t, (&model.Ticket{Description: "No title"}).Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, (&model.Ticket{Title: "No description", Description: " "}).Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, (&model.Ticket{Title: "t", Description: "d", Status: "closed"}).Validate()).Is(model.ErrInvalidValue)
}
