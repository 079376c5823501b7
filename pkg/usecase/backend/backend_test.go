package backend_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/lexdesk/claimsync/pkg/repository/memory"
	"github.com/lexdesk/claimsync/pkg/usecase/backend"
	"github.com/m-mizutani/gt"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T, opts ...backend.Option) (*backend.Service, *memory.Memory) {
	t.Helper()
	repo := memory.New()
	clock := func() time.Time { return now }
	return backend.New(repo, append([]backend.Option{backend.WithClock(clock)}, opts...)...), repo
}

func TestClaimLifecycle(t *testing.T) {
	ctx := backend.WithActor(context.Background(), backend.Actor{ID: "agent-1", Name: "Agent One"})
	svc, repo := newService(t, backend.WithCategory3Lenders([]string{" Vanquis "}))

	contact, err := svc.CreateContact(ctx, &model.Contact{FirstName: "Jane", LastName: "Doe"})
	gt.NoError(t, err).Required()
	gt.Value(t, contact.FullName).Equal("Jane Doe")

	first, err := svc.CreateClaim(ctx, contact.ID, &model.Claim{Lender: "Ford Credit", ClaimValue: 1200})
	gt.NoError(t, err).Required()
	gt.Value(t, first.Claim.Status).Equal(types.ClaimStatusNewLead)
	gt.Value(t, first.Claim.ContactName).Equal("Jane Doe")

	t.Run("duplicate lender conflicts", func(t *testing.T) {
		_, err := svc.CreateClaim(ctx, contact.ID, &model.Claim{Lender: "FORD CREDIT"})
		gt.Error(t, err).Is(interfaces.ErrConflict)
	})

	t.Run("category 3 lender creates nothing", func(t *testing.T) {
		creation, err := svc.CreateClaim(ctx, contact.ID, &model.Claim{Lender: "vanquis"})
		gt.NoError(t, err).Required()
		gt.Bool(t, creation.Category3).True()
		gt.Value(t, creation.Claim).Nil()

		claims, err := repo.Claim().ListByContact(ctx, contact.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, claims).Length(1)
	})

	t.Run("status change mirrors and logs", func(t *testing.T) {
		gt.NoError(t, svc.UpdateClaimStatus(ctx, first.Claim.ID, types.ClaimStatusLOASent)).Required()

		stored, err := repo.Contact().Get(ctx, contact.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Status).Equal(types.ClaimStatusLOASent)
		gt.Value(t, stored.Lender).Equal("Ford Credit")

		logs, err := svc.ListActionLogs(ctx, contact.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, logs[0].ActionType).Equal("status_changed")
		gt.Value(t, logs[0].ActorType).Equal(types.ActorTypeAgent)
		gt.Value(t, logs[0].ActorID).Equal("agent-1")
		gt.Value(t, logs[0].Metadata["from"]).Equal(string(types.ClaimStatusNewLead))
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		err := svc.UpdateClaimStatus(ctx, first.Claim.ID, "bogus")
		gt.Error(t, err).Is(interfaces.ErrInvalidInput)
	})

	t.Run("unknown claim is not found", func(t *testing.T) {
		err := svc.UpdateClaimStatus(ctx, "999", types.ClaimStatusLOASent)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("bulk skips unknown claims", func(t *testing.T) {
		n, err := svc.BulkUpdateClaimStatus(ctx, []string{first.Claim.ID, "999"}, types.ClaimStatusDSARPrepared)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(1)
	})

	t.Run("delete contact cascades", func(t *testing.T) {
		_, err := svc.CreateNote(ctx, &model.Note{ContactID: contact.ID, Content: "hello"})
		gt.NoError(t, err).Required()

		gt.NoError(t, svc.DeleteContact(ctx, contact.ID)).Required()

		claims, err := repo.Claim().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, claims).Length(0)
		notes, err := repo.Note().ListByContact(ctx, contact.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, notes).Length(0)
		gt.Error(t, svc.DeleteContact(ctx, contact.ID)).Is(interfaces.ErrNotFound)
	})
}

func TestUpdateClaim(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	contact, err := svc.CreateContact(ctx, &model.Contact{FullName: "Jane Doe"})
	gt.NoError(t, err).Required()
	ford, err := svc.CreateClaim(ctx, contact.ID, &model.Claim{Lender: "Ford Credit", ClaimValue: 1200})
	gt.NoError(t, err).Required()
	_, err = svc.CreateClaim(ctx, contact.ID, &model.Claim{Lender: "Santander"})
	gt.NoError(t, err).Required()
	gt.NoError(t, svc.UpdateClaimStatus(ctx, ford.Claim.ID, types.ClaimStatusLOASent)).Required()

	t.Run("details change and status stays", func(t *testing.T) {
		details := ford.Claim.Details()
		details.ClaimValue = 4000
		details.StartDate = "2019-06-01"

		updated, err := svc.UpdateClaim(ctx, ford.Claim.ID, details)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ClaimValue).Equal(4000.0)
		gt.Value(t, updated.StartDate).Equal("2019-06-01")
		gt.Value(t, updated.Status).Equal(types.ClaimStatusLOASent)

		stored, err := repo.Contact().Get(ctx, contact.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.ClaimValue).Equal(4000.0)

		logs, err := svc.ListActionLogs(ctx, contact.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, logs[0].ActionType).Equal("claim_updated")
	})

	tests := map[string]struct {
		claimID string
		details model.ClaimDetails
		want    error
	}{
		"lender taken by sibling": {ford.Claim.ID, model.ClaimDetails{Lender: " santander "}, interfaces.ErrConflict},
		"missing lender":          {ford.Claim.ID, model.ClaimDetails{}, interfaces.ErrInvalidInput},
		"unknown claim":           {"999", model.ClaimDetails{Lender: "Lloyds"}, interfaces.ErrNotFound},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.UpdateClaim(ctx, tc.claimID, tc.details)
			gt.Error(t, err).Is(tc.want)
		})
	}

	t.Run("same lender in another case is not a conflict", func(t *testing.T) {
		updated, err := svc.UpdateClaim(ctx, ford.Claim.ID, model.ClaimDetails{Lender: "FORD CREDIT", ClaimValue: 10})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Lender).Equal("FORD CREDIT")
	})
}

func TestListContacts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	for i := 0; i < 7; i++ {
		_, err := svc.CreateContact(ctx, &model.Contact{
			FullName: fmt.Sprintf("Client %d", i),
			Phone:    fmt.Sprintf("07700 90012%d", i),
			Address:  model.Address{PostalCode: "M1 1AA"},
		})
		gt.NoError(t, err).Required()
	}

	testCases := []struct {
		name       string
		query      model.ContactQuery
		count      int
		total      int
		totalPages int
		hasMore    bool
	}{
		{"defaults", model.ContactQuery{}, 7, 7, 1, false},
		{"first page", model.ContactQuery{Page: 1, Limit: 3}, 3, 7, 3, true},
		{"last page", model.ContactQuery{Page: 3, Limit: 3}, 1, 7, 3, false},
		{"past the end", model.ContactQuery{Page: 9, Limit: 3}, 0, 7, 3, false},
		{"search", model.ContactQuery{Filter: model.ContactFilter{Search: "client 3"}}, 1, 1, 1, false},
		{"phone digits", model.ContactQuery{Filter: model.ContactFilter{Phone: "07700900125"}}, 1, 1, 1, false},
		{"postcode without space", model.ContactQuery{Filter: model.ContactFilter{Postcode: "m11aa"}}, 7, 7, 1, false},
		{"no match", model.ContactQuery{Filter: model.ContactFilter{Email: "x@"}}, 0, 0, 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := svc.ListContacts(ctx, tc.query)
			gt.NoError(t, err).Required()
			gt.Array(t, page.Contacts).Length(tc.count)
			gt.Value(t, page.Total).Equal(tc.total)
			gt.Value(t, page.TotalPages).Equal(tc.totalPages)
			gt.Value(t, page.HasMore).Equal(tc.hasMore)
		})
	}
}

func TestRescheduleTask(t *testing.T) {
	ctx := context.Background()

	t.Run("one-off task moves in place", func(t *testing.T) {
		svc, repo := newService(t)
		task, err := svc.CreateTask(ctx, &model.Task{
			Title:     "Call",
			Type:      types.TaskTypeCall,
			Date:      "2025-03-10",
			StartTime: "10:00",
			Reminders: []model.TaskReminder{{ReminderTime: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), IsSent: true}},
		})
		gt.NoError(t, err).Required()

		res, err := svc.RescheduleTask(ctx, task.ID, model.RescheduleRequest{NewDate: "2025-03-11"})
		gt.NoError(t, err).Required()

		gt.Value(t, res.NewTask).Nil()
		gt.Value(t, res.Task.ID).Equal(task.ID)
		gt.Value(t, res.Task.Date).Equal("2025-03-11")
		gt.Value(t, res.Task.StartTime).Equal("10:00")
		gt.Bool(t, res.Task.Reminders[0].ReminderTime.Equal(time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC))).True()
		gt.Bool(t, res.Task.Reminders[0].IsSent).False()

		all, err := repo.Task().List(ctx, model.TaskFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1)
	})

	t.Run("recurring task mints a successor", func(t *testing.T) {
		svc, repo := newService(t)
		task, err := svc.CreateTask(ctx, &model.Task{
			Title:             "Standup",
			Type:              types.TaskTypeMeeting,
			Date:              "2025-03-10",
			StartTime:         "09:00",
			EndTime:           "09:15",
			IsRecurring:       true,
			RecurrencePattern: types.RecurrenceDaily,
		})
		gt.NoError(t, err).Required()

		res, err := svc.RescheduleTask(ctx, task.ID, model.RescheduleRequest{NewDate: "2025-03-10", NewStartTime: "16:00"})
		gt.NoError(t, err).Required()

		gt.Value(t, res.Task.Status).Equal(types.TaskStatusRescheduled)
		gt.Value(t, res.NewTask).NotNil()
		gt.Value(t, res.NewTask.ID).NotEqual(task.ID)
		gt.Value(t, res.NewTask.ParentTaskID).Equal(task.ID)
		gt.Value(t, res.NewTask.StartTime).Equal("16:00")
		gt.Value(t, res.NewTask.EndTime).Equal("16:15")
		gt.Value(t, res.NewTask.Status).Equal(types.TaskStatusPending)

		all, err := repo.Task().List(ctx, model.TaskFilter{})
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(2)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, _ := newService(t)
		_, err := svc.RescheduleTask(ctx, "1", model.RescheduleRequest{NewDate: "tomorrow"})
		gt.Error(t, err).Is(interfaces.ErrInvalidInput)
	})
}

func TestCheckReminders(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	due := now.Add(-time.Minute)
	later := now.Add(time.Hour)
	meeting, err := svc.CreateTask(ctx, &model.Task{
		Title:      "Client meeting",
		Type:       types.TaskTypeMeeting,
		Date:       "2025-03-10",
		StartTime:  "13:00",
		AssignedTo: "agent-1",
		AssignedBy: "agent-1",
		Reminders: []model.TaskReminder{
			{ReminderTime: due},
			{ReminderTime: later},
		},
	})
	gt.NoError(t, err).Required()

	_, err = svc.CreateTask(ctx, &model.Task{
		Title:     "Chase lender",
		Type:      types.TaskTypeFollowUp,
		Date:      "2025-03-10",
		CreatedBy: "agent-2",
		Reminders: []model.TaskReminder{{ReminderTime: due}},
	})
	gt.NoError(t, err).Required()

	done, err := svc.CreateTask(ctx, &model.Task{
		Title:      "Done already",
		Type:       types.TaskTypeCall,
		Date:       "2025-03-10",
		AssignedTo: "agent-1",
		AssignedBy: "agent-1",
		Reminders:  []model.TaskReminder{{ReminderTime: due}},
	})
	gt.NoError(t, err).Required()
	_, err = svc.CompleteTask(ctx, done.ID, "agent-1")
	gt.NoError(t, err).Required()

	sent, err := svc.CheckReminders(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, sent).Equal(2)

	agent1, err := svc.ListNotifications(ctx, "agent-1")
	gt.NoError(t, err).Required()
	gt.Array(t, agent1).Length(1)
	gt.Value(t, agent1[0].Type).Equal(types.NotificationTypeMeetingScheduled)
	gt.Value(t, agent1[0].RelatedTaskID).Equal(meeting.ID)

	agent2, err := svc.ListNotifications(ctx, "agent-2")
	gt.NoError(t, err).Required()
	gt.Array(t, agent2).Length(1)
	gt.Value(t, agent2[0].Type).Equal(types.NotificationTypeFollowUpDue)

	stored, err := repo.Task().Get(ctx, meeting.ID)
	gt.NoError(t, err).Required()
	gt.Bool(t, stored.Reminders[0].IsSent).True()
	gt.Bool(t, stored.Reminders[1].IsSent).False()

	// nothing is sent twice
	sent, err = svc.CheckReminders(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, sent).Equal(0)
}

func TestTaskNotifications(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	task, err := svc.CreateTask(ctx, &model.Task{
		Title:      "Prepare DSAR",
		Type:       types.TaskTypeDeadline,
		Date:       "2025-03-12",
		AssignedTo: "agent-2",
		AssignedBy: "agent-1",
	})
	gt.NoError(t, err).Required()

	assigned, err := svc.ListNotifications(ctx, "agent-2")
	gt.NoError(t, err).Required()
	gt.Array(t, assigned).Length(1)
	gt.Value(t, assigned[0].Type).Equal(types.NotificationTypeTaskAssigned)

	completed, err := svc.CompleteTask(ctx, task.ID, "agent-2")
	gt.NoError(t, err).Required()
	gt.Value(t, completed.Status).Equal(types.TaskStatusCompleted)
	gt.Bool(t, completed.CompletedAt.Equal(now)).True()

	back, err := svc.ListNotifications(ctx, "agent-1")
	gt.NoError(t, err).Required()
	gt.Array(t, back).Length(1)
	gt.Value(t, back[0].Type).Equal(types.NotificationTypeTaskCompleted)

	count, err := svc.CountUnread(ctx, "agent-1")
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)
	gt.NoError(t, svc.MarkNotificationRead(ctx, back[0].ID)).Required()
	count, err = svc.CountUnread(ctx, "agent-1")
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(0)
}

func TestTickets(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, backend.WithSupportUsers([]string{"lead", " "}))

	ticket, err := svc.CreateTicket(ctx, &model.Ticket{
		UserID:      "agent-1",
		UserName:    "Agent One",
		Title:       "Export is empty",
		Description: "The workbook has no rows",
		Status:      types.TicketStatusResolved,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, ticket.Status).Equal(types.TicketStatusOpen)
	gt.Bool(t, ticket.CreatedAt.Equal(now)).True()

	_, err = svc.CreateTicket(ctx, &model.Ticket{UserID: "agent-2", Title: "Login slow", Description: "Takes a minute"})
	gt.NoError(t, err).Required()

	t.Run("support users are notified", func(t *testing.T) {
		raised, err := svc.ListNotifications(ctx, "lead")
		gt.NoError(t, err).Required()
		gt.Array(t, raised).Length(2).Required()
		gt.Value(t, raised[1].Type).Equal(types.NotificationTypeTicketRaised)
		gt.Value(t, raised[1].Message).Equal("Agent One: Export is empty")
	})

	t.Run("visibility follows the viewer", func(t *testing.T) {
		tests := map[string]struct {
			userID string
			want   int
		}{
			"reporter sees own":  {"agent-1", 1},
			"support sees all":   {"lead", 2},
			"stranger sees none": {"agent-3", 0},
		}
		for name, tc := range tests {
			t.Run(name, func(t *testing.T) {
				tickets, err := svc.ListTickets(ctx, tc.userID)
				gt.NoError(t, err).Required()
				gt.Array(t, tickets).Length(tc.want)
			})
		}

		_, err := svc.ListTickets(ctx, "")
		gt.Error(t, err).Is(interfaces.ErrInvalidInput)
	})

	t.Run("resolve notifies the reporter once", func(t *testing.T) {
		resolved, err := svc.ResolveTicket(ctx, ticket.ID, "lead", "Team Lead")
		gt.NoError(t, err).Required()
		gt.Value(t, resolved.Status).Equal(types.TicketStatusResolved)
		gt.Value(t, resolved.ResolvedByName).Equal("Team Lead")
		gt.Value(t, resolved.ResolvedAt).NotNil()

		again, err := svc.ResolveTicket(ctx, ticket.ID, "other", "Other")
		gt.NoError(t, err).Required()
		gt.Value(t, again.ResolvedBy).Equal("lead")

		back, err := svc.ListNotifications(ctx, "agent-1")
		gt.NoError(t, err).Required()
		gt.Array(t, back).Length(1).Required()
		gt.Value(t, back[0].Type).Equal(types.NotificationTypeTicketResolved)
	})

	t.Run("invalid requests", func(t *testing.T) {
		_, err := svc.CreateTicket(ctx, &model.Ticket{UserID: "agent-1", Title: "No description"})
		gt.Error(t, err).Is(interfaces.ErrInvalidInput)
		_, err = svc.CreateTicket(ctx, &model.Ticket{Title: "t", Description: "d"})
		gt.Error(t, err).Is(interfaces.ErrInvalidInput)
		_, err = svc.ResolveTicket(ctx, ticket.ID, "", "")
		gt.Error(t, err).Is(interfaces.ErrInvalidInput)
		_, err = svc.ResolveTicket(ctx, "404", "lead", "Team Lead")
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})
}
