package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	wire "github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/lexdesk/claimsync/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func id(v string) map[string]string {
	return map[string]string{"id": v}
}

func (c *Client) ListClaims(ctx context.Context) ([]*model.Claim, error) {
	var claims []*model.Claim
	if err := c.do(ctx, call{method: http.MethodGet, path: "/claims", out: &claims, list: true}); err != nil {
		return nil, err
	}
	return claims, nil
}

func (c *Client) UpdateClaimStatus(ctx context.Context, claimID string, status types.ClaimStatus) error {
	return c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/claims/{id}",
		params: id(claimID),
		body:   wire.UpdateClaimRequest{Status: status},
	})
}

func (c *Client) BulkUpdateClaimStatus(ctx context.Context, claimIDs []string, status types.ClaimStatus) (int, error) {
	var resp wire.BulkStatusResponse
	err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/claims/bulk/status",
		body:   wire.BulkStatusRequest{ClaimIDs: claimIDs, Status: status},
		out:    &resp,
	})
	if err != nil {
		return 0, err
	}
	return resp.UpdatedCount, nil
}

func (c *Client) CreateClaim(ctx context.Context, contactID string, claim *model.Claim) (*model.ClaimCreation, error) {
	var resp wire.CreateClaimResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/contacts/{id}/claims",
		params: id(contactID),
		body:   claim,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	return &model.ClaimCreation{Claim: resp.Claim, Category3: resp.Category3, Message: resp.Message}, nil
}

func (c *Client) UpdateClaim(ctx context.Context, claimID string, details model.ClaimDetails) (*model.Claim, error) {
	var claim model.Claim
	err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/claims/{id}",
		params: id(claimID),
		body:   wire.UpdateClaimRequest{Details: &details},
		out:    &claim,
	})
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (c *Client) DeleteClaim(ctx context.Context, claimID string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/claims/{id}", params: id(claimID)})
}

func (c *Client) ListContacts(ctx context.Context, query model.ContactQuery) (*model.ContactPage, error) {
	q := url.Values{}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	for key, value := range map[string]string{
		"search":   query.Filter.Search,
		"fullName": query.Filter.FullName,
		"email":    query.Filter.Email,
		"phone":    query.Filter.Phone,
		"postcode": query.Filter.Postcode,
		"clientId": query.Filter.ClientID,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}

	var resp wire.ContactsPageResponse
	if err := c.do(ctx, call{method: http.MethodGet, path: "/contacts/paginated", query: q, out: &resp}); err != nil {
		return nil, err
	}
	if resp.Contacts == nil {
		return nil, goerr.Wrap(interfaces.ErrMalformedResponse, "contacts page carries no contacts array",
			goerr.V("page", query.Page))
	}
	return resp.ToPage(), nil
}

func (c *Client) CreateContact(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	var created model.Contact
	if err := c.do(ctx, call{method: http.MethodPost, path: "/contacts", body: contact, out: &created}); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateContact(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	var updated model.Contact
	err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/contacts/{id}",
		params: id(contact.ID),
		body:   contact,
		out:    &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/contacts/{id}", params: id(contactID)})
}

func (c *Client) ListTasks(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	q := url.Values{}
	for key, value := range map[string]string{
		"startDate":  filter.StartDate,
		"endDate":    filter.EndDate,
		"status":     string(filter.Status),
		"assignedTo": filter.AssignedTo,
	} {
		if value != "" {
			q.Set(key, value)
		}
	}

	var tasks []*model.Task
	if err := c.do(ctx, call{method: http.MethodGet, path: "/tasks", query: q, out: &tasks, list: true}); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	var created model.Task
	if err := c.do(ctx, call{method: http.MethodPost, path: "/tasks", body: task, out: &created}); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	var updated model.Task
	err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/tasks/{id}",
		params: id(task.ID),
		body:   task,
		out:    &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/tasks/{id}", params: id(taskID)})
}

func (c *Client) CompleteTask(ctx context.Context, taskID, completedBy string) (*model.Task, error) {
	var task model.Task
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/tasks/{id}/complete",
		params: id(taskID),
		body:   wire.CompleteTaskRequest{CompletedBy: completedBy},
		out:    &task,
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) RescheduleTask(ctx context.Context, taskID string, req model.RescheduleRequest) (*model.Reschedule, error) {
	var resp wire.RescheduleTaskResponse
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/tasks/{id}/reschedule",
		params: id(taskID),
		body: wire.RescheduleTaskRequest{
			NewDate:       req.NewDate,
			NewStartTime:  req.NewStartTime,
			RescheduledBy: req.RescheduledBy,
		},
		out: &resp,
	})
	if err != nil {
		return nil, err
	}
	return &model.Reschedule{Task: resp.Task, NewTask: resp.NewTask}, nil
}

func (c *Client) ListNotifications(ctx context.Context, userID string) ([]*model.Notification, error) {
	var items []*model.Notification
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/notifications",
		query:  url.Values{"userId": {userID}},
		out:    &items,
		list:   true,
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CountUnread(ctx context.Context, userID string) (int, error) {
	var resp wire.CountResponse
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/notifications/count",
		query:  url.Values{"userId": {userID}},
		out:    &resp,
	})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, call{method: http.MethodPatch, path: "/notifications/{id}/read", params: id(notificationID)})
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	return c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/notifications/read-all",
		body:   wire.MarkAllReadRequest{UserID: userID},
	})
}

func (c *Client) CheckReminders(ctx context.Context) (int, error) {
	var resp wire.ReminderCheckResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/reminders/check", out: &resp}); err != nil {
		return 0, err
	}
	return resp.Sent, nil
}

func (c *Client) ListNotes(ctx context.Context, contactID string) ([]*model.Note, error) {
	var notes []*model.Note
	if err := c.do(ctx, call{method: http.MethodGet, path: "/contacts/{id}/notes", params: id(contactID), out: &notes, list: true}); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	var created model.Note
	err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/contacts/{id}/notes",
		params: id(note.ContactID),
		body:   note,
		out:    &created,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateNote(ctx context.Context, note *model.Note) (*model.Note, error) {
	var updated model.Note
	err := c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/notes/{id}",
		params: id(note.ID),
		body:   note,
		out:    &updated,
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/notes/{id}", params: id(noteID)})
}

func (c *Client) ListActionLogs(ctx context.Context, clientID string) ([]*model.ActionLogEntry, error) {
	var entries []*model.ActionLogEntry
	if err := c.do(ctx, call{method: http.MethodGet, path: "/clients/{id}/actions", params: id(clientID), out: &entries, list: true}); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) ListAllActionLogs(ctx context.Context) ([]*model.ActionLogEntry, error) {
	var entries []*model.ActionLogEntry
	if err := c.do(ctx, call{method: http.MethodGet, path: "/actions/all", out: &entries, list: true}); err != nil {
		return nil, err
	}
	return entries, nil
}
