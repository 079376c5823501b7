// Package api holds the JSON envelopes exchanged with the case management
// backend. Entities themselves are encoded straight from package model.
package api

import (
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// UserHeader carries the acting user's ID on every request
const UserHeader = "X-Claimsync-User"

// UserNameHeader carries the acting user's display name
const UserNameHeader = "X-Claimsync-User-Name"

// ErrorResponse is the body of every non 2xx response
type ErrorResponse struct {
	Error                string `json:"error"`
	RequiresConfirmation bool   `json:"requiresConfirmation,omitempty"`
}

// UpdateClaimRequest is the body of PATCH /claims/{id}. It carries either a
// status change or new details, never both.
type UpdateClaimRequest struct {
	Status  types.ClaimStatus   `json:"status,omitempty"`
	Details *model.ClaimDetails `json:"details,omitempty"`
}

type BulkStatusRequest struct {
	ClaimIDs []string          `json:"claimIds"`
	Status   types.ClaimStatus `json:"status"`
}

type BulkStatusResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

// CreateClaimResponse answers POST /contacts/{id}/claims. Category3 responses
// carry no claim.
type CreateClaimResponse struct {
	Claim     *model.Claim `json:"claim,omitempty"`
	Category3 bool         `json:"category3,omitempty"`
	Message   string       `json:"message,omitempty"`
}

type CompleteTaskRequest struct {
	CompletedBy string `json:"completedBy"`
}

type RescheduleTaskRequest struct {
	NewDate       string `json:"newDate"`
	NewStartTime  string `json:"newStartTime,omitempty"`
	RescheduledBy string `json:"rescheduledBy,omitempty"`
}

type RescheduleTaskResponse struct {
	Task      *model.Task `json:"task"`
	NewTask   *model.Task `json:"newTask,omitempty"`
	NewTaskID string      `json:"newTaskId,omitempty"`
}

type ResolveTicketRequest struct {
	ResolvedBy     string `json:"resolvedBy"`
	ResolvedByName string `json:"resolvedByName,omitempty"`
}

type CountResponse struct {
	Count int `json:"count"`
}

type MarkAllReadRequest struct {
	UserID string `json:"userId"`
}

type ReminderCheckResponse struct {
	Sent int `json:"sent"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

type ContactsPageResponse struct {
	Contacts   []*model.Contact `json:"contacts"`
	Pagination Pagination       `json:"pagination"`
}

// ToPage converts the wire envelope to the domain page
func (r *ContactsPageResponse) ToPage() *model.ContactPage {
	return &model.ContactPage{
		Contacts:   r.Contacts,
		Page:       r.Pagination.Page,
		Limit:      r.Pagination.Limit,
		Total:      r.Pagination.Total,
		TotalPages: r.Pagination.TotalPages,
		HasMore:    r.Pagination.HasMore,
	}
}

// NewContactsPageResponse converts a domain page to the wire envelope
func NewContactsPageResponse(p *model.ContactPage) *ContactsPageResponse {
	contacts := p.Contacts
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	return &ContactsPageResponse{
		Contacts: contacts,
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      p.Total,
			TotalPages: p.TotalPages,
			HasMore:    p.HasMore,
		},
	}
}

// CreateNotificationRequest lets back office workflows raise a notification
type CreateNotificationRequest struct {
	UserID    string                 `json:"userId"`
	Type      types.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Link      string                 `json:"link,omitempty"`
	ContactID string                 `json:"contactId,omitempty"`
	ClaimID   string                 `json:"claimId,omitempty"`
}
