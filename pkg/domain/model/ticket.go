package model

import (
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// Ticket is a support request raised by an agent
type Ticket struct {
	ID             string             `json:"id"`
	UserID         string             `json:"userId"`
	UserName       string             `json:"userName"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         types.TicketStatus `json:"status"`
	ResolvedBy     string             `json:"resolvedBy,omitempty"`
	ResolvedByName string             `json:"resolvedByName,omitempty"`
	ResolvedAt     *time.Time         `json:"resolvedAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// Clone returns a copy of the ticket
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	copied := *t
	if t.ResolvedAt != nil {
		at := *t.ResolvedAt
		copied.ResolvedAt = &at
	}
	return &copied
}

// IsOpen reports whether the ticket still awaits resolution
func (t *Ticket) IsOpen() bool {
	return t.Status != types.TicketStatusResolved
}
