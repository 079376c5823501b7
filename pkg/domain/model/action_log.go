package model

import (
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// ActionLogEntry is a server side audit record. Clients only read it.
type ActionLogEntry struct {
	ID             string               `json:"id"`
	ClientID       string               `json:"clientId"`
	ClaimID        string               `json:"claimId,omitempty"`
	ActorType      types.ActorType      `json:"actorType"`
	ActorID        string               `json:"actorId,omitempty"`
	ActorName      string               `json:"actorName,omitempty"`
	ActionType     string               `json:"actionType"`
	ActionCategory types.ActionCategory `json:"actionCategory"`
	Description    string               `json:"description"`
	Metadata       map[string]string    `json:"metadata,omitempty"`
	Timestamp      time.Time            `json:"timestamp"`
}

// Clone returns a deep copy of the entry
func (e *ActionLogEntry) Clone() *ActionLogEntry {
	if e == nil {
		return nil
	}
	copied := *e
	if e.Metadata != nil {
		copied.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			copied.Metadata[k] = v
		}
	}
	return &copied
}

// Activity is a client side timeline entry appended for each acknowledged
// local mutation.
type Activity struct {
	ID          string
	ContactID   string
	ClaimID     string
	Title       string
	Description string
	Date        time.Time
}
