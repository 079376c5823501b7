package model

import "time"

// Note is a free text note on a contact
type Note struct {
	ID        string    `json:"id"`
	ContactID string    `json:"contactId"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a copy of the note
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	copied := *n
	return &copied
}
