package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Validation errors
	ErrInvalidStatus   = errors.New("invalid claim status")
	ErrNothingSelected = errors.New("nothing selected")

	// Session errors
	ErrNoSession = errors.New("no logged in session")
)

// Context keys for error values
const (
	ClaimIDKey   = "claim_id"
	ContactIDKey = "contact_id"
	TaskIDKey    = "task_id"
	NoteIDKey    = "note_id"
	TicketIDKey  = "ticket_id"
	StatusKey    = "status"
	UserIDKey    = "user_id"
)
