package model

import "github.com/lexdesk/claimsync/pkg/domain/types"

// Result is the outcome of a user initiated mutation. Mutations report
// failures through Result and a notice rather than by returning errors.
type Result struct {
	Success bool
	Kind    types.ResultKind
	Message string
	Err     error

	// Count is the number of records affected by bulk operations
	Count int
	// ID is the identifier of a created record
	ID string
	// NewTaskID is set when a reschedule minted a successor task
	NewTaskID string
	// Category3 is set when a new claim was answered with a confirmation email
	Category3 bool
}

// OK returns a successful result
func OK(msg string) *Result {
	return &Result{Success: true, Kind: types.ResultKindOK, Message: msg}
}

// Invalid returns a result for input rejected before any network call
func Invalid(msg string) *Result {
	return &Result{Kind: types.ResultKindValidation, Message: msg}
}

// Conflict returns a result for a request the server refused pending
// confirmation
func Conflict(msg string, err error) *Result {
	return &Result{Kind: types.ResultKindConflict, Message: msg, Err: err}
}

// Failed returns a result for a network or server failure
func Failed(msg string, err error) *Result {
	return &Result{Kind: types.ResultKindFailure, Message: msg, Err: err}
}
