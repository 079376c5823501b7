package types

// ResultKind classifies the outcome of a mutation
type ResultKind string

const (
	ResultKindOK         ResultKind = "ok"
	ResultKindValidation ResultKind = "validation"
	ResultKindConflict   ResultKind = "conflict"
	ResultKindFailure    ResultKind = "failure"
)
