package types

import "fmt"

// TicketStatus is the state of a support ticket
type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusResolved TicketStatus = "resolved"
)

// IsValid checks if the ticket status is valid
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusResolved:
		return true
	default:
		return false
	}
}

func (s TicketStatus) String() string {
	return string(s)
}

// ParseTicketStatus parses a string into a TicketStatus
func ParseTicketStatus(s string) (TicketStatus, error) {
	status := TicketStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return status, nil
}
