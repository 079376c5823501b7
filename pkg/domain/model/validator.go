package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return goerr.Wrap(ErrMissingRequired, "required field not provided", goerr.V(FieldKey, field))
	}
	return nil
}

func invalid(field string, value any) error {
	return goerr.Wrap(ErrInvalidValue, "invalid field value", goerr.V(FieldKey, field), goerr.V(ValueKey, value))
}

// ValidateClock checks an HH:MM time. An empty value is accepted.
func ValidateClock(value string) error {
	return validClock("time", value)
}

func validClock(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return invalid(field, value)
	}
	return nil
}

// Validate checks the fields a task must carry before it is sent
func (t *Task) Validate() error {
	if err := required("title", t.Title); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return invalid("type", t.Type)
	}
	if t.Status != "" && !t.Status.IsValid() {
		return invalid("status", t.Status)
	}
	if err := required("date", t.Date); err != nil {
		return err
	}
	if err := ValidateDate(t.Date); err != nil {
		return invalid("date", t.Date)
	}
	if err := validClock("startTime", t.StartTime); err != nil {
		return err
	}
	if err := validClock("endTime", t.EndTime); err != nil {
		return err
	}
	if t.StartTime != "" && t.EndTime != "" && t.EndTime < t.StartTime {
		return invalid("endTime", t.EndTime)
	}
	if t.IsRecurring {
		if !t.RecurrencePattern.IsValid() {
			return invalid("recurrencePattern", t.RecurrencePattern)
		}
		if t.RecurrenceEndDate != "" {
			if err := ValidateDate(t.RecurrenceEndDate); err != nil || t.RecurrenceEndDate < t.Date {
				return invalid("recurrenceEndDate", t.RecurrenceEndDate)
			}
		}
	}
	return nil
}

// Validate checks the fields a contact must carry before it is sent
func (c *Contact) Validate() error {
	if strings.TrimSpace(c.DisplayName()) == "" {
		return goerr.Wrap(ErrMissingRequired, "required field not provided", goerr.V(FieldKey, "fullName"))
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return invalid("email", c.Email)
	}
	if c.DateOfBirth != "" {
		if err := ValidateDate(c.DateOfBirth); err != nil {
			return invalid("dateOfBirth", c.DateOfBirth)
		}
	}
	return nil
}

// Validate checks the fields a new claim must carry before it is sent
func (c *Claim) Validate() error {
	if err := required("lender", c.Lender); err != nil {
		return err
	}
	if c.Status != "" && !c.Status.IsValid() {
		return invalid("status", c.Status)
	}
	if c.ClaimValue < 0 {
		return invalid("claimValue", c.ClaimValue)
	}
	return nil
}

// Validate checks edited claim details before they are sent
func (d ClaimDetails) Validate() error {
	if err := required("lender", d.Lender); err != nil {
		return err
	}
	if d.ClaimValue < 0 {
		return invalid("claimValue", d.ClaimValue)
	}
	if d.StartDate != "" {
		if err := ValidateDate(d.StartDate); err != nil {
			return invalid("startDate", d.StartDate)
		}
	}
	return nil
}

// Validate checks the fields a note must carry before it is sent
func (n *Note) Validate() error {
	if err := required("contactId", n.ContactID); err != nil {
		return err
	}
	return required("content", n.Content)
}

// Validate checks the fields a new ticket must carry before it is sent
func (t *Ticket) Validate() error {
	if err := required("title", t.Title); err != nil {
		return err
	}
	if err := required("description", t.Description); err != nil {
		return err
	}
	if t.Status != "" && !t.Status.IsValid() {
		return invalid("status", t.Status)
	}
	return nil
}
