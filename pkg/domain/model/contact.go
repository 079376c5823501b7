package model

import (
	"strings"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// Address is a postal address of a contact
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	County     string `json:"county,omitempty"`
	PostalCode string `json:"postalCode"`
}

// PreviousAddress is an address the contact lived at before, used for DSAR searches
type PreviousAddress struct {
	ID string `json:"id"`
	Address
	MovedInDate  string `json:"movedInDate,omitempty"`
	MovedOutDate string `json:"movedOutDate,omitempty"`
}

// DocumentChecklist tracks which onboarding documents were received
type DocumentChecklist struct {
	Identification bool `json:"identification"`
	ExtraLender    bool `json:"extraLender"`
	Questionnaire  bool `json:"questionnaire"`
	POA            bool `json:"poa"`
}

// BankDetails is where settlement payments are sent
type BankDetails struct {
	BankName      string `json:"bankName,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	SortCode      string `json:"sortCode,omitempty" masq:"secret"`
	AccountNumber string `json:"accountNumber,omitempty" masq:"secret"`
}

// Contact is a client of the firm. Status, Lender and ClaimValue mirror the
// contact's primary claim.
type Contact struct {
	ID                string            `json:"id"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	FullName          string            `json:"fullName"`
	Email             string            `json:"email,omitempty" masq:"secret"`
	Phone             string            `json:"phone,omitempty" masq:"secret"`
	DateOfBirth       string            `json:"dateOfBirth,omitempty" masq:"secret"`
	Address           Address           `json:"address"`
	PreviousAddresses []PreviousAddress `json:"previousAddresses,omitempty"`
	DocumentChecklist DocumentChecklist `json:"documentChecklist"`
	BankDetails       BankDetails       `json:"bankDetails"`
	Source            string            `json:"source,omitempty"`
	ClientID          string            `json:"clientId,omitempty"`
	Status            types.ClaimStatus `json:"status,omitempty"`
	Lender            string            `json:"lender,omitempty"`
	ClaimValue        float64           `json:"claimValue,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// DisplayName returns FullName, falling back to first and last name
func (c *Contact) DisplayName() string {
	if c.FullName != "" {
		return c.FullName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Clone returns a deep copy of the contact
func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	copied := *c
	if c.PreviousAddresses != nil {
		copied.PreviousAddresses = make([]PreviousAddress, len(c.PreviousAddresses))
		copy(copied.PreviousAddresses, c.PreviousAddresses)
	}
	return &copied
}

// MirrorPrimary copies the primary claim's headline fields onto the contact.
// A nil claim clears them.
func (c *Contact) MirrorPrimary(primary *Claim) {
	if primary == nil {
		c.Status = ""
		c.Lender = ""
		c.ClaimValue = 0
		return
	}
	c.Status = primary.Status
	c.Lender = primary.Lender
	c.ClaimValue = primary.ClaimValue
}

// ContactFilter narrows a contacts page request
type ContactFilter struct {
	Search   string
	FullName string
	Email    string
	Phone    string
	Postcode string
	ClientID string
}

// ContactQuery is a single contacts page request
type ContactQuery struct {
	Page   int
	Limit  int
	Filter ContactFilter
}

// ContactPage is one page of contacts plus the server's paging metadata
type ContactPage struct {
	Contacts   []*Contact
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasMore    bool
}
