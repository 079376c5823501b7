package model

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lexdesk/claimsync/pkg/domain/types"
)

// Claim is a single mis-sold finance claim against one lender
type Claim struct {
	ID            string            `json:"id"`
	ContactID     string            `json:"contactId"`
	ContactName   string            `json:"contactName,omitempty"`
	Lender        string            `json:"lender"`
	Status        types.ClaimStatus `json:"status"`
	ClaimValue    float64           `json:"claimValue"`
	ProductType   string            `json:"productType,omitempty"`
	AccountNumber string            `json:"accountNumber,omitempty" masq:"secret"`
	StartDate     string            `json:"startDate,omitempty"`
	DaysInStage   int               `json:"daysInStage"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Clone returns a copy of the claim
func (c *Claim) Clone() *Claim {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

// Category returns the pipeline category of the claim's status
func (c *Claim) Category() types.StatusCategory {
	return c.Status.Category()
}

// NewClaimInput returns a copy of claim addressed to contactID, ready to send
// to the backend. A claim without a status starts as a new lead.
func NewClaimInput(contactID string, claim *Claim) *Claim {
	input := claim.Clone()
	if input == nil {
		input = &Claim{}
	}
	input.ContactID = contactID
	input.DaysInStage = 0
	if input.Status == "" {
		input.Status = types.ClaimStatusNewLead
	}
	return input
}

// ClaimDetails are the claim fields an agent edits in place. Status is not
// among them and only moves through status changes.
type ClaimDetails struct {
	Lender        string  `json:"lender"`
	ClaimValue    float64 `json:"claimValue"`
	ProductType   string  `json:"productType,omitempty"`
	AccountNumber string  `json:"accountNumber,omitempty" masq:"secret"`
	StartDate     string  `json:"startDate,omitempty"`
}

// Details returns the editable fields of the claim
func (c *Claim) Details() ClaimDetails {
	return ClaimDetails{
		Lender:        c.Lender,
		ClaimValue:    c.ClaimValue,
		ProductType:   c.ProductType,
		AccountNumber: c.AccountNumber,
		StartDate:     c.StartDate,
	}
}

// ApplyDetails copies d onto the claim's editable fields
func (c *Claim) ApplyDetails(d ClaimDetails) {
	c.Lender = d.Lender
	c.ClaimValue = d.ClaimValue
	c.ProductType = d.ProductType
	c.AccountNumber = d.AccountNumber
	c.StartDate = d.StartDate
}

// ClaimCriteria selects claims for a bulk status change. Zero fields match
// everything.
type ClaimCriteria struct {
	// Lender matches case-insensitively anywhere in the claim's lender
	Lender         string
	Status         types.ClaimStatus
	MinDaysInStage int
}

// IsEmpty reports whether the criteria would select every claim
func (c ClaimCriteria) IsEmpty() bool {
	return strings.TrimSpace(c.Lender) == "" && c.Status == "" && c.MinDaysInStage <= 0
}

// Matches reports whether claim satisfies every set criterion
func (c ClaimCriteria) Matches(claim *Claim) bool {
	if claim == nil {
		return false
	}
	if lender := strings.TrimSpace(c.Lender); lender != "" &&
		!strings.Contains(strings.ToLower(claim.Lender), strings.ToLower(lender)) {
		return false
	}
	if c.Status != "" && claim.Status != c.Status {
		return false
	}
	return claim.DaysInStage >= c.MinDaysInStage
}

// ClaimCreation is the backend's answer to a new claim request. Lenders handled
// as category 3 are acknowledged with a confirmation email and no claim.
type ClaimCreation struct {
	Claim     *Claim
	Category3 bool
	Message   string
}

// PrimaryClaim returns the contact's first claim: earliest CreatedAt, ties
// broken by ID. It returns nil for an empty slice.
func PrimaryClaim(claims []*Claim) *Claim {
	var primary *Claim
	for _, c := range claims {
		if primary == nil || claimBefore(c, primary) {
			primary = c
		}
	}
	return primary
}

func claimBefore(a, b *Claim) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return LessID(a.ID, b.ID)
}

// LessID orders identifiers numerically when both are integers and
// lexically otherwise.
func LessID(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}

// SortClaims orders claims by CreatedAt then ID
func SortClaims(claims []*Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		return claimBefore(claims[i], claims[j])
	})
}
