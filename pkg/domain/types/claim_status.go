package types

import "fmt"

// ClaimStatus is the workflow stage of a claim. Every status belongs to exactly
// one StatusCategory.
type ClaimStatus string

// Lead Generation & SALES
const (
	ClaimStatusNewLead          ClaimStatus = "New Lead"
	ClaimStatusContactAttempted ClaimStatus = "Contact Attempted"
	ClaimStatusNotQualified     ClaimStatus = "Not Qualified"
	ClaimStatusSale             ClaimStatus = "SALE"
	ClaimStatusLOASent          ClaimStatus = "LOA Sent"
)

// Client Onboarding
const (
	ClaimStatusLOAUploaded              ClaimStatus = "LOA Uploaded"
	ClaimStatusLOASigned                ClaimStatus = "LOA Signed"
	ClaimStatusIDRequestSent            ClaimStatus = "ID Request Sent"
	ClaimStatusIDVerificationPending    ClaimStatus = "ID Verification Pending"
	ClaimStatusPOARequired              ClaimStatus = "POA Required"
	ClaimStatusExtraLenderFormSent      ClaimStatus = "Extra Lender Selection Form Sent"
	ClaimStatusExtraLenderFormCompleted ClaimStatus = "Extra Lender Selection Form Completed"
	ClaimStatusQuestionnaireSent        ClaimStatus = "Questionnaire Sent"
	ClaimStatusQuestionnaireCompleted   ClaimStatus = "Questionnaire Completed"
	ClaimStatusBankStatementsRequested  ClaimStatus = "Bank Statements Requested"
	ClaimStatusBankStatementsReceived   ClaimStatus = "Bank Statements Received"
	ClaimStatusOnboardingComplete       ClaimStatus = "Onboarding Complete"
)

// DSAR Process
const (
	ClaimStatusDSARPrepared                ClaimStatus = "DSAR Prepared"
	ClaimStatusDSARPreparedAwaitingID      ClaimStatus = "DSAR Prepared Awaiting I.D"
	ClaimStatusDSARSentToLender            ClaimStatus = "DSAR Sent to Lender"
	ClaimStatusUnableToLocate              ClaimStatus = "Unable to Locate"
	ClaimStatusUnableToLocateAccountNumber ClaimStatus = "Unable to Locate Account Number"
	ClaimStatusDSAROverdue                 ClaimStatus = "DSAR Overdue"
	ClaimStatusDSARResponseReceived        ClaimStatus = "DSAR Response Received"
	ClaimStatusDSAREscalatedICO            ClaimStatus = "DSAR Escalated (ICO)"
	ClaimStatusDSARReviewCompleted         ClaimStatus = "Dsar Review Completed"
	ClaimStatusWeakCaseCannotContinue      ClaimStatus = "Weak Case Cannot Continue"
	ClaimStatusMissingDataFromDSAR         ClaimStatus = "Missing Data From Dsar"
)

// Complaint Submission & Processing
const (
	ClaimStatusComplaintDrafted                      ClaimStatus = "Complaint Drafted"
	ClaimStatusComplaintDraftedAwaitingQuestionnaire ClaimStatus = "Complaint Drafted Awaiting Questionnaire"
	ClaimStatusComplaintSubmitted                    ClaimStatus = "Complaint Submitted"
	ClaimStatusComplaintOverdue                      ClaimStatus = "Complaint Overdue"
	ClaimStatusUpheld                                ClaimStatus = "Upheld"
	ClaimStatusPartialUpheld                         ClaimStatus = "Partial Upheld"
	ClaimStatusNotUpheld                             ClaimStatus = "Not upheld"
	ClaimStatusCounterTeam                           ClaimStatus = "Counter team"
	ClaimStatusCounterResponseSent                   ClaimStatus = "Counter Response sent"
)

// FOS Escalation
const (
	ClaimStatusFOSReferralPrepared    ClaimStatus = "FOS Referral Prepared"
	ClaimStatusFOSSubmitted           ClaimStatus = "FOS Submitted"
	ClaimStatusFOSCaseNumberReceived  ClaimStatus = "FOS Case Number Received"
	ClaimStatusFOSInvestigation       ClaimStatus = "FOS Investigation"
	ClaimStatusFOSProvisionalDecision ClaimStatus = "FOS Provisional Decision"
	ClaimStatusFOSFinalDecision       ClaimStatus = "FOS Final Decision"
	ClaimStatusFOSAppeal              ClaimStatus = "FOS Appeal"
)

// Payments
const (
	ClaimStatusOfferReceived         ClaimStatus = "Offer Received"
	ClaimStatusOfferUnderNegotiation ClaimStatus = "Offer Under Negotiation"
	ClaimStatusOfferAccepted         ClaimStatus = "Offer Accepted"
	ClaimStatusAwaitingPayment       ClaimStatus = "Awaiting Payment"
	ClaimStatusPaymentReceived       ClaimStatus = "Payment Received"
	ClaimStatusFeeDeducted           ClaimStatus = "Fee Deducted"
	ClaimStatusClientPaid            ClaimStatus = "Client Paid"
	ClaimStatusClaimSuccessful       ClaimStatus = "Claim Successful"
	ClaimStatusClaimUnsuccessful     ClaimStatus = "Claim Unsuccessful"
	ClaimStatusClaimWithdrawn        ClaimStatus = "Claim Withdrawn"
)

// Debt Recovery
const (
	ClaimStatusDebtRecoveryInitiated  ClaimStatus = "Debt Recovery Initiated"
	ClaimStatusPaymentPlanAgreed      ClaimStatus = "Payment Plan Agreed"
	ClaimStatusDebtCollectionStarted  ClaimStatus = "Debt Collection Started"
	ClaimStatusPartialPaymentReceived ClaimStatus = "Partial Payment Received"
	ClaimStatusDebtSettled            ClaimStatus = "Debt Settled"
	ClaimStatusDebtWrittenOff         ClaimStatus = "Debt Written Off"
)

// StatusCategory groups claim statuses into pipeline columns.
type StatusCategory string

const (
	StatusCategoryLeadGeneration StatusCategory = "lead-generation"
	StatusCategoryOnboarding     StatusCategory = "onboarding"
	StatusCategoryDSAR           StatusCategory = "dsar-process"
	StatusCategoryComplaint      StatusCategory = "complaint"
	StatusCategoryFOS            StatusCategory = "fos-escalation"
	StatusCategoryPayments       StatusCategory = "payments"
	StatusCategoryDebtRecovery   StatusCategory = "debt-recovery"
)

type categoryDef struct {
	id       StatusCategory
	title    string
	statuses []ClaimStatus
}

// pipeline is ordered left to right as the case board shows it.
var pipeline = []categoryDef{
	{
		id:    StatusCategoryLeadGeneration,
		title: "Lead Generation & SALES",
		statuses: []ClaimStatus{
			ClaimStatusNewLead,
			ClaimStatusContactAttempted,
			ClaimStatusNotQualified,
			ClaimStatusSale,
			ClaimStatusLOASent,
		},
	},
	{
		id:    StatusCategoryOnboarding,
		title: "Client Onboarding",
		statuses: []ClaimStatus{
			ClaimStatusLOAUploaded,
			ClaimStatusLOASigned,
			ClaimStatusIDRequestSent,
			ClaimStatusIDVerificationPending,
			ClaimStatusPOARequired,
			ClaimStatusExtraLenderFormSent,
			ClaimStatusExtraLenderFormCompleted,
			ClaimStatusQuestionnaireSent,
			ClaimStatusQuestionnaireCompleted,
			ClaimStatusBankStatementsRequested,
			ClaimStatusBankStatementsReceived,
			ClaimStatusOnboardingComplete,
		},
	},
	{
		id:    StatusCategoryDSAR,
		title: "DSAR Process",
		statuses: []ClaimStatus{
			ClaimStatusDSARPrepared,
			ClaimStatusDSARPreparedAwaitingID,
			ClaimStatusDSARSentToLender,
			ClaimStatusUnableToLocate,
			ClaimStatusUnableToLocateAccountNumber,
			ClaimStatusDSAROverdue,
			ClaimStatusDSARResponseReceived,
			ClaimStatusDSAREscalatedICO,
			ClaimStatusDSARReviewCompleted,
			ClaimStatusWeakCaseCannotContinue,
			ClaimStatusMissingDataFromDSAR,
		},
	},
	{
		id:    StatusCategoryComplaint,
		title: "Complaint Submission & Processing",
		statuses: []ClaimStatus{
			ClaimStatusComplaintDrafted,
			ClaimStatusComplaintDraftedAwaitingQuestionnaire,
			ClaimStatusComplaintSubmitted,
			ClaimStatusComplaintOverdue,
			ClaimStatusUpheld,
			ClaimStatusPartialUpheld,
			ClaimStatusNotUpheld,
			ClaimStatusCounterTeam,
			ClaimStatusCounterResponseSent,
		},
	},
	{
		id:    StatusCategoryFOS,
		title: "FOS Escalation",
		statuses: []ClaimStatus{
			ClaimStatusFOSReferralPrepared,
			ClaimStatusFOSSubmitted,
			ClaimStatusFOSCaseNumberReceived,
			ClaimStatusFOSInvestigation,
			ClaimStatusFOSProvisionalDecision,
			ClaimStatusFOSFinalDecision,
			ClaimStatusFOSAppeal,
		},
	},
	{
		id:    StatusCategoryPayments,
		title: "Payments",
		statuses: []ClaimStatus{
			ClaimStatusOfferReceived,
			ClaimStatusOfferUnderNegotiation,
			ClaimStatusOfferAccepted,
			ClaimStatusAwaitingPayment,
			ClaimStatusPaymentReceived,
			ClaimStatusFeeDeducted,
			ClaimStatusClientPaid,
			ClaimStatusClaimSuccessful,
			ClaimStatusClaimUnsuccessful,
			ClaimStatusClaimWithdrawn,
		},
	},
	{
		id:    StatusCategoryDebtRecovery,
		title: "Debt Recovery",
		statuses: []ClaimStatus{
			ClaimStatusDebtRecoveryInitiated,
			ClaimStatusPaymentPlanAgreed,
			ClaimStatusDebtCollectionStarted,
			ClaimStatusPartialPaymentReceived,
			ClaimStatusDebtSettled,
			ClaimStatusDebtWrittenOff,
		},
	},
}

var categoryOf = func() map[ClaimStatus]StatusCategory {
	m := make(map[ClaimStatus]StatusCategory)
	for _, def := range pipeline {
		for _, s := range def.statuses {
			m[s] = def.id
		}
	}
	return m
}()

// AllClaimStatuses returns every status in pipeline order
func AllClaimStatuses() []ClaimStatus {
	var statuses []ClaimStatus
	for _, def := range pipeline {
		statuses = append(statuses, def.statuses...)
	}
	return statuses
}

// IsValid checks if the claim status is one of the known statuses. Matching is
// exact, including case.
func (s ClaimStatus) IsValid() bool {
	_, ok := categoryOf[s]
	return ok
}

// Category returns the category the status belongs to, or "" if unknown.
func (s ClaimStatus) Category() StatusCategory {
	return categoryOf[s]
}

func (s ClaimStatus) String() string {
	return string(s)
}

// ParseClaimStatus parses a string into a ClaimStatus
func ParseClaimStatus(s string) (ClaimStatus, error) {
	status := ClaimStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid claim status: %s", s)
	}
	return status, nil
}

// AllStatusCategories returns the categories in pipeline order
func AllStatusCategories() []StatusCategory {
	categories := make([]StatusCategory, len(pipeline))
	for i, def := range pipeline {
		categories[i] = def.id
	}
	return categories
}

func (c StatusCategory) def() *categoryDef {
	for i := range pipeline {
		if pipeline[i].id == c {
			return &pipeline[i]
		}
	}
	return nil
}

// IsValid checks if the category is known
func (c StatusCategory) IsValid() bool {
	return c.def() != nil
}

// Title returns the display title of the category
func (c StatusCategory) Title() string {
	if def := c.def(); def != nil {
		return def.title
	}
	return ""
}

// Statuses returns the statuses of the category in pipeline order
func (c StatusCategory) Statuses() []ClaimStatus {
	def := c.def()
	if def == nil {
		return nil
	}
	statuses := make([]ClaimStatus, len(def.statuses))
	copy(statuses, def.statuses)
	return statuses
}

func (c StatusCategory) String() string {
	return string(c)
}
