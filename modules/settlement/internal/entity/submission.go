package entity

import (
	"time"

	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionStatusRejected         SubmissionStatus = "rejected"
	SubmissionStatusApproved         SubmissionStatus = "approved"
	SubmissionStatusPaymentRequested SubmissionStatus = "payment_requested"
	SubmissionStatusPaid             SubmissionStatus = "paid"
)

func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionStatusRejected, SubmissionStatusApproved, SubmissionStatusPaymentRequested, SubmissionStatusPaid:
		return true
	}
	return false
}

func (s SubmissionStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the lifecycle permits moving to next.
// Paid is terminal. A payment-requested submission can still be rejected by
// the creator as long as no payment landed; that path releases the budget
// reservation. The actual transition must still be performed as a conditional
// update re-checking the current status at commit time.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	switch s {
	case SubmissionStatusRejected:
		return next == SubmissionStatusApproved
	case SubmissionStatusApproved:
		return next == SubmissionStatusPaymentRequested || next == SubmissionStatusRejected
	case SubmissionStatusPaymentRequested:
		return next == SubmissionStatusPaid || next == SubmissionStatusRejected
	case SubmissionStatusPaid:
		return false
	}
	return false
}

// Submission is one participant post on a campaign. The metrics snapshot is
// captured at submission time; payout fields are set at approval and immutable
// thereafter. A creator override-approve is the one exception: it re-fetches
// metrics and score and re-prices the payout at override time.
type Submission struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	UserID     uuid.UUID
	PostRef    string

	// WalletAddress is the submitter's payout destination, base58.
	WalletAddress string

	Metrics payout.Metrics

	Status            SubmissionStatus
	PayoutAmount      int64
	BonusAmount       int64
	ScoreAtSubmission int64
	MultiplierApplied payout.Multiplier
	RejectionReason   string

	// PaymentProposalIndex and PaymentSignature are set once payment is released.
	PaymentProposalIndex int64
	PaymentSignature     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GrossAmount is the amount reserved against the campaign budget when payment
// is requested: payout plus the one-time bonus.
func (s *Submission) GrossAmount() int64 {
	return s.PayoutAmount + s.BonusAmount
}
