package datagateway

import (
	"context"

	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/google/uuid"
)

type SettlementDataGateway interface {
	SettlementReaderDataGateway
	SettlementWriterDataGateway

	// BeginSettlementTx returns a new SettlementDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginSettlementTx(ctx context.Context) (SettlementDataGatewayWithTx, error)
}

type SettlementDataGatewayWithTx interface {
	SettlementDataGateway
	Tx
}

type SettlementReaderDataGateway interface {
	// GetCampaign returns the campaign with the given id. Returns errs.NotFound if the campaign does not exist.
	GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	// GetSubmission returns the submission with the given id. Returns errs.NotFound if the submission does not exist.
	GetSubmission(ctx context.Context, id uuid.UUID) (*entity.Submission, error)
	// GetSubmissionByPaymentSignature returns the paid submission recorded with the given
	// chain signature. Returns errs.NotFound if no submission carries the signature.
	GetSubmissionByPaymentSignature(ctx context.Context, signature string) (*entity.Submission, error)
	// GetEscrowVault returns the escrow vault funding the given campaign. Returns errs.NotFound if the vault does not exist.
	GetEscrowVault(ctx context.Context, campaignID uuid.UUID) (*entity.EscrowVault, error)

	// SumCommittedAmounts returns the sum of payout+bonus over the user's
	// approved, payment-requested and paid submissions on the campaign.
	SumCommittedAmounts(ctx context.Context, campaignID, userID uuid.UUID) (int64, error)
	// CountBonusGrants returns the number of submissions on the campaign where the
	// user has already been granted a non-zero bonus.
	CountBonusGrants(ctx context.Context, campaignID, userID uuid.UUID) (int64, error)
	// IsCreatorBanned reports whether the creator has banned the user.
	IsCreatorBanned(ctx context.Context, creatorID, userID uuid.UUID) (bool, error)
	// FundingSignatureExists reports whether the funding signature was already applied to a top-up.
	FundingSignatureExists(ctx context.Context, signature string) (bool, error)
}

type SettlementWriterDataGateway interface {
	CreateSubmission(ctx context.Context, submission *entity.Submission) error

	// ApproveSubmission moves a rejected submission to approved with a refreshed
	// metrics snapshot and recomputed payout fields, clearing the rejection
	// reason. The status check runs inside the UPDATE itself; a concurrent
	// transition surfaces as errs.StateConflict.
	ApproveSubmission(ctx context.Context, params ApproveSubmissionParams) error
	// MarkPaymentRequested moves an approved submission to payment_requested.
	// Returns errs.StateConflict if the submission is not approved at commit time.
	MarkPaymentRequested(ctx context.Context, id uuid.UUID) error
	// MarkPaid moves a payment_requested submission to paid and records the chain
	// signature. Returns errs.StateConflict if the submission is not
	// payment_requested at commit time.
	MarkPaid(ctx context.Context, params MarkPaidParams) error
	// RejectSubmission moves a submission from the expected status to rejected
	// with a reason. Returns errs.StateConflict if the submission left the
	// expected status before commit time.
	RejectSubmission(ctx context.Context, params RejectSubmissionParams) error

	// ReserveBudget conditionally decrements the campaign's remaining budget.
	// The check and the decrement are a single statement; insufficient budget
	// surfaces as errs.BudgetExhausted and leaves the row untouched.
	ReserveBudget(ctx context.Context, campaignID uuid.UUID, amount int64) error
	// ReleaseBudget returns a reserved amount to the remaining budget, capped at the total.
	ReleaseBudget(ctx context.Context, campaignID uuid.UUID, amount int64) error
	// TopUpBudget increases both the total and remaining budget.
	TopUpBudget(ctx context.Context, campaignID uuid.UUID, amount int64) error
	// CreateCampaignTopUp records a verified funding transaction. Returns
	// errs.Duplicate if the funding signature was already applied.
	CreateCampaignTopUp(ctx context.Context, topUp *entity.CampaignTopUp) error

	CreateCreatorBan(ctx context.Context, ban *entity.CreatorBan) error

	// AdvanceVaultTransactionIndex bumps the vault's proposal index to newIndex.
	// The update is conditional on the index still being newIndex-1; a concurrent
	// proposal surfaces as errs.StateConflict.
	AdvanceVaultTransactionIndex(ctx context.Context, vaultID uuid.UUID, newIndex int64) error
}

type ApproveSubmissionParams struct {
	ID                uuid.UUID
	Metrics           payout.Metrics
	PayoutAmount      int64
	BonusAmount       int64
	ScoreAtSubmission int64
	MultiplierApplied int64
}

type MarkPaidParams struct {
	ID                   uuid.UUID
	PaymentSignature     string
	PaymentProposalIndex int64
}

type RejectSubmissionParams struct {
	ID         uuid.UUID
	FromStatus entity.SubmissionStatus
	Reason     string
}
