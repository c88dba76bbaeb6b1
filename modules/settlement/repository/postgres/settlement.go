package postgres

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/repository/postgres/gen"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := r.queries.GetCampaign(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapCampaign(campaign), nil
}

func (r *Repository) GetSubmission(ctx context.Context, id uuid.UUID) (*entity.Submission, error) {
	submission, err := r.queries.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapSubmission(submission), nil
}

func (r *Repository) GetSubmissionByPaymentSignature(ctx context.Context, signature string) (*entity.Submission, error) {
	submission, err := r.queries.GetSubmissionByPaymentSignature(ctx, signature)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapSubmission(submission), nil
}

func (r *Repository) GetEscrowVault(ctx context.Context, campaignID uuid.UUID) (*entity.EscrowVault, error) {
	vault, err := r.queries.GetEscrowVaultByCampaignId(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapEscrowVault(vault), nil
}

func (r *Repository) SumCommittedAmounts(ctx context.Context, campaignID, userID uuid.UUID) (int64, error) {
	committed, err := r.queries.SumCommittedAmounts(ctx, gen.SumCommittedAmountsParams{
		CampaignID: campaignID,
		UserID:     userID,
	})
	if err != nil {
		return 0, errors.Wrap(err, "error during query")
	}
	return committed, nil
}

func (r *Repository) CountBonusGrants(ctx context.Context, campaignID, userID uuid.UUID) (int64, error) {
	count, err := r.queries.CountBonusGrants(ctx, gen.CountBonusGrantsParams{
		CampaignID: campaignID,
		UserID:     userID,
	})
	if err != nil {
		return 0, errors.Wrap(err, "error during query")
	}
	return count, nil
}

func (r *Repository) IsCreatorBanned(ctx context.Context, creatorID, userID uuid.UUID) (bool, error) {
	count, err := r.queries.CountCreatorBans(ctx, gen.CountCreatorBansParams{
		CreatorID: creatorID,
		UserID:    userID,
	})
	if err != nil {
		return false, errors.Wrap(err, "error during query")
	}
	return count > 0, nil
}

func (r *Repository) FundingSignatureExists(ctx context.Context, signature string) (bool, error) {
	count, err := r.queries.CountCampaignTopUpsBySignature(ctx, signature)
	if err != nil {
		return false, errors.Wrap(err, "error during query")
	}
	return count > 0, nil
}

func (r *Repository) CreateSubmission(ctx context.Context, submission *entity.Submission) error {
	err := r.queries.CreateSubmission(ctx, gen.CreateSubmissionParams{
		ID:                submission.ID,
		CampaignID:        submission.CampaignID,
		UserID:            submission.UserID,
		PostRef:           submission.PostRef,
		WalletAddress:     submission.WalletAddress,
		ViewCount:         submission.Metrics.ViewCount,
		LikeCount:         submission.Metrics.LikeCount,
		RetweetCount:      submission.Metrics.RetweetCount,
		CommentCount:      submission.Metrics.CommentCount,
		Status:            submission.Status.String(),
		PayoutAmount:      submission.PayoutAmount,
		BonusAmount:       submission.BonusAmount,
		ScoreAtSubmission: submission.ScoreAtSubmission,
		MultiplierApplied: int64(submission.MultiplierApplied),
		RejectionReason:   submission.RejectionReason,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) ApproveSubmission(ctx context.Context, params datagateway.ApproveSubmissionParams) error {
	rows, err := r.queries.ApproveSubmission(ctx, gen.ApproveSubmissionParams{
		ID:                params.ID,
		ViewCount:         params.Metrics.ViewCount,
		LikeCount:         params.Metrics.LikeCount,
		RetweetCount:      params.Metrics.RetweetCount,
		CommentCount:      params.Metrics.CommentCount,
		PayoutAmount:      params.PayoutAmount,
		BonusAmount:       params.BonusAmount,
		ScoreAtSubmission: params.ScoreAtSubmission,
		MultiplierApplied: params.MultiplierApplied,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if rows == 0 {
		return errors.WithStack(errs.StateConflict)
	}
	return nil
}

func (r *Repository) MarkPaymentRequested(ctx context.Context, id uuid.UUID) error {
	rows, err := r.queries.MarkPaymentRequested(ctx, id)
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if rows == 0 {
		return errors.WithStack(errs.StateConflict)
	}
	return nil
}

func (r *Repository) MarkPaid(ctx context.Context, params datagateway.MarkPaidParams) error {
	rows, err := r.queries.MarkPaid(ctx, gen.MarkPaidParams{
		ID:                   params.ID,
		PaymentSignature:     params.PaymentSignature,
		PaymentProposalIndex: params.PaymentProposalIndex,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if rows == 0 {
		return errors.WithStack(errs.StateConflict)
	}
	return nil
}

func (r *Repository) RejectSubmission(ctx context.Context, params datagateway.RejectSubmissionParams) error {
	rows, err := r.queries.RejectSubmission(ctx, gen.RejectSubmissionParams{
		ID:              params.ID,
		Status:          params.FromStatus.String(),
		RejectionReason: params.Reason,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if rows == 0 {
		return errors.WithStack(errs.StateConflict)
	}
	return nil
}

func (r *Repository) ReserveBudget(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	rows, err := r.queries.ReserveBudget(ctx, gen.ReserveBudgetParams{
		ID:              campaignID,
		BudgetRemaining: amount,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if rows == 0 {
		return errors.WithStack(errs.BudgetExhausted)
	}
	return nil
}

func (r *Repository) ReleaseBudget(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	err := r.queries.ReleaseBudget(ctx, gen.ReleaseBudgetParams{
		ID:              campaignID,
		BudgetRemaining: amount,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) TopUpBudget(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	err := r.queries.TopUpBudget(ctx, gen.TopUpBudgetParams{
		ID:          campaignID,
		BudgetTotal: amount,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateCampaignTopUp(ctx context.Context, topUp *entity.CampaignTopUp) error {
	err := r.queries.CreateCampaignTopUp(ctx, gen.CreateCampaignTopUpParams{
		FundingSignature: topUp.FundingSignature,
		CampaignID:       topUp.CampaignID,
		Amount:           topUp.Amount,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return errors.WithStack(errs.Duplicate)
		}
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) CreateCreatorBan(ctx context.Context, ban *entity.CreatorBan) error {
	err := r.queries.CreateCreatorBan(ctx, gen.CreateCreatorBanParams{
		CreatorID: ban.CreatorID,
		UserID:    ban.UserID,
		Reason:    ban.Reason,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return errors.WithStack(errs.Duplicate)
		}
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) AdvanceVaultTransactionIndex(ctx context.Context, vaultID uuid.UUID, newIndex int64) error {
	rows, err := r.queries.AdvanceVaultTransactionIndex(ctx, gen.AdvanceVaultTransactionIndexParams{
		ID:               vaultID,
		TransactionIndex: newIndex,
	})
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if rows == 0 {
		return errors.WithStack(errs.StateConflict)
	}
	return nil
}
