package usecase

import (
	"context"
	"time"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type TopUpBudgetParams struct {
	CampaignID       uuid.UUID
	CreatorID        uuid.UUID
	Amount           int64
	FundingSignature string
}

// TopUpBudget increases a campaign budget after verifying the funding transfer
// into the campaign's vault on chain. The funding signature is recorded with a
// uniqueness guarantee, so a client retry of the same transfer is a no-op
// rather than a double credit.
func (u *Usecase) TopUpBudget(ctx context.Context, params TopUpBudgetParams) (*entity.Campaign, error) {
	if params.Amount <= 0 {
		return nil, errors.Join(errs.NewPublicError("top-up amount must be positive"), errs.InvalidArgument)
	}

	campaign, err := u.settlementDg.GetCampaign(ctx, params.CampaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	if campaign.CreatorID != params.CreatorID {
		return nil, errors.Join(errs.NewPublicError("only the campaign creator can top up the budget"), errs.Forbidden)
	}

	applied, err := u.settlementDg.FundingSignatureExists(ctx, params.FundingSignature)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check funding signature")
	}
	if applied {
		return campaign, nil
	}

	escrowVault, err := u.settlementDg.GetEscrowVault(ctx, campaign.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get escrow vault")
	}
	if _, err := u.verifier.VerifyTransfer(ctx, params.FundingSignature, escrowVault.VaultAddress, params.Amount); err != nil {
		return nil, publicVerifyError(err, "funding verification failed")
	}

	settlementDgTx, err := u.settlementDg.BeginSettlementTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := settlementDgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction",
				slogx.Error(err),
				slogx.String("event", "rollback_top_up_budget"),
			)
		}
	}()

	err = settlementDgTx.CreateCampaignTopUp(ctx, &entity.CampaignTopUp{
		CampaignID:       campaign.ID,
		Amount:           params.Amount,
		FundingSignature: params.FundingSignature,
		CreatedAt:        time.Now(),
	})
	if err != nil {
		// A concurrent retry of the same transfer won the unique index.
		if errors.Is(err, errs.Duplicate) {
			return campaign, nil
		}
		return nil, errors.Wrap(err, "failed to record top-up")
	}
	if err := settlementDgTx.TopUpBudget(ctx, campaign.ID, params.Amount); err != nil {
		return nil, errors.Wrap(err, "failed to increase budget")
	}
	if err := settlementDgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	campaign.BudgetTotal += params.Amount
	campaign.BudgetRemaining += params.Amount
	return campaign, nil
}
