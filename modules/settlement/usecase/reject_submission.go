package usecase

import (
	"context"
	"time"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type RejectSubmissionParams struct {
	SubmissionID uuid.UUID
	CreatorID    uuid.UUID
	Reason       string

	// Ban permanently blocks the submitter from all of the creator's campaigns.
	Ban bool
}

// RejectSubmission lets the campaign creator reject an approved or
// payment-requested submission before any payment landed. Rejecting a
// payment-requested submission releases its budget reservation in the same
// transaction as the status change.
func (u *Usecase) RejectSubmission(ctx context.Context, params RejectSubmissionParams) (*entity.Submission, error) {
	submission, err := u.settlementDg.GetSubmission(ctx, params.SubmissionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get submission")
	}
	campaign, err := u.settlementDg.GetCampaign(ctx, submission.CampaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	if campaign.CreatorID != params.CreatorID {
		return nil, errors.Join(errs.NewPublicError("only the campaign creator can reject a submission"), errs.Forbidden)
	}
	if !submission.Status.CanTransitionTo(entity.SubmissionStatusRejected) {
		return nil, errors.Join(errs.NewPublicError("submission cannot be rejected in its current status"), errs.StateConflict)
	}

	settlementDgTx, err := u.settlementDg.BeginSettlementTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := settlementDgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction",
				slogx.Error(err),
				slogx.String("event", "rollback_reject_submission"),
			)
		}
	}()

	err = settlementDgTx.RejectSubmission(ctx, datagateway.RejectSubmissionParams{
		ID:         submission.ID,
		FromStatus: submission.Status,
		Reason:     params.Reason,
	})
	if err != nil {
		if errors.Is(err, errs.StateConflict) {
			return nil, errors.Join(errs.NewPublicError("submission status changed before commit"), err)
		}
		return nil, errors.Wrap(err, "failed to reject submission")
	}
	if submission.Status == entity.SubmissionStatusPaymentRequested {
		if err := settlementDgTx.ReleaseBudget(ctx, campaign.ID, submission.GrossAmount()); err != nil {
			return nil, errors.Wrap(err, "failed to release budget reservation")
		}
	}
	if params.Ban {
		err := settlementDgTx.CreateCreatorBan(ctx, &entity.CreatorBan{
			CreatorID: campaign.CreatorID,
			UserID:    submission.UserID,
			Reason:    params.Reason,
			CreatedAt: time.Now(),
		})
		if err != nil && !errors.Is(err, errs.Duplicate) {
			return nil, errors.Wrap(err, "failed to record creator ban")
		}
	}
	if err := settlementDgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	submission.Status = entity.SubmissionStatusRejected
	submission.RejectionReason = params.Reason
	u.notifier.Notify(ctx, submission.UserID, provider.NotificationSubmissionRejected, map[string]any{
		"submissionId": submission.ID,
		"campaignId":   campaign.ID,
		"reason":       params.Reason,
	})
	return submission, nil
}
