package usecase

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type OverrideApproveParams struct {
	SubmissionID uuid.UUID
	CreatorID    uuid.UUID
}

// OverrideApprove lets the campaign creator approve a rejected submission.
// Metrics and score are re-fetched and the payout re-priced at override time;
// the refreshed snapshot replaces the stored one. The status check runs inside
// the UPDATE, so of two concurrent overrides only one wins.
func (u *Usecase) OverrideApprove(ctx context.Context, params OverrideApproveParams) (*entity.Submission, error) {
	submission, err := u.settlementDg.GetSubmission(ctx, params.SubmissionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get submission")
	}
	campaign, err := u.settlementDg.GetCampaign(ctx, submission.CampaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	if campaign.CreatorID != params.CreatorID {
		return nil, errors.Join(errs.NewPublicError("only the campaign creator can override a rejection"), errs.Forbidden)
	}
	if submission.Status != entity.SubmissionStatusRejected {
		return nil, errors.Join(errs.NewPublicError("submission is not rejected"), errs.StateConflict)
	}
	if campaign.BudgetRemaining <= 0 {
		return nil, errors.Join(errs.NewPublicError("campaign budget is exhausted"), errs.BudgetExhausted)
	}

	score, ok, err := u.scoreClient.CurrentScore(ctx, submission.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current score")
	}
	if !ok {
		return nil, errors.Join(errs.NewPublicError("submitter has no current score"), errs.Forbidden)
	}
	metrics, err := u.metricsClient.FetchMetrics(ctx, submission.PostRef)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch post metrics")
	}

	result, err := u.evaluatePayout(ctx, campaign, submission.UserID, metrics, score)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !result.Eligible || result.Payout == 0 {
		return nil, errors.Join(errs.NewPublicError("re-priced payout is zero"), errs.ZeroPayout)
	}

	err = u.settlementDg.ApproveSubmission(ctx, datagateway.ApproveSubmissionParams{
		ID:                submission.ID,
		Metrics:           metrics,
		PayoutAmount:      result.Payout,
		BonusAmount:       result.Bonus,
		ScoreAtSubmission: score,
		MultiplierApplied: int64(result.Multiplier),
	})
	if err != nil {
		if errors.Is(err, errs.StateConflict) {
			return nil, errors.Join(errs.NewPublicError("submission is no longer rejected"), err)
		}
		return nil, errors.Wrap(err, "failed to approve submission")
	}

	submission.Status = entity.SubmissionStatusApproved
	submission.Metrics = metrics
	submission.PayoutAmount = result.Payout
	submission.BonusAmount = result.Bonus
	submission.ScoreAtSubmission = score
	submission.MultiplierApplied = result.Multiplier
	submission.RejectionReason = ""

	u.notifier.Notify(ctx, submission.UserID, provider.NotificationSubmissionApproved, map[string]any{
		"submissionId": submission.ID,
		"campaignId":   campaign.ID,
		"payoutAmount": result.Payout,
	})
	return submission, nil
}
