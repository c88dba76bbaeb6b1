package usecase

import (
	"context"
	"time"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/samber/lo"
)

type SubmitPostParams struct {
	CampaignID    uuid.UUID
	UserID        uuid.UUID
	PostRef       string
	WalletAddress string
}

const (
	reasonThresholdsNotMet = "engagement thresholds not met"
	reasonZeroPayout       = "computed payout is zero"
)

// SubmitPost evaluates a new post against the campaign rules and records it as
// approved or rejected. The engagement metrics are fetched exactly once here;
// the stored snapshot is what every later stage prices against.
func (u *Usecase) SubmitPost(ctx context.Context, params SubmitPostParams) (*entity.Submission, error) {
	if _, err := base58.Decode(params.WalletAddress); err != nil {
		return nil, errors.Join(errs.NewPublicError("wallet address is not a valid base58 address"), errs.InvalidArgument)
	}

	campaign, err := u.settlementDg.GetCampaign(ctx, params.CampaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	if !campaign.Deadline.IsZero() && time.Now().After(campaign.Deadline) {
		return nil, errors.Join(errs.NewPublicError("campaign has ended"), errs.Forbidden)
	}

	banned, err := u.settlementDg.IsCreatorBanned(ctx, campaign.CreatorID, params.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check creator ban")
	}
	if banned {
		return nil, errors.Join(errs.NewPublicError("you are banned from this creator's campaigns"), errs.Forbidden)
	}

	score, ok, err := u.scoreClient.CurrentScore(ctx, params.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current score")
	}
	if !ok {
		return nil, errors.Join(errs.NewPublicError("your account has not been scored yet"), errs.Forbidden)
	}

	metrics, err := u.metricsClient.FetchMetrics(ctx, params.PostRef)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch post metrics")
	}

	result, err := u.evaluatePayout(ctx, campaign, params.UserID, metrics, score)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	submission := &entity.Submission{
		ID:                uuid.New(),
		CampaignID:        campaign.ID,
		UserID:            params.UserID,
		PostRef:           params.PostRef,
		WalletAddress:     params.WalletAddress,
		Metrics:           metrics,
		ScoreAtSubmission: score,
		MultiplierApplied: result.Multiplier,
	}
	switch {
	case !result.Eligible:
		submission.Status = entity.SubmissionStatusRejected
		submission.RejectionReason = reasonThresholdsNotMet
	case result.Payout == 0:
		submission.Status = entity.SubmissionStatusRejected
		submission.RejectionReason = reasonZeroPayout
	default:
		submission.Status = entity.SubmissionStatusApproved
		submission.PayoutAmount = result.Payout
		submission.BonusAmount = result.Bonus
	}

	if err := u.settlementDg.CreateSubmission(ctx, submission); err != nil {
		return nil, errors.Wrap(err, "failed to create submission")
	}

	kind := lo.Ternary(submission.Status == entity.SubmissionStatusApproved,
		provider.NotificationSubmissionApproved, provider.NotificationSubmissionRejected)
	u.notifier.Notify(ctx, params.UserID, kind, map[string]any{
		"submissionId": submission.ID,
		"campaignId":   campaign.ID,
		"status":       submission.Status,
	})
	return submission, nil
}

// evaluatePayout runs the calculator with the submitter's current committed
// amounts and prior bonus grants on this campaign.
func (u *Usecase) evaluatePayout(ctx context.Context, campaign *entity.Campaign, userID uuid.UUID, metrics payout.Metrics, score int64) (payout.Result, error) {
	committed, err := u.settlementDg.SumCommittedAmounts(ctx, campaign.ID, userID)
	if err != nil {
		return payout.Result{}, errors.Wrap(err, "failed to sum committed amounts")
	}
	priorBonuses, err := u.settlementDg.CountBonusGrants(ctx, campaign.ID, userID)
	if err != nil {
		return payout.Result{}, errors.Wrap(err, "failed to count bonus grants")
	}
	result, err := payout.Evaluate(campaign.PayoutRules(), payout.Input{
		Metrics:          metrics,
		Score:            score,
		PriorBonusGrants: priorBonuses,
		UserCommitted:    committed,
	})
	if err != nil {
		return payout.Result{}, errors.Wrap(err, "failed to evaluate payout")
	}
	return result, nil
}
