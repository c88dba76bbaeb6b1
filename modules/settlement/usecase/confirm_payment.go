package usecase

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type ConfirmPaymentParams struct {
	SubmissionID uuid.UUID
	CreatorID    uuid.UUID
	Signature    string
}

// ConfirmPayment marks a payment-requested submission paid against a
// creator-supplied chain signature. The signature is verified on chain before
// any local write: the transfer must reach the submitter's wallet with at
// least the recipient share. A signature already recorded on a paid
// submission is treated as already applied, not reprocessed.
func (u *Usecase) ConfirmPayment(ctx context.Context, params ConfirmPaymentParams) (*entity.Submission, error) {
	submission, err := u.settlementDg.GetSubmission(ctx, params.SubmissionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get submission")
	}
	campaign, err := u.settlementDg.GetCampaign(ctx, submission.CampaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	if campaign.CreatorID != params.CreatorID {
		return nil, errors.Join(errs.NewPublicError("only the campaign creator can confirm payment"), errs.Forbidden)
	}

	if submission.Status == entity.SubmissionStatusPaid {
		if submission.PaymentSignature == params.Signature {
			return submission, nil
		}
		return nil, errors.Join(errs.NewPublicError("submission is already paid with a different signature"), errs.StateConflict)
	}
	existing, err := u.settlementDg.GetSubmissionByPaymentSignature(ctx, params.Signature)
	if err != nil && !errors.Is(err, errs.NotFound) {
		return nil, errors.Wrap(err, "failed to look up payment signature")
	}
	if existing != nil && existing.ID != submission.ID {
		return nil, errors.Join(errs.NewPublicError("signature already recorded for another submission"), errs.Duplicate)
	}
	if submission.Status != entity.SubmissionStatusPaymentRequested {
		return nil, errors.Join(errs.NewPublicError("submission has no pending payment request"), errs.StateConflict)
	}

	split, _, err := u.splitFor(ctx, submission)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := u.verifier.VerifyTransfer(ctx, params.Signature, submission.WalletAddress, split.Recipient); err != nil {
		return nil, publicVerifyError(err, "payment verification failed")
	}

	err = u.settlementDg.MarkPaid(ctx, datagateway.MarkPaidParams{
		ID:               submission.ID,
		PaymentSignature: params.Signature,
	})
	if err != nil {
		if errors.Is(err, errs.StateConflict) {
			return nil, errors.Join(errs.NewPublicError("submission left payment-requested before commit"), err)
		}
		return nil, errors.Wrap(err, "failed to mark submission paid")
	}

	submission.Status = entity.SubmissionStatusPaid
	submission.PaymentSignature = params.Signature
	u.notifier.Notify(ctx, submission.UserID, provider.NotificationPaymentReleased, map[string]any{
		"submissionId": submission.ID,
		"campaignId":   campaign.ID,
		"amount":       split.Recipient,
		"signature":    params.Signature,
	})
	return submission, nil
}

// splitFor computes the fee split for a submission's gross amount, using the
// submitter's locked referral share when one exists.
func (u *Usecase) splitFor(ctx context.Context, submission *entity.Submission) (payout.Split, *entity.Referral, error) {
	referral, err := u.referralDg.GetReferral(ctx, submission.UserID)
	if err != nil && !errors.Is(err, errs.NotFound) {
		return payout.Split{}, nil, errors.Wrap(err, "failed to get referral")
	}
	var referrerShare int
	hasReferrer := referral != nil
	if hasReferrer {
		referrerShare = referral.FeeSharePercent
	}
	split, err := payout.NewSplit(submission.GrossAmount(), u.config.PlatformFeeBps, referrerShare, hasReferrer)
	if err != nil {
		return payout.Split{}, nil, errors.Wrap(err, "failed to split payout")
	}
	return split, referral, nil
}
