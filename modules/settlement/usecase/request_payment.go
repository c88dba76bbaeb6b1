package usecase

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type RequestPaymentParams struct {
	SubmissionID uuid.UUID
	UserID       uuid.UUID
}

// RequestPayment moves an approved submission to payment-requested, reserving
// the gross amount against the campaign budget. The reservation and the status
// transition commit together: on budget exhaustion the status is unchanged,
// and losing the status race leaves the budget untouched.
func (u *Usecase) RequestPayment(ctx context.Context, params RequestPaymentParams) (*entity.Submission, error) {
	submission, err := u.settlementDg.GetSubmission(ctx, params.SubmissionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get submission")
	}
	if submission.UserID != params.UserID {
		return nil, errors.Join(errs.NewPublicError("only the submitter can request payment"), errs.Forbidden)
	}
	if submission.Status != entity.SubmissionStatusApproved {
		return nil, errors.Join(errs.NewPublicError("submission is not approved"), errs.StateConflict)
	}

	settlementDgTx, err := u.settlementDg.BeginSettlementTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err := settlementDgTx.Rollback(ctx); err != nil {
			logger.WarnContext(ctx, "failed to rollback transaction",
				slogx.Error(err),
				slogx.String("event", "rollback_request_payment"),
			)
		}
	}()

	gross := submission.GrossAmount()
	if err := settlementDgTx.ReserveBudget(ctx, submission.CampaignID, gross); err != nil {
		if errors.Is(err, errs.BudgetExhausted) {
			return nil, errors.Join(errs.NewPublicError("campaign budget is exhausted"), err)
		}
		return nil, errors.Wrap(err, "failed to reserve budget")
	}
	if err := settlementDgTx.MarkPaymentRequested(ctx, submission.ID); err != nil {
		if errors.Is(err, errs.StateConflict) {
			return nil, errors.Join(errs.NewPublicError("submission is no longer approved"), err)
		}
		return nil, errors.Wrap(err, "failed to mark payment requested")
	}
	if err := settlementDgTx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	submission.Status = entity.SubmissionStatusPaymentRequested
	u.notifier.Notify(ctx, submission.UserID, provider.NotificationPaymentRequested, map[string]any{
		"submissionId": submission.ID,
		"campaignId":   submission.CampaignID,
		"grossAmount":  gross,
	})
	return submission, nil
}
