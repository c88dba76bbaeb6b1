package usecase

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/clippay/settlement-engine/modules/settlement/vault"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type ReleasePaymentParams struct {
	SubmissionID uuid.UUID
	CreatorID    uuid.UUID
}

// ReleasePayment settles a payment-requested submission directly from the
// campaign's escrow vault. Only creator-controlled vaults qualify: there the
// creator's single signature meets the threshold, so proposal creation,
// approval and execution land as one atomic chain submission. Multi-party
// vaults settle out of band and report back through ConfirmPayment.
//
// Once the bundle is submitted there is no undo: the chain outcome wins. A
// confirmation timeout re-queries the transaction by signature before any
// local write, and if the outcome is still unknown the submission stays
// payment-requested for a later ConfirmPayment with the same signature.
func (u *Usecase) ReleasePayment(ctx context.Context, params ReleasePaymentParams) (*entity.Submission, error) {
	submission, err := u.settlementDg.GetSubmission(ctx, params.SubmissionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get submission")
	}
	campaign, err := u.settlementDg.GetCampaign(ctx, submission.CampaignID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get campaign")
	}
	if campaign.CreatorID != params.CreatorID {
		return nil, errors.Join(errs.NewPublicError("only the campaign creator can release payment"), errs.Forbidden)
	}
	if submission.Status != entity.SubmissionStatusPaymentRequested {
		return nil, errors.Join(errs.NewPublicError("submission has no pending payment request"), errs.StateConflict)
	}

	escrowVault, err := u.settlementDg.GetEscrowVault(ctx, campaign.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get escrow vault")
	}
	if !escrowVault.CreatorControlled() {
		return nil, errors.Join(errs.NewPublicError("vault requires additional member approvals"), errs.Unsupported)
	}

	split, referral, err := u.splitFor(ctx, submission)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	destinations := vault.Destinations{
		Recipient: submission.WalletAddress,
		Platform:  u.config.PlatformWallet,
	}
	if referral != nil {
		destinations.Referrer = referral.ReferrerWallet
	}
	msg := u.builder.BuildTransferMessage(split, destinations)

	bundle, err := u.builder.BuildSettlementBundle(escrowVault, msg, escrowVault.Members[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed to build settlement bundle")
	}

	// Claiming the proposal index before submission keeps two concurrent
	// releases from racing the same index on chain.
	err = u.settlementDg.AdvanceVaultTransactionIndex(ctx, escrowVault.ID, bundle.ProposalIndex)
	if err != nil {
		if errors.Is(err, errs.StateConflict) {
			return nil, errors.Join(errs.NewPublicError("another settlement is in flight on this vault"), err)
		}
		return nil, errors.Wrap(err, "failed to advance vault transaction index")
	}

	signature, err := u.submitter.SignAndSubmit(ctx, bundle)
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit settlement bundle")
	}

	if err := u.awaitExecution(ctx, signature); err != nil {
		return nil, errors.WithStack(err)
	}

	err = u.settlementDg.MarkPaid(ctx, datagateway.MarkPaidParams{
		ID:                   submission.ID,
		PaymentSignature:     signature,
		PaymentProposalIndex: bundle.ProposalIndex,
	})
	if err != nil {
		// The transfer landed on chain; a lost local write must not hide that.
		logger.ErrorContext(ctx, "settlement executed on chain but local state update failed", err,
			slogx.Stringer("submissionId", submission.ID),
			slogx.String("signature", signature),
		)
		return nil, errors.Wrap(err, "failed to mark submission paid after chain execution")
	}

	submission.Status = entity.SubmissionStatusPaid
	submission.PaymentSignature = signature
	submission.PaymentProposalIndex = bundle.ProposalIndex
	u.notifier.Notify(ctx, submission.UserID, provider.NotificationPaymentReleased, map[string]any{
		"submissionId": submission.ID,
		"campaignId":   campaign.ID,
		"amount":       split.Recipient,
		"signature":    signature,
	})
	return submission, nil
}

// awaitExecution polls for confirmation of a submitted bundle. On a
// confirmation timeout the transaction is re-queried once by signature: the
// chain may have applied it even though no status was observed in time.
func (u *Usecase) awaitExecution(ctx context.Context, signature string) error {
	err := u.chainClient.Confirm(ctx, signature)
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ChainVerification) {
		return errors.Join(errs.NewPublicError("escrow execution failed on chain"), err)
	}

	tx, queryErr := u.chainClient.GetTransaction(ctx, signature)
	if queryErr != nil {
		if errors.Is(queryErr, errs.NotFound) {
			return errors.Join(errs.NewPublicError("settlement confirmation timed out"), err)
		}
		return errors.Wrap(queryErr, "failed to re-query settlement transaction")
	}
	if tx.Failed() {
		return errors.Join(errs.NewPublicError("escrow execution failed on chain"), errs.ChainVerification)
	}
	return nil
}
