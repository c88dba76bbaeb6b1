package usecase

import (
	"context"
	"testing"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupReferral(t *testing.T) {
	ctx := context.Background()

	t.Run("tiers fill in order and lock shares", func(t *testing.T) {
		f := newFixture()
		referrerID := uuid.New()

		// tier 0 has capacity 2 at 70%, tier 1 takes the rest at 50%
		for i := range 3 {
			referral, err := f.usecase.SignupReferral(ctx, SignupReferralParams{
				UserID:         uuid.New(),
				ReferrerID:     referrerID,
				ReferrerWallet: testReferrerWallet,
			})
			require.NoError(t, err)
			if i < 2 {
				assert.Equal(t, 0, referral.Tier)
				assert.Equal(t, 70, referral.FeeSharePercent)
			} else {
				assert.Equal(t, 1, referral.Tier)
				assert.Equal(t, 50, referral.FeeSharePercent)
			}
		}

		counters, err := f.referralDg.GetTierCounters(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counters[0].Used)
		assert.Equal(t, int64(1), counters[1].Used)
	})

	t.Run("self referral refused", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		_, err := f.usecase.SignupReferral(ctx, SignupReferralParams{
			UserID:         userID,
			ReferrerID:     userID,
			ReferrerWallet: testReferrerWallet,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("second referrer refused", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		_, err := f.usecase.SignupReferral(ctx, SignupReferralParams{
			UserID: userID, ReferrerID: uuid.New(), ReferrerWallet: testReferrerWallet,
		})
		require.NoError(t, err)
		_, err = f.usecase.SignupReferral(ctx, SignupReferralParams{
			UserID: userID, ReferrerID: uuid.New(), ReferrerWallet: testReferrerWallet,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Duplicate)
	})

	t.Run("referrer share flows into the split", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.SignupReferral(ctx, SignupReferralParams{
			UserID: f.userID, ReferrerID: uuid.New(), ReferrerWallet: testReferrerWallet,
		})
		require.NoError(t, err)

		submission := f.submitApproved(ctx)
		_, err = f.usecase.RequestPayment(ctx, RequestPaymentParams{SubmissionID: submission.ID, UserID: f.userID})
		require.NoError(t, err)

		_, err = f.usecase.ReleasePayment(ctx, ReleasePaymentParams{
			SubmissionID: submission.ID,
			CreatorID:    f.creatorID,
		})
		require.NoError(t, err)

		require.Len(t, f.submitter.bundles, 1)
		// the transfer message is embedded in the create instruction; the
		// referrer leg exists because the execute step lists its destination
		execute := f.submitter.bundles[0].Transaction.Instructions[3]
		destinations := make([]string, 0, len(execute.Accounts))
		for _, account := range execute.Accounts {
			destinations = append(destinations, account.Address)
		}
		assert.Contains(t, destinations, testReferrerWallet)
		assert.Contains(t, destinations, testPlatformWallet)
		assert.Contains(t, destinations, testUserWallet)
	})
}

func TestTopUpBudget(t *testing.T) {
	ctx := context.Background()

	t.Run("verified funding increases both budget columns", func(t *testing.T) {
		f := newFixture()
		f.verifier.amount = 5_000_000_000

		campaign, err := f.usecase.TopUpBudget(ctx, TopUpBudgetParams{
			CampaignID:       f.campaign.ID,
			CreatorID:        f.creatorID,
			Amount:           5_000_000_000,
			FundingSignature: "funding-sig",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(15_000_000_000), campaign.BudgetTotal)
		assert.Equal(t, int64(15_000_000_000), campaign.BudgetRemaining)
		assert.Equal(t, []string{"funding-sig"}, f.verifier.calls)
	})

	t.Run("retried funding signature applies once", func(t *testing.T) {
		f := newFixture()
		params := TopUpBudgetParams{
			CampaignID:       f.campaign.ID,
			CreatorID:        f.creatorID,
			Amount:           5_000_000_000,
			FundingSignature: "funding-sig",
		}
		_, err := f.usecase.TopUpBudget(ctx, params)
		require.NoError(t, err)
		_, err = f.usecase.TopUpBudget(ctx, params)
		require.NoError(t, err)

		assert.Equal(t, int64(15_000_000_000), f.settlementDg.campaigns[f.campaign.ID].BudgetTotal)
		assert.Len(t, f.verifier.calls, 1)
	})

	t.Run("unverified funding refused", func(t *testing.T) {
		f := newFixture()
		f.verifier.err = errors.Wrap(errs.ChainVerification, "no matching transfer")

		_, err := f.usecase.TopUpBudget(ctx, TopUpBudgetParams{
			CampaignID:       f.campaign.ID,
			CreatorID:        f.creatorID,
			Amount:           5_000_000_000,
			FundingSignature: "funding-sig",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ChainVerification)
		assert.Equal(t, f.campaign.BudgetTotal, f.settlementDg.campaigns[f.campaign.ID].BudgetTotal)
	})

	t.Run("non-creator forbidden", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.TopUpBudget(ctx, TopUpBudgetParams{
			CampaignID:       f.campaign.ID,
			CreatorID:        uuid.New(),
			Amount:           5_000_000_000,
			FundingSignature: "funding-sig",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Forbidden)
	})

	t.Run("non-positive amount refused", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.TopUpBudget(ctx, TopUpBudgetParams{
			CampaignID:       f.campaign.ID,
			CreatorID:        f.creatorID,
			Amount:           0,
			FundingSignature: "funding-sig",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}
