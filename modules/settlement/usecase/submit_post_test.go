package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPost(t *testing.T) {
	ctx := context.Background()

	t.Run("approved with computed payout", func(t *testing.T) {
		f := newFixture()
		submission, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
			CampaignID:    f.campaign.ID,
			UserID:        f.userID,
			PostRef:       "post-1",
			WalletAddress: testUserWallet,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.SubmissionStatusApproved, submission.Status)
		// 8000 views * 30_000_000 cpm / 1000, max score multiplier 1.0
		assert.Equal(t, int64(240_000_000), submission.PayoutAmount)
		assert.Equal(t, int64(payout.MaxScore), submission.ScoreAtSubmission)
		assert.Equal(t, []provider.NotificationKind{provider.NotificationSubmissionApproved}, f.notifier.kinds)
	})

	t.Run("rejected below engagement thresholds", func(t *testing.T) {
		f := newFixture()
		f.metrics.metrics = payout.Metrics{ViewCount: 999}
		submission, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
			CampaignID:    f.campaign.ID,
			UserID:        f.userID,
			PostRef:       "post-1",
			WalletAddress: testUserWallet,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.SubmissionStatusRejected, submission.Status)
		assert.Equal(t, reasonThresholdsNotMet, submission.RejectionReason)
		assert.Zero(t, submission.PayoutAmount)
	})

	t.Run("rejected on zero payout", func(t *testing.T) {
		f := newFixture()
		f.scores.score = 0
		submission, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
			CampaignID:    f.campaign.ID,
			UserID:        f.userID,
			PostRef:       "post-1",
			WalletAddress: testUserWallet,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.SubmissionStatusRejected, submission.Status)
		assert.Equal(t, reasonZeroPayout, submission.RejectionReason)
	})

	t.Run("unscored user blocked", func(t *testing.T) {
		f := newFixture()
		f.scores.ok = false
		_, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
			CampaignID:    f.campaign.ID,
			UserID:        f.userID,
			PostRef:       "post-1",
			WalletAddress: testUserWallet,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Forbidden)
	})

	t.Run("banned user blocked", func(t *testing.T) {
		f := newFixture()
		f.settlementDg.bans[banKey(f.creatorID, f.userID)] = true
		_, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
			CampaignID:    f.campaign.ID,
			UserID:        f.userID,
			PostRef:       "post-1",
			WalletAddress: testUserWallet,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Forbidden)
	})

	t.Run("campaign past deadline", func(t *testing.T) {
		f := newFixture()
		f.campaign.Deadline = time.Now().Add(-time.Hour)
		_, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
			CampaignID:    f.campaign.ID,
			UserID:        f.userID,
			PostRef:       "post-1",
			WalletAddress: testUserWallet,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.Forbidden)
	})

	t.Run("invalid wallet address", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
			CampaignID:    f.campaign.ID,
			UserID:        f.userID,
			PostRef:       "post-1",
			WalletAddress: "not base58 0OIl",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("bonus granted once per campaign and user", func(t *testing.T) {
		f := newFixture()
		f.campaign.BonusMinScore = 5000
		f.campaign.BonusMaxAmount = 50_000_000

		first := f.submitApproved(ctx)
		assert.Equal(t, int64(50_000_000), first.BonusAmount)

		second := f.submitApproved(ctx)
		assert.Zero(t, second.BonusAmount)
	})
}
