package payout

import (
	"testing"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMultiplier(t *testing.T) {
	assert.Equal(t, Multiplier(0), ScoreMultiplier(-100))
	assert.Equal(t, Multiplier(0), ScoreMultiplier(0))
	assert.Equal(t, Multiplier(3000), ScoreMultiplier(3000))
	assert.Equal(t, Multiplier(MaxScore), ScoreMultiplier(MaxScore))
	assert.Equal(t, Multiplier(MaxScore), ScoreMultiplier(MaxScore+1))

	assert.Equal(t, float64(0), ScoreMultiplier(0).Value())
	assert.Equal(t, float64(1), ScoreMultiplier(MaxScore).Value())

	// quadratic curve: 30% of max score yields a 9% multiplier
	assert.InDelta(t, 0.09, ScoreMultiplier(3000).Value(), 1e-9)

	// monotonic non-decreasing, always within [0, 1]
	prev := float64(0)
	for score := int64(0); score <= MaxScore; score += 250 {
		v := ScoreMultiplier(score).Value()
		assert.GreaterOrEqual(t, v, prev)
		assert.GreaterOrEqual(t, v, float64(0))
		assert.LessOrEqual(t, v, float64(1))
		prev = v
	}
}

func TestBasePayout(t *testing.T) {
	// 8000 views at 30,000,000 base units per 1000 views, full multiplier
	got, err := BasePayout(8000, 30_000_000, ScoreMultiplier(MaxScore))
	require.NoError(t, err)
	assert.Equal(t, int64(240_000_000), got)

	// half score -> quarter multiplier
	got, err = BasePayout(8000, 30_000_000, ScoreMultiplier(5000))
	require.NoError(t, err)
	assert.Equal(t, int64(60_000_000), got)

	// zero score pays nothing
	got, err = BasePayout(8000, 30_000_000, ScoreMultiplier(0))
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)

	// sub-1000 view counts floor cleanly
	got, err = BasePayout(999, 1000, ScoreMultiplier(MaxScore))
	require.NoError(t, err)
	assert.Equal(t, int64(999), got)

	_, err = BasePayout(-1, 1000, ScoreMultiplier(MaxScore))
	require.ErrorIs(t, err, errs.InvalidArgument)
	_, err = BasePayout(1000, -1, ScoreMultiplier(MaxScore))
	require.ErrorIs(t, err, errs.InvalidArgument)
}

func TestBasePayoutMonotonic(t *testing.T) {
	m := ScoreMultiplier(7777)
	var prev int64
	for views := int64(0); views <= 1_000_000; views += 33_333 {
		got, err := BasePayout(views, 12_345_678, m)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestThresholds(t *testing.T) {
	thresholds := Thresholds{MinViewCount: 1000, MinLikeCount: 10, MinCommentCount: 2}

	assert.True(t, thresholds.Passes(Metrics{ViewCount: 1000, LikeCount: 10, CommentCount: 2}))
	assert.True(t, thresholds.Passes(Metrics{ViewCount: 5000, LikeCount: 100, RetweetCount: 3, CommentCount: 50}))

	// thresholds are a conjunction: one failing metric rejects regardless of the rest
	assert.False(t, thresholds.Passes(Metrics{ViewCount: 999, LikeCount: 1000, CommentCount: 1000}))
	assert.False(t, thresholds.Passes(Metrics{ViewCount: 1_000_000, LikeCount: 9, CommentCount: 1000}))
	assert.False(t, thresholds.Passes(Metrics{ViewCount: 1_000_000, LikeCount: 1000, CommentCount: 1}))
}

func TestBonus(t *testing.T) {
	assert.Equal(t, int64(0), Bonus(4999, 5000, 1_000_000))
	assert.Equal(t, int64(0), Bonus(5000, 5000, 0))
	assert.Equal(t, int64(0), Bonus(5000, 5000, 1_000_000))
	assert.Equal(t, int64(1_000_000), Bonus(MaxScore, 5000, 1_000_000))

	// linear between minScore and MaxScore
	assert.Equal(t, int64(500_000), Bonus(7500, 5000, 1_000_000))
	assert.Equal(t, int64(200_000), Bonus(6000, 5000, 1_000_000))

	// degenerate rule with minScore at the ceiling grants the full bonus
	assert.Equal(t, int64(1_000_000), Bonus(MaxScore, MaxScore, 1_000_000))
}

func TestEvaluate(t *testing.T) {
	rules := Rules{
		CPMRate:     30_000_000,
		BudgetTotal: 10_000_000_000,
		Thresholds:  Thresholds{MinViewCount: 1000},
	}

	t.Run("rejected by engagement gate", func(t *testing.T) {
		result, err := Evaluate(rules, Input{Metrics: Metrics{ViewCount: 999}, Score: MaxScore})
		require.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Zero(t, result.Payout)
	})

	t.Run("full multiplier payout", func(t *testing.T) {
		result, err := Evaluate(rules, Input{Metrics: Metrics{ViewCount: 8000}, Score: MaxScore})
		require.NoError(t, err)
		assert.True(t, result.Eligible)
		assert.Equal(t, int64(240_000_000), result.Payout)
		assert.Zero(t, result.Bonus)
	})

	t.Run("identical views, different scores, different payouts", func(t *testing.T) {
		high, err := Evaluate(rules, Input{Metrics: Metrics{ViewCount: 8000}, Score: MaxScore})
		require.NoError(t, err)
		low, err := Evaluate(rules, Input{Metrics: Metrics{ViewCount: 8000}, Score: 3000})
		require.NoError(t, err)
		assert.Greater(t, high.Payout, low.Payout)
	})

	t.Run("per-post cap", func(t *testing.T) {
		capped := rules
		capped.MaxBudgetPerPostPercent = 1
		result, err := Evaluate(capped, Input{Metrics: Metrics{ViewCount: 8000}, Score: MaxScore})
		require.NoError(t, err)
		assert.Equal(t, int64(100_000_000), result.Payout)
	})

	t.Run("per-user cap counts committed amounts", func(t *testing.T) {
		capped := rules
		capped.MaxBudgetPerUserPercent = 3
		result, err := Evaluate(capped, Input{
			Metrics:       Metrics{ViewCount: 8000},
			Score:         MaxScore,
			UserCommitted: 250_000_000,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(50_000_000), result.Payout)

		result, err = Evaluate(capped, Input{
			Metrics:       Metrics{ViewCount: 8000},
			Score:         MaxScore,
			UserCommitted: 400_000_000,
		})
		require.NoError(t, err)
		assert.True(t, result.Eligible)
		assert.Zero(t, result.Payout)
	})

	t.Run("minimum payout threshold zeroes small payouts", func(t *testing.T) {
		gated := rules
		gated.MinPayoutThreshold = 300_000_000
		result, err := Evaluate(gated, Input{Metrics: Metrics{ViewCount: 8000}, Score: MaxScore})
		require.NoError(t, err)
		assert.True(t, result.Eligible)
		assert.Zero(t, result.Payout)
		assert.Zero(t, result.Bonus)
	})

	t.Run("bonus granted once per submitter", func(t *testing.T) {
		withBonus := rules
		withBonus.BonusMinScore = 5000
		withBonus.BonusMaxAmount = 1_000_000

		result, err := Evaluate(withBonus, Input{Metrics: Metrics{ViewCount: 8000}, Score: 7500})
		require.NoError(t, err)
		assert.Equal(t, int64(500_000), result.Bonus)

		// a prior granted bonus on this campaign blocks any further grant
		result, err = Evaluate(withBonus, Input{
			Metrics:          Metrics{ViewCount: 8000},
			Score:            7500,
			PriorBonusGrants: 1,
		})
		require.NoError(t, err)
		assert.Zero(t, result.Bonus)

		// score below the bonus floor earns no bonus
		result, err = Evaluate(withBonus, Input{Metrics: Metrics{ViewCount: 8000}, Score: 4999})
		require.NoError(t, err)
		assert.Zero(t, result.Bonus)
	})

	t.Run("invalid cpm rate surfaces", func(t *testing.T) {
		invalid := rules
		invalid.CPMRate = -1
		_, err := Evaluate(invalid, Input{Metrics: Metrics{ViewCount: 8000}, Score: MaxScore})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.InvalidArgument))
	})
}
