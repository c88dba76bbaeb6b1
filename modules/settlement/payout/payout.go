package payout

import (
	"math/big"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/cockroachdb/errors"
)

// MaxScore is the maximum creator quality score.
const MaxScore = 10000

// Metrics is the engagement snapshot captured once per submission.
type Metrics struct {
	ViewCount    int64
	LikeCount    int64
	RetweetCount int64
	CommentCount int64
}

// Thresholds are the campaign's minimum-engagement requirements. A zero field
// disables that threshold.
type Thresholds struct {
	MinViewCount    int64
	MinLikeCount    int64
	MinRetweetCount int64
	MinCommentCount int64
}

// Passes reports whether the metrics satisfy every configured threshold.
// Thresholds are a conjunction: failing any one of them rejects the submission
// regardless of the others.
func (t Thresholds) Passes(m Metrics) bool {
	if m.ViewCount < t.MinViewCount {
		return false
	}
	if m.LikeCount < t.MinLikeCount {
		return false
	}
	if m.RetweetCount < t.MinRetweetCount {
		return false
	}
	if m.CommentCount < t.MinCommentCount {
		return false
	}
	return true
}

// Multiplier is a score-derived payout multiplier, stored as the clamped score
// c in [0, MaxScore]. The effective multiplier is c^2 / MaxScore^2, a quadratic
// curve that punishes low scores disproportionately: 30% of max score yields
// only a ~9% multiplier.
type Multiplier int64

// ScoreMultiplier clamps score into [0, MaxScore].
func ScoreMultiplier(score int64) Multiplier {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return Multiplier(score)
}

// Value returns the effective multiplier in [0, 1]. For display only; payout
// arithmetic never touches floating point.
func (m Multiplier) Value() float64 {
	c := float64(m) / MaxScore
	return c * c
}

// BasePayout computes floor(viewCount / 1000 * cpmRate * multiplier) in
// integer base units. Intermediate products run through big.Int so the result
// is exact and reproducible; a quotient outside int64 is an overflow error.
func BasePayout(viewCount, cpmRate int64, m Multiplier) (int64, error) {
	if viewCount < 0 {
		return 0, errors.Wrapf(errs.InvalidArgument, "view count must not be negative, got %d", viewCount)
	}
	if cpmRate < 0 {
		return 0, errors.Wrapf(errs.InvalidArgument, "cpm rate must not be negative, got %d", cpmRate)
	}
	x := new(big.Int).Mul(big.NewInt(viewCount), big.NewInt(cpmRate))
	x.Mul(x, big.NewInt(int64(m)*int64(m)))
	x.Quo(x, big.NewInt(1000*MaxScore*MaxScore))
	if !x.IsInt64() {
		return 0, errors.Wrap(errs.Overflow, "base payout exceeds int64")
	}
	return x.Int64(), nil
}

// PercentOf computes floor(amount * percent / 100) without floating point.
func PercentOf(amount int64, percent int) int64 {
	x := new(big.Int).Mul(big.NewInt(amount), big.NewInt(int64(percent)))
	x.Quo(x, big.NewInt(100))
	if !x.IsInt64() {
		// amount and percent are validated upstream; a non-int64 quotient can
		// only happen with percent > 100, which Validate rejects.
		return amount
	}
	return x.Int64()
}

// Bonus computes the one-time bonus for score, linearly scaled from 0 at
// minScore up to maxBonus at MaxScore. Scores below minScore earn nothing.
func Bonus(score, minScore, maxBonus int64) int64 {
	if maxBonus <= 0 || score < minScore {
		return 0
	}
	if minScore >= MaxScore || score >= MaxScore {
		return maxBonus
	}
	x := new(big.Int).Mul(big.NewInt(maxBonus), big.NewInt(score-minScore))
	x.Quo(x, big.NewInt(MaxScore-minScore))
	return x.Int64()
}

// Rules are the campaign parameters that drive payout computation.
type Rules struct {
	CPMRate            int64
	BudgetTotal        int64
	Thresholds         Thresholds
	MinPayoutThreshold int64

	// MaxBudgetPerPostPercent and MaxBudgetPerUserPercent cap a single post and
	// a single user's cumulative committed payouts as a percentage of the total
	// budget. Zero disables the cap.
	MaxBudgetPerPostPercent int
	MaxBudgetPerUserPercent int

	// BonusMinScore/BonusMaxAmount define the optional one-time bonus rule.
	// BonusMaxAmount == 0 disables it.
	BonusMinScore  int64
	BonusMaxAmount int64
}

// Input is the per-submission state the calculator needs.
type Input struct {
	Metrics Metrics
	Score   int64

	// PriorBonusGrants is the count of the submitter's prior submissions on
	// this campaign with a granted bonus, in states approved, payment
	// requested or paid. The bonus is granted at most once per
	// (campaign, submitter) pair, ever.
	PriorBonusGrants int64

	// UserCommitted is the submitter's cumulative committed (approved + paid)
	// amount on this campaign, used for the per-user cap.
	UserCommitted int64
}

// Result is the outcome of evaluating a submission. A zero payout is a valid,
// final outcome, not an error; it blocks any approval action.
type Result struct {
	Eligible   bool
	Payout     int64
	Bonus      int64
	Multiplier Multiplier
}

// Evaluate runs the full gate and cap pipeline: engagement thresholds, base
// payout, per-post and per-user caps, minimum payout threshold, then the
// one-time bonus on top of a non-zero payout.
func Evaluate(rules Rules, in Input) (Result, error) {
	m := ScoreMultiplier(in.Score)
	if !rules.Thresholds.Passes(in.Metrics) {
		return Result{Eligible: false, Multiplier: m}, nil
	}

	amount, err := BasePayout(in.Metrics.ViewCount, rules.CPMRate, m)
	if err != nil {
		return Result{}, errors.WithStack(err)
	}
	if rules.MaxBudgetPerPostPercent > 0 {
		if postCap := PercentOf(rules.BudgetTotal, rules.MaxBudgetPerPostPercent); amount > postCap {
			amount = postCap
		}
	}
	if rules.MaxBudgetPerUserPercent > 0 {
		remaining := PercentOf(rules.BudgetTotal, rules.MaxBudgetPerUserPercent) - in.UserCommitted
		if remaining < 0 {
			remaining = 0
		}
		if amount > remaining {
			amount = remaining
		}
	}
	if amount < rules.MinPayoutThreshold {
		amount = 0
	}

	result := Result{Eligible: true, Payout: amount, Multiplier: m}
	if amount > 0 && rules.BonusMaxAmount > 0 && in.Score >= rules.BonusMinScore && in.PriorBonusGrants == 0 {
		result.Bonus = Bonus(in.Score, rules.BonusMinScore, rules.BonusMaxAmount)
	}
	return result, nil
}
