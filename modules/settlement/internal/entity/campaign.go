package entity

import (
	"time"

	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/google/uuid"
)

// Campaign is a creator-funded promotion with a CPM payout model. BudgetTotal
// and BudgetRemaining are integer base units; BudgetRemaining never exceeds
// BudgetTotal and never goes below zero, enforced at the storage layer.
type Campaign struct {
	ID              uuid.UUID
	CreatorID       uuid.UUID
	Name            string
	CPMRate         int64
	BudgetTotal     int64
	BudgetRemaining int64

	MinViewCount       int64
	MinLikeCount       int64
	MinRetweetCount    int64
	MinCommentCount    int64
	MinPayoutThreshold int64

	MaxBudgetPerUserPercent int
	MaxBudgetPerPostPercent int

	BonusMinScore  int64
	BonusMaxAmount int64

	// RequiredFollow is an advisory follow requirement shown to participants.
	// It is not enforced by the settlement core.
	RequiredFollow string

	VaultID   uuid.UUID
	Deadline  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PayoutRules assembles the payout calculator rules from the campaign config.
func (c *Campaign) PayoutRules() payout.Rules {
	return payout.Rules{
		CPMRate:     c.CPMRate,
		BudgetTotal: c.BudgetTotal,
		Thresholds: payout.Thresholds{
			MinViewCount:    c.MinViewCount,
			MinLikeCount:    c.MinLikeCount,
			MinRetweetCount: c.MinRetweetCount,
			MinCommentCount: c.MinCommentCount,
		},
		MinPayoutThreshold:      c.MinPayoutThreshold,
		MaxBudgetPerPostPercent: c.MaxBudgetPerPostPercent,
		MaxBudgetPerUserPercent: c.MaxBudgetPerUserPercent,
		BonusMinScore:           c.BonusMinScore,
		BonusMaxAmount:          c.BonusMaxAmount,
	}
}
