package postgres

import (
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/modules/settlement/repository/postgres/gen"
	"github.com/samber/lo"
)

func mapCampaign(item gen.Campaign) *entity.Campaign {
	return &entity.Campaign{
		ID:                      item.ID,
		CreatorID:               item.CreatorID,
		Name:                    item.Name,
		CPMRate:                 item.CpmRate,
		BudgetTotal:             item.BudgetTotal,
		BudgetRemaining:         item.BudgetRemaining,
		MinViewCount:            item.MinViewCount,
		MinLikeCount:            item.MinLikeCount,
		MinRetweetCount:         item.MinRetweetCount,
		MinCommentCount:         item.MinCommentCount,
		MinPayoutThreshold:      item.MinPayoutThreshold,
		MaxBudgetPerUserPercent: int(item.MaxBudgetPerUserPercent),
		MaxBudgetPerPostPercent: int(item.MaxBudgetPerPostPercent),
		BonusMinScore:           item.BonusMinScore,
		BonusMaxAmount:          item.BonusMaxAmount,
		RequiredFollow:          item.RequiredFollow,
		VaultID:                 item.VaultID.UUID,
		Deadline:                item.Deadline.Time,
		CreatedAt:               item.CreatedAt.Time,
		UpdatedAt:               item.UpdatedAt.Time,
	}
}

func mapSubmission(item gen.Submission) *entity.Submission {
	return &entity.Submission{
		ID:         item.ID,
		CampaignID: item.CampaignID,
		UserID:     item.UserID,
		PostRef:    item.PostRef,

		WalletAddress: item.WalletAddress,

		Metrics: payout.Metrics{
			ViewCount:    item.ViewCount,
			LikeCount:    item.LikeCount,
			RetweetCount: item.RetweetCount,
			CommentCount: item.CommentCount,
		},

		Status:            entity.SubmissionStatus(item.Status),
		PayoutAmount:      item.PayoutAmount,
		BonusAmount:       item.BonusAmount,
		ScoreAtSubmission: item.ScoreAtSubmission,
		MultiplierApplied: payout.Multiplier(item.MultiplierApplied),
		RejectionReason:   item.RejectionReason,

		PaymentProposalIndex: item.PaymentProposalIndex,
		PaymentSignature:     item.PaymentSignature,

		CreatedAt: item.CreatedAt.Time,
		UpdatedAt: item.UpdatedAt.Time,
	}
}

func mapEscrowVault(item gen.EscrowVault) *entity.EscrowVault {
	return &entity.EscrowVault{
		ID:               item.ID,
		CampaignID:       item.CampaignID,
		MultisigAddress:  item.MultisigAddress,
		VaultAddress:     item.VaultAddress,
		Threshold:        int(item.Threshold),
		Members:          item.Members,
		TransactionIndex: item.TransactionIndex,
		CreatedAt:        item.CreatedAt.Time,
	}
}

func mapReferral(item gen.Referral) *entity.Referral {
	return &entity.Referral{
		UserID:          item.UserID,
		ReferrerID:      item.ReferrerID,
		ReferrerWallet:  item.ReferrerWallet,
		Tier:            int(item.Tier),
		FeeSharePercent: int(item.FeeSharePercent),
		CreatedAt:       item.CreatedAt.Time,
	}
}

func mapTierCounters(counters []gen.ReferralTierCounter) []entity.ReferralTierCounter {
	return lo.Map(counters, func(item gen.ReferralTierCounter, _ int) entity.ReferralTierCounter {
		return entity.ReferralTierCounter{
			Tier:            int(item.Tier),
			Capacity:        item.Capacity,
			Used:            item.Used,
			FeeSharePercent: int(item.FeeSharePercent),
		}
	})
}
