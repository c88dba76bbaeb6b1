package entity

import (
	"time"

	"github.com/google/uuid"
)

// Referral binds a user to their referrer. Tier and FeeSharePercent are locked
// at signup time and never change afterwards, even as global tier occupancy
// advances past this tier.
type Referral struct {
	UserID     uuid.UUID
	ReferrerID uuid.UUID

	// ReferrerWallet receives the referrer's share of payout fees, base58.
	ReferrerWallet string

	Tier            int
	FeeSharePercent int
	CreatedAt       time.Time
}

// ReferralTierCounter tracks occupancy of one capacity-limited tier. Slots are
// consumed by an atomic conditional increment; when a tier is full the next
// signup rolls over to the following tier.
type ReferralTierCounter struct {
	Tier            int
	Capacity        int64
	Used            int64
	FeeSharePercent int
}

// CreatorBan permanently bans a submitter from a creator's campaigns. Recorded
// when a creator rejects a submission with the ban flag set.
type CreatorBan struct {
	CreatorID uuid.UUID
	UserID    uuid.UUID
	Reason    string
	CreatedAt time.Time
}

// CampaignTopUp records a verified on-chain funding transaction that increased
// a campaign budget. The funding signature is unique, making top-ups
// idempotent under client retries.
type CampaignTopUp struct {
	CampaignID       uuid.UUID
	Amount           int64
	FundingSignature string
	CreatedAt        time.Time
}
