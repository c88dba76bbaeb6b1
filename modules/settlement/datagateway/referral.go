package datagateway

import (
	"context"

	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/google/uuid"
)

type ReferralDataGateway interface {
	// GetReferral returns the user's referral binding. Returns errs.NotFound if the user has no referrer.
	GetReferral(ctx context.Context, userID uuid.UUID) (*entity.Referral, error)
	// CreateReferral records a referral binding with its locked tier and fee share.
	// Returns errs.Duplicate if the user already has a referrer.
	CreateReferral(ctx context.Context, referral *entity.Referral) error

	// ClaimTierSlot consumes one slot of the given tier with a conditional
	// increment. It reports false, without error, when the tier is full.
	ClaimTierSlot(ctx context.Context, tier int) (bool, error)
	// SeedTierCounters upserts the configured tier capacities and fee shares.
	// Occupancy of existing tiers is preserved.
	SeedTierCounters(ctx context.Context, tiers []entity.ReferralTierCounter) error
	GetTierCounters(ctx context.Context) ([]entity.ReferralTierCounter, error)
}
