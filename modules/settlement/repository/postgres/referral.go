package postgres

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/repository/postgres/gen"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) GetReferral(ctx context.Context, userID uuid.UUID) (*entity.Referral, error) {
	referral, err := r.queries.GetReferral(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.WithStack(errs.NotFound)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	return mapReferral(referral), nil
}

func (r *Repository) CreateReferral(ctx context.Context, referral *entity.Referral) error {
	err := r.queries.CreateReferral(ctx, gen.CreateReferralParams{
		UserID:          referral.UserID,
		ReferrerID:      referral.ReferrerID,
		ReferrerWallet:  referral.ReferrerWallet,
		Tier:            int32(referral.Tier),
		FeeSharePercent: int32(referral.FeeSharePercent),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return errors.WithStack(errs.Duplicate)
		}
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) ClaimTierSlot(ctx context.Context, tier int) (bool, error) {
	rows, err := r.queries.ClaimTierSlot(ctx, int32(tier))
	if err != nil {
		return false, errors.Wrap(err, "error during exec")
	}
	return rows > 0, nil
}

func (r *Repository) SeedTierCounters(ctx context.Context, tiers []entity.ReferralTierCounter) error {
	for _, tier := range tiers {
		err := r.queries.UpsertTierCounter(ctx, gen.UpsertTierCounterParams{
			Tier:            int32(tier.Tier),
			Capacity:        tier.Capacity,
			FeeSharePercent: int32(tier.FeeSharePercent),
		})
		if err != nil {
			return errors.Wrap(err, "error during exec")
		}
	}
	return nil
}

func (r *Repository) GetTierCounters(ctx context.Context) ([]entity.ReferralTierCounter, error) {
	counters, err := r.queries.GetTierCounters(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	return mapTierCounters(counters), nil
}
