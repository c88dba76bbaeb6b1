package usecase

import (
	"context"
	"time"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

type SignupReferralParams struct {
	UserID         uuid.UUID
	ReferrerID     uuid.UUID
	ReferrerWallet string
}

// SignupReferral binds a user to their referrer under the first referral tier
// with an open slot. Slot consumption is an atomic conditional increment per
// tier: when a tier fills up, the next signup rolls to the following tier, and
// the tier plus fee share claimed here stay locked on the referral forever.
func (u *Usecase) SignupReferral(ctx context.Context, params SignupReferralParams) (*entity.Referral, error) {
	if params.UserID == params.ReferrerID {
		return nil, errors.Join(errs.NewPublicError("users cannot refer themselves"), errs.InvalidArgument)
	}
	if _, err := base58.Decode(params.ReferrerWallet); err != nil {
		return nil, errors.Join(errs.NewPublicError("referrer wallet is not a valid base58 address"), errs.InvalidArgument)
	}
	if _, err := u.referralDg.GetReferral(ctx, params.UserID); err == nil {
		return nil, errors.Join(errs.NewPublicError("user already has a referrer"), errs.Duplicate)
	} else if !errors.Is(err, errs.NotFound) {
		return nil, errors.Wrap(err, "failed to check existing referral")
	}

	tier := -1
	for i := range u.config.ReferralTiers {
		claimed, err := u.referralDg.ClaimTierSlot(ctx, i)
		if err != nil {
			return nil, errors.Wrap(err, "failed to claim referral tier slot")
		}
		if claimed {
			tier = i
			break
		}
	}
	if tier < 0 {
		return nil, errors.Join(errs.NewPublicError("referral program is full"), errs.Forbidden)
	}

	referral := &entity.Referral{
		UserID:          params.UserID,
		ReferrerID:      params.ReferrerID,
		ReferrerWallet:  params.ReferrerWallet,
		Tier:            tier,
		FeeSharePercent: u.config.ReferralTiers[tier].FeeSharePercent,
		CreatedAt:       time.Now(),
	}
	if err := u.referralDg.CreateReferral(ctx, referral); err != nil {
		if errors.Is(err, errs.Duplicate) {
			return nil, errors.Join(errs.NewPublicError("user already has a referrer"), err)
		}
		return nil, errors.Wrap(err, "failed to create referral")
	}

	u.notifier.Notify(ctx, params.ReferrerID, provider.NotificationReferralRegistered, map[string]any{
		"userId":          params.UserID,
		"tier":            tier,
		"feeSharePercent": referral.FeeSharePercent,
	})
	return referral, nil
}
