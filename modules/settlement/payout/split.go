package payout

import (
	"math/big"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/cockroachdb/errors"
)

// Split is the three-way division of a gross payout. The invariant
// Recipient + Platform + Referrer == gross holds exactly for every valid input.
type Split struct {
	Recipient int64
	Platform  int64
	Referrer  int64
}

// Total returns the gross amount the split was computed from.
func (s Split) Total() int64 {
	return s.Recipient + s.Platform + s.Referrer
}

// NewSplit divides total between recipient, platform and referrer.
//
// The platform fee is floor(total * platformFeeBps / 10000) and the recipient
// keeps the rest, so the rounding remainder always favors the recipient. When
// a referrer is present, referrerSharePercent (the share locked at referral
// signup) carves floor(fee * share / 100) out of the platform fee; the
// remainder of the fee stays with the platform. With platformFeeBps == 0 the
// split degenerates to the whole amount going to the recipient.
func NewSplit(total int64, platformFeeBps int, referrerSharePercent int, hasReferrer bool) (Split, error) {
	if total < 0 {
		return Split{}, errors.Wrapf(errs.InvalidArgument, "split total must not be negative, got %d", total)
	}
	if platformFeeBps < 0 || platformFeeBps > 10000 {
		return Split{}, errors.Wrapf(errs.InvalidArgument, "platform fee bps must be in [0, 10000], got %d", platformFeeBps)
	}
	if hasReferrer && (referrerSharePercent < 0 || referrerSharePercent > 100) {
		return Split{}, errors.Wrapf(errs.InvalidArgument, "referrer share percent must be in [0, 100], got %d", referrerSharePercent)
	}

	fee := new(big.Int).Mul(big.NewInt(total), big.NewInt(int64(platformFeeBps)))
	fee.Quo(fee, big.NewInt(10000))
	platformFee := fee.Int64()

	split := Split{Recipient: total - platformFee}
	if hasReferrer {
		split.Referrer = PercentOf(platformFee, referrerSharePercent)
	}
	split.Platform = platformFee - split.Referrer
	return split, nil
}
