package config

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/internal/postgres"
	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"
)

type Config struct {
	Postgres postgres.Config `mapstructure:"postgres"`

	// PlatformFeeBps is the platform fee in basis points (0-10000) applied to
	// every released payout.
	PlatformFeeBps int `mapstructure:"platform_fee_bps"`

	// PlatformWallet receives the platform share of each payout.
	PlatformWallet string `mapstructure:"platform_wallet"`

	// EscrowProgram is the address of the threshold-signature escrow program
	// that owns campaign vaults.
	EscrowProgram string `mapstructure:"escrow_program"`

	// SignerKey is the base58-encoded ed25519 private key used to sign
	// settlement bundles for creator-controlled vaults. Leave empty to run
	// without direct escrow release.
	SignerKey string `mapstructure:"signer_key"`

	// ReferralTiers are ordered, capacity-limited brackets. A referrer's share
	// is locked to the open tier at signup time.
	ReferralTiers []ReferralTier `mapstructure:"referral_tiers"`

	// ConfirmRetries bounds confirmation polling per chain submission.
	ConfirmRetries int `mapstructure:"confirm_retries"`

	Metrics  MetricsProviderConfig `mapstructure:"metrics"`
	Score    ScoreProviderConfig   `mapstructure:"score"`
	Notifier NotifierConfig        `mapstructure:"notifier"`
}

type ReferralTier struct {
	Capacity        int64 `mapstructure:"capacity"`
	FeeSharePercent int   `mapstructure:"fee_share_percent"`
}

type MetricsProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type ScoreProviderConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type NotifierConfig struct {
	Disabled bool   `mapstructure:"disabled"`
	BaseURL  string `mapstructure:"base_url"`
}

// Validate checks the configuration once at startup so invalid fee or wallet
// settings fail the process instead of surfacing per request.
func (c Config) Validate() error {
	if c.PlatformFeeBps < 0 || c.PlatformFeeBps > 10000 {
		return errors.Wrapf(errs.InvalidArgument, "platform_fee_bps must be in [0, 10000], got %d", c.PlatformFeeBps)
	}
	if c.PlatformFeeBps > 0 && c.PlatformWallet == "" {
		return errors.Wrap(errs.InvalidArgument, "platform_wallet is required when platform_fee_bps > 0")
	}
	if c.PlatformWallet != "" {
		if _, err := base58.Decode(c.PlatformWallet); err != nil {
			return errors.Wrapf(errs.InvalidArgument, "platform_wallet is not a valid base58 address: %s", err)
		}
	}
	if c.EscrowProgram == "" {
		return errors.Wrap(errs.InvalidArgument, "escrow_program is required")
	}
	if _, err := base58.Decode(c.EscrowProgram); err != nil {
		return errors.Wrapf(errs.InvalidArgument, "escrow_program is not a valid base58 address: %s", err)
	}
	for i, tier := range c.ReferralTiers {
		if tier.Capacity <= 0 {
			return errors.Wrapf(errs.InvalidArgument, "referral tier %d capacity must be positive", i)
		}
		if tier.FeeSharePercent < 0 || tier.FeeSharePercent > 100 {
			return errors.Wrapf(errs.InvalidArgument, "referral tier %d fee share must be in [0, 100]", i)
		}
	}
	if c.ConfirmRetries < 0 {
		return errors.Wrap(errs.InvalidArgument, "confirm_retries must not be negative")
	}
	return nil
}
