package entity

import (
	"time"

	"github.com/google/uuid"
)

// EscrowVault is a campaign's threshold-signature escrow account. It is
// created once at campaign funding time; membership is immutable thereafter.
// The settlement core only reads it and advances TransactionIndex when a new
// transfer proposal is created.
type EscrowVault struct {
	ID         uuid.UUID
	CampaignID uuid.UUID

	// MultisigAddress is the escrow policy account, VaultAddress the
	// funds-holding address it controls. Both base58.
	MultisigAddress string
	VaultAddress    string

	Threshold int
	Members   []string

	// TransactionIndex is the monotonic index of the last created transfer
	// proposal on this vault.
	TransactionIndex int64

	CreatedAt time.Time
}

// CreatorControlled reports whether a single member meets the signature
// threshold, allowing create, propose, approve and execute to be bundled into
// one atomic submission.
func (v *EscrowVault) CreatorControlled() bool {
	return v.Threshold <= 1
}
