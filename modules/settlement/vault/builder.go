package vault

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"
)

// Instruction discriminators of the escrow program.
const (
	ixVaultTransactionCreate byte = iota
	ixProposalCreate
	ixProposalApprove
	ixVaultTransactionExecute
)

// TransferLeg is one outgoing transfer of a settlement.
type TransferLeg struct {
	Destination string
	Amount      int64
}

// TransferMessage enumerates the transfers of one settlement in execution
// order: recipient, platform, referrer. Zero-amount legs are omitted.
type TransferMessage struct {
	Legs []TransferLeg
}

// Destinations are the payout wallet addresses for each split component.
type Destinations struct {
	Recipient string
	Platform  string
	Referrer  string
}

// Bundle is an atomically-submitted escrow transaction: create the
// escrow-internal transfer, create a proposal referencing it, approve it, and
// execute it when the payer alone meets the signature threshold. The chain
// applies all instructions or none, so no intermediate "proposal created but
// not approved" state is ever persisted.
type Bundle struct {
	Transaction   solrpc.Transaction
	ProposalIndex int64

	// ExecuteIncluded is false for multi-party vaults: execution then happens
	// in a later submission from another member and must be confirmed
	// independently before any local state reports the payment as made.
	ExecuteIncluded bool
}

// Builder assembles escrow program instructions. The threshold-signature
// cryptography itself is supplied by the escrow protocol; the builder only
// lays out instructions and account lists.
type Builder struct {
	programID string
}

func NewBuilder(programID string) *Builder {
	return &Builder{programID: programID}
}

// BuildTransferMessage lays out the transfer legs for a payout split.
// Zero-amount legs are dropped so the escrow program never sees an empty
// transfer.
func (b *Builder) BuildTransferMessage(split payout.Split, dest Destinations) TransferMessage {
	var msg TransferMessage
	if split.Recipient > 0 {
		msg.Legs = append(msg.Legs, TransferLeg{Destination: dest.Recipient, Amount: split.Recipient})
	}
	if split.Platform > 0 {
		msg.Legs = append(msg.Legs, TransferLeg{Destination: dest.Platform, Amount: split.Platform})
	}
	if split.Referrer > 0 {
		msg.Legs = append(msg.Legs, TransferLeg{Destination: dest.Referrer, Amount: split.Referrer})
	}
	return msg
}

// BuildSettlementBundle builds the full settlement for vault v: transaction
// create, proposal create, approval by payer, and execution when payer alone
// meets the threshold. The proposal index is the vault's next monotonic
// transaction index.
func (b *Builder) BuildSettlementBundle(v *entity.EscrowVault, msg TransferMessage, payer string) (*Bundle, error) {
	if len(msg.Legs) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "transfer message has no legs")
	}
	index := v.TransactionIndex + 1
	proposal, err := DeriveProposalAddress(v.MultisigAddress, index)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	createData, err := encodeTransactionCreate(index, msg)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	tx := solrpc.Transaction{
		FeePayer: payer,
		Instructions: []solrpc.Instruction{
			{
				ProgramID: b.programID,
				Accounts: []solrpc.AccountMeta{
					{Address: v.MultisigAddress, Writable: true},
					{Address: payer, Signer: true, Writable: true},
				},
				Data: createData,
			},
			{
				ProgramID: b.programID,
				Accounts: []solrpc.AccountMeta{
					{Address: v.MultisigAddress, Writable: true},
					{Address: proposal, Writable: true},
					{Address: payer, Signer: true, Writable: true},
				},
				Data: encodeIndexed(ixProposalCreate, index),
			},
			{
				ProgramID: b.programID,
				Accounts: []solrpc.AccountMeta{
					{Address: v.MultisigAddress},
					{Address: proposal, Writable: true},
					{Address: payer, Signer: true},
				},
				Data: encodeIndexed(ixProposalApprove, index),
			},
		},
	}

	bundle := &Bundle{Transaction: tx, ProposalIndex: index}
	if v.CreatorControlled() {
		bundle.Transaction.Instructions = append(bundle.Transaction.Instructions, b.buildExecuteInstruction(v, proposal, index, msg, payer))
		bundle.ExecuteIncluded = true
	}
	return bundle, nil
}

// BuildApprovalBundle builds a standalone approval from one member of a
// multi-party vault for an existing proposal.
func (b *Builder) BuildApprovalBundle(v *entity.EscrowVault, index int64, member string) (*Bundle, error) {
	proposal, err := DeriveProposalAddress(v.MultisigAddress, index)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Bundle{
		ProposalIndex: index,
		Transaction: solrpc.Transaction{
			FeePayer: member,
			Instructions: []solrpc.Instruction{{
				ProgramID: b.programID,
				Accounts: []solrpc.AccountMeta{
					{Address: v.MultisigAddress},
					{Address: proposal, Writable: true},
					{Address: member, Signer: true},
				},
				Data: encodeIndexed(ixProposalApprove, index),
			}},
		},
	}, nil
}

// BuildExecutionBundle builds a standalone execution for a proposal that has
// reached its approval threshold. The executing member must supply the exact
// transfer message originally proposed: the escrow program validates the
// account list against it and rejects mismatches.
func (b *Builder) BuildExecutionBundle(v *entity.EscrowVault, index int64, msg TransferMessage, member string) (*Bundle, error) {
	if len(msg.Legs) == 0 {
		return nil, errors.Wrap(errs.InvalidArgument, "transfer message has no legs")
	}
	proposal, err := DeriveProposalAddress(v.MultisigAddress, index)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Bundle{
		ProposalIndex:   index,
		ExecuteIncluded: true,
		Transaction: solrpc.Transaction{
			FeePayer:     member,
			Instructions: []solrpc.Instruction{b.buildExecuteInstruction(v, proposal, index, msg, member)},
		},
	}, nil
}

// buildExecuteInstruction lays out the execute step. The account list ends
// with the vault and each leg destination in transfer order; the escrow
// program re-derives the inner transfer instructions from exactly this list.
func (b *Builder) buildExecuteInstruction(v *entity.EscrowVault, proposal string, index int64, msg TransferMessage, executor string) solrpc.Instruction {
	accounts := []solrpc.AccountMeta{
		{Address: v.MultisigAddress},
		{Address: proposal, Writable: true},
		{Address: executor, Signer: true},
		{Address: v.VaultAddress, Writable: true},
	}
	for _, leg := range msg.Legs {
		accounts = append(accounts, solrpc.AccountMeta{Address: leg.Destination, Writable: true})
	}
	return solrpc.Instruction{
		ProgramID: b.programID,
		Accounts:  accounts,
		Data:      encodeIndexed(ixVaultTransactionExecute, index),
	}
}

// DeriveProposalAddress derives the deterministic proposal account for a
// multisig and transaction index.
func DeriveProposalAddress(multisig string, index int64) (string, error) {
	raw, err := base58.Decode(multisig)
	if err != nil {
		return "", errors.Wrapf(errs.InvalidArgument, "multisig address is not valid base58: %s", err)
	}
	seed := make([]byte, 0, len(raw)+8+len("proposal"))
	seed = append(seed, raw...)
	seed = binary.LittleEndian.AppendUint64(seed, uint64(index))
	seed = append(seed, []byte("proposal")...)
	sum := sha256.Sum256(seed)
	return base58.Encode(sum[:]), nil
}

func encodeIndexed(discriminator byte, index int64) []byte {
	data := make([]byte, 0, 9)
	data = append(data, discriminator)
	data = binary.LittleEndian.AppendUint64(data, uint64(index))
	return data
}

func encodeTransactionCreate(index int64, msg TransferMessage) ([]byte, error) {
	data := make([]byte, 0, 9+1+len(msg.Legs)*40)
	data = append(data, ixVaultTransactionCreate)
	data = binary.LittleEndian.AppendUint64(data, uint64(index))
	data = append(data, byte(len(msg.Legs)))
	for _, leg := range msg.Legs {
		raw, err := base58.Decode(leg.Destination)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "destination %q is not valid base58: %s", leg.Destination, err)
		}
		data = append(data, raw...)
		data = binary.LittleEndian.AppendUint64(data, uint64(leg.Amount))
	}
	return data, nil
}
