package vault

import (
	"testing"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProgramID = "SQDS4ep65T869zMMBKyuUq6aD6EgTu8psMjkvj52pCf"
	testMultisig  = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	testVault     = "7S3P4HxJpyyigGzodYwHtCxZyUQe9JiBMHyRWXArAaKv"
	testCreator   = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	testRecipient = "6VzWGL51jLcYTpCxbQyUqqXjK5a9VUp5qKDMW8hGZZK4"
	testPlatform  = "2wmVCSfPxGPjrnMMn7rchp4uaeoTqN39mXFC2zhPdri9"
	testReferrer  = "5yQzVkVc5JyyoMzVhZ2nK36zTS6nVmzQU2TkT2jv5q35"
)

func testEscrowVault(threshold int, members ...string) *entity.EscrowVault {
	return &entity.EscrowVault{
		MultisigAddress:  testMultisig,
		VaultAddress:     testVault,
		Threshold:        threshold,
		Members:          members,
		TransactionIndex: 4,
	}
}

func TestBuildTransferMessage(t *testing.T) {
	b := NewBuilder(testProgramID)
	dest := Destinations{Recipient: testRecipient, Platform: testPlatform, Referrer: testReferrer}

	t.Run("all legs in execution order", func(t *testing.T) {
		msg := b.BuildTransferMessage(payout.Split{Recipient: 700, Platform: 200, Referrer: 100}, dest)
		require.Len(t, msg.Legs, 3)
		assert.Equal(t, TransferLeg{Destination: testRecipient, Amount: 700}, msg.Legs[0])
		assert.Equal(t, TransferLeg{Destination: testPlatform, Amount: 200}, msg.Legs[1])
		assert.Equal(t, TransferLeg{Destination: testReferrer, Amount: 100}, msg.Legs[2])
	})

	t.Run("zero legs dropped", func(t *testing.T) {
		msg := b.BuildTransferMessage(payout.Split{Recipient: 900, Platform: 100}, dest)
		require.Len(t, msg.Legs, 2)
		destinations := lo.Map(msg.Legs, func(leg TransferLeg, _ int) string { return leg.Destination })
		assert.NotContains(t, destinations, testReferrer)
	})
}

func TestBuildSettlementBundle(t *testing.T) {
	b := NewBuilder(testProgramID)
	msg := TransferMessage{Legs: []TransferLeg{
		{Destination: testRecipient, Amount: 700},
		{Destination: testPlatform, Amount: 300},
	}}

	t.Run("creator controlled vault includes execution", func(t *testing.T) {
		v := testEscrowVault(1, testCreator)
		bundle, err := b.BuildSettlementBundle(v, msg, testCreator)
		require.NoError(t, err)

		assert.True(t, bundle.ExecuteIncluded)
		assert.Equal(t, int64(5), bundle.ProposalIndex)
		assert.Equal(t, testCreator, bundle.Transaction.FeePayer)
		require.Len(t, bundle.Transaction.Instructions, 4)

		for _, ix := range bundle.Transaction.Instructions {
			assert.Equal(t, testProgramID, ix.ProgramID)
		}
		assert.Equal(t, ixVaultTransactionCreate, bundle.Transaction.Instructions[0].Data[0])
		assert.Equal(t, ixProposalCreate, bundle.Transaction.Instructions[1].Data[0])
		assert.Equal(t, ixProposalApprove, bundle.Transaction.Instructions[2].Data[0])
		assert.Equal(t, ixVaultTransactionExecute, bundle.Transaction.Instructions[3].Data[0])

		// The execute account list ends with the vault and each destination in
		// transfer order.
		execute := bundle.Transaction.Instructions[3]
		addresses := lo.Map(execute.Accounts, func(meta solrpc.AccountMeta, _ int) string { return meta.Address })
		assert.Equal(t, []string{testMultisig, mustProposal(t, testMultisig, 5), testCreator, testVault, testRecipient, testPlatform}, addresses)
	})

	t.Run("multi party vault stops at approval", func(t *testing.T) {
		v := testEscrowVault(2, testCreator, testPlatform, testReferrer)
		bundle, err := b.BuildSettlementBundle(v, msg, testCreator)
		require.NoError(t, err)

		assert.False(t, bundle.ExecuteIncluded)
		require.Len(t, bundle.Transaction.Instructions, 3)
		assert.Equal(t, ixProposalApprove, bundle.Transaction.Instructions[2].Data[0])
	})

	t.Run("empty message rejected", func(t *testing.T) {
		v := testEscrowVault(1, testCreator)
		_, err := b.BuildSettlementBundle(v, TransferMessage{}, testCreator)
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
}

func TestBuildApprovalBundle(t *testing.T) {
	b := NewBuilder(testProgramID)
	v := testEscrowVault(2, testCreator, testPlatform)

	bundle, err := b.BuildApprovalBundle(v, 7, testPlatform)
	require.NoError(t, err)

	assert.False(t, bundle.ExecuteIncluded)
	assert.Equal(t, int64(7), bundle.ProposalIndex)
	require.Len(t, bundle.Transaction.Instructions, 1)
	approve := bundle.Transaction.Instructions[0]
	assert.Equal(t, ixProposalApprove, approve.Data[0])
	assert.Equal(t, testPlatform, approve.Accounts[2].Address)
	assert.True(t, approve.Accounts[2].Signer)
}

func TestBuildExecutionBundle(t *testing.T) {
	b := NewBuilder(testProgramID)
	v := testEscrowVault(2, testCreator, testPlatform)
	msg := TransferMessage{Legs: []TransferLeg{{Destination: testRecipient, Amount: 1000}}}

	bundle, err := b.BuildExecutionBundle(v, 7, msg, testPlatform)
	require.NoError(t, err)

	assert.True(t, bundle.ExecuteIncluded)
	require.Len(t, bundle.Transaction.Instructions, 1)
	execute := bundle.Transaction.Instructions[0]
	assert.Equal(t, ixVaultTransactionExecute, execute.Data[0])
	assert.Equal(t, testRecipient, execute.Accounts[len(execute.Accounts)-1].Address)

	_, err = b.BuildExecutionBundle(v, 7, TransferMessage{}, testPlatform)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestDeriveProposalAddress(t *testing.T) {
	first, err := DeriveProposalAddress(testMultisig, 1)
	require.NoError(t, err)
	again, err := DeriveProposalAddress(testMultisig, 1)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	second, err := DeriveProposalAddress(testMultisig, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = DeriveProposalAddress("not-base58-0OIl", 1)
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func mustProposal(t *testing.T, multisig string, index int64) string {
	t.Helper()
	proposal, err := DeriveProposalAddress(multisig, index)
	require.NoError(t, err)
	return proposal
}
