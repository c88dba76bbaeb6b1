package verifier

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/cockroachdb/errors"
)

// Error codes attached to public chain-verification failures.
const (
	CodeTxNotFound = "TX_NOT_FOUND"
	CodeTxFailed   = "TX_FAILED"
	CodeTxMismatch = "TX_MISMATCH"
)

var (
	ErrTxNotFound = errors.Wrap(errs.ChainVerification, "transaction not found or not confirmed")
	ErrTxFailed   = errors.Wrap(errs.ChainVerification, "transaction failed on chain")
	ErrTxMismatch = errors.Wrap(errs.ChainVerification, "no matching transfer in transaction")
)

// Verifier confirms that a chain signature actually performed a claimed
// transfer. It fails closed: a missing or unconfirmed transaction is an error,
// never an assumed success.
type Verifier struct {
	client solrpc.Contract
}

func New(client solrpc.Contract) *Verifier {
	return &Verifier{client: client}
}

// VerifyTransfer fetches the transaction and searches both top-level and inner
// instructions for a native or token transfer whose destination matches
// expectedDestination with an amount of at least minAmount. Inner instructions
// must be searched because escrow-executed transfers appear nested inside the
// escrow program's own instruction, not at the top level. The first qualifying
// match wins; its actual amount is returned.
func (v *Verifier) VerifyTransfer(ctx context.Context, signature, expectedDestination string, minAmount int64) (int64, error) {
	tx, err := v.client.GetTransaction(ctx, signature)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return 0, errors.WithStack(ErrTxNotFound)
		}
		return 0, errors.Wrap(err, "failed to fetch transaction")
	}
	if tx.Failed() {
		return 0, errors.WithStack(ErrTxFailed)
	}

	for _, ix := range tx.Instructions {
		if amount, ok := matchTransfer(ix, expectedDestination, minAmount); ok {
			return amount, nil
		}
	}
	for _, inner := range tx.InnerInstructions {
		for _, ix := range inner.Instructions {
			if amount, ok := matchTransfer(ix, expectedDestination, minAmount); ok {
				return amount, nil
			}
		}
	}

	logger.DebugContext(ctx, "no qualifying transfer found in transaction",
		slogx.String("signature", signature),
		slogx.String("destination", expectedDestination),
		slogx.Int64("minAmount", minAmount),
	)
	return 0, errors.WithStack(ErrTxMismatch)
}

func matchTransfer(ix solrpc.ParsedInstruction, destination string, minAmount int64) (int64, bool) {
	transfer, ok := ix.Transfer()
	if !ok {
		return 0, false
	}
	if transfer.Destination != destination || transfer.Amount < minAmount {
		return 0, false
	}
	return transfer.Amount, true
}
