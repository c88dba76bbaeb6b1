package solrpc

import "context"

// Contract is the chain RPC surface the settlement engine consumes. All calls
// are blocking I/O with bounded retries; failures surface as explicit errors
// and are never absorbed.
type Contract interface {
	// GetTransaction fetches a confirmed transaction by signature. Returns
	// errs.NotFound when the chain does not know the signature.
	GetTransaction(ctx context.Context, signature string) (*TransactionResult, error)

	// SendRawTransaction submits a fully signed, serialized transaction and
	// returns its signature. The chain applies the whole bundle atomically.
	SendRawTransaction(ctx context.Context, signedTx []byte) (string, error)

	// Confirm polls until the signature is confirmed or the retry budget is
	// exhausted. A timeout does not mean the transaction failed; callers must
	// re-query by signature before writing any local state.
	Confirm(ctx context.Context, signature string) error
}
