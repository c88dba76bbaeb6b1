package vault

import (
	"context"

	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/cockroachdb/errors"
)

// Signer serializes and signs a transaction with the caller's key material.
// Key handling lives outside the settlement core.
type Signer interface {
	SignTransaction(ctx context.Context, tx *solrpc.Transaction) ([]byte, error)
}

// Submitter signs and submits a bundle as one network submission.
type Submitter interface {
	SignAndSubmit(ctx context.Context, bundle *Bundle) (string, error)
}

var _ Submitter = (*RPCSubmitter)(nil)

// RPCSubmitter submits bundles through the chain RPC client. There is no
// retry on submission: resubmitting a financial transfer automatically risks
// duplicate payment, so failures surface to the caller.
type RPCSubmitter struct {
	client solrpc.Contract
	signer Signer
}

func NewRPCSubmitter(client solrpc.Contract, signer Signer) *RPCSubmitter {
	return &RPCSubmitter{client: client, signer: signer}
}

func (s *RPCSubmitter) SignAndSubmit(ctx context.Context, bundle *Bundle) (string, error) {
	signedTx, err := s.signer.SignTransaction(ctx, &bundle.Transaction)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign settlement bundle")
	}
	signature, err := s.client.SendRawTransaction(ctx, signedTx)
	if err != nil {
		return "", errors.Wrap(err, "failed to submit settlement bundle")
	}
	return signature, nil
}
