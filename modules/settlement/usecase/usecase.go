package usecase

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/config"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/clippay/settlement-engine/modules/settlement/vault"
	"github.com/clippay/settlement-engine/modules/settlement/verifier"
	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/cockroachdb/errors"
)

// TransferVerifier confirms a claimed on-chain transfer. It fails closed.
type TransferVerifier interface {
	VerifyTransfer(ctx context.Context, signature, expectedDestination string, minAmount int64) (int64, error)
}

type Usecase struct {
	settlementDg  datagateway.SettlementDataGateway
	referralDg    datagateway.ReferralDataGateway
	metricsClient provider.MetricsClient
	scoreClient   provider.ScoreClient
	notifier      provider.Notifier
	verifier      TransferVerifier
	builder       *vault.Builder
	submitter     vault.Submitter
	chainClient   solrpc.Contract
	config        config.Config
}

func New(
	config config.Config,
	settlementDg datagateway.SettlementDataGateway,
	referralDg datagateway.ReferralDataGateway,
	metricsClient provider.MetricsClient,
	scoreClient provider.ScoreClient,
	notifier provider.Notifier,
	verifier TransferVerifier,
	builder *vault.Builder,
	submitter vault.Submitter,
	chainClient solrpc.Contract,
) *Usecase {
	return &Usecase{
		settlementDg:  settlementDg,
		referralDg:    referralDg,
		metricsClient: metricsClient,
		scoreClient:   scoreClient,
		notifier:      notifier,
		verifier:      verifier,
		builder:       builder,
		submitter:     submitter,
		chainClient:   chainClient,
		config:        config,
	}
}

// publicVerifyError turns a known chain-verification failure into a public
// error carrying its machine-readable code. RPC transport failures stay
// internal.
func publicVerifyError(err error, prefix string) error {
	switch {
	case errors.Is(err, verifier.ErrTxNotFound):
		return errs.WithPublicMessageCode(err, prefix, verifier.CodeTxNotFound)
	case errors.Is(err, verifier.ErrTxFailed):
		return errs.WithPublicMessageCode(err, prefix, verifier.CodeTxFailed)
	case errors.Is(err, verifier.ErrTxMismatch):
		return errs.WithPublicMessageCode(err, prefix, verifier.CodeTxMismatch)
	}
	return errors.Wrap(err, prefix)
}
