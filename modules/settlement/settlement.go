package settlement

import (
	"context"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/internal/config"
	"github.com/clippay/settlement-engine/internal/postgres"
	settlementapi "github.com/clippay/settlement-engine/modules/settlement/api/httphandler"
	settlementconfig "github.com/clippay/settlement-engine/modules/settlement/config"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	settlementpostgres "github.com/clippay/settlement-engine/modules/settlement/repository/postgres"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/clippay/settlement-engine/modules/settlement/vault"
	"github.com/clippay/settlement-engine/modules/settlement/verifier"
	"github.com/clippay/settlement-engine/pkg/crypto"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

const (
	Version = "v0.1.0"
)

// Module is the settlement service: campaign payouts, escrow release and
// referral signup behind an HTTP API.
type Module struct {
	cleanupFuncs []func(context.Context) error
}

func New(injector do.Injector) (*Module, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	moduleConf := conf.Modules.Settlement

	if err := moduleConf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settlement configuration")
	}

	var cleanupFuncs []func(context.Context) error
	pg, err := postgres.NewPool(ctx, moduleConf.Postgres)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) {
			return nil, errors.Wrap(err, "Invalid Postgres configuration for settlement")
		}
		return nil, errors.Wrap(err, "can't create Postgres connection pool")
	}
	cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
		pg.Close()
		return nil
	})
	repo := settlementpostgres.NewRepository(pg)
	var settlementDg datagateway.SettlementDataGateway = repo
	var referralDg datagateway.ReferralDataGateway = repo

	// Seed configured referral tiers; occupancy of existing tiers is preserved.
	tiers := lo.Map(moduleConf.ReferralTiers, func(tier settlementconfig.ReferralTier, i int) entity.ReferralTierCounter {
		return entity.ReferralTierCounter{
			Tier:            i,
			Capacity:        tier.Capacity,
			FeeSharePercent: tier.FeeSharePercent,
		}
	})
	if err := referralDg.SeedTierCounters(ctx, tiers); err != nil {
		return nil, errors.Wrap(err, "can't seed referral tier counters")
	}

	chainClient := do.MustInvoke[*solrpc.Client](injector)

	metricsClient, err := provider.NewHTTPMetricsClient(moduleConf.Metrics)
	if err != nil {
		return nil, errors.Wrap(err, "can't create metrics client")
	}
	scoreClient, err := provider.NewHTTPScoreClient(moduleConf.Score)
	if err != nil {
		return nil, errors.Wrap(err, "can't create score client")
	}
	notifier, err := provider.NewHTTPNotifier(moduleConf.Notifier)
	if err != nil {
		return nil, errors.Wrap(err, "can't create notifier")
	}

	signer, err := crypto.New(moduleConf.SignerKey)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signer key")
	}
	builder := vault.NewBuilder(moduleConf.EscrowProgram)
	submitter := vault.NewRPCSubmitter(chainClient, signer)

	settlementUsecase := usecase.New(
		moduleConf,
		settlementDg,
		referralDg,
		metricsClient,
		scoreClient,
		notifier,
		verifier.New(chainClient),
		builder,
		submitter,
		chainClient,
	)

	httpServer := do.MustInvoke[*fiber.App](injector)
	httpHandler := settlementapi.New(settlementUsecase)
	if err := httpHandler.Mount(httpServer); err != nil {
		return nil, errors.Wrap(err, "can't mount Settlement API")
	}
	logger.InfoContext(ctx, "Mounted HTTP handler")

	return &Module{cleanupFuncs: cleanupFuncs}, nil
}

// Shutdown releases the module's resources. Called by the injector on
// application shutdown.
func (m *Module) Shutdown() error {
	ctx := context.Background()
	for _, cleanup := range m.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
