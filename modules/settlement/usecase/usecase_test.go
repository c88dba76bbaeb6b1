package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/config"
	"github.com/clippay/settlement-engine/modules/settlement/datagateway"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/payout"
	"github.com/clippay/settlement-engine/modules/settlement/provider"
	"github.com/clippay/settlement-engine/modules/settlement/vault"
	"github.com/clippay/settlement-engine/pkg/solrpc"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// fakeSettlementDg is an in-memory data gateway mirroring the conditional
// update semantics of the real repository.
type fakeSettlementDg struct {
	mu          sync.Mutex
	campaigns   map[uuid.UUID]*entity.Campaign
	submissions map[uuid.UUID]*entity.Submission
	vaults      map[uuid.UUID]*entity.EscrowVault
	bans        map[string]bool
	topUps      map[string]*entity.CampaignTopUp
}

func newFakeSettlementDg() *fakeSettlementDg {
	return &fakeSettlementDg{
		campaigns:   make(map[uuid.UUID]*entity.Campaign),
		submissions: make(map[uuid.UUID]*entity.Submission),
		vaults:      make(map[uuid.UUID]*entity.EscrowVault),
		bans:        make(map[string]bool),
		topUps:      make(map[string]*entity.CampaignTopUp),
	}
}

func banKey(creatorID, userID uuid.UUID) string {
	return creatorID.String() + "/" + userID.String()
}

func (f *fakeSettlementDg) GetCampaign(_ context.Context, id uuid.UUID) (*entity.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	campaign, ok := f.campaigns[id]
	if !ok {
		return nil, errors.Wrap(errs.NotFound, "campaign not found")
	}
	clone := *campaign
	return &clone, nil
}

func (f *fakeSettlementDg) GetSubmission(_ context.Context, id uuid.UUID) (*entity.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[id]
	if !ok {
		return nil, errors.Wrap(errs.NotFound, "submission not found")
	}
	clone := *submission
	return &clone, nil
}

func (f *fakeSettlementDg) GetSubmissionByPaymentSignature(_ context.Context, signature string) (*entity.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, submission := range f.submissions {
		if submission.PaymentSignature == signature && submission.Status == entity.SubmissionStatusPaid {
			clone := *submission
			return &clone, nil
		}
	}
	return nil, errors.Wrap(errs.NotFound, "no submission with signature")
}

func (f *fakeSettlementDg) GetEscrowVault(_ context.Context, campaignID uuid.UUID) (*entity.EscrowVault, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	escrowVault, ok := f.vaults[campaignID]
	if !ok {
		return nil, errors.Wrap(errs.NotFound, "vault not found")
	}
	clone := *escrowVault
	return &clone, nil
}

func (f *fakeSettlementDg) SumCommittedAmounts(_ context.Context, campaignID, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int64
	for _, s := range f.submissions {
		if s.CampaignID == campaignID && s.UserID == userID && s.Status != entity.SubmissionStatusRejected {
			sum += s.PayoutAmount + s.BonusAmount
		}
	}
	return sum, nil
}

func (f *fakeSettlementDg) CountBonusGrants(_ context.Context, campaignID, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, s := range f.submissions {
		if s.CampaignID == campaignID && s.UserID == userID && s.Status != entity.SubmissionStatusRejected && s.BonusAmount > 0 {
			count++
		}
	}
	return count, nil
}

func (f *fakeSettlementDg) IsCreatorBanned(_ context.Context, creatorID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bans[banKey(creatorID, userID)], nil
}

func (f *fakeSettlementDg) FundingSignatureExists(_ context.Context, signature string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.topUps[signature]
	return ok, nil
}

func (f *fakeSettlementDg) CreateSubmission(_ context.Context, submission *entity.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *submission
	f.submissions[submission.ID] = &clone
	return nil
}

func (f *fakeSettlementDg) ApproveSubmission(_ context.Context, params datagateway.ApproveSubmissionParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[params.ID]
	if !ok || submission.Status != entity.SubmissionStatusRejected {
		return errors.Wrap(errs.StateConflict, "submission is not rejected")
	}
	submission.Status = entity.SubmissionStatusApproved
	submission.Metrics = params.Metrics
	submission.PayoutAmount = params.PayoutAmount
	submission.BonusAmount = params.BonusAmount
	submission.ScoreAtSubmission = params.ScoreAtSubmission
	submission.MultiplierApplied = payout.Multiplier(params.MultiplierApplied)
	submission.RejectionReason = ""
	return nil
}

func (f *fakeSettlementDg) MarkPaymentRequested(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[id]
	if !ok || submission.Status != entity.SubmissionStatusApproved {
		return errors.Wrap(errs.StateConflict, "submission is not approved")
	}
	submission.Status = entity.SubmissionStatusPaymentRequested
	return nil
}

func (f *fakeSettlementDg) MarkPaid(_ context.Context, params datagateway.MarkPaidParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[params.ID]
	if !ok || submission.Status != entity.SubmissionStatusPaymentRequested {
		return errors.Wrap(errs.StateConflict, "submission is not payment requested")
	}
	submission.Status = entity.SubmissionStatusPaid
	submission.PaymentSignature = params.PaymentSignature
	submission.PaymentProposalIndex = params.PaymentProposalIndex
	return nil
}

func (f *fakeSettlementDg) RejectSubmission(_ context.Context, params datagateway.RejectSubmissionParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	submission, ok := f.submissions[params.ID]
	if !ok || submission.Status != params.FromStatus {
		return errors.Wrap(errs.StateConflict, "submission status changed")
	}
	submission.Status = entity.SubmissionStatusRejected
	submission.RejectionReason = params.Reason
	return nil
}

func (f *fakeSettlementDg) ReserveBudget(_ context.Context, campaignID uuid.UUID, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	campaign, ok := f.campaigns[campaignID]
	if !ok || campaign.BudgetRemaining < amount {
		return errors.Wrap(errs.BudgetExhausted, "insufficient budget")
	}
	campaign.BudgetRemaining -= amount
	return nil
}

func (f *fakeSettlementDg) ReleaseBudget(_ context.Context, campaignID uuid.UUID, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return errors.Wrap(errs.NotFound, "campaign not found")
	}
	campaign.BudgetRemaining = min(campaign.BudgetTotal, campaign.BudgetRemaining+amount)
	return nil
}

func (f *fakeSettlementDg) TopUpBudget(_ context.Context, campaignID uuid.UUID, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	campaign, ok := f.campaigns[campaignID]
	if !ok {
		return errors.Wrap(errs.NotFound, "campaign not found")
	}
	campaign.BudgetTotal += amount
	campaign.BudgetRemaining += amount
	return nil
}

func (f *fakeSettlementDg) CreateCampaignTopUp(_ context.Context, topUp *entity.CampaignTopUp) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.topUps[topUp.FundingSignature]; ok {
		return errors.Wrap(errs.Duplicate, "funding signature already applied")
	}
	clone := *topUp
	f.topUps[topUp.FundingSignature] = &clone
	return nil
}

func (f *fakeSettlementDg) CreateCreatorBan(_ context.Context, ban *entity.CreatorBan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := banKey(ban.CreatorID, ban.UserID)
	if f.bans[key] {
		return errors.Wrap(errs.Duplicate, "ban already recorded")
	}
	f.bans[key] = true
	return nil
}

func (f *fakeSettlementDg) AdvanceVaultTransactionIndex(_ context.Context, vaultID uuid.UUID, newIndex int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.vaults {
		if v.ID == vaultID {
			if v.TransactionIndex != newIndex-1 {
				return errors.Wrap(errs.StateConflict, "transaction index moved")
			}
			v.TransactionIndex = newIndex
			return nil
		}
	}
	return errors.Wrap(errs.NotFound, "vault not found")
}

func (f *fakeSettlementDg) BeginSettlementTx(_ context.Context) (datagateway.SettlementDataGatewayWithTx, error) {
	return &fakeSettlementTx{fakeSettlementDg: f}, nil
}

// fakeSettlementTx applies writes directly; rollback after commit is a no-op,
// matching the contract of the Tx interface.
type fakeSettlementTx struct {
	*fakeSettlementDg
}

func (f *fakeSettlementTx) Commit(context.Context) error   { return nil }
func (f *fakeSettlementTx) Rollback(context.Context) error { return nil }

type fakeReferralDg struct {
	mu        sync.Mutex
	referrals map[uuid.UUID]*entity.Referral
	tiers     []entity.ReferralTierCounter
}

func newFakeReferralDg(tiers []config.ReferralTier) *fakeReferralDg {
	counters := make([]entity.ReferralTierCounter, len(tiers))
	for i, tier := range tiers {
		counters[i] = entity.ReferralTierCounter{Tier: i, Capacity: tier.Capacity, FeeSharePercent: tier.FeeSharePercent}
	}
	return &fakeReferralDg{
		referrals: make(map[uuid.UUID]*entity.Referral),
		tiers:     counters,
	}
}

func (f *fakeReferralDg) GetReferral(_ context.Context, userID uuid.UUID) (*entity.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	referral, ok := f.referrals[userID]
	if !ok {
		return nil, errors.Wrap(errs.NotFound, "no referral")
	}
	clone := *referral
	return &clone, nil
}

func (f *fakeReferralDg) CreateReferral(_ context.Context, referral *entity.Referral) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.referrals[referral.UserID]; ok {
		return errors.Wrap(errs.Duplicate, "referral exists")
	}
	clone := *referral
	f.referrals[referral.UserID] = &clone
	return nil
}

func (f *fakeReferralDg) ClaimTierSlot(_ context.Context, tier int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tier >= len(f.tiers) {
		return false, nil
	}
	if f.tiers[tier].Used >= f.tiers[tier].Capacity {
		return false, nil
	}
	f.tiers[tier].Used++
	return true, nil
}

func (f *fakeReferralDg) SeedTierCounters(_ context.Context, tiers []entity.ReferralTierCounter) error {
	return nil
}

func (f *fakeReferralDg) GetTierCounters(_ context.Context) ([]entity.ReferralTierCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.ReferralTierCounter, len(f.tiers))
	copy(out, f.tiers)
	return out, nil
}

type fakeMetricsClient struct {
	metrics payout.Metrics
	err     error
}

func (f *fakeMetricsClient) FetchMetrics(context.Context, string) (payout.Metrics, error) {
	return f.metrics, f.err
}

type fakeScoreClient struct {
	score int64
	ok    bool
	err   error
}

func (f *fakeScoreClient) CurrentScore(context.Context, uuid.UUID) (int64, bool, error) {
	return f.score, f.ok, f.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	kinds []provider.NotificationKind
}

func (f *fakeNotifier) Notify(_ context.Context, _ uuid.UUID, kind provider.NotificationKind, _ map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
}

type fakeVerifier struct {
	amount int64
	err    error
	calls  []string
}

func (f *fakeVerifier) VerifyTransfer(_ context.Context, signature, _ string, _ int64) (int64, error) {
	f.calls = append(f.calls, signature)
	if f.err != nil {
		return 0, f.err
	}
	return f.amount, nil
}

type fakeSubmitter struct {
	signature string
	err       error
	bundles   []*vault.Bundle
}

func (f *fakeSubmitter) SignAndSubmit(_ context.Context, bundle *vault.Bundle) (string, error) {
	f.bundles = append(f.bundles, bundle)
	if f.err != nil {
		return "", f.err
	}
	return f.signature, nil
}

type fakeChainClient struct {
	confirmErr error
	tx         *solrpc.TransactionResult
	txErr      error
}

func (f *fakeChainClient) GetTransaction(context.Context, string) (*solrpc.TransactionResult, error) {
	if f.txErr != nil {
		return nil, f.txErr
	}
	return f.tx, nil
}

func (f *fakeChainClient) SendRawTransaction(context.Context, []byte) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeChainClient) Confirm(context.Context, string) error {
	return f.confirmErr
}

// fixture wires a usecase over fresh fakes with one funded campaign, its
// 1-of-1 vault and a scored submitter.
type fixture struct {
	usecase      *Usecase
	settlementDg *fakeSettlementDg
	referralDg   *fakeReferralDg
	metrics      *fakeMetricsClient
	scores       *fakeScoreClient
	notifier     *fakeNotifier
	verifier     *fakeVerifier
	submitter    *fakeSubmitter
	chain        *fakeChainClient

	campaign  *entity.Campaign
	vault     *entity.EscrowVault
	creatorID uuid.UUID
	userID    uuid.UUID
}

const (
	testPlatformWallet = "4Nd1mYvM3kE2pHpT7mGCcdHq9NZSXp1PrWovRkHtaXdq"
	testEscrowProgram  = "SQDS4ep65T869zMMBKyuUq6aD6EgTu8psMjkvj52pCf"
	testCreatorWallet  = "9aE476sH92Vz7DMPyq5WLPkrKWivxeuTKEFKd2sZZcde"
	testUserWallet     = "6sXurb8cvata2QBmLX9HSu6VLJgfVzb9ZXeqnDb1LXmm"
	testReferrerWallet = "7YttLkHDoNj9wyDur5pM1ejNaAvT9X4eqaYcHQqtj2G5"
)

func newFixture() *fixture {
	cfg := config.Config{
		PlatformFeeBps: 1000,
		PlatformWallet: testPlatformWallet,
		EscrowProgram:  testEscrowProgram,
		ReferralTiers: []config.ReferralTier{
			{Capacity: 2, FeeSharePercent: 70},
			{Capacity: 10, FeeSharePercent: 50},
		},
	}

	f := &fixture{
		settlementDg: newFakeSettlementDg(),
		metrics:      &fakeMetricsClient{metrics: payout.Metrics{ViewCount: 8000, LikeCount: 100, RetweetCount: 10, CommentCount: 5}},
		scores:       &fakeScoreClient{score: payout.MaxScore, ok: true},
		notifier:     &fakeNotifier{},
		verifier:     &fakeVerifier{},
		submitter:    &fakeSubmitter{signature: "settlement-sig"},
		chain:        &fakeChainClient{},
		creatorID:    uuid.New(),
		userID:       uuid.New(),
	}
	f.referralDg = newFakeReferralDg(cfg.ReferralTiers)

	campaignID := uuid.New()
	f.campaign = &entity.Campaign{
		ID:              campaignID,
		CreatorID:       f.creatorID,
		Name:            "launch week",
		CPMRate:         30_000_000,
		BudgetTotal:     10_000_000_000,
		BudgetRemaining: 10_000_000_000,
		MinViewCount:    1000,
		Deadline:        time.Now().Add(24 * time.Hour),
	}
	f.settlementDg.campaigns[campaignID] = f.campaign

	f.vault = &entity.EscrowVault{
		ID:              uuid.New(),
		CampaignID:      campaignID,
		MultisigAddress: testEscrowProgram,
		VaultAddress:    testCreatorWallet,
		Threshold:       1,
		Members:         []string{testCreatorWallet},
	}
	f.settlementDg.vaults[campaignID] = f.vault

	f.usecase = New(cfg, f.settlementDg, f.referralDg, f.metrics, f.scores, f.notifier, f.verifier,
		vault.NewBuilder(cfg.EscrowProgram), f.submitter, f.chain)
	return f
}

func (f *fixture) submitApproved(ctx context.Context) *entity.Submission {
	submission, err := f.usecase.SubmitPost(ctx, SubmitPostParams{
		CampaignID:    f.campaign.ID,
		UserID:        f.userID,
		PostRef:       fmt.Sprintf("post-%d", len(f.settlementDg.submissions)),
		WalletAddress: testUserWallet,
	})
	if err != nil {
		panic(err)
	}
	return submission
}
