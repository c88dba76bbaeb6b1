package httphandler

import (
	"time"

	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/clippay/settlement-engine/pkg/decimals"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// tokenDecimals is the base-unit precision of payout amounts.
const tokenDecimals = 9

type HttpHandler struct {
	usecase *usecase.Usecase
}

func New(usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

type submissionResult struct {
	Id         uuid.UUID `json:"id"`
	CampaignId uuid.UUID `json:"campaignId"`
	UserId     uuid.UUID `json:"userId"`
	PostRef    string    `json:"postRef"`
	Wallet     string    `json:"wallet"`

	ViewCount    int64 `json:"viewCount"`
	LikeCount    int64 `json:"likeCount"`
	RetweetCount int64 `json:"retweetCount"`
	CommentCount int64 `json:"commentCount"`

	Status            string          `json:"status"`
	PayoutAmount      int64           `json:"payoutAmount"`
	BonusAmount       int64           `json:"bonusAmount"`
	GrossAmount       decimal.Decimal `json:"grossAmount"`
	ScoreAtSubmission int64           `json:"scoreAtSubmission"`
	MultiplierApplied int64           `json:"multiplierApplied"`
	RejectionReason   string          `json:"rejectionReason,omitempty"`

	PaymentProposalIndex int64  `json:"paymentProposalIndex,omitempty"`
	PaymentSignature     string `json:"paymentSignature,omitempty"`

	CreatedAt int64 `json:"createdAt"` // unix timestamp
	UpdatedAt int64 `json:"updatedAt"` // unix timestamp
}

func mapSubmissionResult(s *entity.Submission) submissionResult {
	return submissionResult{
		Id:         s.ID,
		CampaignId: s.CampaignID,
		UserId:     s.UserID,
		PostRef:    s.PostRef,
		Wallet:     s.WalletAddress,

		ViewCount:    s.Metrics.ViewCount,
		LikeCount:    s.Metrics.LikeCount,
		RetweetCount: s.Metrics.RetweetCount,
		CommentCount: s.Metrics.CommentCount,

		Status:            s.Status.String(),
		PayoutAmount:      s.PayoutAmount,
		BonusAmount:       s.BonusAmount,
		GrossAmount:       decimals.ToDecimal(s.GrossAmount(), tokenDecimals),
		ScoreAtSubmission: s.ScoreAtSubmission,
		MultiplierApplied: int64(s.MultiplierApplied),
		RejectionReason:   s.RejectionReason,

		PaymentProposalIndex: s.PaymentProposalIndex,
		PaymentSignature:     s.PaymentSignature,

		CreatedAt: unixOrZero(s.CreatedAt),
		UpdatedAt: unixOrZero(s.UpdatedAt),
	}
}

type campaignResult struct {
	Id              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	BudgetTotal     int64           `json:"budgetTotal"`
	BudgetRemaining int64           `json:"budgetRemaining"`
	Budget          decimal.Decimal `json:"budget"`
	Deadline        int64           `json:"deadline"` // unix timestamp
}

func mapCampaignResult(c *entity.Campaign) campaignResult {
	return campaignResult{
		Id:              c.ID,
		Name:            c.Name,
		BudgetTotal:     c.BudgetTotal,
		BudgetRemaining: c.BudgetRemaining,
		Budget:          decimals.ToDecimal(c.BudgetRemaining, tokenDecimals),
		Deadline:        unixOrZero(c.Deadline),
	}
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
