package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type topUpBudgetRequest struct {
	CampaignId       string `params:"campaignId"`
	CreatorId        string `json:"creatorId"`
	Amount           int64  `json:"amount"`
	FundingSignature string `json:"fundingSignature"`

	campaignId uuid.UUID
	creatorId  uuid.UUID
}

func (r *topUpBudgetRequest) Validate() error {
	var errList []error
	campaignId, err := uuid.Parse(r.CampaignId)
	if err != nil {
		errList = append(errList, errors.Errorf("campaignId '%s' is not a valid uuid", r.CampaignId))
	}
	r.campaignId = campaignId
	creatorId, err := uuid.Parse(r.CreatorId)
	if err != nil {
		errList = append(errList, errors.Errorf("creatorId '%s' is not a valid uuid", r.CreatorId))
	}
	r.creatorId = creatorId
	if r.Amount <= 0 {
		errList = append(errList, errors.New("amount must be positive"))
	}
	if r.FundingSignature == "" {
		errList = append(errList, errors.New("fundingSignature is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type topUpBudgetResponse = HttpResponse[campaignResult]

func (h *HttpHandler) TopUpBudget(ctx *fiber.Ctx) (err error) {
	var req topUpBudgetRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	campaign, err := h.usecase.TopUpBudget(ctx.UserContext(), usecase.TopUpBudgetParams{
		CampaignID:       req.campaignId,
		CreatorID:        req.creatorId,
		Amount:           req.Amount,
		FundingSignature: req.FundingSignature,
	})
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Join(errs.NewPublicError("campaign not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during TopUpBudget")
	}

	result := mapCampaignResult(campaign)
	resp := topUpBudgetResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.JSON(resp))
}
