package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type submitPostRequest struct {
	CampaignId string `params:"campaignId"`
	UserId     string `json:"userId"`
	PostRef    string `json:"postRef"`
	Wallet     string `json:"wallet"`

	campaignId uuid.UUID
	userId     uuid.UUID
}

func (r *submitPostRequest) Validate() error {
	var errList []error
	campaignId, err := uuid.Parse(r.CampaignId)
	if err != nil {
		errList = append(errList, errors.Errorf("campaignId '%s' is not a valid uuid", r.CampaignId))
	}
	r.campaignId = campaignId
	userId, err := uuid.Parse(r.UserId)
	if err != nil {
		errList = append(errList, errors.Errorf("userId '%s' is not a valid uuid", r.UserId))
	}
	r.userId = userId
	if r.PostRef == "" {
		errList = append(errList, errors.New("postRef is required"))
	}
	if r.Wallet == "" {
		errList = append(errList, errors.New("wallet is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type submitPostResponse = HttpResponse[submissionResult]

func (h *HttpHandler) SubmitPost(ctx *fiber.Ctx) (err error) {
	var req submitPostRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.usecase.SubmitPost(ctx.UserContext(), usecase.SubmitPostParams{
		CampaignID:    req.campaignId,
		UserID:        req.userId,
		PostRef:       req.PostRef,
		WalletAddress: req.Wallet,
	})
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Join(errs.NewPublicError("campaign not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during SubmitPost")
	}

	result := mapSubmissionResult(submission)
	resp := submitPostResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(resp))
}
