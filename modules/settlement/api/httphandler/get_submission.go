package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type getSubmissionRequest struct {
	CampaignId   string `params:"campaignId"`
	SubmissionId string `params:"submissionId"`

	campaignId   uuid.UUID
	submissionId uuid.UUID
}

func (r *getSubmissionRequest) Validate() error {
	var errList []error
	campaignId, err := uuid.Parse(r.CampaignId)
	if err != nil {
		errList = append(errList, errors.Errorf("campaignId '%s' is not a valid uuid", r.CampaignId))
	}
	r.campaignId = campaignId
	submissionId, err := uuid.Parse(r.SubmissionId)
	if err != nil {
		errList = append(errList, errors.Errorf("submissionId '%s' is not a valid uuid", r.SubmissionId))
	}
	r.submissionId = submissionId
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getSubmissionResponse = HttpResponse[submissionResult]

func (h *HttpHandler) GetSubmission(ctx *fiber.Ctx) (err error) {
	var req getSubmissionRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.usecase.GetSubmission(ctx.UserContext(), req.campaignId, req.submissionId)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Join(errs.NewPublicError("submission not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during GetSubmission")
	}

	result := mapSubmissionResult(submission)
	resp := getSubmissionResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.JSON(resp))
}
