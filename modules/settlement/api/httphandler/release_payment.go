package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type releasePaymentRequest struct {
	SubmissionId string `params:"submissionId"`
	CreatorId    string `json:"creatorId"`

	submissionId uuid.UUID
	creatorId    uuid.UUID
}

func (r *releasePaymentRequest) Validate() error {
	var errList []error
	submissionId, err := uuid.Parse(r.SubmissionId)
	if err != nil {
		errList = append(errList, errors.Errorf("submissionId '%s' is not a valid uuid", r.SubmissionId))
	}
	r.submissionId = submissionId
	creatorId, err := uuid.Parse(r.CreatorId)
	if err != nil {
		errList = append(errList, errors.Errorf("creatorId '%s' is not a valid uuid", r.CreatorId))
	}
	r.creatorId = creatorId
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type releasePaymentResponse = HttpResponse[submissionResult]

func (h *HttpHandler) ReleasePayment(ctx *fiber.Ctx) (err error) {
	var req releasePaymentRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.usecase.ReleasePayment(ctx.UserContext(), usecase.ReleasePaymentParams{
		SubmissionID: req.submissionId,
		CreatorID:    req.creatorId,
	})
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Join(errs.NewPublicError("submission not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during ReleasePayment")
	}

	result := mapSubmissionResult(submission)
	resp := releasePaymentResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.JSON(resp))
}
