package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type requestPaymentRequest struct {
	SubmissionId string `params:"submissionId"`
	UserId       string `json:"userId"`

	submissionId uuid.UUID
	userId       uuid.UUID
}

func (r *requestPaymentRequest) Validate() error {
	var errList []error
	submissionId, err := uuid.Parse(r.SubmissionId)
	if err != nil {
		errList = append(errList, errors.Errorf("submissionId '%s' is not a valid uuid", r.SubmissionId))
	}
	r.submissionId = submissionId
	userId, err := uuid.Parse(r.UserId)
	if err != nil {
		errList = append(errList, errors.Errorf("userId '%s' is not a valid uuid", r.UserId))
	}
	r.userId = userId
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type requestPaymentResponse = HttpResponse[submissionResult]

func (h *HttpHandler) RequestPayment(ctx *fiber.Ctx) (err error) {
	var req requestPaymentRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.usecase.RequestPayment(ctx.UserContext(), usecase.RequestPaymentParams{
		SubmissionID: req.submissionId,
		UserID:       req.userId,
	})
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Join(errs.NewPublicError("submission not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during RequestPayment")
	}

	result := mapSubmissionResult(submission)
	resp := requestPaymentResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.JSON(resp))
}
