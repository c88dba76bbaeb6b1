package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type confirmPaymentRequest struct {
	SubmissionId string `params:"submissionId"`
	CreatorId    string `json:"creatorId"`
	Signature    string `json:"signature"`

	submissionId uuid.UUID
	creatorId    uuid.UUID
}

func (r *confirmPaymentRequest) Validate() error {
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
	if r.Signature == "" {
		errList = append(errList, errors.New("signature is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type confirmPaymentResponse = HttpResponse[submissionResult]

func (h *HttpHandler) ConfirmPayment(ctx *fiber.Ctx) (err error) {
	var req confirmPaymentRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.usecase.ConfirmPayment(ctx.UserContext(), usecase.ConfirmPaymentParams{
		SubmissionID: req.submissionId,
		CreatorID:    req.creatorId,
		Signature:    req.Signature,
	})
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Join(errs.NewPublicError("submission not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during ConfirmPayment")
	}

	result := mapSubmissionResult(submission)
	resp := confirmPaymentResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.JSON(resp))
}
