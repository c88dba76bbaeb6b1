package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type rejectSubmissionRequest struct {
	SubmissionId string `params:"submissionId"`
	CreatorId    string `json:"creatorId"`
	Reason       string `json:"reason"`
	Ban          bool   `json:"ban"`

	submissionId uuid.UUID
	creatorId    uuid.UUID
}

func (r *rejectSubmissionRequest) Validate() error {
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
	if r.Reason == "" {
		errList = append(errList, errors.New("reason is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type rejectSubmissionResponse = HttpResponse[submissionResult]

func (h *HttpHandler) RejectSubmission(ctx *fiber.Ctx) (err error) {
	var req rejectSubmissionRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	submission, err := h.usecase.RejectSubmission(ctx.UserContext(), usecase.RejectSubmissionParams{
		SubmissionID: req.submissionId,
		CreatorID:    req.creatorId,
		Reason:       req.Reason,
		Ban:          req.Ban,
	})
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return errors.Join(errs.NewPublicError("submission not found"), errs.NotFound)
		}
		return errors.Wrap(err, "error during RejectSubmission")
	}

	result := mapSubmissionResult(submission)
	resp := rejectSubmissionResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.JSON(resp))
}
