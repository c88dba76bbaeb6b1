package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/settlement")

	r.Post("/campaigns/:campaignId/submissions", h.SubmitPost)
	r.Get("/campaigns/:campaignId/submissions/:submissionId", h.GetSubmission)
	r.Post("/campaigns/:campaignId/top-up", h.TopUpBudget)

	r.Post("/submissions/:submissionId/override-approve", h.OverrideApprove)
	r.Post("/submissions/:submissionId/request-payment", h.RequestPayment)
	r.Post("/submissions/:submissionId/confirm-payment", h.ConfirmPayment)
	r.Post("/submissions/:submissionId/release-payment", h.ReleasePayment)
	r.Post("/submissions/:submissionId/reject", h.RejectSubmission)

	r.Post("/referrals", h.SignupReferral)
	return nil
}
