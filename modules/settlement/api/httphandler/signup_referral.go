package httphandler

import (
	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/modules/settlement/internal/entity"
	"github.com/clippay/settlement-engine/modules/settlement/usecase"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type signupReferralRequest struct {
	UserId         string `json:"userId"`
	ReferrerId     string `json:"referrerId"`
	ReferrerWallet string `json:"referrerWallet"`

	userId     uuid.UUID
	referrerId uuid.UUID
}

func (r *signupReferralRequest) Validate() error {
	var errList []error
	userId, err := uuid.Parse(r.UserId)
	if err != nil {
		errList = append(errList, errors.Errorf("userId '%s' is not a valid uuid", r.UserId))
	}
	r.userId = userId
	referrerId, err := uuid.Parse(r.ReferrerId)
	if err != nil {
		errList = append(errList, errors.Errorf("referrerId '%s' is not a valid uuid", r.ReferrerId))
	}
	r.referrerId = referrerId
	if r.ReferrerWallet == "" {
		errList = append(errList, errors.New("referrerWallet is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type referralResult struct {
	UserId          uuid.UUID `json:"userId"`
	ReferrerId      uuid.UUID `json:"referrerId"`
	ReferrerWallet  string    `json:"referrerWallet"`
	Tier            int       `json:"tier"`
	FeeSharePercent int       `json:"feeSharePercent"`
}

func mapReferralResult(r *entity.Referral) referralResult {
	return referralResult{
		UserId:          r.UserID,
		ReferrerId:      r.ReferrerID,
		ReferrerWallet:  r.ReferrerWallet,
		Tier:            r.Tier,
		FeeSharePercent: r.FeeSharePercent,
	}
}

type signupReferralResponse = HttpResponse[referralResult]

func (h *HttpHandler) SignupReferral(ctx *fiber.Ctx) (err error) {
	var req signupReferralRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	referral, err := h.usecase.SignupReferral(ctx.UserContext(), usecase.SignupReferralParams{
		UserID:         req.userId,
		ReferrerID:     req.referrerId,
		ReferrerWallet: req.ReferrerWallet,
	})
	if err != nil {
		return errors.Wrap(err, "error during SignupReferral")
	}

	result := mapReferralResult(referral)
	resp := signupReferralResponse{
		Result: &result,
	}
	return errors.WithStack(ctx.Status(fiber.StatusCreated).JSON(resp))
}
