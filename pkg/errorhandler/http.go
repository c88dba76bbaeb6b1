package errorhandler

import (
	"net/http"

	"github.com/clippay/settlement-engine/common/errs"
	"github.com/clippay/settlement-engine/pkg/logger"
	"github.com/clippay/settlement-engine/pkg/logger/slogx"
	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
)

// kindMapping assigns an HTTP status and a stable machine-readable code to
// each domain error kind. Public errors with no recognized kind fall back to
// 400 with no code.
var kindMapping = map[errs.ErrorKind]struct {
	status int
	code   string
}{
	errs.NotFound:          {http.StatusNotFound, "NOT_FOUND"},
	errs.InvalidArgument:   {http.StatusBadRequest, "INVALID_ARGUMENT"},
	errs.Forbidden:         {http.StatusForbidden, "FORBIDDEN"},
	errs.StateConflict:     {http.StatusConflict, "INVALID_STATUS"},
	errs.BudgetExhausted:   {http.StatusConflict, "BUDGET_EXHAUSTED"},
	errs.ZeroPayout:        {http.StatusUnprocessableEntity, "ZERO_PAYOUT"},
	errs.ChainVerification: {http.StatusUnprocessableEntity, "CHAIN_VERIFICATION_FAILED"},
	errs.ExternalService:   {http.StatusBadGateway, "EXTERNAL_SERVICE_UNAVAILABLE"},
	errs.Duplicate:         {http.StatusConflict, "DUPLICATE"},
	errs.Unsupported:       {http.StatusUnprocessableEntity, "UNSUPPORTED"},
}

func NewHTTPErrorHandler() func(ctx *fiber.Ctx, err error) error {
	return func(ctx *fiber.Ctx, err error) error {
		if e := new(errs.PublicError); errors.As(err, &e) {
			status := http.StatusBadRequest
			body := map[string]any{
				"error": e.Message(),
			}
			var kind errs.ErrorKind
			if errors.As(err, &kind) {
				if m, ok := kindMapping[kind]; ok {
					status = m.status
					body["code"] = m.code
				}
			}
			// An explicit code on the error wins over the kind's default.
			if e.Code() != "" {
				body["code"] = e.Code()
			}
			return errors.WithStack(ctx.Status(status).JSON(body))
		}
		if e := new(fiber.Error); errors.As(err, &e) {
			return errors.WithStack(ctx.Status(e.Code).SendString(e.Error()))
		}

		logger.ErrorContext(ctx.UserContext(), "Something went wrong, unhandled api error", err,
			slogx.String("event", "api_unhandled_error"),
		)

		return errors.WithStack(ctx.Status(http.StatusInternalServerError).JSON(map[string]any{
			"error": "Internal Server Error",
		}))
	}
}
