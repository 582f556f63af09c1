package registration

import (
	"strconv"
	"time"

	"github.com/affhub/meetup-backend/config/router"
	"github.com/affhub/meetup-backend/internal/log"
	apperrors "github.com/affhub/meetup-backend/pkg/errors"
	"github.com/affhub/meetup-backend/pkg/ratelimit"
	"gorm.io/gorm"
)

func NewRegistrationController(
	db *gorm.DB,
	logger *log.Logger,
	sink NotificationSink,
) *router.RESTController {

	RegisterCustomValidators()

	return router.NewVersionedRESTController(
		"RegistrationController",
		"api",
		"/users",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewRegistrationRepository(db)
			service := NewRegistrationService(logger, repository, sink)

			registrationLimiter := createRegistrationRateLimiter()

			rs.AddPostHandler(c, registrationLimiter, "", registerHandler(service))
			rs.AddGetHandler(c, nil, "/:id", getRegistrantHandler(service))
		},
	)
}

func createRegistrationRateLimiter() ratelimit.RateLimiter {
	const registrationRequestsPerMinute = 30

	config := &ratelimit.RateLimitConfig{
		Requests: registrationRequestsPerMinute,
		Window:   time.Minute,
		Redis:    nil,
		Logger:   nil,
	}

	return ratelimit.NewRateLimiter(config)
}

func registerHandler(service RegistrationService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req CreateRegistrantRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, created, err := service.Register(ctx.Request.Context(), &req, ctx.ClientIP())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		// The wheel page reads the id back from this cookie on reload.
		ctx.SetCookie("userId", strconv.FormatUint(uint64(response.UserID), 10), 0, "/", "", false, false)

		if created {
			return router.CreatedResult(response, "Registrant")
		}

		return router.OKResult(response, "Registrant already exists")
	}
}

func getRegistrantHandler(service RegistrationService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParseIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		response, err := service.FindRegistrantByID(ctx.Request.Context(), id)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Registrant retrieved successfully")
	}
}
