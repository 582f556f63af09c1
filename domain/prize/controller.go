package prize

import (
	"time"

	"github.com/affhub/meetup-backend/config/router"
	"github.com/affhub/meetup-backend/internal/log"
	apperrors "github.com/affhub/meetup-backend/pkg/errors"
	"github.com/affhub/meetup-backend/pkg/factory"
	"gorm.io/gorm"
)

func NewPrizeController(
	db *gorm.DB,
	logger *log.Logger,
	cache Cache,
) *router.RESTController {

	return router.NewVersionedRESTController(
		"PrizeController",
		"api",
		"/prizes",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewPrizeRepository(db)
			service := NewPrizeService(logger, repository, cache)

			// One spin per wheel load; anything past this is scripted abuse.
			allocationLimiter := factory.NewDefaultRateLimiterFactory(
				30, time.Minute, nil, nil,
			).CreateRateLimiter()

			rs.AddGetHandler(c, nil, "", listPrizesHandler(service))
			rs.AddGetHandler(c, nil, "/suggestion", suggestPrizeHandler(service))
			rs.AddPostHandler(c, allocationLimiter, "/:prizeId", allocatePrizeHandler(service))
		},
	)
}

func listPrizesHandler(service PrizeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.GetPrizes(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Prizes retrieved successfully")
	}
}

func suggestPrizeHandler(service PrizeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.SuggestIndex(ctx.Request.Context())
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Prize suggestion computed")
	}
}

func allocatePrizeHandler(service PrizeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		prizeID, errResult := router.ParseIDParam(ctx, "prizeId")
		if errResult != nil {
			return errResult
		}

		var req AllocatePrizeRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, err := service.Allocate(ctx.Request.Context(), req.UserID, prizeID)
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(response, "Prize allocated successfully")
	}
}
