package domain

import (
	"github.com/affhub/meetup-backend/config"
	"github.com/affhub/meetup-backend/domain/monitoring"
	"github.com/affhub/meetup-backend/domain/prize"
	"github.com/affhub/meetup-backend/domain/registration"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	// Sheets is *sheets.Client; a typed nil must not reach the service as a
	// non-nil interface.
	var sink registration.NotificationSink
	if appConfig.Sheets != nil {
		sink = appConfig.Sheets
	}

	var prizeCache prize.Cache
	if appConfig.Cache != nil {
		prizeCache = appConfig.Cache
	}

	appConfig.RouterService.MountController(monitoring.NewMonitoringController(appConfig.DB, appConfig.Logger, appConfig.Cache))
	appConfig.RouterService.MountController(registration.NewRegistrationController(appConfig.DB, appConfig.Logger, sink))
	appConfig.RouterService.MountController(prize.NewPrizeController(appConfig.DB, appConfig.Logger, prizeCache))
}
