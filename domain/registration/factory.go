package registration

import (
	"github.com/affhub/meetup-backend/config/router"
	"github.com/affhub/meetup-backend/internal/log"
	"gorm.io/gorm"
)

type RegistrationServiceFactory interface {
	CreateService() RegistrationService
	CreateController() *router.RESTController
}

type DefaultRegistrationServiceFactory struct {
	db     *gorm.DB
	logger *log.Logger
	sink   NotificationSink
}

func NewRegistrationServiceFactory(db *gorm.DB, logger *log.Logger, sink NotificationSink) RegistrationServiceFactory {
	return &DefaultRegistrationServiceFactory{
		db:     db,
		logger: logger,
		sink:   sink,
	}
}

func (f *DefaultRegistrationServiceFactory) CreateService() RegistrationService {
	repository := NewRegistrationRepository(f.db)
	return NewRegistrationService(f.logger, repository, f.sink)
}

func (f *DefaultRegistrationServiceFactory) CreateController() *router.RESTController {
	return NewRegistrationController(f.db, f.logger, f.sink)
}
