package prize

import (
	"github.com/affhub/meetup-backend/config/router"
	"github.com/affhub/meetup-backend/internal/log"
	"gorm.io/gorm"
)

type PrizeServiceFactory interface {
	CreateService() PrizeService
	CreateController() *router.RESTController
}

type DefaultPrizeServiceFactory struct {
	db     *gorm.DB
	logger *log.Logger
	cache  Cache
}

func NewPrizeServiceFactory(db *gorm.DB, logger *log.Logger, cache Cache) PrizeServiceFactory {
	return &DefaultPrizeServiceFactory{
		db:     db,
		logger: logger,
		cache:  cache,
	}
}

func (f *DefaultPrizeServiceFactory) CreateService() PrizeService {
	repository := NewPrizeRepository(f.db)
	return NewPrizeService(f.logger, repository, f.cache)
}

func (f *DefaultPrizeServiceFactory) CreateController() *router.RESTController {
	return NewPrizeController(f.db, f.logger, f.cache)
}
