package registration

import (
	"context"
	"time"

	"github.com/affhub/meetup-backend/internal/log"
	"github.com/affhub/meetup-backend/pkg/constants"
	apperrors "github.com/affhub/meetup-backend/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NotificationSink receives one row per new registration. Implemented by
// pkg/sheets; nil disables the export. Sink failures are logged and swallowed,
// they never fail or roll back a registration.
type NotificationSink interface {
	AppendRow(ctx context.Context, row []string) error
}

type RegistrationService interface {
	// Register finds or creates the registrant for the supplied identity
	// fields. The bool reports whether a new record was created. Calling it
	// twice with the same identity key yields the same registrant id.
	Register(ctx context.Context, req *CreateRegistrantRequest, ip string) (*RegistrantResponse, bool, error)

	// FindRegistrantByID retrieves a registrant by its unique ID.
	FindRegistrantByID(ctx context.Context, id uint) (*RegistrantDetailResponse, error)
}

type registrationService struct {
	logger     *log.Logger
	repository RegistrationRepository
	sink       NotificationSink
	nameCaser  cases.Caser
}

func NewRegistrationService(logger *log.Logger, repository RegistrationRepository, sink NotificationSink) RegistrationService {
	return &registrationService{
		logger:     logger,
		repository: repository,
		sink:       sink,
		nameCaser:  cases.Title(language.Und),
	}
}

func (s *registrationService) Register(ctx context.Context, req *CreateRegistrantRequest, ip string) (*RegistrantResponse, bool, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Register received empty request")
		return nil, false, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	registrantModel := ToRegistrantModel(req, ip)
	registrantModel.Name = s.nameCaser.String(registrantModel.Name)

	registrant, created, err := s.repository.FindOrCreate(ctx, registrantModel)
	if err != nil {
		logger.Error("Failed to register", "error", err)
		return nil, false, err
	}

	if created {
		logger.Info("Registrant created", "id", registrant.ID)
		s.notify(registrant.Name, deref(registrant.Phone), deref(registrant.Telegram), registrant.Role)
	} else {
		logger.Info("Registrant already exists", "id", registrant.ID)
	}

	return &RegistrantResponse{UserID: registrant.ID}, created, nil
}

func (s *registrationService) FindRegistrantByID(ctx context.Context, id uint) (*RegistrantDetailResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("FindRegistrantByID received invalid ID")
		return nil, apperrors.NewInvalidRequestError("invalid registrant ID", nil)
	}

	registrant, err := s.repository.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find registrant", "id", id, "error", err)
		return nil, err
	}

	response := ToRegistrantDetailResponse(registrant)
	return &response, nil
}

// notify exports the registration row in the background. The spreadsheet is a
// best-effort mirror of the registrant table, so errors only produce a log line.
func (s *registrationService) notify(name, phone, telegram, role string) {
	if s.sink == nil {
		return
	}

	row := []string{name, phone, telegram, role, time.Now().Format(constants.RFC3339DateTimeFormat)}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.sink.AppendRow(ctx, row); err != nil {
			s.logger.Error("Failed to export registration to spreadsheet", "error", err)
		}
	}()
}
