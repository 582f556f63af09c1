package registration

import (
	"context"
	"testing"
	"time"

	"github.com/affhub/meetup-backend/internal/log"
	"github.com/affhub/meetup-backend/internal/models"
	apperrors "github.com/affhub/meetup-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*MockRegistrationRepository, RegistrationService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRegistrationRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewRegistrationService(logger, mockRepo, nil)
	return mockRepo, service
}

// captureSink records exported rows so tests can wait on the background notify.
type captureSink struct {
	rows chan []string
	err  error
}

func newCaptureSink() *captureSink {
	return &captureSink{rows: make(chan []string, 1)}
}

func (s *captureSink) AppendRow(_ context.Context, row []string) error {
	s.rows <- row
	return s.err
}

func (s *captureSink) waitForRow(t *testing.T) []string {
	t.Helper()
	select {
	case row := <-s.rows:
		return row
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification row")
		return nil
	}
}

func strPtr(s string) *string {
	return &s
}

func TestRegister_Success(t *testing.T) {
	mockRepo, service := newTestService(t)

	req := &CreateRegistrantRequest{
		Name:  "Alice",
		Phone: "+380501234567",
		Role:  "affiliate",
	}

	mockRepo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.Registrant) (*models.Registrant, bool, error) {
			assert.Equal(t, "Alice", r.Name)
			assert.NotNil(t, r.Phone)
			assert.Equal(t, "+380501234567", *r.Phone)
			assert.Nil(t, r.Email)
			assert.Nil(t, r.Telegram)
			r.ID = 42
			return r, true, nil
		},
	)

	result, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(42), result.UserID)
}

func TestRegister_NilRequest(t *testing.T) {
	_, service := newTestService(t)

	result, created, err := service.Register(context.Background(), nil, "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, created)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
}

func TestRegister_ExistingRegistrantIsIdempotent(t *testing.T) {
	mockRepo, service := newTestService(t)

	req := &CreateRegistrantRequest{Telegram: "@alice_affhub"}
	existing := &models.Registrant{ID: 42, Name: "Alice", Telegram: strPtr("@alice_affhub")}

	mockRepo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(existing, false, nil).Times(2)

	first, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.NoError(t, err)
	assert.False(t, created)

	second, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.UserID, second.UserID)
}

func TestRegister_RepositoryError(t *testing.T) {
	mockRepo, service := newTestService(t)

	req := &CreateRegistrantRequest{Email: "alice@example.com"}
	mockRepo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(nil, false, apperrors.NewDatabaseError("db error", nil))

	result, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.Error(t, err)
	assert.False(t, created)
	assert.Nil(t, result)
}

func TestRegister_NormalizesIdentityFields(t *testing.T) {
	mockRepo, service := newTestService(t)

	req := &CreateRegistrantRequest{
		Name:  "alice",
		Email: "  Alice@Example.COM ",
		Phone: "  ",
	}

	mockRepo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.Registrant) (*models.Registrant, bool, error) {
			assert.Equal(t, "Alice", r.Name)
			assert.NotNil(t, r.Email)
			assert.Equal(t, "alice@example.com", *r.Email)
			assert.Nil(t, r.Phone)
			r.ID = 1
			return r, true, nil
		},
	)

	_, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, created)
}

func TestRegister_NotifiesSinkOnCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRegistrationRepository(ctrl)
	sink := newCaptureSink()
	service := NewRegistrationService(log.NewLoggerWithJSONOutput(), mockRepo, sink)

	req := &CreateRegistrantRequest{
		Name:     "Alice",
		Phone:    "+380501234567",
		Telegram: "@alice_affhub",
		Role:     "affiliate",
	}

	mockRepo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.Registrant) (*models.Registrant, bool, error) {
			r.ID = 42
			return r, true, nil
		},
	)

	_, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, created)

	row := sink.waitForRow(t)
	assert.Len(t, row, 5)
	assert.Equal(t, "Alice", row[0])
	assert.Equal(t, "+380501234567", row[1])
	assert.Equal(t, "@alice_affhub", row[2])
	assert.Equal(t, "affiliate", row[3])
}

func TestRegister_DoesNotNotifyExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRegistrationRepository(ctrl)
	sink := newCaptureSink()
	service := NewRegistrationService(log.NewLoggerWithJSONOutput(), mockRepo, sink)

	req := &CreateRegistrantRequest{Phone: "+380501234567"}
	existing := &models.Registrant{ID: 42, Phone: strPtr("+380501234567")}

	mockRepo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(existing, false, nil)

	_, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.NoError(t, err)
	assert.False(t, created)

	select {
	case row := <-sink.rows:
		t.Fatalf("unexpected notification for existing registrant: %v", row)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRegister_SinkFailureDoesNotFailRegistration(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockRegistrationRepository(ctrl)
	sink := newCaptureSink()
	sink.err = assert.AnError
	service := NewRegistrationService(log.NewLoggerWithJSONOutput(), mockRepo, sink)

	req := &CreateRegistrantRequest{Phone: "+380501234567"}
	mockRepo.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.Registrant) (*models.Registrant, bool, error) {
			r.ID = 42
			return r, true, nil
		},
	)

	result, created, err := service.Register(context.Background(), req, "203.0.113.7")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(42), result.UserID)

	sink.waitForRow(t)
}

func TestFindRegistrantByID_Success(t *testing.T) {
	mockRepo, service := newTestService(t)

	registrant := &models.Registrant{
		ID:       42,
		Name:     "Alice",
		Role:     "affiliate",
		Email:    strPtr("alice@example.com"),
		Telegram: strPtr("@alice_affhub"),
	}

	mockRepo.EXPECT().FindByID(gomock.Any(), uint(42)).Return(registrant, nil)

	result, err := service.FindRegistrantByID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), result.ID)
	assert.Equal(t, "Alice", result.Name)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, "@alice_affhub", result.Telegram)
	assert.Nil(t, result.PrizeID)
}

func TestFindRegistrantByID_ZeroID(t *testing.T) {
	_, service := newTestService(t)

	result, err := service.FindRegistrantByID(context.Background(), 0)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
}

func TestFindRegistrantByID_NotFound(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().FindByID(gomock.Any(), uint(99)).Return(nil, apperrors.NewNotFoundError("registrant not found", nil))

	result, err := service.FindRegistrantByID(context.Background(), 99)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}
