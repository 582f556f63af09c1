package prize

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/affhub/meetup-backend/internal/log"
	"github.com/affhub/meetup-backend/internal/models"
	apperrors "github.com/affhub/meetup-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*MockPrizeRepository, PrizeService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockPrizeRepository(ctrl)
	logger := log.NewLoggerWithJSONOutput()
	service := NewPrizeService(logger, mockRepo, nil)
	return mockRepo, service
}

// fakeCache is an in-memory Cache for exercising the cache paths without Redis.
type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	return nil
}

func TestGetPrizes_Success(t *testing.T) {
	mockRepo, service := newTestService(t)

	prizes := []*models.Prize{
		{ID: 1, Title: "Backpack", Amount: 5},
		{ID: 2, Title: "Mug", Amount: 10},
	}

	mockRepo.EXPECT().GetPrizes(gomock.Any()).Return(prizes, nil)

	result, err := service.GetPrizes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, uint(1), result[0].ID)
	assert.Equal(t, "Backpack", result[0].Title)
	assert.Equal(t, 5, result[0].Amount)
}

func TestGetPrizes_RepositoryError(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().GetPrizes(gomock.Any()).Return(nil, apperrors.NewDatabaseError("db error", nil))

	result, err := service.GetPrizes(context.Background())
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestGetPrizes_ServesFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockPrizeRepository(ctrl)
	cache := newFakeCache()
	service := NewPrizeService(log.NewLoggerWithJSONOutput(), mockRepo, cache)

	prizes := []*models.Prize{{ID: 1, Title: "Backpack", Amount: 5}}

	// Only the first call may reach the repository.
	mockRepo.EXPECT().GetPrizes(gomock.Any()).Return(prizes, nil).Times(1)

	first, err := service.GetPrizes(context.Background())
	assert.NoError(t, err)

	second, err := service.GetPrizes(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetPrizes_IgnoresCorruptCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockPrizeRepository(ctrl)
	cache := newFakeCache()
	cache.values[prizeListCacheKey] = "{not json"
	service := NewPrizeService(log.NewLoggerWithJSONOutput(), mockRepo, cache)

	mockRepo.EXPECT().GetPrizes(gomock.Any()).Return([]*models.Prize{{ID: 1, Title: "Mug", Amount: 2}}, nil)

	result, err := service.GetPrizes(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestAllocate_Success(t *testing.T) {
	mockRepo, service := newTestService(t)

	awarded := &models.Prize{ID: 3, Title: "Powerbank", Amount: 4}
	mockRepo.EXPECT().Allocate(gomock.Any(), uint(7), uint(3)).Return(awarded, nil)

	result, err := service.Allocate(context.Background(), 7, 3)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, uint(3), result.PrizeID)
	assert.Equal(t, "Powerbank", result.PrizeTitle)
}

func TestAllocate_AlreadyAwarded(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().Allocate(gomock.Any(), uint(7), uint(3)).Return(nil, NewAlreadyAwardedError())

	result, err := service.Allocate(context.Background(), 7, 3)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
}

func TestAllocate_PrizeUnavailable(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().Allocate(gomock.Any(), uint(7), uint(3)).Return(nil, NewPrizeUnavailableError())

	result, err := service.Allocate(context.Background(), 7, 3)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.GetErrorType(err))
}

func TestAllocate_PrizeNotFound(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().Allocate(gomock.Any(), uint(7), uint(99)).Return(nil, NewPrizeNotFoundError())

	result, err := service.Allocate(context.Background(), 7, 99)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetErrorType(err))
}

func TestAllocate_InvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockPrizeRepository(ctrl)
	cache := newFakeCache()
	service := NewPrizeService(log.NewLoggerWithJSONOutput(), mockRepo, cache)

	stale, err := json.Marshal([]PrizeResponse{{ID: 3, Title: "Powerbank", Amount: 5}})
	assert.NoError(t, err)
	cache.values[prizeListCacheKey] = string(stale)

	awarded := &models.Prize{ID: 3, Title: "Powerbank", Amount: 4}
	mockRepo.EXPECT().Allocate(gomock.Any(), uint(7), uint(3)).Return(awarded, nil)

	_, err = service.Allocate(context.Background(), 7, 3)
	assert.NoError(t, err)
	assert.NotContains(t, cache.values, prizeListCacheKey)
}

func TestSuggestIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockRepo := NewMockPrizeRepository(ctrl)

	service := &prizeService{
		logger:     log.NewLoggerWithJSONOutput(),
		repository: mockRepo,
		intn:       func(int) int { return 1 },
	}

	prizes := []*models.Prize{
		{ID: 1, Title: "Backpack", Amount: 5},
		{ID: 2, Title: "Mug", Amount: 10},
	}
	mockRepo.EXPECT().GetPrizes(gomock.Any()).Return(prizes, nil)

	result, err := service.SuggestIndex(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Index)
}

func TestSuggestIndex_AllExhausted(t *testing.T) {
	mockRepo, service := newTestService(t)

	prizes := []*models.Prize{
		{ID: 1, Title: "Backpack", Amount: 0},
		{ID: 2, Title: "Mug", Amount: 0},
	}
	mockRepo.EXPECT().GetPrizes(gomock.Any()).Return(prizes, nil)

	result, err := service.SuggestIndex(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, -1, result.Index)
}

func TestSuggestIndex_RepositoryError(t *testing.T) {
	mockRepo, service := newTestService(t)

	mockRepo.EXPECT().GetPrizes(gomock.Any()).Return(nil, apperrors.NewDatabaseError("db error", nil))

	result, err := service.SuggestIndex(context.Background())
	assert.Error(t, err)
	assert.Nil(t, result)
}
