package prize

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/affhub/meetup-backend/internal/log"
)

const (
	prizeListCacheKey = "prizes:list"
	prizeListCacheTTL = 10 * time.Second
)

// Cache is the optional prize-list cache. A nil cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type PrizeService interface {
	// GetPrizes returns the current inventory for the wheel.
	GetPrizes(ctx context.Context) ([]PrizeResponse, error)

	// Allocate awards prize prizeID to the registrant, decrementing its
	// remaining count. Fails when the registrant already has a prize or when
	// the prize is exhausted; the client-picked prize is a hint only.
	Allocate(ctx context.Context, registrantID, prizeID uint) (*AllocationResponse, error)

	// SuggestIndex picks a wheel target from the current inventory.
	SuggestIndex(ctx context.Context) (*SuggestionResponse, error)
}

type prizeService struct {
	logger     *log.Logger
	repository PrizeRepository
	cache      Cache
	intn       func(n int) int
}

func NewPrizeService(logger *log.Logger, repository PrizeRepository, cache Cache) PrizeService {
	return &prizeService{
		logger:     logger,
		repository: repository,
		cache:      cache,
		intn:       rand.Intn,
	}
}

func (s *prizeService) GetPrizes(ctx context.Context) ([]PrizeResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if cached := s.readCachedPrizes(ctx); cached != nil {
		return cached, nil
	}

	prizes, err := s.repository.GetPrizes(ctx)
	if err != nil {
		logger.Error("Failed to fetch prizes", "error", err)
		return nil, err
	}

	responses := make([]PrizeResponse, 0, len(prizes))
	for _, p := range prizes {
		responses = append(responses, ToPrizeResponse(p))
	}

	s.writeCachedPrizes(ctx, responses)
	return responses, nil
}

func (s *prizeService) Allocate(ctx context.Context, registrantID, prizeID uint) (*AllocationResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	awarded, err := s.repository.Allocate(ctx, registrantID, prizeID)
	if err != nil {
		logger.Error("Prize allocation failed",
			"registrant_id", registrantID,
			"prize_id", prizeID,
			"error", err,
		)
		return nil, err
	}

	logger.Info("Prize allocated",
		"registrant_id", registrantID,
		"prize_id", awarded.ID,
		"remaining", awarded.Amount,
	)

	s.invalidateCachedPrizes(ctx)

	return &AllocationResponse{
		PrizeID:    awarded.ID,
		PrizeTitle: awarded.Title,
	}, nil
}

func (s *prizeService) SuggestIndex(ctx context.Context) (*SuggestionResponse, error) {
	prizes, err := s.GetPrizes(ctx)
	if err != nil {
		return nil, err
	}

	return &SuggestionResponse{Index: PickPrizeIndex(prizes, s.intn)}, nil
}

// Cache helpers are best effort: a cache failure never fails the request.

func (s *prizeService) readCachedPrizes(ctx context.Context) []PrizeResponse {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, prizeListCacheKey)
	if err != nil || raw == "" {
		return nil
	}

	var prizes []PrizeResponse
	if err := json.Unmarshal([]byte(raw), &prizes); err != nil {
		return nil
	}
	return prizes
}

func (s *prizeService) writeCachedPrizes(ctx context.Context, prizes []PrizeResponse) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(prizes)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, prizeListCacheKey, string(raw), prizeListCacheTTL); err != nil {
		s.logger.Warn("Failed to cache prize list", "error", err)
	}
}

func (s *prizeService) invalidateCachedPrizes(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Delete(ctx, prizeListCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate prize list cache", "error", err)
	}
}
