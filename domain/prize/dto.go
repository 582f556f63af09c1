package prize

import (
	"github.com/affhub/meetup-backend/internal/models"
)

// ========================================
// Request DTOs
// ========================================

type AllocatePrizeRequest struct {
	UserID uint `json:"user_id" binding:"required,gt=0"`
}

// ========================================
// Response DTOs
// ========================================

type PrizeResponse struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Amount int    `json:"amount"`
}

type AllocationResponse struct {
	PrizeID    uint   `json:"prize_id"`
	PrizeTitle string `json:"prize_title"`
}

type SuggestionResponse struct {
	// Index is the position in the current prize list the wheel should land
	// on, or -1 when every prize is exhausted.
	Index int `json:"index"`
}

// ========================================
// Mappers
// ========================================

func ToPrizeResponse(p *models.Prize) PrizeResponse {
	if p == nil {
		return PrizeResponse{}
	}
	return PrizeResponse{
		ID:     p.ID,
		Title:  p.Title,
		Amount: p.Amount,
	}
}
