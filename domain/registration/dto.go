package registration

import (
	"strings"

	"github.com/affhub/meetup-backend/internal/models"
	"github.com/affhub/meetup-backend/pkg/constants"
)

type CreateRegistrantRequest struct {
	Name     string `json:"name" binding:"omitempty,personname,max=255"`
	Phone    string `json:"phone" binding:"required_without_all=Telegram Email,omitempty,phonenumber,max=255"`
	Telegram string `json:"telegram" binding:"required_without_all=Phone Email,omitempty,tghandle,max=255"`
	Email    string `json:"email" binding:"required_without_all=Phone Telegram,omitempty,email,max=255"`
	Role     string `json:"role" binding:"omitempty,max=255"`
}

type RegistrantResponse struct {
	UserID uint `json:"user_id"`
}

type RegistrantDetailResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Telegram  string `json:"telegram,omitempty"`
	PrizeID   *uint  `json:"prize_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ========================================
// Mappers
// ========================================

// ToRegistrantModel normalizes the request into a model: blank identity
// fields become NULL so the unique indexes only bind supplied values.
func ToRegistrantModel(req *CreateRegistrantRequest, ip string) *models.Registrant {
	if req == nil {
		return nil
	}
	return &models.Registrant{
		Name:     strings.TrimSpace(req.Name),
		Role:     strings.TrimSpace(req.Role),
		Email:    optional(strings.ToLower(strings.TrimSpace(req.Email))),
		Phone:    optional(strings.TrimSpace(req.Phone)),
		Telegram: optional(strings.TrimSpace(req.Telegram)),
		IP:       ip,
	}
}

func ToRegistrantDetailResponse(r *models.Registrant) RegistrantDetailResponse {
	if r == nil {
		return RegistrantDetailResponse{}
	}
	return RegistrantDetailResponse{
		ID:        r.ID,
		Name:      r.Name,
		Role:      r.Role,
		Email:     deref(r.Email),
		Phone:     deref(r.Phone),
		Telegram:  deref(r.Telegram),
		PrizeID:   r.PrizeID,
		CreatedAt: r.CreatedAt.Format(constants.RFC3339DateTimeFormat),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
