package models

import (
	"time"
)

// Registrant is one landing-page registration. Email, phone and telegram are
// identity keys: each is unique when present and NULL when the form left it
// blank, so the indexes never collide on absent values.
type Registrant struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:255" json:"name"`
	Role      string  `gorm:"size:255" json:"role"`
	Email     *string `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	Phone     *string `gorm:"size:255;uniqueIndex" json:"phone,omitempty"`
	Telegram  *string `gorm:"size:255;uniqueIndex" json:"telegram,omitempty"`
	IP        string  `gorm:"size:64" json:"-"`
	PrizeID   *uint   `gorm:"index" json:"prize_id,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Prize *Prize `gorm:"foreignKey:PrizeID" json:"prize,omitempty"`
}
