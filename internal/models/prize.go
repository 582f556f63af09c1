package models

// Prize is an inventory item for the spinning wheel. Amount is the remaining
// count; it is only ever mutated by the conditional decrement in the prize
// repository and must never go below zero.
type Prize struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Title  string `gorm:"size:255;not null" json:"title"`
	Amount int    `gorm:"not null;default:0" json:"amount"`
}
