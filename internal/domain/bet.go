package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Bet identifiers
)

// Bet Model
type Bet struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`           // UUID
	RoundID   string    `gorm:"size:36;not null;index" json:"round_id"` // Round reference
	FamilyID  uint      `gorm:"not null" json:"family_id"`              // Family reference
	UserID    uint      `gorm:"not null;index" json:"user_id"`          // Bettor
	Symbol    string    `gorm:"size:8;not null" json:"symbol"`          // Chosen face
	Amount    int64     `gorm:"not null" json:"amount"`                 // Stake
	Payout    int64     `gorm:"not null;default:0" json:"payout"`       // Credited at settlement
	CreatedAt time.Time `json:"created_at"`                             // Placement time
}

// NewBet validates and builds a bet; symbol validity is checked by the game package
func NewBet(round Round, userID uint, symbol string, amount int64) (Bet, error) {
	if round.ID == "" {
		return Bet{}, ErrInvalidRound
	}
	if userID == 0 {
		return Bet{}, ErrInvalidUser
	}
	if amount <= 0 {
		return Bet{}, ErrInvalidAmount
	}
	return Bet{
		ID:       uuid.NewString(),
		RoundID:  round.ID,
		FamilyID: round.FamilyID,
		UserID:   userID,
		Symbol:   symbol,
		Amount:   amount,
	}, nil
}
