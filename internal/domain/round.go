package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // Round identifiers
)

// Round lifecycle statuses
const (
	RoundBetting = "betting" // Accepting wagers
	RoundRolling = "rolling" // Outcome fixed, payouts pending
	RoundSettled = "settled" // Terminal
)

// Round Model. (family_id, round_number) is unique so two concurrent creators
// cannot both persist the same number.
type Round struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`                                                // UUID
	FamilyID    uint       `gorm:"not null;uniqueIndex:idx_round_family_number,priority:1" json:"family_id"`    // Owning family
	RoundNumber int        `gorm:"not null;uniqueIndex:idx_round_family_number,priority:2" json:"round_number"` // Sequential per family
	Status      string     `gorm:"size:16;not null;index" json:"status"`                                        // betting, rolling or settled
	Die1        string     `gorm:"size:8" json:"-"`                                                             // First die face
	Die2        string     `gorm:"size:8" json:"-"`                                                             // Second die face
	Die3        string     `gorm:"size:8" json:"-"`                                                             // Third die face
	BetCount    int        `gorm:"not null;default:0" json:"bet_count"`                                         // Bets placed so far
	BetTotal    int64      `gorm:"not null;default:0" json:"bet_total"`                                         // Sum of stakes
	StartedAt   time.Time  `gorm:"not null" json:"started_at"`                                                  // Creation time
	RolledAt    *time.Time `json:"rolled_at,omitempty"`                                                         // Set on betting -> rolling
	SettledAt   *time.Time `json:"settled_at,omitempty"`                                                        // Set on rolling -> settled
}

// NewRound builds a fresh round in the betting state
func NewRound(familyID uint, number int, now time.Time) (Round, error) {
	if familyID == 0 {
		return Round{}, ErrInvalidFamily
	}
	if number < 1 {
		return Round{}, ErrInvalidRoundNumber
	}
	return Round{
		ID:          uuid.NewString(),
		FamilyID:    familyID,
		RoundNumber: number,
		Status:      RoundBetting,
		StartedAt:   now,
	}, nil
}

// Faces returns the stored dice, or nil before the roll
func (r Round) Faces() []string {
	if r.Die1 == "" {
		return nil
	}
	return []string{r.Die1, r.Die2, r.Die3}
}
