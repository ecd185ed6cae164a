package domain

import "time" // Timestamps

// Wallet Model, one per (family, user)
type Wallet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                                    // Primary key
	FamilyID  uint      `gorm:"not null;uniqueIndex:idx_wallet_family_user,priority:1" json:"family_id"` // Family reference
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wallet_family_user,priority:2" json:"user_id"`   // Owner
	Balance   int64     `gorm:"not null;default:0" json:"balance"`                                       // Chips, never negative
	UpdatedAt time.Time `json:"updated_at"`                                                              // Last mutation
}

// NewWallet builds a wallet with an opening balance
func NewWallet(familyID, userID uint, balance int64) (Wallet, error) {
	if familyID == 0 {
		return Wallet{}, ErrInvalidFamily
	}
	if userID == 0 {
		return Wallet{}, ErrInvalidUser
	}
	if balance < 0 {
		return Wallet{}, ErrNegativeBalance
	}
	return Wallet{FamilyID: familyID, UserID: userID, Balance: balance}, nil
}
