package domain

// Transaction types recorded against a wallet
const (
	TxOpening = "opening" // Starting balance on wallet creation
	TxBet     = "bet"     // Debit for a placed bet
	TxPayout  = "payout"  // Credit at settlement
	TxGrant   = "grant"   // Credit issued by an admin
)

// Transaction Model, append-only audit of every wallet mutation
type Transaction struct {
	ID           uint    `gorm:"primaryKey" json:"id"`                                          // Primary key
	WalletID     uint    `gorm:"not null;index" json:"wallet_id"`                               // Wallet reference
	FamilyID     uint    `gorm:"not null;index:idx_tx_family_user,priority:1" json:"family_id"` // Family reference
	UserID       uint    `gorm:"not null;index:idx_tx_family_user,priority:2" json:"user_id"`   // Wallet owner
	RoundID      *string `gorm:"size:36" json:"round_id,omitempty"`                             // Round that caused it, if any
	Type         string  `gorm:"size:16;not null" json:"type"`                                  // opening, bet, payout, grant
	Amount       int64   `gorm:"not null" json:"amount"`                                        // Absolute amount moved
	BalanceAfter int64   `gorm:"not null" json:"balance_after"`                                 // Balance once applied
	CreatedAt    int64   `gorm:"autoCreateTime:milli" json:"created_at"`                        // Timestamp of creation in milliseconds
}
