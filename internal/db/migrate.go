package db

import (
	"tetconnect/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table managed by AutoMigrate
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Family{},
		&domain.FamilyMember{},
		&domain.Round{},
		&domain.Bet{},
		&domain.Wallet{},
		&domain.Transaction{},
	}
}

// Migrate creates tables, missing columns and the unique indexes the game
// relies on: (family_id, round_number) on rounds and (family_id, user_id) on wallets
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
