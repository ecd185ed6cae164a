package db

import (
	"fmt" // Error wrapping

	"tetconnect/internal/config" // Application configuration

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM query logging
)

// Open connects to the database selected by DB_DRIVER
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true} // Map driver errors to gorm.ErrDuplicatedKey etc.
	if cfg.IsProd {
		gcfg.Logger = logger.Default.LogMode(logger.Silent) // Keep SQL out of production logs
	}
	switch cfg.DBDriver {
	case "sqlite":
		return OpenSQLite(cfg.SQLitePath, gcfg)
	default:
		db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		return db, nil
	}
}

// OpenSQLite opens a SQLite database. A single connection is used because
// SQLite serializes writers anyway and ":memory:" databases are per connection.
func OpenSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)}
	}
	db, err := gorm.Open(sqlite.Open(path), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1) // One writer, and keeps in-memory databases alive
	return db, nil
}
