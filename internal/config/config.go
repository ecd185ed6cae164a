package config

import (
	"fmt" // Error wrapping

	"tetconnect/internal/game" // Stake limits

	"github.com/caarlos0/env/v11" // Struct tags -> environment variables
	"github.com/joho/godotenv"    // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string `env:"APP_PORT" envDefault:"8080"`             // Application port
	DBDriver        string `env:"DB_DRIVER" envDefault:"mysql"`           // mysql or sqlite
	DBUser          string `env:"DB_USER"`                                // Database user
	DBPassword      string `env:"DB_PASSWORD"`                            // Database password
	DBHost          string `env:"DB_HOST" envDefault:"127.0.0.1"`         // Database host
	DBPort          string `env:"DB_PORT" envDefault:"3306"`              // Database port
	DBName          string `env:"DB_NAME" envDefault:"tetconnect"`        // Database name
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"tetconnect.db"` // SQLite file when DB_DRIVER=sqlite
	JWTSecret       string `env:"JWT_SECRET,required,notEmpty"`           // JWT secret key
	RedisAddr       string `env:"REDIS_ADDR"`                             // Redis address, empty disables caching
	RedisPass       string `env:"REDIS_PASS"`                             // Redis password
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`                // Redis database number
	IsProd          bool   `env:"IS_PROD" envDefault:"false"`             // Is production environment
	StartingBalance int64  `env:"STARTING_BALANCE" envDefault:"1000"`     // Chips granted to a new wallet
	MaxBet          int64  `env:"MAX_BET" envDefault:"1000000"`           // Largest single stake
	DiceSeed        string `env:"DICE_SEED"`                              // Non-empty switches to replayable dice
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`            // logrus level
	LogFile         string `env:"LOG_FILE"`                               // Rotated log file, empty logs to stderr
	LogMaxSizeMB    int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`       // Rotation size
	LogMaxBackups   int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`         // Rotated files kept
	LogMaxAgeDays   int    `env:"LOG_MAX_DAYS" envDefault:"14"`           // Rotated file age limit
}

// LoadConfig loads configuration from .env (if present) and the environment
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.StartingBalance < 0 {
		return nil, fmt.Errorf("STARTING_BALANCE must not be negative")
	}
	if cfg.MaxBet <= 0 || cfg.MaxBet > game.MaxStake {
		return nil, fmt.Errorf("MAX_BET must be between 1 and %d", game.MaxStake)
	}
	return cfg, nil
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
}
