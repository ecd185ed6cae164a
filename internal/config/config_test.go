package config

import (
	"strconv"
	"testing"

	"tetconnect/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_USER", "tet")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, int64(1000), cfg.StartingBalance)
	assert.Equal(t, int64(1000000), cfg.MaxBet)
	assert.False(t, cfg.IsProd)
	assert.Equal(t, "tet:pw@tcp(127.0.0.1:3306)/tetconnect?parseTime=true&charset=utf8mb4", cfg.MySQLDSN())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "postgres")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigBoundsMaxBet(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Setenv("MAX_BET", "0")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("MAX_BET", strconv.FormatInt(game.MaxStake+1, 10))
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("MAX_BET", strconv.FormatInt(game.MaxStake, 10))
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, game.MaxStake, cfg.MaxBet)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("STARTING_BALANCE", "500")
	t.Setenv("IS_PROD", "true")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, int64(500), cfg.StartingBalance)
	assert.True(t, cfg.IsProd)
	assert.Equal(t, 3, cfg.RedisDB)
}
