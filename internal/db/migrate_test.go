package db

import (
	"testing"
	"time"

	"tetconnect/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMigrateCreatesUniqueRoundNumbers(t *testing.T) {
	gdb, err := OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	now := time.Now()
	first, err := domain.NewRound(1, 1, now)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&first).Error)

	dup, err := domain.NewRound(1, 1, now)
	require.NoError(t, err)
	assert.ErrorIs(t, gdb.Create(&dup).Error, gorm.ErrDuplicatedKey)

	other, err := domain.NewRound(2, 1, now)
	require.NoError(t, err)
	assert.NoError(t, gdb.Create(&other).Error)
}

func TestMigrateCreatesUniqueWallets(t *testing.T) {
	gdb, err := OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))

	w, err := domain.NewWallet(1, 1, 10)
	require.NoError(t, err)
	require.NoError(t, gdb.Create(&w).Error)

	dup, err := domain.NewWallet(1, 1, 10)
	require.NoError(t, err)
	assert.Error(t, gdb.Create(&dup).Error)
}
