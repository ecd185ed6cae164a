package service

import (
	"context"
	"errors"
	"testing"

	appdb "tetconnect/internal/db"
	"tetconnect/internal/domain"
	"tetconnect/internal/game"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixedRoller always shows the same faces.
type fixedRoller []string

func (f fixedRoller) Roll(string) ([]string, error) { return []string(f), nil }

// failingRoller fails the test if the dice are rolled again.
type failingRoller struct{ t *testing.T }

func (f failingRoller) Roll(string) ([]string, error) {
	f.t.Error("dice rolled for a round that already had an outcome")
	return nil, errors.New("unexpected roll")
}

type testEnv struct {
	ctx      context.Context
	db       *gorm.DB
	families *FamilyService
	ledger   *Ledger
	rounds   *RoundService
	owner    domain.User
	member   domain.User
	outsider domain.User
	family   domain.Family
}

const testStartingBalance = 1000

func newTestEnv(t *testing.T, roller game.Roller, rdb *redis.Client) *testEnv {
	t.Helper()
	gdb, err := appdb.OpenSQLite(":memory:", nil)
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(gdb))

	env := &testEnv{ctx: context.Background(), db: gdb}
	env.owner = createUser(t, gdb, "an")
	env.member = createUser(t, gdb, "binh")
	env.outsider = createUser(t, gdb, "cuong")

	env.families = NewFamilyService(gdb)
	env.family, err = env.families.Create(env.ctx, env.owner.ID, "Nhà An")
	require.NoError(t, err)
	_, err = env.families.AddMember(env.ctx, env.family.ID, env.owner.ID, "binh")
	require.NoError(t, err)

	env.ledger = NewLedger(gdb, rdb, testStartingBalance)
	env.rounds = NewRoundService(gdb, rdb, env.families, env.ledger, RoundOptions{Roller: roller, MaxBet: 500})
	return env
}

func createUser(t *testing.T, gdb *gorm.DB, name string) domain.User {
	t.Helper()
	u := domain.User{Username: name, Password: "hash", Role: domain.RoleUser}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func (e *testEnv) countRounds(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&domain.Round{}).Where("family_id = ?", e.family.ID).Count(&n).Error)
	return n
}

func (e *testEnv) setStatus(t *testing.T, roundID, status string) {
	t.Helper()
	require.NoError(t, e.db.Model(&domain.Round{}).Where("id = ?", roundID).Update("status", status).Error)
}

func (e *testEnv) balance(t *testing.T, userID uint) int64 {
	t.Helper()
	var w domain.Wallet
	require.NoError(t, e.db.Where("family_id = ? AND user_id = ?", e.family.ID, userID).First(&w).Error)
	return w.Balance
}
