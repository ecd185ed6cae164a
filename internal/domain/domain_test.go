package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRound(t *testing.T) {
	now := time.Date(2026, 2, 17, 0, 0, 0, 0, time.UTC)
	r, err := NewRound(1, 1, now)
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, RoundBetting, r.Status)
	assert.Equal(t, now, r.StartedAt)
	assert.Nil(t, r.Faces())

	_, err = NewRound(0, 1, now)
	assert.ErrorIs(t, err, ErrInvalidFamily)
	_, err = NewRound(1, 0, now)
	assert.ErrorIs(t, err, ErrInvalidRoundNumber)
}

func TestNewBet(t *testing.T) {
	round := Round{ID: "r1", FamilyID: 3}
	b, err := NewBet(round, 9, "cua", 50)
	require.NoError(t, err)
	assert.Equal(t, uint(3), b.FamilyID)
	assert.Equal(t, "r1", b.RoundID)

	_, err = NewBet(Round{}, 9, "cua", 50)
	assert.ErrorIs(t, err, ErrInvalidRound)
	_, err = NewBet(round, 0, "cua", 50)
	assert.ErrorIs(t, err, ErrInvalidUser)
	_, err = NewBet(round, 9, "cua", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestNewWallet(t *testing.T) {
	w, err := NewWallet(1, 2, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), w.Balance)

	_, err = NewWallet(1, 2, -1)
	assert.ErrorIs(t, err, ErrNegativeBalance)
	_, err = NewWallet(0, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidFamily)
}

func TestNewFamilyAndMembership(t *testing.T) {
	f, err := NewFamily(4, "  Nhà Nguyễn ")
	require.NoError(t, err)
	assert.Equal(t, "Nhà Nguyễn", f.Name)

	_, err = NewFamily(4, " ")
	assert.ErrorIs(t, err, ErrInvalidName)

	m, err := NewMembership(1, 2, "whatever")
	require.NoError(t, err)
	assert.Equal(t, MemberMember, m.Role)

	_, err = NewMembership(1, 0, MemberOwner)
	assert.ErrorIs(t, err, ErrInvalidUser)
}
