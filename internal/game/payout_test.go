package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayout(t *testing.T) {
	cases := []struct {
		name   string
		symbol string
		dice   []string
		want   int64
	}{
		{"no match", Gourd, []string{Crab, Fish, Deer}, 0},
		{"one match", Crab, []string{Crab, Fish, Deer}, 200},
		{"two matches", Fish, []string{Fish, Fish, Deer}, 300},
		{"three matches", Deer, []string{Deer, Deer, Deer}, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Payout(tc.symbol, 100, tc.dice))
		})
	}
}

func TestPayoutAtMaxStakeDoesNotOverflow(t *testing.T) {
	got := Payout(Deer, MaxStake, []string{Deer, Deer, Deer})
	assert.Positive(t, got)
	assert.Equal(t, MaxStake*4, got)
}
