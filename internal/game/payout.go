package game

import "math" // Integer limits

// MaxStake is the largest stake whose best payout, every die matching, still
// fits in an int64.
const MaxStake int64 = math.MaxInt64 / (DiceCount + 1)

// Matches counts how many dice show symbol.
func Matches(symbol string, dice []string) int {
	n := 0
	for _, d := range dice {
		if d == symbol {
			n++
		}
	}
	return n
}

// Payout is the amount credited back for a stake on symbol: the stake plus
// one stake per matching die, or zero when no die matches.
func Payout(symbol string, stake int64, dice []string) int64 {
	k := Matches(symbol, dice)
	if k == 0 {
		return 0
	}
	return stake * int64(k+1)
}
