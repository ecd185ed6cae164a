package game

import (
	"errors"  // Sentinel errors
	"strings" // Input normalization
)

// Faces of a Bàu Cua die.
const (
	Gourd   = "bau"
	Crab    = "cua"
	Shrimp  = "tom"
	Fish    = "ca"
	Rooster = "ga"
	Deer    = "nai"
)

// Symbols lists the die faces in board order.
var Symbols = []string{Gourd, Crab, Shrimp, Fish, Rooster, Deer}

// DiceCount is the number of dice shaken each round.
const DiceCount = 3

// ErrUnknownSymbol is returned for a face that is not on the board.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ParseSymbol normalizes s and checks it against the board.
func ParseSymbol(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sym := range Symbols {
		if s == sym {
			return sym, nil
		}
	}
	return "", ErrUnknownSymbol
}
