package game

import (
	"crypto/hmac"     // Seeded face derivation
	"crypto/rand"     // Production dice
	"crypto/sha256"   // HMAC hash
	"encoding/binary" // Digest to integer
	"fmt"             // Error wrapping
	"math/big"        // Uniform random range
)

// Roller produces the faces for a round.
type Roller interface {
	Roll(roundID string) ([]string, error)
}

// CryptoRoller draws each face from crypto/rand.
type CryptoRoller struct{}

// Roll implements Roller.
func (CryptoRoller) Roll(string) ([]string, error) {
	faces := make([]string, DiceCount)
	faces6 := big.NewInt(int64(len(Symbols)))
	for i := range faces {
		n, err := rand.Int(rand.Reader, faces6)
		if err != nil {
			return nil, fmt.Errorf("read random face: %w", err)
		}
		faces[i] = Symbols[n.Int64()]
	}
	return faces, nil
}

// SeededRoller derives faces from HMAC-SHA256(seed, roundID|i). The same seed
// and round id always give the same faces, so a round can be replayed.
type SeededRoller struct {
	Seed string
}

// Roll implements Roller.
func (r SeededRoller) Roll(roundID string) ([]string, error) {
	faces := make([]string, DiceCount)
	for i := range faces {
		mac := hmac.New(sha256.New, []byte(r.Seed))
		fmt.Fprintf(mac, "%s|%d", roundID, i)
		sum := mac.Sum(nil)
		n := binary.BigEndian.Uint64(sum[:8])
		faces[i] = Symbols[n%uint64(len(Symbols))]
	}
	return faces, nil
}
