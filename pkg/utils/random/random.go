package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand/v2"
)

const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Code returns an unambiguous upper-case code, used for guest names.
func Code(length int) string {
	return pickFromSet(letters, length)
}

func pickFromSet(set string, length int) string {
	if length <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(set)))
	runes := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := crand.Int(crand.Reader, max)
		if err != nil {
			runes[i] = set[0]
			continue
		}
		runes[i] = set[n.Int64()]
	}
	return string(runes)
}

// NewRand returns a ChaCha8 generator keyed from crypto/rand. Each caller
// gets its own source; *rand.Rand is not safe for concurrent use.
func NewRand() *mrand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		binary.LittleEndian.PutUint64(seed[:], mrand.Uint64())
	}
	return mrand.New(mrand.NewChaCha8(seed))
}

// Seeded returns a deterministic generator for replays and tests.
func Seeded(seed uint64) *mrand.Rand {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
