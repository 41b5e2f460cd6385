package vm

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mathrand "math/rand/v2"
)

// newSeededRand returns a per-context random source seeded from the OS CSPRNG
// when available. Unlike the teacher's ARM emulator (which has no RNG
// instruction at all), and unlike the original TinyVM C++ source (a single
// process-wide std::default_random_engine shared by every VMContext), each
// Context here owns an independent generator: two contexts running
// concurrently never perturb each other's RDRAND sequence, and a test can
// swap in a deterministic one via Context.Rand.
func newSeededRand() *mathrand.Rand {
	var seed [2]uint64
	for i := range seed {
		n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(^uint64(0)))
		if err != nil {
			seed[i] = fallbackSeed(i)
			continue
		}
		seed[i] = n.Uint64()
	}
	return mathrand.New(mathrand.NewPCG(seed[0], seed[1]))
}

// fallbackSeed is used only if the OS CSPRNG is unavailable.
func fallbackSeed(salt int) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(0x9E3779B97F4A7C15)+uint64(salt))
	return binary.LittleEndian.Uint64(buf[:])
}

// uniformWord draws a uniformly distributed Word in [lo, hi] inclusive. If
// lo == hi == 0 the caller is expected to have already widened the range to
// the full 64-bit span, per RDRAND's documented special case.
func uniformWord(r *mathrand.Rand, lo, hi Word) Word {
	if lo > hi {
		lo, hi = hi, lo
	}
	span := hi - lo // wraps to the full range when hi-lo == 2^64-1
	if span == ^Word(0) {
		return lo + r.Uint64()
	}
	return lo + r.Uint64N(span+1)
}
