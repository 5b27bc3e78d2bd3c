package node

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"strconv"
	"time"

	"github.com/senutpal/paxossim/internal/klogging"
)

// NewRand returns a seeded *rand.Rand. A zero seed asks crypto/rand for one.
// The result is not safe for concurrent use.
func NewRand(ctx context.Context, seed int64) *rand.Rand {
	if seed == 0 {
		seed = cryptoSeed(ctx)
	}
	klogging.Debug(ctx).With("seed", strconv.FormatInt(seed, 16)).Log("RandSeeded", "")
	return rand.New(rand.NewSource(seed))
}

func cryptoSeed(ctx context.Context) int64 {
	buf := make([]byte, 8)
	if _, err := crypto_rand.Read(buf); err != nil {
		klogging.Warning(ctx).WithError(err).Log("CryptoRandSeedFailed", "falling back to time seed")
		return time.Now().UnixNano()
	}
	return int64(binary.BigEndian.Uint64(buf))
}

// FixedRand always returns the same draw. Value 0 never fails a node with a
// positive error percentage; 1 never fails any node.
type FixedRand float64

func (f FixedRand) Float64() float64 {
	return float64(f)
}

// ScriptedRand replays draws in order and repeats the last one.
type ScriptedRand struct {
	draws []float64
	next  int
}

func NewScriptedRand(draws ...float64) *ScriptedRand {
	return &ScriptedRand{draws: draws}
}

func (s *ScriptedRand) Float64() float64 {
	if len(s.draws) == 0 {
		return 1
	}
	if s.next >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	d := s.draws[s.next]
	s.next++
	return d
}
