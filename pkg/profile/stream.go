package profile

import "math/rand"

// NormalSource yields standard normal samples. *rand.Rand satisfies it.
type NormalSource interface {
	NormFloat64() float64
}

// Stream is an explicitly owned deterministic random stream.
// It is not safe for concurrent use; in ModeSerial exactly one goroutine
// owns it for the duration of a build.
type Stream struct {
	rng  *rand.Rand
	seed int64
}

// NewStream returns a stream seeded verbatim with seed.
func NewStream(seed int64) *Stream {
	return &Stream{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// NewSubStream returns the independent stream of one load index.
func NewSubStream(seed int64, index int) *Stream {
	return NewStream(SubSeed(seed, uint64(index)))
}

// NormFloat64 returns the next standard normal sample.
func (s *Stream) NormFloat64() float64 {
	return s.rng.NormFloat64()
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// SubSeed mixes a base seed and a stream index into a new seed using the
// SplitMix64 finalizer, so neighbouring indices give uncorrelated streams.
func SubSeed(seed int64, index uint64) int64 {
	x := uint64(seed) ^ (index + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
