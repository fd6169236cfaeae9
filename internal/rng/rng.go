// Package rng provides the random sources used to pick secret words.
//
// Sources satisfy math/rand/v2.Source (a single Uint64 method), so callers can
// inject a fixed seed in tests and a time-seeded generator in production.
package rng

import (
	"math/rand/v2"
	"sync"
	"time"
)

// zeroSeedReplacement stands in for a zero seed; xorshift never leaves 0.
const zeroSeedReplacement = 0x9E3779B97F4A7C15

// Xorshift is a 64-bit xorshift generator (shifts 13, 17, 5).
// It is not safe for concurrent use; wrap it in Locked to share it.
type Xorshift struct {
	state uint64
}

var _ rand.Source = (*Xorshift)(nil)

// NewXorshift returns a generator seeded with seed.
func NewXorshift(seed uint64) *Xorshift {
	if seed == 0 {
		seed = zeroSeedReplacement
	}
	return &Xorshift{state: seed}
}

// NewTimeSeeded returns a generator seeded from the wall clock.
func NewTimeSeeded() *Xorshift {
	return NewXorshift(uint64(time.Now().UnixNano()))
}

// Uint64 advances the generator and returns the new state.
func (x *Xorshift) Uint64() uint64 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Locked serializes access to a Source so one generator can be shared
// across goroutines.
type Locked struct {
	mu  sync.Mutex
	src rand.Source
}

// NewLocked wraps src.
func NewLocked(src rand.Source) *Locked {
	return &Locked{src: src}
}

func (l *Locked) Uint64() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Uint64()
}
