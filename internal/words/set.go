// internal/words/set.go
//
// Set is the hash-table side of the perfect hash: O(1) membership over a
// fixed word list.
//
// Lookup:
//   1. pre-filter: a bitset over the top 16 bits of the 32-bit hash rejects
//      most non-members without touching the map;
//   2. map from hash to list index;
//   3. full byte-wise comparison with the stored word, so inputs that alias a
//      member's hash (non-letter bytes) are still rejected.

package words

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

const (
	// hashBits is the number of significant bits Hash can produce
	// (25 interleaved bits in a 30-bit span, shifted left by 2).
	hashBits   = 32
	filterBits = 16
)

// CollisionError reports two distinct words with the same hash. It means the
// perfect-hash property no longer holds for the list being loaded.
type CollisionError struct {
	A, B Word
	Hash uint64
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("words: perfect hash collision: %s and %s both hash to %#x", e.A, e.B, e.Hash)
}

// Set is an immutable membership set keyed by the perfect hash.
type Set struct {
	words  []Word
	index  map[uint64]int32
	filter *bitset.BitSet
}

// NewSet builds a Set over list. It fails with *CollisionError if any two
// distinct words share a hash; duplicates of the same word are folded.
func NewSet(list []Word) (*Set, error) {
	s := &Set{
		words:  make([]Word, 0, len(list)),
		index:  make(map[uint64]int32, len(list)),
		filter: bitset.New(1 << filterBits),
	}
	for _, w := range list {
		h := Hash(w)
		if i, ok := s.index[h]; ok {
			if s.words[i] == w {
				continue
			}
			return nil, &CollisionError{A: s.words[i], B: w, Hash: h}
		}
		s.index[h] = int32(len(s.words))
		s.words = append(s.words, w)
		s.filter.Set(filterSlot(h))
	}
	return s, nil
}

// CheckPerfect verifies that Hash is injective over list.
func CheckPerfect(list []Word) error {
	_, err := NewSet(list)
	return err
}

// Contains reports whether w is a member.
func (s *Set) Contains(w Word) bool {
	h := Hash(w)
	if !s.filter.Test(filterSlot(h)) {
		return false
	}
	i, ok := s.index[h]
	return ok && s.words[i] == w
}

// ContainsBytes reports whether raw input b is a member, hashing it through
// the Hasher adapter. b is matched as-is (no case folding).
func (s *Set) ContainsBytes(b []byte) bool {
	var h Hasher
	_, _ = h.Write(b)
	if !h.Valid() {
		return false
	}
	return s.Contains(h.w)
}

// Len returns the number of distinct members.
func (s *Set) Len() int { return len(s.words) }

func filterSlot(h uint64) uint {
	return uint(h>>(hashBits-filterBits)) & (1<<filterBits - 1)
}
