// internal/words/hash.go
//
// Perfect hash over the shipped dictionary.
//
// Hash keeps the low 5 bits of each byte (enough to tell A–Z apart) and
// interleaves them: bit b of byte i lands on output bit b*6+i, so the five
// letters fill five six-bit lanes. The value is then shifted left by 2 so the
// high bits a hash table inspects first are not structurally zero.
//
// For words made of A–Z the mapping is injective. Bytes that differ only
// above bit 4 (digits, punctuation, lowercase vs uppercase) can collide, so
// callers must hash validated, uppercased words only. NewSet re-checks the
// property against the actual list at startup.

package words

import (
	"hash"
	"strconv"
)

// lenTokenSize is the size in bytes of a machine word, the width of the
// length prefix some hashing callers write before the payload.
const lenTokenSize = strconv.IntSize / 8

// Hash returns the perfect hash of w.
func Hash(w Word) uint64 {
	var h uint64
	for i, c := range w {
		for b := 0; b < 5; b++ {
			bit := uint64((c>>b)&1) << i
			h |= bit << (b * 6)
		}
	}
	return h << 2
}

// Hasher adapts Hash to hash.Hash64 for code written against the generic
// hashing interface.
//
// Length tokens are ignored. Callers that frame a payload write its length as
// a machine-word integer (lenTokenSize bytes) before the bytes themselves.
// Feeding that token into the hash would perturb it and break the
// collision-free guarantee, so any write of exactly lenTokenSize bytes is
// dropped. Since words are Length (5) bytes and lenTokenSize is 4 or 8 the two
// can never be confused. Every other write replaces the pending word.
type Hasher struct {
	w     Word
	valid bool
}

var _ hash.Hash64 = (*Hasher)(nil)

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher { return &Hasher{} }

// Write records p as the word to hash. It never returns an error; payloads
// of the wrong size or with non-ASCII bytes leave the Hasher invalid and
// Sum64 returns 0.
func (h *Hasher) Write(p []byte) (int, error) {
	if len(p) == lenTokenSize {
		return len(p), nil
	}
	w, err := FromBytes(p)
	h.w, h.valid = w, err == nil
	return len(p), nil
}

// Sum64 returns the perfect hash of the last word written.
func (h *Hasher) Sum64() uint64 {
	if !h.valid {
		return 0
	}
	return Hash(h.w)
}

// Valid reports whether the last payload written was a well-formed word.
func (h *Hasher) Valid() bool { return h.valid }

// Sum appends the big-endian hash to b.
func (h *Hasher) Sum(b []byte) []byte {
	s := h.Sum64()
	return append(b,
		byte(s>>56), byte(s>>48), byte(s>>40), byte(s>>32),
		byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

func (h *Hasher) Reset()         { *h = Hasher{} }
func (h *Hasher) Size() int      { return 8 }
func (h *Hasher) BlockSize() int { return Length }
