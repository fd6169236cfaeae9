// internal/game/codec.go
//
// Compact base-3 encoding of a Score.
//
// A Packed byte holds the five letter marks as base-3 digits, position 0
// least significant. Stored per guess in the games table and returned by
// /game/guess.

package game

// Packed is a Score packed into a single byte: position i contributes
// ordinal(i) * 3^i, so position 0 is the least significant base-3 digit.
// 3^5 = 243 values fit in a byte; all-Right packs to 242.
type Packed uint8

// PackedWin is the packed form of Winning.
const PackedWin Packed = 242

// pow3[i] is 3^i for each position.
var pow3 = [...]uint8{1, 3, 9, 27, 81}

// Pack encodes s.
func (s Score) Pack() Packed {
	var p uint8
	for i, l := range s {
		p += uint8(l) * pow3[i]
	}
	return Packed(p)
}

// At returns the verdict at position i.
func (p Packed) At(i int) LetterScore {
	return LetterScore(uint8(p) / pow3[i] % 3)
}

// Unpack decodes p.
func (p Packed) Unpack() Score {
	var s Score
	for i := range s {
		s[i] = p.At(i)
	}
	return s
}

// IsWin reports whether p encodes an all-Right Score, without decoding.
func (p Packed) IsWin() bool { return p == PackedWin }
