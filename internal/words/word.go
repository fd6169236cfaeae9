// internal/words/word.go
//
// Fixed-length word type shared by guesses, secrets and the dictionary.
//
// A Word is exactly Length ASCII bytes. Construction validates length and
// ASCII-ness; case normalization is a separate, total step (Upper).

package words

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Length is the number of letters in every word.
const Length = 5

// Word is a fixed-length ASCII word. Comparison with == is byte-wise.
type Word [Length]byte

// ErrInvalidInput is matched (errors.Is) by every word construction error.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidLength reports input that is not exactly Length bytes long.
var ErrInvalidLength = fmt.Errorf("%w: guess must have %d characters", ErrInvalidInput, Length)

// NonASCIIError reports the first byte of the input outside the ASCII range.
type NonASCIIError struct {
	Byte byte
}

func (e *NonASCIIError) Error() string {
	return fmt.Sprintf("expected ascii, found: %#x", e.Byte)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *NonASCIIError) Is(target error) bool { return target == ErrInvalidInput }

// FromBytes builds a Word from b without changing its case.
func FromBytes(b []byte) (Word, error) {
	var w Word
	if len(b) != Length {
		return w, ErrInvalidLength
	}
	for _, c := range b {
		if c >= 0x80 {
			return w, &NonASCIIError{Byte: c}
		}
	}
	copy(w[:], b)
	return w, nil
}

// Parse trims surrounding whitespace from s, validates it and returns the
// uppercased Word.
func Parse(s string) (Word, error) {
	w, err := FromBytes([]byte(strings.TrimSpace(s)))
	if err != nil {
		return w, err
	}
	return w.Upper(), nil
}

// MustParse is Parse for fixtures; it panics on invalid input.
func MustParse(s string) Word {
	w, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("words: MustParse(%q): %v", s, err))
	}
	return w
}

// Upper returns w with ASCII letters a–z mapped to A–Z. Other bytes are
// left unchanged.
func (w Word) Upper() Word {
	for i, c := range w {
		if c >= 'a' && c <= 'z' {
			w[i] = c - ('a' - 'A')
		}
	}
	return w
}

// IsLetters reports whether every byte of w is an uppercase letter A–Z.
func (w Word) IsLetters() bool {
	for _, c := range w {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func (w Word) String() string { return string(w[:]) }

// Compare orders words byte-wise, like bytes.Compare.
func Compare(a, b Word) int { return bytes.Compare(a[:], b[:]) }
