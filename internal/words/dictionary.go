// internal/words/dictionary.go
//
// Sorted, read-only word list used for random and daily answers.

package words

import (
	"errors"
	"math/rand/v2"
)

var (
	ErrEmptyDictionary = errors.New("words: dictionary is empty")
	ErrUnsorted        = errors.New("words: dictionary must be sorted without duplicates")
)

// Dictionary is a fixed, sorted list of words. It is read-only after
// construction and safe for concurrent use.
type Dictionary struct {
	words []Word
}

// NewDictionary wraps list, which must be non-empty and strictly ascending.
func NewDictionary(list []Word) (*Dictionary, error) {
	if len(list) == 0 {
		return nil, ErrEmptyDictionary
	}
	for i := 1; i < len(list); i++ {
		if Compare(list[i-1], list[i]) >= 0 {
			return nil, ErrUnsorted
		}
	}
	return &Dictionary{words: append([]Word(nil), list...)}, nil
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// At returns the i-th word in sorted order. It panics if i is out of range.
func (d *Dictionary) At(i int) Word { return d.words[i] }

// Words returns a copy of the list.
func (d *Dictionary) Words() []Word { return append([]Word(nil), d.words...) }

// Random picks a word uniformly using src.
func (d *Dictionary) Random(src rand.Source) Word {
	return d.words[rand.New(src).IntN(len(d.words))]
}
