// internal/words/words.go
//
// Process-wide dictionary loading.
//
// Responsibilities:
//   - Load the word list from WORDS_FILE or fall back to the embedded list.
//   - Normalize (uppercase, sort, drop duplicates) and validate entries.
//   - Build the Dictionary and the perfect-hash Set, failing if the hash is
//     not collision-free for the loaded list.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt   one word per line, '#' starts a comment
//
// Initialization runs once (sync.Once); the result is read-only afterwards.

package words

import (
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"sync"

	"github.com/robalobadob/wordle/apps/go-core/assets"
)

var (
	initOnce   sync.Once
	dict       *Dictionary
	allowed    *Set
	initialErr error
)

// Init loads the word list exactly once.
func Init() error {
	initOnce.Do(func() {
		var lines []string
		var err error
		if path := os.Getenv("WORDS_FILE"); path != "" {
			lines, err = readWordFile(path)
		} else {
			lines, err = assets.WordList()
		}
		if err != nil {
			initialErr = err
			return
		}
		dict, allowed, initialErr = Load(lines)
	})
	return initialErr
}

// Load builds a Dictionary and its Set from raw lines. Lines are uppercased,
// sorted and deduplicated; any line that is not Length letters A–Z is an
// error.
func Load(lines []string) (*Dictionary, *Set, error) {
	list := make([]Word, 0, len(lines))
	for n, line := range lines {
		w, err := Parse(line)
		if err != nil {
			return nil, nil, fmt.Errorf("words: line %d %q: %w", n+1, line, err)
		}
		if !w.IsLetters() {
			return nil, nil, fmt.Errorf("words: line %d %q: %w: letters A-Z only", n+1, line, ErrInvalidInput)
		}
		list = append(list, w)
	}
	slices.SortFunc(list, Compare)
	list = slices.Compact(list)

	d, err := NewDictionary(list)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewSet(list)
	if err != nil {
		return nil, nil, err
	}
	return d, s, nil
}

// readWordFile loads a word list file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// Default returns the loaded dictionary, or nil before a successful Init.
func Default() *Dictionary { return dict }

// Allowed returns the membership set for the loaded dictionary.
func Allowed() *Set { return allowed }

// RandomAnswer picks a random word from the loaded dictionary.
func RandomAnswer(src rand.Source) Word {
	return dict.Random(src)
}
