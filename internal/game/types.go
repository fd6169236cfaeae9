// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - LetterScore: per-letter verdict of a guess (wrong/in word/right).
//   - Score: the verdicts for all five positions (expanded form).
//   - Packed: the same verdicts packed into one byte (see codec.go).
//   - Guess: one row of a Board's history.

package game

import "github.com/robalobadob/wordle/apps/go-core/internal/words"

// LetterScore is the verdict for a single letter. The ordinal values are part
// of the packed encoding and must not change.
type LetterScore uint8

const (
	// Wrong: the letter is not in the word (or every copy is already credited).
	Wrong LetterScore = iota
	// InWord: the letter is in the word at a different position.
	InWord
	// Right: the letter is at this exact position.
	Right
)

func (l LetterScore) String() string {
	switch l {
	case Wrong:
		return "wrong"
	case InWord:
		return "in_word"
	case Right:
		return "right"
	}
	return "invalid"
}

// MarshalText renders the verdict as its name, e.g. in JSON responses.
func (l LetterScore) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Score holds one verdict per position, position 0 first.
type Score [words.Length]LetterScore

// Winning is the Score of a correct guess.
var Winning = Score{Right, Right, Right, Right, Right}

// IsWin reports whether every position is Right.
func (s Score) IsWin() bool { return s == Winning }

// Guess is one submitted word and its packed Score.
type Guess struct {
	Word  words.Word
	Score Packed
}
