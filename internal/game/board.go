// internal/game/board.go
//
// Board is the state machine for a single game session.
//
// States:
//   - InProgress: fewer than TurnLimit guesses and no winning Score yet.
//   - Won:  the last submitted guess scored Winning.
//   - Lost: TurnLimit guesses were taken without a win.
//
// Won and Lost are terminal; Submit refuses further guesses and leaves the
// history untouched. A Board is not safe for concurrent use.

package game

import (
	"errors"

	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

// TurnLimit is the maximum number of guesses per game.
const TurnLimit = 6

// ErrGameFinished is returned by Submit once the board is terminal.
var ErrGameFinished = errors.New("game finished")

// State is the coarse state of a Board.
type State uint8

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "playing"
}

// MarshalText renders the state name in JSON.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Board holds the secret word and the guesses made against it.
type Board struct {
	secret  words.Word
	guesses [TurnLimit]Guess
	turn    int
	won     bool
}

// NewBoard starts a game against secret.
func NewBoard(secret words.Word) *Board {
	return &Board{secret: secret}
}

// Restore rebuilds a board from a recorded history, re-scoring each guess.
// It fails with ErrGameFinished if the history continues past a terminal
// state.
func Restore(secret words.Word, history []words.Word) (*Board, error) {
	b := NewBoard(secret)
	for _, g := range history {
		if _, err := b.Submit(g); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Submit scores guess, records it and advances the turn.
func (b *Board) Submit(guess words.Word) (Score, error) {
	if b.Finished() {
		return Score{}, ErrGameFinished
	}
	s := ScoreGuess(b.secret, guess)
	b.guesses[b.turn] = Guess{Word: guess, Score: s.Pack()}
	b.turn++
	b.won = s.IsWin()
	return s, nil
}

// State reports the current state.
func (b *Board) State() State {
	switch {
	case b.won:
		return Won
	case b.turn >= TurnLimit:
		return Lost
	}
	return InProgress
}

// Finished reports whether the board accepts no more guesses.
func (b *Board) Finished() bool { return b.State() != InProgress }

// Won reports whether the game ended with a correct guess.
func (b *Board) Won() bool { return b.won }

// Turn is the number of guesses taken so far.
func (b *Board) Turn() int { return b.turn }

// Remaining is the number of guesses left.
func (b *Board) Remaining() int { return TurnLimit - b.turn }

// Secret returns the word being guessed.
func (b *Board) Secret() words.Word { return b.secret }

// Guesses returns the history in turn order.
func (b *Board) Guesses() []Guess {
	out := make([]Guess, b.turn)
	copy(out, b.guesses[:b.turn])
	return out
}
