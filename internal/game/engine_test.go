package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

func TestScoreGuess(t *testing.T) {
	const (
		W = game.Wrong
		I = game.InWord
		R = game.Right
	)
	tests := []struct {
		secret, guess string
		want          game.Score
	}{
		{"WORDS", "BIRDS", game.Score{W, W, R, R, R}},
		{"TESTS", "STABS", game.Score{I, I, W, W, R}},
		{"CARGO", "GOCAR", game.Score{I, I, I, I, I}},
		{"CARGO", "CARGO", game.Winning},
		{"STARK", "LOSSY", game.Score{W, W, I, W, W}},
		{"LIEGE", "LIENS", game.Score{R, R, R, W, W}},
		{"LIEGE", "LITRE", game.Score{R, R, W, W, R}},
		{"ABCDE", "EDCBA", game.Score{I, I, R, I, I}},
		{"ABCDE", "CCCCC", game.Score{W, W, R, W, W}},
		{"ABCDE", "CCXXX", game.Score{I, W, W, W, W}},
		// The exact match at position 4 is resolved before the earlier E.
		{"CRANE", "EERIE", game.Score{W, W, I, W, R}},
		{"SPEED", "ABIDE", game.Score{W, W, W, I, I}},
	}
	for _, tt := range tests {
		t.Run(tt.secret+"/"+tt.guess, func(t *testing.T) {
			got := game.ScoreGuess(words.MustParse(tt.secret), words.MustParse(tt.guess))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, got.Pack().Unpack())
		})
	}
}

func TestScoreGuess_SelfIsWinning(t *testing.T) {
	for _, s := range []string{"AAAAA", "CRANE", "LIEGE", "QUEUE", "ZZZZZ"} {
		w := words.MustParse(s)
		assert.True(t, game.ScoreGuess(w, w).IsWin(), s)
	}
}

func TestScoreGuess_DoesNotMutateInputs(t *testing.T) {
	secret, guess := words.MustParse("CARGO"), words.MustParse("GOCAR")
	game.ScoreGuess(secret, guess)
	assert.Equal(t, "CARGO", secret.String())
	assert.Equal(t, "GOCAR", guess.String())
}
