package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
)

// allScores enumerates every reachable Score.
func allScores() []game.Score {
	out := make([]game.Score, 0, 243)
	for n := 0; n < 243; n++ {
		var s game.Score
		v := n
		for i := range s {
			s[i] = game.LetterScore(v % 3)
			v /= 3
		}
		out = append(out, s)
	}
	return out
}

func TestPacked_RoundTrip(t *testing.T) {
	seen := make(map[game.Packed]bool)
	for _, s := range allScores() {
		p := s.Pack()
		require.LessOrEqual(t, uint8(p), uint8(242))
		require.False(t, seen[p], "duplicate packing %d", p)
		seen[p] = true
		assert.Equal(t, s, p.Unpack())
	}
	assert.Len(t, seen, 243)
}

func TestPacked_Layout(t *testing.T) {
	assert.Equal(t, game.Packed(0), game.Score{}.Pack())
	assert.Equal(t, game.Packed(1), game.Score{game.InWord}.Pack())
	assert.Equal(t, game.Packed(2*81), game.Score{4: game.Right}.Pack())
	assert.Equal(t, game.PackedWin, game.Winning.Pack())
	assert.Equal(t, game.Right, game.Packed(2*27).At(3))
}

func TestPacked_IsWin(t *testing.T) {
	for _, s := range allScores() {
		want := s[0] == game.Right && s[1] == game.Right && s[2] == game.Right &&
			s[3] == game.Right && s[4] == game.Right
		assert.Equal(t, want, s.IsWin())
		assert.Equal(t, want, s.Pack().IsWin())
	}
}

func TestLetterScore_Ordinals(t *testing.T) {
	assert.Equal(t, 0, int(game.Wrong))
	assert.Equal(t, 1, int(game.InWord))
	assert.Equal(t, 2, int(game.Right))
	assert.Equal(t, "in_word", game.InWord.String())
}
