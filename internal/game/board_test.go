package game_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

func TestNewBoard(t *testing.T) {
	b := game.NewBoard(words.MustParse("CRANE"))
	assert.Equal(t, game.InProgress, b.State())
	assert.Equal(t, 0, b.Turn())
	assert.Equal(t, game.TurnLimit, b.Remaining())
	assert.False(t, b.Finished())
	assert.Empty(t, b.Guesses())
	assert.Equal(t, "CRANE", b.Secret().String())
}

func TestBoard_LossAfterTurnLimit(t *testing.T) {
	b := game.NewBoard(words.MustParse("CRANE"))
	miss := words.MustParse("BOGUS")
	for i := 0; i < game.TurnLimit; i++ {
		require.False(t, b.Finished(), "turn %d", i)
		s, err := b.Submit(miss)
		require.NoError(t, err)
		assert.False(t, s.IsWin())
	}
	assert.Equal(t, game.Lost, b.State())
	assert.True(t, b.Finished())
	assert.False(t, b.Won())
	assert.Equal(t, 0, b.Remaining())
}

func TestBoard_WinEndsImmediately(t *testing.T) {
	for turn := 1; turn <= game.TurnLimit; turn++ {
		b := game.NewBoard(words.MustParse("CRANE"))
		for i := 1; i < turn; i++ {
			_, err := b.Submit(words.MustParse("SLATE"))
			require.NoError(t, err)
		}
		s, err := b.Submit(words.MustParse("CRANE"))
		require.NoError(t, err)
		assert.True(t, s.IsWin())
		assert.Equal(t, game.Won, b.State(), "won on turn %d", turn)
		assert.Equal(t, turn, b.Turn())
	}
}

func TestBoard_RejectsAfterTerminal(t *testing.T) {
	b := game.NewBoard(words.MustParse("CRANE"))
	_, err := b.Submit(words.MustParse("CRANE"))
	require.NoError(t, err)

	before := b.Guesses()
	_, err = b.Submit(words.MustParse("SLATE"))
	assert.ErrorIs(t, err, game.ErrGameFinished)
	assert.Equal(t, before, b.Guesses())
	assert.Equal(t, 1, b.Turn())
}

func TestBoard_HistoryInTurnOrder(t *testing.T) {
	b := game.NewBoard(words.MustParse("CARGO"))
	_, _ = b.Submit(words.MustParse("GOCAR"))
	_, _ = b.Submit(words.MustParse("CARGO"))

	h := b.Guesses()
	require.Len(t, h, 2)
	assert.Equal(t, "GOCAR", h[0].Word.String())
	assert.Equal(t, game.Score{game.InWord, game.InWord, game.InWord, game.InWord, game.InWord}, h[0].Score.Unpack())
	assert.True(t, h[1].Score.IsWin())

	// Callers get a copy.
	h[0].Word = words.MustParse("ZZZZZ")
	assert.Equal(t, "GOCAR", b.Guesses()[0].Word.String())
}

func TestRestore(t *testing.T) {
	secret := words.MustParse("CRANE")
	b, err := game.Restore(secret, []words.Word{words.MustParse("SLATE"), words.MustParse("CRANE")})
	require.NoError(t, err)
	assert.Equal(t, game.Won, b.State())

	_, err = game.Restore(secret, []words.Word{words.MustParse("CRANE"), words.MustParse("SLATE")})
	assert.ErrorIs(t, err, game.ErrGameFinished)
}

func TestScore_JSON(t *testing.T) {
	raw, err := json.Marshal(game.Score{game.Wrong, game.InWord, game.Right, game.Wrong, game.Wrong})
	require.NoError(t, err)
	assert.JSONEq(t, `["wrong","in_word","right","wrong","wrong"]`, string(raw))

	raw, err = json.Marshal(map[string]game.State{"state": game.Lost})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"lost"}`, string(raw))
}
