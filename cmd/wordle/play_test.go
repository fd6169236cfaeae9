package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TwiN/go-color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/rng"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

func testSet(t *testing.T) *words.Set {
	t.Helper()
	_, set, err := words.Load([]string{"ABOUT", "CRANE", "SLATE"})
	require.NoError(t, err)
	return set
}

func TestPlay_Win(t *testing.T) {
	b := game.NewBoard(words.MustParse("CRANE"))
	in := strings.NewReader("slate\nzzzzz\nabc\nCRAN\xc3\n crane \n")
	var out bytes.Buffer

	require.NoError(t, play(in, &out, b, testSet(t), false))
	assert.True(t, b.Won())
	assert.Equal(t, 2, b.Turn())

	got := out.String()
	assert.Contains(t, got, " S  L [A] T [E]")
	assert.Contains(t, got, "Not in word list.")
	assert.Contains(t, got, "Guess must have 5 characters.")
	assert.Contains(t, got, "expected ascii, found: 0xc3")
	assert.Contains(t, got, "[C][R][A][N][E]")
	assert.True(t, strings.HasSuffix(got, "🎉🎊🥳\n"))
}

func TestPlay_Loss(t *testing.T) {
	b := game.NewBoard(words.MustParse("CRANE"))
	in := strings.NewReader(strings.Repeat("about\n", 7))
	var out bytes.Buffer

	require.NoError(t, play(in, &out, b, testSet(t), false))
	assert.Equal(t, game.Lost, b.State())
	assert.Contains(t, out.String(), "(A) B  O  U  T ")
	assert.True(t, strings.HasSuffix(out.String(), "Sorry, the word was CRANE\n"))
}

func TestPlay_EOF(t *testing.T) {
	b := game.NewBoard(words.MustParse("CRANE"))
	err := play(strings.NewReader("slate\n"), io.Discard, b, testSet(t), false)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, 1, b.Turn())
}

func TestRender_Colour(t *testing.T) {
	g := game.Guess{
		Word:  words.MustParse("SLATE"),
		Score: game.ScoreGuess(words.MustParse("CRANE"), words.MustParse("SLATE")).Pack(),
	}
	got := render(g, true)
	assert.Contains(t, got, color.Ize(color.Green, "A"))
	assert.Contains(t, got, color.Ize(color.Gray, "S"))
	assert.Equal(t, " S  L [A] T [E]", render(g, false))
}

func TestRun_RecordsStats(t *testing.T) {
	require.NoError(t, words.Init())
	seed := uint64(7)
	answer := words.RandomAnswer(rng.NewXorshift(seed))

	path := filepath.Join(t.TempDir(), "stats")
	var out bytes.Buffer
	err := run(strings.NewReader(answer.String()+"\n"), &out, options{seed: &seed, statsFile: path})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 0 0 0 0 0 0\n", string(b))
	assert.Contains(t, out.String(), "1          1 | ")

	// A second game adds to the same file.
	err = run(strings.NewReader(answer.String()+"\n"), io.Discard, options{seed: &seed, statsFile: path})
	require.NoError(t, err)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2 0 0 0 0 0 0\n", string(b))
}
