package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-core/assets"
	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/stats"
	"github.com/robalobadob/wordle/apps/go-core/internal/store"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "data", "app.db"), assets.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func play(t *testing.T, secret string, guesses ...string) *game.Board {
	t.Helper()
	b := game.NewBoard(words.MustParse(secret))
	for _, g := range guesses {
		_, err := b.Submit(words.MustParse(g))
		require.NoError(t, err)
	}
	return b
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := store.Open(path, assets.Migrations())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = store.Open(path, assets.Migrations())
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.SQL.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	u, err := db.CreateUser(ctx, "u1", "Alice", "hash")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Username)

	_, err = db.CreateUser(ctx, "u2", "alice", "hash")
	assert.ErrorIs(t, err, store.ErrUsernameTaken)

	got, err := db.FindUserByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, u.CreatedAt, got.CreatedAt)

	got, err = db.FindUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Username)

	_, err = db.FindUserByID(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecordGame_UpdatesPlayerStats(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	s, err := db.PlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, stats.Stats{}, s)

	require.NoError(t, db.RecordGame(ctx, "g1", "p1", play(t, "CRANE", "SLATE", "CRANE")))
	require.NoError(t, db.RecordGame(ctx, "g2", "p1", play(t, "CRANE", "SLATE", "SLATE", "SLATE", "SLATE", "SLATE", "SLATE")))
	require.NoError(t, db.RecordGame(ctx, "g3", "p1", play(t, "CRANE", "ABOUT", "CRANE")))
	require.NoError(t, db.RecordGame(ctx, "g4", "", play(t, "CRANE", "CRANE")))

	s, err = db.PlayerStats(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "0 2 0 0 0 0 1", s.Line())

	var line string
	require.NoError(t, db.SQL.QueryRow(`SELECT stats_line FROM player_stats WHERE player_id=?`, "p1").Scan(&line))
	assert.Equal(t, s.Line(), line)

	games, err := db.RecentGames(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, "g3", games[0].ID)
	assert.True(t, games[0].Won)
	assert.Equal(t, 2, games[0].Guesses)
	assert.True(t, games[0].Scores[1].IsWin())
	assert.Equal(t, game.ScoreGuess(words.MustParse("CRANE"), words.MustParse("ABOUT")), games[0].Scores[0])

	assert.Equal(t, []string{"ABOUT", "CRANE"}, games[0].Words)

	assert.Equal(t, "g2", games[1].ID)
	assert.False(t, games[1].Won)
	assert.Len(t, games[1].Scores, game.TurnLimit)
}

func TestRecordGame_RejectsUnfinished(t *testing.T) {
	db := openTestDB(t)
	err := db.RecordGame(context.Background(), "g1", "p1", play(t, "CRANE", "SLATE"))
	assert.ErrorIs(t, err, stats.ErrInProgress)

	games, err := db.RecentGames(context.Background(), "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestPlayerStats_CorruptLine(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	_, err := db.SQL.Exec(`INSERT INTO player_stats (player_id, stats_line, updated_at) VALUES ('p', '1 2 x', 'now')`)
	require.NoError(t, err)

	_, err = db.PlayerStats(ctx, "p")
	assert.ErrorIs(t, err, stats.ErrParse)
}

func TestRecentGames_DetectsTamperedScores(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, db.RecordGame(ctx, "g1", "p1", play(t, "CRANE", "SLATE", "CRANE")))

	_, err := db.SQL.Exec(`UPDATE games SET words='SLATE ABOUT' WHERE id='g1'`)
	require.NoError(t, err)
	_, err = db.RecentGames(ctx, "p1", 10)
	assert.ErrorIs(t, err, store.ErrCorruptGame)

	_, err = db.SQL.Exec(`UPDATE games SET words='CRANE SLATE' WHERE id='g1'`)
	require.NoError(t, err)
	_, err = db.RecentGames(ctx, "p1", 10)
	assert.ErrorIs(t, err, game.ErrGameFinished)
}
