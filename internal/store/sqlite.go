// internal/store/sqlite.go
//
// SQLite persistence for players and their stats.
//
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Player accounts (create, lookup by username or ID).
//   - Per-player stats lines and the finished-games log.

package store

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-core/internal/game"
	"github.com/robalobadob/wordle/apps/go-core/internal/stats"
	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

// ErrUsernameTaken is returned by CreateUser for a duplicate username
// (case-insensitive).
var ErrUsernameTaken = errors.New("username taken")

// ErrCorruptGame is returned when a stored game's scores do not match a
// replay of its guesses.
var ErrCorruptGame = errors.New("stored scores do not match guesses")

// DB wraps the SQLite handle.
type DB struct {
	SQL *sql.DB
}

// User is a registered player.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GameRecord is one finished game as stored in the games table.
type GameRecord struct {
	ID         string        `json:"id"`
	PlayerID   string        `json:"-"`
	Secret     string        `json:"secret"`
	Guesses    int           `json:"guesses"`
	Won        bool          `json:"won"`
	Words      []string      `json:"words"`
	Scores     []game.Score  `json:"scores"`
	FinishedAt time.Time     `json:"finishedAt"`
}

// Open opens (and creates if missing) the database at path and applies the
// migrations in migrations. Use ":memory:" only with a single connection.
func Open(path string, migrations fs.FS) (*DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{SQL: db}, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error { return d.SQL.Close() }

// migrate applies every *.sql file in fsys in lexical order, skipping the
// ones already recorded in _migrations. Scripts that manage their own
// transaction (BEGIN TRANSACTION, PRAGMA foreign_keys=OFF) run as-is.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		text := string(b)

		upper := strings.ToUpper(text)
		selfManaged := strings.Contains(upper, "BEGIN TRANSACTION") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS=OFF") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS = OFF")

		if selfManaged {
			if _, err := db.Exec(text); err != nil {
				return fmt.Errorf("apply %s: %w", f, err)
			}
			if _, err := db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
				return fmt.Errorf("record %s: %w", f, err)
			}
			log.Info().Str("migration", f).Msg("applied (self-managed)")
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* ------------------------------- users -------------------------------- */

// CreateUser inserts a new user. The password must already be hashed.
func (d *DB) CreateUser(ctx context.Context, id, username, passwordHash string) (*User, error) {
	u := &User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	_, err := d.SQL.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt.Format(time.RFC3339))
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// FindUserByUsername looks a user up case-insensitively.
func (d *DB) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	row := d.SQL.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username=?`, username)
	return scanUser(row)
}

// FindUserByID looks a user up by ID.
func (d *DB) FindUserByID(ctx context.Context, id string) (*User, error) {
	row := d.SQL.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

/* ------------------------------- stats -------------------------------- */

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PlayerStats returns the stats of a player; players with no finished games
// get zero stats.
func (d *DB) PlayerStats(ctx context.Context, playerID string) (stats.Stats, error) {
	return loadStats(ctx, d.SQL, playerID)
}

func loadStats(ctx context.Context, q queryer, playerID string) (stats.Stats, error) {
	var line string
	err := q.QueryRowContext(ctx,
		`SELECT stats_line FROM player_stats WHERE player_id=?`, playerID).Scan(&line)
	if errors.Is(err, sql.ErrNoRows) {
		return stats.Stats{}, nil
	}
	if err != nil {
		return stats.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	s, err := stats.ParseLine(line)
	if err != nil {
		return stats.Stats{}, fmt.Errorf("player %s: %w", playerID, err)
	}
	return s, nil
}

// RecordGame stores a finished board and, when playerID is set, folds the
// outcome into the player's stats in the same transaction.
func (d *DB) RecordGame(ctx context.Context, id, playerID string, b *game.Board) error {
	if !b.Finished() {
		return stats.ErrInProgress
	}

	history := b.Guesses()
	guessed := make([]string, len(history))
	for i, g := range history {
		guessed[i] = g.Word.String()
	}

	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	var player any
	if playerID != "" {
		player = playerID
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO games (id, player_id, secret, guesses, won, words, packed, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, player, b.Secret().String(), len(history), b.Won(), strings.Join(guessed, " "), packedHex(b), now,
	); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	if playerID != "" {
		cur, err := loadStats(ctx, tx, playerID)
		if err != nil {
			return err
		}
		if err := cur.Record(b); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO player_stats (player_id, stats_line, updated_at) VALUES (?, ?, ?)
            ON CONFLICT(player_id) DO UPDATE SET stats_line=excluded.stats_line, updated_at=excluded.updated_at`,
			playerID, cur.Line(), now,
		); err != nil {
			return fmt.Errorf("update stats: %w", err)
		}
	}
	return tx.Commit()
}

// RecentGames lists a player's finished games, newest first. Each game is
// replayed from its guesses and checked against the stored scores.
func (d *DB) RecentGames(ctx context.Context, playerID string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.SQL.QueryContext(ctx, `
        SELECT id, secret, words, packed, finished_at
        FROM games
        WHERE player_id=?
        ORDER BY finished_at DESC, rowid DESC
        LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GameRecord, 0, limit)
	for rows.Next() {
		r := GameRecord{PlayerID: playerID}
		var guessed, packed, finished string
		if err := rows.Scan(&r.ID, &r.Secret, &guessed, &packed, &finished); err != nil {
			return nil, err
		}
		b, err := replay(r.Secret, guessed)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", r.ID, err)
		}
		if packedHex(b) != packed {
			return nil, fmt.Errorf("game %s: %w", r.ID, ErrCorruptGame)
		}
		r.Words = strings.Fields(guessed)
		r.Guesses = b.Turn()
		r.Won = b.Won()
		r.Scores = make([]game.Score, 0, b.Turn())
		for _, g := range b.Guesses() {
			r.Scores = append(r.Scores, g.Score.Unpack())
		}
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// replay rebuilds a board from a stored secret and space-separated guesses.
func replay(secret, guessed string) (*game.Board, error) {
	sw, err := words.Parse(secret)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(guessed)
	history := make([]words.Word, len(fields))
	for i, f := range fields {
		if history[i], err = words.Parse(f); err != nil {
			return nil, err
		}
	}
	return game.Restore(sw, history)
}

// packedHex encodes the board's packed scores, one byte per guess.
func packedHex(b *game.Board) string {
	history := b.Guesses()
	packed := make([]byte, len(history))
	for i, g := range history {
		packed[i] = byte(g.Score)
	}
	return hex.EncodeToString(packed)
}
