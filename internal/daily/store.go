// internal/daily/store.go
//
// SQLite access for daily_results: one row per player and date.

package daily

import (
	"context"
	"database/sql"
)

// Result is one player's outcome for a date.
type Result struct {
	PlayerID string `json:"playerId"`
	Date     string `json:"date"`
	Guesses  int    `json:"guesses"`
	Won      bool   `json:"won"`
}

// LBRow is a leaderboard entry.
type LBRow struct {
	Username string `json:"username"`
	Guesses  int    `json:"guesses"`
}

// Store records daily results in the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the player has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, playerID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND date=?`,
		playerID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r. A second result for the same player and date is
// ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results (player_id, date, guesses, won) VALUES (?,?,?,?)`,
		r.PlayerID, r.Date, r.Guesses, r.Won,
	)
	return err
}

// Leaderboard lists the winners for date, fewest guesses first, ties broken
// by who finished earlier.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT u.username, d.guesses
        FROM daily_results d JOIN users u ON u.id = d.player_id
        WHERE d.date=? AND d.won=1
        ORDER BY d.guesses ASC, d.created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.Guesses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
