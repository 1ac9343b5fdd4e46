package daily

import (
	"context"
	"database/sql"
)

// Result is one finished daily word hunt.
type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	PuzzleKey string `json:"puzzleKey"`
	Misses    int    `json:"misses"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether a player has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?`,
		userID, date,
	).Scan(&cnt); err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// InsertResult stores r. A second result for the same player and date is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results
            (user_id, date, puzzle_key, misses, elapsed_ms)
        VALUES (?, ?, ?, ?, ?)`,
		r.UserID, r.Date, r.PuzzleKey, r.Misses, r.ElapsedMs,
	)
	return err
}

type LBRow struct {
	UserID    string `json:"userId"`
	Misses    int    `json:"misses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard ranks a date's results by time, then misses, then arrival.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT user_id, misses, elapsed_ms
        FROM daily_results
        WHERE date=?
        ORDER BY elapsed_ms ASC, misses ASC, created_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Misses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
