// internal/results/store.go
//
// Durable record of finished activity runs.
// Responsibilities:
//   - Insert one row per run when a player returns to the menu.
//   - Per-player history and per-activity totals (for the progress report).
//   - Per-activity leaderboard of best single runs by signed-in players.

package results

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
)

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a finished run. Runs with no answers are skipped.
func (s *Store) Insert(ctx context.Context, r game.Run) error {
	if r.Stats.Correct+r.Stats.Incorrect == 0 {
		return nil
	}
	var player any
	if r.PlayerID != "" {
		player = r.PlayerID
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO activity_results
            (session_id, player_id, activity, correct, incorrect, score, started_at, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, player, string(r.Activity),
		r.Stats.Correct, r.Stats.Incorrect, r.Stats.Score,
		r.StartedAt.UTC().Format(time.RFC3339Nano), r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// History returns a player's most recent runs, newest first.
func (s *Store) History(ctx context.Context, playerID string, limit int) ([]game.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT session_id, activity, correct, incorrect, score, started_at, finished_at
        FROM activity_results
        WHERE player_id=?
        ORDER BY finished_at DESC, id DESC
        LIMIT ?`, playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]game.Run, 0, limit)
	for rows.Next() {
		var (
			r              game.Run
			act            string
			started, ended string
		)
		if err := rows.Scan(&r.SessionID, &act, &r.Stats.Correct, &r.Stats.Incorrect, &r.Stats.Score, &started, &ended); err != nil {
			return nil, err
		}
		r.PlayerID = playerID
		r.Activity = game.Activity(act)
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, ended)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Total aggregates every run of one activity.
type Total struct {
	Activity  game.Activity `json:"activity"`
	Runs      int           `json:"runs"`
	Correct   int           `json:"correct"`
	Incorrect int           `json:"incorrect"`
	Score     float64       `json:"score"`
	Best      float64       `json:"best"`
}

// Totals returns per-activity aggregates for a player, in activity order.
func (s *Store) Totals(ctx context.Context, playerID string) ([]Total, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT activity, COUNT(*), SUM(correct), SUM(incorrect), SUM(score), MAX(score)
        FROM activity_results
        WHERE player_id=?
        GROUP BY activity
        ORDER BY activity`, playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Total
	for rows.Next() {
		var (
			t   Total
			act string
		)
		if err := rows.Scan(&act, &t.Runs, &t.Correct, &t.Incorrect, &t.Score, &t.Best); err != nil {
			return nil, err
		}
		t.Activity = game.Activity(act)
		out = append(out, t)
	}
	return out, rows.Err()
}

// LBRow is one leaderboard entry.
type LBRow struct {
	Username string  `json:"username"`
	Score    float64 `json:"score"`
	Correct  int     `json:"correct"`
}

// Leaderboard returns each player's best run of an activity, best first.
func (s *Store) Leaderboard(ctx context.Context, activity game.Activity, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT p.username, MAX(r.score) AS best, MAX(r.correct)
        FROM activity_results r
        JOIN players p ON p.id = r.player_id
        WHERE r.activity=?
        GROUP BY p.id
        ORDER BY best DESC, p.username ASC
        LIMIT ?`, string(activity), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.Score, &r.Correct); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
