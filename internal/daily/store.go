package daily

import (
	"context"
	"database/sql"
	"time"
)

// Result is one finished Wurple daily run.
type Result struct {
	SessionID    string   `json:"sessionId"`
	UserID       string   `json:"userId,omitempty"`
	Date         string   `json:"date"`
	Mode         string   `json:"mode"`
	RulesVersion int      `json:"rulesVersion"`
	GuessesUsed  int      `json:"guessesUsed"`
	Status       string   `json:"status"`
	BestDistance *float64 `json:"bestDistance,omitempty"`
}

// Store persists daily results in the wurple_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether sessionID has a result for date and mode.
func (s *Store) AlreadyPlayed(ctx context.Context, sessionID, date, mode string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM wurple_results WHERE session_id=? AND date=? AND mode=?`,
		sessionID, date, mode,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a run. A second run for the same session/date/mode is
// ignored; inserted reports whether this call stored a row.
func (s *Store) InsertResult(ctx context.Context, r Result) (inserted bool, err error) {
	var userID any
	if r.UserID != "" {
		userID = r.UserID
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO wurple_results
			(session_id, user_id, date, mode, rules_version, guesses_used, status, best_distance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, userID, r.Date, r.Mode, r.RulesVersion, r.GuessesUsed, r.Status, r.BestDistance,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ClaimSession attaches a session's anonymous results to userID after sign-in.
func (s *Store) ClaimSession(ctx context.Context, sessionID, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE wurple_results SET user_id=? WHERE session_id=? AND user_id IS NULL`, userID, sessionID)
	return err
}

// LBRow is one leaderboard entry. Guests are listed without an identity so
// session ids never leave the server.
type LBRow struct {
	Rank        int    `json:"rank"`
	Player      string `json:"player"`
	GuessesUsed int    `json:"guessesUsed"`
}

const guestName = "guest"

// Leaderboard lists winners for date and mode, fewest guesses first.
func (s *Store) Leaderboard(ctx context.Context, date, mode string, limit int) ([]LBRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(u.username, ''), r.guesses_used
		FROM wurple_results r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.date=? AND r.mode=? AND r.status='won'
		ORDER BY r.guesses_used ASC, r.created_at ASC
		LIMIT ?`, date, mode, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]LBRow, 0, limit)
	for rows.Next() {
		r := LBRow{Rank: len(out) + 1}
		if err := rows.Scan(&r.Player, &r.GuessesUsed); err != nil {
			return nil, err
		}
		if r.Player == "" {
			r.Player = guestName
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
