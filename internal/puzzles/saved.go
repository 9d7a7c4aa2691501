// internal/puzzles/saved.go
//
// Saved puzzles, per signed-in user or anonymous session.
// Responsibilities:
//   - SavePuzzle / UnsavePuzzle: idempotent bookmark writes.
//   - SavedPuzzles: newest first, without the phrase.

package puzzles

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Owner identifies who saved a puzzle: a signed-in user when UserID is set,
// otherwise the anonymous session.
type Owner struct {
	SessionID string
	UserID    string
}

func (o Owner) column() (string, string) {
	if o.UserID != "" {
		return "user_id", o.UserID
	}
	return "session_id", o.SessionID
}

type SavedPuzzle struct {
	ID       string    `json:"id"`
	PuzzleID string    `json:"puzzleId"`
	Hint     string    `json:"hint,omitempty"`
	Category string    `json:"category,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

var errNoOwner = errors.New("owner has neither user nor session")

// SavePuzzle bookmarks puzzleID for o. Saving again refreshes savedAt.
func (s *Store) SavePuzzle(ctx context.Context, puzzleID string, o Owner) (SavedPuzzle, error) {
	col, val := o.column()
	if val == "" {
		return SavedPuzzle{}, errNoOwner
	}
	if _, err := s.GetPuzzle(ctx, puzzleID); err != nil {
		return SavedPuzzle{}, err
	}

	now := s.now().UTC()
	var sessionID, userID any
	if col == "user_id" {
		userID = val
	} else {
		sessionID = val
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_puzzles (id, puzzle_id, session_id, user_id, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (puzzle_id, `+col+`) DO UPDATE SET saved_at=excluded.saved_at`,
		uuid.NewString(), puzzleID, sessionID, userID, stamp(now))
	if err != nil {
		return SavedPuzzle{}, err
	}

	var sp SavedPuzzle
	var savedAt string
	err = s.db.QueryRowContext(ctx, `
		SELECT sp.id, sp.puzzle_id, COALESCE(p.hint,''), COALESCE(p.category,''), sp.saved_at
		FROM saved_puzzles sp JOIN hangman_puzzles p ON p.id = sp.puzzle_id
		WHERE sp.puzzle_id=? AND sp.`+col+`=?`, puzzleID, val).
		Scan(&sp.ID, &sp.PuzzleID, &sp.Hint, &sp.Category, &savedAt)
	if err != nil {
		return SavedPuzzle{}, err
	}
	sp.SavedAt = parseStamp(savedAt)
	return sp, nil
}

// UnsavePuzzle removes the bookmark. Removing a missing bookmark is not an error.
func (s *Store) UnsavePuzzle(ctx context.Context, puzzleID string, o Owner) error {
	col, val := o.column()
	if val == "" {
		return errNoOwner
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_puzzles WHERE puzzle_id=? AND `+col+`=?`, puzzleID, val)
	return err
}

// SavedPuzzles lists o's bookmarks, newest first.
func (s *Store) SavedPuzzles(ctx context.Context, o Owner) ([]SavedPuzzle, error) {
	col, val := o.column()
	if val == "" {
		return nil, errNoOwner
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT sp.id, sp.puzzle_id, COALESCE(p.hint,''), COALESCE(p.category,''), sp.saved_at
		FROM saved_puzzles sp JOIN hangman_puzzles p ON p.id = sp.puzzle_id
		WHERE sp.`+col+`=?
		ORDER BY sp.saved_at DESC`, val)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SavedPuzzle{}
	for rows.Next() {
		var (
			sp      SavedPuzzle
			savedAt string
		)
		if err := rows.Scan(&sp.ID, &sp.PuzzleID, &sp.Hint, &sp.Category, &savedAt); err != nil {
			return nil, err
		}
		sp.SavedAt = parseStamp(savedAt)
		out = append(out, sp)
	}
	return out, rows.Err()
}
