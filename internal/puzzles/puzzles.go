// internal/puzzles/puzzles.go
//
// Hangman puzzle catalogue backed by SQLite.
// Responsibilities:
//   - Puzzles: create, fetch, import-by-phrase, daily eligibility.
//   - Instances: the playable handle for a puzzle (one per day for daily,
//     any number for custom).
//   - Schedule and saved puzzles live in schedule.go and saved.go.
//
// Phrases never leave this package except through Puzzle.Phrase, which is
// tagged json:"-".

package puzzles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNoDailyPuzzle = errors.New("no daily puzzle available")
)

const (
	ModeDaily  = "daily"
	ModeCustom = "custom"
)

type Puzzle struct {
	ID              string    `json:"id"`
	Phrase          string    `json:"-"`
	Hint            string    `json:"hint,omitempty"`
	Category        string    `json:"category,omitempty"`
	IsDailyEligible bool      `json:"isDailyEligible"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Instance binds a puzzle to a date and mode. Plays reference instances.
type Instance struct {
	ID        string    `json:"instanceId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Mode      string    `json:"mode"`
	PuzzleID  string    `json:"puzzleId"`
	CreatedAt time.Time `json:"createdAt"`
	Puzzle    Puzzle    `json:"-"`
}

type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

// New returns a Store. salt feeds the fallback daily pick when a date has
// no schedule row.
func New(db *sql.DB, salt string) *Store {
	return &Store{db: db, salt: salt, now: time.Now}
}

// NewPuzzle is the input to CreatePuzzle. Phrase must already be normalized.
type NewPuzzle struct {
	Phrase        string
	Hint          string
	Category      string
	DailyEligible bool
}

func (s *Store) CreatePuzzle(ctx context.Context, in NewPuzzle) (Puzzle, error) {
	p := Puzzle{
		ID:              uuid.NewString(),
		Phrase:          in.Phrase,
		Hint:            in.Hint,
		Category:        in.Category,
		IsDailyEligible: in.DailyEligible,
		CreatedAt:       s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO hangman_puzzles (id, phrase, hint, category, is_daily_eligible, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Phrase, nullable(p.Hint), nullable(p.Category), p.IsDailyEligible, stamp(p.CreatedAt))
	if err != nil {
		return Puzzle{}, fmt.Errorf("insert puzzle: %w", err)
	}
	return p, nil
}

const puzzleCols = `id, phrase, COALESCE(hint,''), COALESCE(category,''), is_daily_eligible, created_at`

func (s *Store) GetPuzzle(ctx context.Context, id string) (Puzzle, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+puzzleCols+` FROM hangman_puzzles WHERE id=?`, id)
	return scanPuzzle(row)
}

// UpsertByPhrase creates an eligible puzzle for phrase, or re-categorizes and
// marks eligible an existing one. It reports whether a row was created.
func (s *Store) UpsertByPhrase(ctx context.Context, phrase, category, hint string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM hangman_puzzles WHERE phrase=? ORDER BY created_at LIMIT 1`, phrase).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.CreatePuzzle(ctx, NewPuzzle{Phrase: phrase, Hint: hint, Category: category, DailyEligible: true})
		return err == nil, err
	case err != nil:
		return false, err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE hangman_puzzles SET category=?, is_daily_eligible=1 WHERE id=?`, nullable(category), id)
	return false, err
}

// MarkAllEligible flags every puzzle for the daily rotation.
func (s *Store) MarkAllEligible(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE hangman_puzzles SET is_daily_eligible=1 WHERE is_daily_eligible=0`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Counts returns the total and daily-eligible puzzle counts.
func (s *Store) Counts(ctx context.Context) (total, eligible int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_daily_eligible),0) FROM hangman_puzzles`).Scan(&total, &eligible)
	return total, eligible, err
}

// EligiblePuzzles lists daily-eligible puzzles, oldest first.
func (s *Store) EligiblePuzzles(ctx context.Context) ([]Puzzle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+puzzleCols+` FROM hangman_puzzles
		WHERE is_daily_eligible=1
		ORDER BY created_at ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Puzzle
	for rows.Next() {
		p, err := scanPuzzle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// EnsureDailyInstance returns the daily instance for date (YYYY-MM-DD),
// creating it on first request. Once created, the instance keeps its puzzle
// so existing plays stay replayable.
func (s *Store) EnsureDailyInstance(ctx context.Context, date string) (Instance, error) {
	in, err := s.dailyInstance(ctx, date)
	if err == nil {
		return in, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Instance{}, err
	}

	puzzleID, err := s.pickDaily(ctx, date)
	if err != nil {
		return Instance{}, err
	}
	// concurrent first requests race here; the partial unique index keeps one
	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO hangman_instances (id, date, mode, puzzle_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), date, ModeDaily, puzzleID, stamp(s.now()))
	if err != nil {
		return Instance{}, fmt.Errorf("insert daily instance: %w", err)
	}
	return s.dailyInstance(ctx, date)
}

// CreateCustomInstance opens a fresh instance of puzzleID dated today (UTC).
func (s *Store) CreateCustomInstance(ctx context.Context, puzzleID string) (Instance, error) {
	p, err := s.GetPuzzle(ctx, puzzleID)
	if err != nil {
		return Instance{}, err
	}
	now := s.now().UTC()
	in := Instance{
		ID:        uuid.NewString(),
		Date:      now.Format(time.DateOnly),
		Mode:      ModeCustom,
		PuzzleID:  p.ID,
		CreatedAt: now,
		Puzzle:    p,
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO hangman_instances (id, date, mode, puzzle_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.ID, in.Date, in.Mode, in.PuzzleID, stamp(in.CreatedAt))
	if err != nil {
		return Instance{}, fmt.Errorf("insert custom instance: %w", err)
	}
	return in, nil
}

// GetInstance loads an instance together with its puzzle.
func (s *Store) GetInstance(ctx context.Context, id string) (Instance, error) {
	return s.queryInstance(ctx, `i.id=?`, id)
}

func (s *Store) dailyInstance(ctx context.Context, date string) (Instance, error) {
	return s.queryInstance(ctx, `i.date=? AND i.mode='daily'`, date)
}

func (s *Store) queryInstance(ctx context.Context, where string, args ...any) (Instance, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT i.id, i.date, i.mode, i.puzzle_id, i.created_at,
		       p.id, p.phrase, COALESCE(p.hint,''), COALESCE(p.category,''), p.is_daily_eligible, p.created_at
		FROM hangman_instances i
		JOIN hangman_puzzles p ON p.id = i.puzzle_id
		WHERE `+where, args...)

	var (
		in                Instance
		created, pCreated string
	)
	err := row.Scan(&in.ID, &in.Date, &in.Mode, &in.PuzzleID, &created,
		&in.Puzzle.ID, &in.Puzzle.Phrase, &in.Puzzle.Hint, &in.Puzzle.Category, &in.Puzzle.IsDailyEligible, &pCreated)
	if errors.Is(err, sql.ErrNoRows) {
		return Instance{}, ErrNotFound
	}
	if err != nil {
		return Instance{}, err
	}
	in.CreatedAt = parseStamp(created)
	in.Puzzle.CreatedAt = parseStamp(pCreated)
	return in, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPuzzle(row scanner) (Puzzle, error) {
	var (
		p       Puzzle
		created string
	)
	err := row.Scan(&p.ID, &p.Phrase, &p.Hint, &p.Category, &p.IsDailyEligible, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Puzzle{}, ErrNotFound
	}
	if err != nil {
		return Puzzle{}, err
	}
	p.CreatedAt = parseStamp(created)
	return p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseStamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
