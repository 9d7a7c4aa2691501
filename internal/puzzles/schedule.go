package puzzles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/playseed/internal/daily"
)

// ScheduleFor returns the puzzle id scheduled for date, or ErrNotFound.
func (s *Store) ScheduleFor(ctx context.Context, date string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT puzzle_id FROM hangman_daily_schedule WHERE date=?`, date).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}

// GenerateSchedule fills days consecutive UTC dates from start, cycling
// through eligible puzzles oldest first. Dates that already have a row keep
// it. It returns the number of rows created.
func (s *Store) GenerateSchedule(ctx context.Context, start time.Time, days int) (int, error) {
	if days <= 0 {
		return 0, fmt.Errorf("invalid days: %d", days)
	}
	eligible, err := s.EligiblePuzzles(ctx)
	if err != nil {
		return 0, err
	}
	if len(eligible) == 0 {
		return 0, ErrNoDailyPuzzle
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	start = daily.UTCMidnight(start)
	created := 0
	for i := 0; i < days; i++ {
		date := daily.DateKey(start.AddDate(0, 0, i))
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO hangman_daily_schedule (date, puzzle_id) VALUES (?, ?)`,
			date, eligible[i%len(eligible)].ID)
		if err != nil {
			return 0, fmt.Errorf("schedule %s: %w", date, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			created++
		}
	}
	return created, tx.Commit()
}

// pickDaily resolves the puzzle for date: the schedule row if present,
// otherwise a salted deterministic pick among eligible puzzles.
func (s *Store) pickDaily(ctx context.Context, date string) (string, error) {
	id, err := s.ScheduleFor(ctx, date)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	day, err := daily.ParseDateKey(date)
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", date, err)
	}
	eligible, err := s.EligiblePuzzles(ctx)
	if err != nil {
		return "", err
	}
	if len(eligible) == 0 {
		return "", ErrNoDailyPuzzle
	}
	return eligible[daily.PuzzleIndex(day, s.salt, len(eligible))].ID, nil
}
