package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

type sqlStore struct{ db *sql.DB }

// NewSQLStore returns a Store backed by the plays table.
func NewSQLStore(db *sql.DB) Store { return &sqlStore{db: db} }

const playCols = `id, instance_id, session_id, COALESCE(user_id,''), guessed, wrong_guesses, status,
	hint_used, hint_used_at, created_at, updated_at`

func (s *sqlStore) Get(ctx context.Context, instanceID, sessionID string) (*Play, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+playCols+` FROM plays WHERE instance_id=? AND session_id=?`, instanceID, sessionID)
	p, err := scanPlay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *sqlStore) GetOrCreate(ctx context.Context, instanceID, sessionID string) (*Play, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO plays (id, instance_id, session_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (instance_id, session_id) DO NOTHING`,
		uuid.NewString(), instanceID, sessionID, now, now)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, instanceID, sessionID)
}

func (s *sqlStore) Save(ctx context.Context, p *Play) error {
	p.UpdatedAt = time.Now().UTC()
	var userID, hintAt any
	if p.UserID != "" {
		userID = p.UserID
	}
	if p.HintUsedAt != nil {
		hintAt = p.HintUsedAt.UTC().Format(time.RFC3339Nano)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE plays
		SET user_id=?, guessed=?, wrong_guesses=?, status=?, hint_used=?, hint_used_at=?, updated_at=?
		WHERE id=?`,
		userID, p.Guessed, p.WrongGuesses, p.Status, p.HintUsed, hintAt,
		p.UpdatedAt.Format(time.RFC3339Nano), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPlay(row *sql.Row) (*Play, error) {
	var (
		p                Play
		hintAt           sql.NullString
		created, updated string
	)
	if err := row.Scan(&p.ID, &p.InstanceID, &p.SessionID, &p.UserID, &p.Guessed, &p.WrongGuesses,
		&p.Status, &p.HintUsed, &hintAt, &created, &updated); err != nil {
		return nil, err
	}
	p.CreatedAt = parseTime(created)
	p.UpdatedAt = parseTime(updated)
	if hintAt.Valid {
		t := parseTime(hintAt.String)
		p.HintUsedAt = &t
	}
	return &p, nil
}

// parseTime parses RFC3339 timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
