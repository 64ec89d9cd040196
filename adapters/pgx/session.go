package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fennig/latch/core"
)

func (a *Adapter) CreateSession(ctx context.Context, session *core.Session) error {
	q := `INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`
	_, err := a.pool.Exec(ctx, q, session.ID, session.UserID, session.ExpiresAt)
	return err
}

func (a *Adapter) GetSessionByID(ctx context.Context, id string) (*core.Session, error) {
	q := `SELECT id, user_id, expires_at FROM sessions WHERE id = $1`

	session := &core.Session{}
	err := a.pool.QueryRow(ctx, q, id).Scan(&session.ID, &session.UserID, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (a *Adapter) UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	q := `UPDATE sessions SET expires_at = $1 WHERE id = $2`
	tag, err := a.pool.Exec(ctx, q, expiresAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (a *Adapter) DeleteSession(ctx context.Context, id string) error {
	q := `DELETE FROM sessions WHERE id = $1`
	_, err := a.pool.Exec(ctx, q, id)
	return err
}

func (a *Adapter) DeleteUserSessions(ctx context.Context, userID string) error {
	q := `DELETE FROM sessions WHERE user_id = $1`
	_, err := a.pool.Exec(ctx, q, userID)
	return err
}

func (a *Adapter) DeleteExpiredSessions(ctx context.Context) (int, error) {
	q := `DELETE FROM sessions WHERE expires_at <= $1`
	tag, err := a.pool.Exec(ctx, q, time.Now())
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
