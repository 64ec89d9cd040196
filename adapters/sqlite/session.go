package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fennig/latch/core"
)

func (a *Adapter) CreateSession(ctx context.Context, session *core.Session) error {
	q := `INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)`
	_, err := a.db.ExecContext(ctx, q, session.ID, session.UserID, session.ExpiresAt)
	return err
}

func (a *Adapter) GetSessionByID(ctx context.Context, id string) (*core.Session, error) {
	q := `SELECT id, user_id, expires_at FROM sessions WHERE id = ?`

	session := &core.Session{}
	err := a.db.QueryRowContext(ctx, q, id).Scan(&session.ID, &session.UserID, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (a *Adapter) UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	q := `UPDATE sessions SET expires_at = ? WHERE id = ?`
	res, err := a.db.ExecContext(ctx, q, expiresAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrSessionNotFound
	}
	return nil
}

func (a *Adapter) DeleteSession(ctx context.Context, id string) error {
	q := `DELETE FROM sessions WHERE id = ?`
	_, err := a.db.ExecContext(ctx, q, id)
	return err
}

func (a *Adapter) DeleteUserSessions(ctx context.Context, userID string) error {
	q := `DELETE FROM sessions WHERE user_id = ?`
	_, err := a.db.ExecContext(ctx, q, userID)
	return err
}

func (a *Adapter) DeleteExpiredSessions(ctx context.Context) (int, error) {
	q := `DELETE FROM sessions WHERE expires_at <= ?`
	res, err := a.db.ExecContext(ctx, q, time.Now())
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
