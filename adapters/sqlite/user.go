package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/fennig/latch/core"
)

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO users (id, username, password_hash, google_id, microsoft_id)
	          VALUES (?, ?, ?, ?, ?)`

	_, err := a.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.GoogleID, user.MicrosoftID)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return core.ErrUserExists
		}
		return err
	}
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT id, username, password_hash, google_id, microsoft_id FROM users WHERE id = ?`
	return a.scanUser(a.db.QueryRowContext(ctx, q, id))
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	q := `SELECT id, username, password_hash, google_id, microsoft_id FROM users WHERE username = ?`
	return a.scanUser(a.db.QueryRowContext(ctx, q, username))
}

func (a *Adapter) GetUserByProviderID(ctx context.Context, provider, providerUserID string) (*core.User, error) {
	column, err := providerColumn(provider)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT id, username, password_hash, google_id, microsoft_id FROM users WHERE %s = ?`, column)
	return a.scanUser(a.db.QueryRowContext(ctx, q, providerUserID))
}

func (a *Adapter) LinkProviderID(ctx context.Context, userID, provider, providerUserID string) error {
	column, err := providerColumn(provider)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`UPDATE users SET %s = ? WHERE id = ?`, column)
	res, err := a.db.ExecContext(ctx, q, providerUserID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (a *Adapter) scanUser(row *sql.Row) (*core.User, error) {
	user := &core.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.GoogleID, &user.MicrosoftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// providerColumn maps a provider name onto its identity column. The column
// name is interpolated into SQL, so it must come from this fixed set.
func providerColumn(provider string) (string, error) {
	switch provider {
	case "google":
		return "google_id", nil
	case "microsoft":
		return "microsoft_id", nil
	}
	return "", fmt.Errorf("unknown provider %q", provider)
}
