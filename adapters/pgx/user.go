package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fennig/latch/core"
)

const uniqueViolation = "23505"

func (a *Adapter) CreateUser(ctx context.Context, user *core.User) error {
	query := `INSERT INTO users (id, username, password_hash, google_id, microsoft_id)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := a.pool.Exec(ctx, query, user.ID, user.Username, user.PasswordHash, user.GoogleID, user.MicrosoftID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return core.ErrUserExists
		}
		return err
	}
	return nil
}

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	q := `SELECT id, username, password_hash, google_id, microsoft_id FROM users WHERE id = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetUserByUsername(ctx context.Context, username string) (*core.User, error) {
	q := `SELECT id, username, password_hash, google_id, microsoft_id FROM users WHERE username = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, username))
}

func (a *Adapter) GetUserByProviderID(ctx context.Context, provider, providerUserID string) (*core.User, error) {
	column, err := providerColumn(provider)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`SELECT id, username, password_hash, google_id, microsoft_id FROM users WHERE %s = $1`, column)
	return a.scanUser(a.pool.QueryRow(ctx, q, providerUserID))
}

func (a *Adapter) LinkProviderID(ctx context.Context, userID, provider, providerUserID string) error {
	column, err := providerColumn(provider)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE id = $2`, column)
	tag, err := a.pool.Exec(ctx, q, providerUserID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (a *Adapter) scanUser(row pgx.Row) (*core.User, error) {
	user := &core.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.GoogleID, &user.MicrosoftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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
