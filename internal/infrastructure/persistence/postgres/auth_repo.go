package postgres

import (
	"context"
	"database/sql"
	"errors"

	appAuth "invest-tracker/internal/application/auth"
	authDomain "invest-tracker/internal/domain/auth"
)

// --- Users ---

// InsertUser 寫入新使用者。
func (r *Repo) InsertUser(ctx context.Context, u authDomain.User) error {
	const q = `
INSERT INTO users (id, email, name, password, created_at)
VALUES ($1, $2, $3, $4, $5);
`
	_, err := r.db.ExecContext(ctx, q, u.ID, u.Email, u.Name, u.Password, u.CreatedAt)
	return err
}

// FindByEmail 以信箱查使用者。
func (r *Repo) FindByEmail(ctx context.Context, email string) (authDomain.User, error) {
	const q = `SELECT id, email, name, password, created_at FROM users WHERE email = $1;`
	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

// FindByID 以 id 查使用者。
func (r *Repo) FindByID(ctx context.Context, id string) (authDomain.User, error) {
	const q = `SELECT id, email, name, password, created_at FROM users WHERE id = $1;`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *Repo) scanUser(row *sql.Row) (authDomain.User, error) {
	var u authDomain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return authDomain.User{}, appAuth.ErrUserNotFound
	}
	if err != nil {
		return authDomain.User{}, err
	}
	return u, nil
}
