package repositories

import (
	"context"
	"database/sql"

	intconfig "backoffice/internal/config"
)

// User is an operator account allowed into the back office.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	PasswordHash string `json:"-"`
}

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, status
		FROM users
		WHERE email=? LIMIT 1`, email).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Status,
	)
	if err != nil {
		return User{}, storeErr("get user", "user", err)
	}
	return u, nil
}
