package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// CredentialRow is the projection of the users table needed to verify a
// password and hydrate token claims.
type CredentialRow struct {
	ID           int64   `db:"id"`
	Username     string  `db:"username"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	PasswordHash *string `db:"password_hash"`
}

// UserRepo provides read access to the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// GetByUsername fetches the credential projection for a username, or
// sql.ErrNoRows when the user does not exist.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*CredentialRow, error) {
	const q = `SELECT id, username, first_name, last_name, password_hash
	  FROM users WHERE username=$1`
	var row CredentialRow
	if err := r.db.GetContext(ctx, &row, q, username); err != nil {
		return nil, err
	}
	return &row, nil
}
