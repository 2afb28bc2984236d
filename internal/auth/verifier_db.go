package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/krysmro/todo-service/internal/auth/entity"
	"github.com/krysmro/todo-service/internal/auth/repo"
)

// UserRepoVerifier checks credentials against the users table with bcrypt
// password hashes. Unknown user and wrong password are indistinguishable to
// the caller; only storage failures surface as errors.
type UserRepoVerifier struct {
	repo *repo.UserRepo
}

func NewUserRepoVerifier(db *sqlx.DB) *UserRepoVerifier {
	return &UserRepoVerifier{repo: repo.NewUserRepo(db)}
}

func (v *UserRepoVerifier) Verify(ctx context.Context, username, password string) (*entity.Identity, error) {
	if username == "" || password == "" {
		return nil, nil
	}
	row, err := v.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if row.PasswordHash == nil || *row.PasswordHash == "" {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(*row.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return &entity.Identity{
		ID:        row.ID,
		Username:  row.Username,
		FirstName: row.FirstName,
		LastName:  row.LastName,
	}, nil
}
