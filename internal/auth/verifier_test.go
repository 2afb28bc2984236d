package auth

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier()
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantID   int64
	}{
		{"first user", "Test1", "Test1", 1},
		{"second user", "Test2", "Test2", 2},
		{"wrong password", "Test1", "Test2", 0},
		{"case sensitive username", "test1", "Test1", 0},
		{"case sensitive password", "Test1", "test1", 0},
		{"no trimming", "Test1 ", "Test1", 0},
		{"empty username", "", "Test1", 0},
		{"empty password", "Test1", "", 0},
		{"both empty", "", "", 0},
		{"unknown user", "nobody", "nothing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := v.Verify(ctx, tt.username, tt.password)
			require.NoError(t, err)
			if tt.wantID == 0 {
				assert.Nil(t, ident)
				return
			}
			require.NotNil(t, ident)
			assert.Equal(t, tt.wantID, ident.ID)
			assert.Equal(t, tt.username, ident.Username)
		})
	}
}

func TestUserRepoVerifier(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	newVerifier := func(t *testing.T) (*UserRepoVerifier, sqlmock.Sqlmock) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return NewUserRepoVerifier(sqlx.NewDb(db, "postgres")), mock
	}

	t.Run("valid credentials", func(t *testing.T) {
		v, mock := newVerifier(t)
		rows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "password_hash"}).
			AddRow(int64(7), "alice", "Alice", "Archer", string(hash))
		mock.ExpectQuery("SELECT (.+) FROM users").WithArgs("alice").WillReturnRows(rows)

		ident, err := v.Verify(ctx, "alice", "s3cret")
		require.NoError(t, err)
		require.NotNil(t, ident)
		assert.Equal(t, int64(7), ident.ID)
		assert.Equal(t, "Alice", ident.FirstName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password", func(t *testing.T) {
		v, mock := newVerifier(t)
		rows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "password_hash"}).
			AddRow(int64(7), "alice", "Alice", "Archer", string(hash))
		mock.ExpectQuery("SELECT (.+) FROM users").WithArgs("alice").WillReturnRows(rows)

		ident, err := v.Verify(ctx, "alice", "wrong")
		require.NoError(t, err)
		assert.Nil(t, ident)
	})

	t.Run("unknown user", func(t *testing.T) {
		v, mock := newVerifier(t)
		mock.ExpectQuery("SELECT (.+) FROM users").WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "password_hash"}))

		ident, err := v.Verify(ctx, "nobody", "pw")
		require.NoError(t, err)
		assert.Nil(t, ident)
	})

	t.Run("no hash on record", func(t *testing.T) {
		v, mock := newVerifier(t)
		rows := sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "password_hash"}).
			AddRow(int64(8), "bob", "Bob", "Builder", nil)
		mock.ExpectQuery("SELECT (.+) FROM users").WithArgs("bob").WillReturnRows(rows)

		ident, err := v.Verify(ctx, "bob", "pw")
		require.NoError(t, err)
		assert.Nil(t, ident)
	})

	t.Run("empty input short-circuits storage", func(t *testing.T) {
		v, mock := newVerifier(t)
		ident, err := v.Verify(ctx, "", "")
		require.NoError(t, err)
		assert.Nil(t, ident)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
