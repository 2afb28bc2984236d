package auth

import (
	"context"
	"crypto/subtle"

	"github.com/krysmro/todo-service/internal/auth/entity"
)

// CredentialVerifier checks a username/password pair against an identity
// source. Implementations return (nil, nil) on any non-match, including empty
// input; malformed input is never an error. The interface exists so the
// static table below can be swapped for a real identity provider without
// touching any caller.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*entity.Identity, error)
}

// StaticVerifier matches credentials against a fixed in-memory table.
// This is not production code; replace it with a call to a real auth system.
type StaticVerifier struct{}

func NewStaticVerifier() *StaticVerifier { return &StaticVerifier{} }

var staticUsers = []struct {
	username string
	password string
	identity entity.Identity
}{
	{"Test1", "Test1", entity.Identity{ID: 1, Username: "Test1", FirstName: "FName1", LastName: "LName1"}},
	{"Test2", "Test2", entity.Identity{ID: 2, Username: "Test2", FirstName: "FName2", LastName: "LName2"}},
}

// Verify performs an exact, case-sensitive comparison. No normalization.
func (v *StaticVerifier) Verify(_ context.Context, username, password string) (*entity.Identity, error) {
	if username == "" || password == "" {
		return nil, nil
	}
	for _, u := range staticUsers {
		if constantTimeEquals(username, u.username) && constantTimeEquals(password, u.password) {
			id := u.identity
			return &id, nil
		}
	}
	return nil, nil
}

func constantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
