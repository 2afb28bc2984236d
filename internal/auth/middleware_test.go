package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krysmro/todo-service/internal/auth/entity"
)

func requireTokenSetup(t *testing.T) (*TokenService, http.Handler, *bool) {
	t.Helper()
	svc, err := NewTokenService(testConfig())
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		userID, err := UserIDFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
		w.WriteHeader(http.StatusOK)
	})

	protected := RequireToken(svc, zap.NewNop().Sugar())(next)
	return svc, protected, &called
}

func TestRequireToken_MissingHeader(t *testing.T) {
	_, protected, called := requireTokenSetup(t)

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Todos", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called, "handler must not run without a token")
}

func TestRequireToken_MalformedHeader(t *testing.T) {
	_, protected, called := requireTokenSetup(t)

	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token xyz"} {
		req := httptest.NewRequest(http.MethodGet, "/Todos", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
	assert.False(t, *called)
}

func TestRequireToken_InvalidToken(t *testing.T) {
	_, protected, called := requireTokenSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/Todos", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *called)
}

func TestRequireToken_ValidToken(t *testing.T) {
	svc, protected, called := requireTokenSetup(t)

	token, err := svc.Issue(&entity.Identity{ID: 42, Username: "Test1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/Todos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestUserIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := UserIDFromContext(req.Context())
	assert.ErrorIs(t, err, ErrNoIdentity)
}
