package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey struct{}

var userIDKey contextKey

// ErrNoIdentity means a handler asked for the caller's user id but the
// request never went through RequireToken.
var ErrNoIdentity = errors.New("no authenticated user in request context")

// ContextWithUserID returns a context carrying a verified caller id. Outside
// of RequireToken it is only meant for tests.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the verified caller id stored by RequireToken.
// The id lives only for the current request; nothing is cached across
// requests.
func UserIDFromContext(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(userIDKey).(int64)
	if !ok {
		return 0, ErrNoIdentity
	}
	return id, nil
}

// RequireToken rejects any request without a valid bearer token before the
// wrapped handler runs. On success the subject user id is stored in the
// request context.
func RequireToken(tokens *TokenService, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			userID, err := tokens.Verify(raw)
			if err != nil {
				logger.Debugw("token rejected", "path", r.URL.Path, "err", err)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[len("bearer "):])
	if tok == "" {
		return "", false
	}
	return tok, true
}
