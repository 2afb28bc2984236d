package auth

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler exposes the token endpoint.
type Handler struct {
	verifier CredentialVerifier
	tokens   *TokenService
	logger   *zap.SugaredLogger
}

func NewHandler(verifier CredentialVerifier, tokens *TokenService, logger *zap.SugaredLogger) *Handler {
	return &Handler{verifier: verifier, tokens: tokens, logger: logger}
}

// TokenRequest is the login payload.
type TokenRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Token authenticates the credentials and responds with a signed bearer
// token as a plain string, or 401 with a human-readable message.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid token request payload", "err", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ident, err := h.verifier.Verify(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.logger.Errorw("credential verification failed", "op", "Authentication.Token", "err", err)
		http.Error(w, "authentication unavailable", http.StatusInternalServerError)
		return
	}
	if ident == nil {
		h.logger.Debugw("login rejected", "username", req.UserName)
		http.Error(w, "Invalid Username or Password!", http.StatusUnauthorized)
		return
	}

	token, err := h.tokens.Issue(ident)
	if err != nil {
		h.logger.Errorw("token issuance failed", "op", "Authentication.Token", "user_id", ident.ID, "err", err)
		http.Error(w, "authentication unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(token))
}
