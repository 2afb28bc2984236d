package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/krysmro/todo-service/internal/auth/entity"
)

// DefaultTokenTTL is the token validity window. It is intentionally short:
// clients are expected to re-authenticate frequently.
const DefaultTokenTTL = time.Minute

// Config holds the token signing configuration. All string fields are
// required; a missing value is a startup failure, never a per-request one.
type Config struct {
	SecretKey string
	Issuer    string
	Audience  string
	TokenTTL  time.Duration
}

// ConfigFromEnv reads auth config from environment variables. It returns an
// error naming every missing required variable so misconfiguration surfaces
// once, at startup.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		SecretKey: os.Getenv("AUTH_SECRET_KEY"),
		Issuer:    os.Getenv("AUTH_ISSUER"),
		Audience:  os.Getenv("AUTH_AUDIENCE"),
		TokenTTL:  DefaultTokenTTL,
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse AUTH_TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	var missing []string
	if cfg.SecretKey == "" {
		missing = append(missing, "AUTH_SECRET_KEY")
	}
	if cfg.Issuer == "" {
		missing = append(missing, "AUTH_ISSUER")
	}
	if cfg.Audience == "" {
		missing = append(missing, "AUTH_AUDIENCE")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required auth config: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// Claims is the token payload. Claim names follow the registered JWT names
// used by existing clients; changing them breaks issued tokens.
type Claims struct {
	UniqueName string `json:"unique_name"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

var (
	// ErrInvalidToken covers every verification failure: bad signature,
	// wrong issuer or audience, expired, malformed.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSubject means the token verified but its subject claim is
	// missing or not a numeric user id. Treated as a hard failure; there is
	// no fallback user.
	ErrInvalidSubject = errors.New("token subject is not a valid user id")
)

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService validates the config and returns a service. It fails fast
// so a misconfigured signing key can never reach request handling.
func NewTokenService(cfg Config) (*TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("auth: signing key is required")
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("auth: issuer and audience are required")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret:   []byte(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
	}, nil
}

// Issue creates a signed token embedding the identity's claims.
func (s *TokenService) Issue(ident *entity.Identity) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UniqueName: ident.Username,
		GivenName:  ident.FirstName,
		FamilyName: ident.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(ident.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature, algorithm, issuer, audience and validity window,
// then returns the subject claim parsed as a user id.
func (s *TokenService) Verify(tokenString string) (int64, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	if claims.Subject == "" {
		return 0, ErrInvalidSubject
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidSubject
	}
	return userID, nil
}
