// Package auth issues and validates the stateless session tokens that gate
// every ledger operation. Tokens are HS256 JWTs; validity is decided purely by
// signature and expiry, so there is no revocation — logout is client-side and
// a leaked token stays valid until it expires.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL bounds a session when no TTL is configured.
const DefaultTTL = 12 * time.Hour

// Config holds the signing parameters.
type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims represents the payload extracted from a session token.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

// ErrMissingToken is returned when no token accompanies the request.
var ErrMissingToken = errors.New("missing bearer token")

// ErrTokenInvalid covers bad signatures and malformed payloads.
var ErrTokenInvalid = errors.New("invalid token")

// ErrTokenExpired is returned once a token's expiry has passed.
var ErrTokenExpired = errors.New("token expired")

// Issuer mints session tokens for verified identities.
type Issuer struct {
	cfg Config
}

// NewIssuer constructs an Issuer.
func NewIssuer(cfg Config) Issuer {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return Issuer{cfg: cfg}
}

// Sign produces a token for the user, returning the token and its expiry.
func (i Issuer) Sign(userID string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.cfg.TTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    i.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a session token and returns normalized claims.
func Parse(token string, cfg Config) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, ErrTokenInvalid
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrTokenInvalid
	}

	return &Claims{UserID: subject, ExpiresAt: exp.Time}, nil
}
