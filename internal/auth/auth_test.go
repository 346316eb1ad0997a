package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{Secret: "unit-test-secret", Issuer: "workout-ledger-test", TTL: time.Hour}

func TestSignParseRoundTrip(t *testing.T) {
	issuer := NewIssuer(testConfig)

	token, expiresAt, err := issuer.Sign("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := Parse(token, testConfig)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.WithinDuration(t, expiresAt, claims.ExpiresAt, time.Second)
}

func TestParseExpiredToken(t *testing.T) {
	issuer := Issuer{cfg: Config{Secret: testConfig.Secret, Issuer: testConfig.Issuer, TTL: -time.Minute}}

	token, _, err := issuer.Sign("user-123")
	require.NoError(t, err)

	_, err = Parse(token, testConfig)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseTamperedToken(t *testing.T) {
	issuer := NewIssuer(testConfig)
	token, _, err := issuer.Sign("user-123")
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = Parse(tampered, testConfig)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := NewIssuer(testConfig)
	token, _, err := issuer.Sign("user-123")
	require.NoError(t, err)

	_, err = Parse(token, Config{Secret: "other-secret", Issuer: testConfig.Issuer})
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseWrongIssuer(t *testing.T) {
	other := NewIssuer(Config{Secret: testConfig.Secret, Issuer: "someone-else", TTL: time.Hour})
	token, _, err := other.Sign("user-123")
	require.NoError(t, err)

	_, err = Parse(token, testConfig)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseMissingSubject(t *testing.T) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testConfig.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testConfig.Secret))
	require.NoError(t, err)

	_, err = Parse(signed, testConfig)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseEmptyToken(t *testing.T) {
	_, err := Parse("   ", testConfig)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-jwt", testConfig)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
