package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"Donor@Example.COM":  "donor@example.com",
		"  padded@mail.com ": "padded@mail.com",
		"already@lower.case": "already@lower.case",
		"":                   "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeEmail(input))
	}
}

func TestTokenRoundTrip(t *testing.T) {
	InitAuthService("test-secret")

	token, err := GenerateToken("Donor@Example.COM")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "donor@example.com", email)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	InitAuthService("test-secret")

	claims := jwt.MapClaims{
		"email": "donor@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsWrongSignature(t *testing.T) {
	InitAuthService("test-secret")

	claims := jwt.MapClaims{
		"email": "donor@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsMissingEmailClaim(t *testing.T) {
	InitAuthService("test-secret")

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
