package services

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// Tokens are issued on login and honored for a week.
const tokenLifetime = 7 * 24 * time.Hour

// InitAuthService sets the JWT signing secret.
func InitAuthService(secret string) {
	jwtSecret = []byte(secret)
}

// NormalizeEmail lowercases an email address. Emails are the unique user key
// and must be normalized before every store lookup or write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GenerateToken signs a JWT carrying the user's email claim.
func GenerateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": NormalizeEmail(email),
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken validates a signed token and returns the embedded email.
func ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}

	return NormalizeEmail(email), nil
}
