// Package auth issues and verifies the HS256 bearer tokens used by the API.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sitecrew/sitelog/internal/domain"
)

// Claims are the JWT claims carried by a sitelog token: the registered set
// plus the authenticated user's id and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Role   string `json:"role"`
}

// GenerateToken signs a token for the given user, valid for ttl.
func GenerateToken(user domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: user.ID.String(),
		Role:   string(user.Role),
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth.GenerateToken: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the embedded claims.
// Any failure is reported as domain.ErrUnauthorized; callers do not need to
// distinguish a forged token from an expired one.
func ParseToken(tokenString string, secret []byte) (Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid {
		return Claims{}, domain.ErrUnauthorized
	}

	return *claims, nil
}
