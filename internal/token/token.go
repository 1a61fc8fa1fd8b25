// Package token issues and validates the signed session tokens that
// carry a user's email as subject.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loftly/internal/domain"
)

type Service struct {
	secret      []byte
	tokenExpiry time.Duration
}

// NewService builds a token service around a process-wide signing
// secret. The secret is loaded once at startup and never rotated.
func NewService(secret string, expiry time.Duration) *Service {
	return &Service{
		secret:      []byte(secret),
		tokenExpiry: expiry,
	}
}

// Issue signs a token for the given subject with a fixed TTL.
func (s *Service) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token sign failed: %w", err)
	}

	return signed, nil
}

// Validate verifies signature and expiry and extracts the subject.
// Malformed, tampered and expired tokens all surface as
// domain.ErrInvalidToken; there is no revocation list, a token stays
// valid until its expiry.
func (s *Service) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}

	return claims.Subject, nil
}
