// Package token issues and verifies the signed bearer tokens that carry a
// user's identity between requests. Tokens are symmetric-key JWTs with a
// fixed lifetime; there is no revocation list, so a token stays valid until
// its expiry and logout is a client-side discard.
package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "fintrack/internal/errors"
)

// Config holds the signing parameters for a Service. It is assembled once at
// startup from application configuration and never mutated afterwards.
type Config struct {
	// Secret is the symmetric signing key.
	Secret string
	// Algorithm names the HMAC signing method: HS256, HS384 or HS512.
	Algorithm string
	// Lifetime is how long an issued token stays valid.
	Lifetime time.Duration
}

// Service issues and verifies bearer tokens.
type Service struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
}

// NewService creates a token Service from the given config. It fails if the
// algorithm does not name a supported HMAC signing method.
func NewService(cfg Config) (*Service, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", cfg.Algorithm)
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}
	if cfg.Lifetime <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive")
	}

	return &Service{
		secret:   []byte(cfg.Secret),
		method:   method,
		lifetime: cfg.Lifetime,
	}, nil
}

// Issue produces a signed token whose subject is the given user ID and whose
// expiry is now plus the configured lifetime.
func (s *Service) Issue(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify parses and validates a token string and returns the user ID encoded
// in its subject. Any failure, whether a bad signature, a malformed
// structure, an unexpected signing method, a missing subject or an elapsed
// expiry, surfaces as ErrInvalidToken.
func (s *Service) Verify(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, apperrors.Wrap(apperrors.ErrInvalidToken, err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidToken, err)
	}

	return uint(userID), nil
}
