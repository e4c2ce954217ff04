// Package token issues and verifies the bearer tokens handed out at login.
// Tokens are self-contained HS256 JWTs; nothing is stored server-side and
// there is no revocation, a token stays valid until its exp claim.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bluekeys/repair_shop/internal/apperr"
)

type Service struct {
	Secret []byte
	TTL    time.Duration
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{Secret: secret, TTL: ttl}
}

// Issue signs a token for the given customer: sub carries the customer id
// as a string, exp is iat plus the configured lifetime.
func (s *Service) Issue(customerID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(customerID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Parse verifies signature and expiry and returns the customer id from sub.
// Failures come back as Forbidden errors whose message tells expiry, bad
// signature and malformed tokens apart.
func (s *Service) Parse(raw string) (uint, error) {
	t, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, apperr.Wrap(apperr.Forbidden, "Token has expired", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, apperr.Wrap(apperr.Forbidden, "Invalid token signature", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, apperr.Wrap(apperr.Forbidden, "Invalid token format", err)
		default:
			return 0, apperr.Wrap(apperr.Forbidden, "Invalid token", err)
		}
	}

	claims, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok || !t.Valid {
		return 0, apperr.New(apperr.Forbidden, "Invalid token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.Forbidden, "Invalid token", err)
	}
	return uint(id), nil
}
