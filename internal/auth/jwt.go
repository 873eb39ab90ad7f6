package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, one per way a presented token can be bad.
var (
	ErrMalformed        = errors.New("malformed token")
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens. It holds no state beyond
// the process-wide secret; tokens are never persisted and cannot be revoked
// before they expire.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewManagerWithClock pins the clock so expiry can be tested deterministically.
func NewManagerWithClock(secret string, ttl time.Duration, now func() time.Time) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

// Issue signs a token bound to userID, expiring ttl from now.
func (m *Manager) Issue(userID string) (string, error) {
	now := m.now().UTC()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the signature and expiry of a presented token and returns the
// subject user id.
func (m *Manager) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256
		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, ErrInvalidSignature
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrInvalidSignature
		default:
			return "", ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return "", ErrMalformed
	}

	if claims.UserID == "" {
		return "", ErrMalformed
	}

	return claims.UserID, nil
}
