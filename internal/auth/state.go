package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"optionlab/internal/session"
	"optionlab/internal/uuid"
)

const (
	stateIssuer = "optionlab-login"
	stateTTL    = 10 * time.Minute
)

// ErrInvalidState is returned when an OAuth state value is missing,
// tampered with or expired.
var ErrInvalidState = errors.New("invalid oauth state")

// StateSigner issues and checks the OAuth state parameter. The state is a
// short-lived HS256 JWT, so the login flow needs no server-side storage.
type StateSigner struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewStateSigner creates a signer keyed from the application secret.
func NewStateSigner(secret string) *StateSigner {
	return &StateSigner{
		key: session.DeriveKey(secret, session.PurposeState),
		ttl: stateTTL,
		now: time.Now,
	}
}

// TTL returns how long an issued state stays valid.
func (s *StateSigner) TTL() time.Duration {
	return s.ttl
}

// Issue returns a new signed state value.
func (s *StateSigner) Issue() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New(),
		Issuer:    stateIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing state: %w", err)
	}
	return signed, nil
}

// Verify checks that state was issued by this signer and has not expired.
func (s *StateSigner) Verify(state string) error {
	if state == "" {
		return ErrInvalidState
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	},
		jwt.WithIssuer(stateIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return ErrInvalidState
	}
	return nil
}
