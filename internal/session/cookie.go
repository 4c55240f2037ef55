package session

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

// CookieName is the name of the session cookie.
const CookieName = "session_id"

// Key purposes for DeriveKey.
const (
	PurposeCookie      = "optionlab session cookie v1"
	PurposeCookieBlock = "optionlab session cookie block v1"
	PurposeState       = "optionlab oauth state v1"
)

// ErrInvalidCookie is returned for cookies that fail signature checks.
var ErrInvalidCookie = errors.New("invalid session cookie")

// DeriveKey derives a 32-byte key for one purpose from the application
// secret, so cookie and state keys are never shared.
func DeriveKey(secret, purpose string) []byte {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		// hkdf only fails after 255 blocks of output.
		panic(err)
	}
	return key
}

// CookieCodec signs and encrypts the session ID carried in the cookie.
type CookieCodec struct {
	sc *securecookie.SecureCookie
}

// NewCookieCodec creates a codec keyed from secret. Values older than maxAge
// are rejected; zero keeps the securecookie default.
func NewCookieCodec(secret string, maxAge time.Duration) *CookieCodec {
	sc := securecookie.New(DeriveKey(secret, PurposeCookie), DeriveKey(secret, PurposeCookieBlock))
	sc.SetSerializer(securecookie.JSONEncoder{})
	if maxAge > 0 {
		sc.MaxAge(int(maxAge.Seconds()))
	}
	return &CookieCodec{sc: sc}
}

// Encode returns the cookie value for a session ID.
func (c *CookieCodec) Encode(id string) (string, error) {
	value, err := c.sc.Encode(CookieName, id)
	if err != nil {
		return "", fmt.Errorf("encoding session cookie: %w", err)
	}
	return value, nil
}

// Decode verifies a cookie value and returns the session ID.
func (c *CookieCodec) Decode(value string) (string, error) {
	var id string
	if err := c.sc.Decode(CookieName, value, &id); err != nil || id == "" {
		return "", ErrInvalidCookie
	}
	return id, nil
}
