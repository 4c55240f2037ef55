// Package uuid generates the identifiers used for database rows and sessions.
package uuid

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	googleuuid "github.com/google/uuid"
)

// sessionIDBytes is the entropy of a session identifier (256 bits).
const sessionIDBytes = 32

// New generates a new UUIDv7 string. UUIDv7 is time-ordered, so rows keyed
// by it sort by creation time.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}
	return id.String()
}

// NewSessionID returns an opaque, URL-safe random identifier for a session.
func NewSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Parse validates and normalizes a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
