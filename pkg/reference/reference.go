// Package reference generates the unique tokens that identify a payment to
// the gateway and locally.
package reference

import (
	"crypto/rand"
	"encoding/base64"
)

// tokenBytes of entropy per token; enough that collisions are a store
// constraint violation to retry, not something to plan for.
const tokenBytes = 50

// New returns a cryptographically random URL-safe token.
func New() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
