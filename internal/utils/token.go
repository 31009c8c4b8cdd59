package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionTokenBytes is the amount of randomness behind every session token.
const SessionTokenBytes = 100

// GenerateSessionToken returns an unguessable, URL and cookie safe token.
func GenerateSessionToken() (string, error) {
	b := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
