// Package testhelpers provides utilities for testing portal components.
package testhelpers

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// GenerateTestIDToken builds an unsigned Google-shaped ID token for use when
// signature verification is disabled. Structure is valid JWT; the signature
// segment is empty (alg: none).
func GenerateTestIDToken(clientID, sub, email, name string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	now := time.Now()
	claims := map[string]interface{}{
		"iss":   "https://accounts.google.com",
		"aud":   clientID,
		"sub":   sub,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	if name != "" {
		claims["name"] = name
	}

	// Marshaling a map of scalars cannot fail.
	payloadJSON, _ := json.Marshal(claims)
	payload := base64.RawURLEncoding.EncodeToString(payloadJSON)

	return header + "." + payload + "."
}

// GenerateTestIDTokenWithBearer returns the token with a "Bearer " prefix
// for Authorization headers.
func GenerateTestIDTokenWithBearer(clientID, sub, email, name string) string {
	return "Bearer " + GenerateTestIDToken(clientID, sub, email, name)
}
