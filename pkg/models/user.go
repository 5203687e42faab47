// Package models contains domain types for the vendor portal.
package models

import "strings"

// Role classifies an authenticated identity. It is always derived from
// allow-list membership at session-resolution time and is never persisted.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleVendor Role = "VENDOR"
)

// User is the resolved local profile for an authenticated identity.
// It lives only for the duration of a session.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	Role    Role   `json:"role"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lower-cases and trims an email address for comparison.
// All allow-list membership checks go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
