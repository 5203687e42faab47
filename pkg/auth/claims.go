// Package auth provides session resolution and role gating for the vendor
// portal. Identity comes from Google OAuth; the session is a server-minted
// JWT carried in an httpOnly cookie. The role is never stored: it is derived
// from the administrator allow-list on every request.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserKey is the context key for the resolved user.
const UserKey contextKey = "user"

// SessionClaims is the claims structure of the portal session JWT.
// It embeds RegisteredClaims for standard JWT fields (sub, exp, iat)
// and adds the identity fields needed to rebuild the user profile.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// WithUser returns a context carrying the resolved user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUser retrieves the resolved user from the request context.
// Returns nil and false if no user is present.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
