package auth

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// SessionCookieName is the httpOnly cookie carrying the session JWT.
const SessionCookieName = "portal_jwt"

// Common authentication errors.
var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidAuthFormat    = errors.New("invalid authorization header format")
)

// AuthService resolves the authenticated user from a request.
// This abstraction separates HTTP handling from session logic and makes
// both easier to test.
type AuthService interface {
	// ValidateRequest extracts and validates the session token from the
	// request. It checks for the token in:
	//   1. Cookie named "portal_jwt" (browser clients)
	//   2. Authorization header with "Bearer" scheme (API clients)
	// Returns the resolved user with the role freshly derived from the
	// administrator allow-list.
	ValidateRequest(r *http.Request) (*models.User, error)

	// ResolveUser maps raw identity fields to a local user profile.
	// Email is normalized and the role derived from allow-list membership.
	ResolveUser(id, email, name, picture string) *models.User
}

// authService implements AuthService.
type authService struct {
	issuer    *TokenIssuer
	allowlist Allowlist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(issuer *TokenIssuer, allowlist Allowlist, logger *zap.Logger) AuthService {
	return &authService{
		issuer:    issuer,
		allowlist: allowlist,
		logger:    logger,
	}
}

// ValidateRequest extracts and validates the session token from the request.
func (s *authService) ValidateRequest(r *http.Request) (*models.User, error) {
	var tokenString string
	var tokenSource string

	// Try cookie first (browser clients)
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		tokenString = cookie.Value
		tokenSource = "cookie"
	} else {
		// Fallback to Authorization header (API clients)
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.logger.Debug("No session token found in request",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method))
			return nil, ErrMissingAuthorization
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.logger.Debug("Invalid Authorization header format",
				zap.String("path", r.URL.Path))
			return nil, ErrInvalidAuthFormat
		}
		tokenString = parts[1]
		tokenSource = "header"
	}

	claims, err := s.issuer.Parse(tokenString)
	if err != nil {
		s.logger.Debug("Session token validation failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("token_source", tokenSource))
		return nil, err
	}

	return s.ResolveUser(claims.Subject, claims.Email, claims.Name, claims.Picture), nil
}

// ResolveUser maps raw identity fields to a local user profile. The role is
// re-derived on every call so allow-list changes take effect immediately.
func (s *authService) ResolveUser(id, email, name, picture string) *models.User {
	normalized := models.NormalizeEmail(email)
	role := s.allowlist.ResolveRole(normalized)

	if name == "" {
		if role == models.RoleAdmin {
			name = "Administrator"
		} else {
			name = "Vendor"
		}
	}

	return &models.User{
		ID:      id,
		Name:    name,
		Email:   normalized,
		Picture: picture,
		Role:    role,
	}
}

// Ensure authService implements AuthService at compile time.
var _ AuthService = (*authService)(nil)
