package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

func TestTokenIssuer_MintAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	user := &models.User{
		ID:      "google-sub-123",
		Name:    "Budi Santoso",
		Email:   "budi@example.com",
		Picture: "https://example.com/budi.png",
		Role:    models.RoleVendor,
	}

	token, err := issuer.Mint(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)

	assert.Equal(t, "google-sub-123", claims.Subject)
	assert.Equal(t, "budi@example.com", claims.Email)
	assert.Equal(t, "Budi Santoso", claims.Name)
	assert.Equal(t, "https://example.com/budi.png", claims.Picture)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Mint(&models.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Mint(&models.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_DoesNotEmbedRole(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Mint(&models.User{
		ID:    "u1",
		Email: "a@example.com",
		Role:  models.RoleAdmin,
	})
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)

	// The role is derived from the allow-list on every request; the token
	// itself carries identity only.
	assert.Equal(t, "a@example.com", claims.Email)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.NotContains(t, raw, "role")
}
