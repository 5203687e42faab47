package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// stubAuthService returns a fixed user or error for every request.
type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) ValidateRequest(r *http.Request) (*models.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) ResolveUser(id, email, name, picture string) *models.User {
	return s.user
}

func TestRequireAuth_PutsUserInContext(t *testing.T) {
	expected := &models.User{ID: "u1", Email: "vendor@example.com", Role: models.RoleVendor}
	mw := NewMiddleware(&stubAuthService{user: expected}, zap.NewNop())

	var got *models.User
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, expected, got)
}

func TestRequireAuth_RejectsInvalidSession(t *testing.T) {
	mw := NewMiddleware(&stubAuthService{err: errors.New("bad token")}, zap.NewNop())

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"])
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	admin := &models.User{ID: "u1", Email: "admin@example.com", Role: models.RoleAdmin}
	mw := NewMiddleware(&stubAuthService{user: admin}, zap.NewNop())

	called := false
	handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RejectsVendorBeforeHandlerRuns(t *testing.T) {
	vendor := &models.User{ID: "u2", Email: "vendor@example.com", Role: models.RoleVendor}
	mw := NewMiddleware(&stubAuthService{user: vendor}, zap.NewNop())

	called := false
	handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	// A vendor who bypasses the client-side gate must be stopped here,
	// before any report data is fetched.
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "vendor_denied", body["error"])
}

func TestRequireAdmin_RejectsUnauthenticated(t *testing.T) {
	mw := NewMiddleware(&stubAuthService{err: ErrMissingAuthorization}, zap.NewNop())

	rec := httptest.NewRecorder()
	mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
