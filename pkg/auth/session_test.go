package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceStore_PortalRoundTrip(t *testing.T) {
	prefs := NewPreferenceStore("session-secret", false)

	// Write the preference.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	rec := httptest.NewRecorder()

	session, err := prefs.Get(req)
	require.NoError(t, err)
	session.Values[SessionKeyPortal] = PortalAdmin
	require.NoError(t, prefs.Save(req, rec, session))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Read it back on a later request carrying the cookie.
	later := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		later.AddCookie(c)
	}

	assert.Equal(t, PortalAdmin, prefs.Portal(later))
}

func TestPreferenceStore_PortalEmptyWhenUnset(t *testing.T) {
	prefs := NewPreferenceStore("session-secret", false)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, "", prefs.Portal(req))
}

func TestPreferenceStore_ClearRemovesStateAndPortal(t *testing.T) {
	prefs := NewPreferenceStore("session-secret", false)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
	session, err := prefs.Get(req)
	require.NoError(t, err)

	session.Values[SessionKeyState] = "abc123"
	session.Values[SessionKeyPortal] = PortalVendor

	prefs.Clear(session)

	assert.Empty(t, session.Values)
}

func TestValidPortal(t *testing.T) {
	assert.True(t, ValidPortal(PortalAdmin))
	assert.True(t, ValidPortal(PortalVendor))
	assert.False(t, ValidPortal(""))
	assert.False(t, ValidPortal("superuser"))
}
