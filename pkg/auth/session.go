package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the name of the portal preference/OAuth-state cookie.
const SessionName = "portal-session"

// Session value keys.
const (
	// SessionKeyState holds the OAuth state parameter during the redirect
	// flow.
	SessionKeyState = "state"
	// SessionKeyPortal holds the last chosen portal ("admin" or "vendor").
	// It survives reloads and is cleared on sign-out.
	SessionKeyPortal = "portal"
)

// Valid portal preference values.
const (
	PortalAdmin  = "admin"
	PortalVendor = "vendor"
)

// PreferenceStore is the durable client-side storage of the portal: a signed
// cookie session holding the OAuth state and the sticky portal choice. It is
// injected where needed rather than accessed as an ambient global.
type PreferenceStore struct {
	store *sessions.CookieStore
}

// NewPreferenceStore initializes the cookie-based session store.
//
// The secret parameter signs session cookies. It can be any passphrase —
// it is SHA-256 hashed to derive a 32-byte key — and must be consistent
// across server restarts.
func NewPreferenceStore(secret string, secure bool) *PreferenceStore {
	key := sha256.Sum256([]byte(secret))

	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30, // 30 days; the portal choice is sticky
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &PreferenceStore{store: store}
}

// Get retrieves the session from the request, creating one if absent.
func (p *PreferenceStore) Get(r *http.Request) (*sessions.Session, error) {
	return p.store.Get(r, SessionName)
}

// Save writes the session to the response.
func (p *PreferenceStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	return session.Save(r, w)
}

// Portal returns the stored portal preference, or "" when unset.
func (p *PreferenceStore) Portal(r *http.Request) string {
	session, err := p.Get(r)
	if err != nil {
		return ""
	}
	portal, _ := session.Values[SessionKeyPortal].(string)
	return portal
}

// Clear removes all portal values from the session. Called on sign-out so a
// forgotten preference cannot steer the next login.
func (p *PreferenceStore) Clear(session *sessions.Session) {
	delete(session.Values, SessionKeyState)
	delete(session.Values, SessionKeyPortal)
}

// ValidPortal reports whether v is an accepted portal preference value.
func ValidPortal(v string) bool {
	return v == PortalAdmin || v == PortalVendor
}
