package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/airkon-pratama/vendor-portal/pkg/auth"
	"github.com/airkon-pratama/vendor-portal/pkg/config"
	"github.com/airkon-pratama/vendor-portal/pkg/logging"
)

// AuthHandler serves the Google sign-in flow and session endpoints.
type AuthHandler struct {
	oauth    *auth.OAuthClient
	verifier auth.IDTokenVerifier
	issuer   *auth.TokenIssuer
	service  auth.AuthService
	prefs    *auth.PreferenceStore
	cookies  auth.CookieSettings
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	oauth *auth.OAuthClient,
	verifier auth.IDTokenVerifier,
	issuer *auth.TokenIssuer,
	service auth.AuthService,
	prefs *auth.PreferenceStore,
	cfg *config.Config,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		oauth:    oauth,
		verifier: verifier,
		issuer:   issuer,
		service:  service,
		prefs:    prefs,
		cookies:  auth.DeriveCookieSettings(cfg.BaseURL, cfg.Auth.CookieDomain),
		tokenTTL: time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
		logger:   logger,
	}
}

// RegisterRoutes registers the auth endpoints.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, mw *auth.Middleware) {
	mux.HandleFunc("GET /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/callback", h.Callback)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/me", mw.RequireAuth(h.Me))
	mux.HandleFunc("GET /api/auth/portal", mw.RequireAuth(h.GetPortal))
	mux.HandleFunc("PUT /api/auth/portal", mw.RequireAuth(h.SetPortal))
}

// Login begins the Google OAuth flow. An optional portal query parameter
// records which portal the user was heading to so the client can land them
// there after the round trip.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		h.logger.Error("Failed to generate OAuth state", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "login_failed", "Failed to start sign-in")
		return
	}

	session, err := h.prefs.Get(r)
	if err != nil {
		h.logger.Warn("Recreating portal session", zap.Error(err))
	}
	session.Values[auth.SessionKeyState] = state
	if portal := r.URL.Query().Get("portal"); auth.ValidPortal(portal) {
		session.Values[auth.SessionKeyPortal] = portal
	}
	if err := h.prefs.Save(r, w, session); err != nil {
		h.logger.Error("Failed to save portal session", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "login_failed", "Failed to start sign-in")
		return
	}

	http.Redirect(w, r, h.oauth.AuthCodeURL(state), http.StatusFound)
}

// Callback completes the OAuth flow: it checks the state parameter, exchanges
// the code for an ID token, verifies the token, and issues the session cookie.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	session, err := h.prefs.Get(r)
	if err != nil {
		h.logger.Warn("Recreating portal session", zap.Error(err))
	}

	expectedState, _ := session.Values[auth.SessionKeyState].(string)
	if expectedState == "" || r.URL.Query().Get("state") != expectedState {
		h.logger.Warn("OAuth state mismatch")
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_state", "Sign-in session expired, please try again")
		return
	}
	delete(session.Values, auth.SessionKeyState)
	if err := h.prefs.Save(r, w, session); err != nil {
		h.logger.Warn("Failed to clear OAuth state", zap.Error(err))
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "missing_code", "Missing authorization code")
		return
	}

	idToken, err := h.oauth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("OAuth code exchange failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusBadGateway, "exchange_failed", "Failed to complete sign-in")
		return
	}

	claims, err := h.verifier.VerifyIDToken(idToken)
	if err != nil {
		h.logger.Warn("ID token rejected", zap.Error(err))
		_ = ErrorResponse(w, http.StatusUnauthorized, "invalid_token", "Sign-in could not be verified")
		return
	}

	user := h.service.ResolveUser(claims.Subject, claims.Email, claims.Name, claims.Picture)
	sessionToken, err := h.issuer.Mint(user)
	if err != nil {
		h.logger.Error("Failed to mint session token", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "session_failed", "Failed to establish session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("User signed in",
		zap.String("email", logging.MaskEmail(user.Email)),
		zap.String("role", string(user.Role)))

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session cookie and the sticky portal preference.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookies.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	session, err := h.prefs.Get(r)
	if err == nil {
		h.prefs.Clear(session)
		if err := h.prefs.Save(r, w, session); err != nil {
			h.logger.Warn("Failed to clear portal session", zap.Error(err))
		}
	}

	if err := WriteJSON(w, http.StatusOK, map[string]bool{"success": true}); err != nil {
		h.logger.Error("Failed to write logout response", zap.Error(err))
	}
}

// Me returns the authenticated user's profile, with the role derived fresh
// from the allow-list, plus the sticky portal preference.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		_ = ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":   user,
		"portal": h.prefs.Portal(r),
	}); err != nil {
		h.logger.Error("Failed to write profile response", zap.Error(err))
	}
}

// GetPortal returns the sticky portal preference, empty if none was chosen.
func (h *AuthHandler) GetPortal(w http.ResponseWriter, r *http.Request) {
	if err := WriteJSON(w, http.StatusOK, map[string]string{
		"portal": h.prefs.Portal(r),
	}); err != nil {
		h.logger.Error("Failed to write portal response", zap.Error(err))
	}
}

// SetPortal records the portal the user chose so reloads land them there.
func (h *AuthHandler) SetPortal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Portal string `json:"portal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if !auth.ValidPortal(body.Portal) {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_portal", "Portal must be admin or vendor")
		return
	}

	session, err := h.prefs.Get(r)
	if err != nil {
		h.logger.Warn("Recreating portal session", zap.Error(err))
	}
	session.Values[auth.SessionKeyPortal] = body.Portal
	if err := h.prefs.Save(r, w, session); err != nil {
		h.logger.Error("Failed to save portal preference", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "save_failed", "Failed to save preference")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]string{"portal": body.Portal}); err != nil {
		h.logger.Error("Failed to write portal response", zap.Error(err))
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
