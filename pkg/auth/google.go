package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Google OAuth 2.0 endpoints.
const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
)

// OAuthClient drives the Google authorization-code flow. It is the single
// external identity provider of the portal.
type OAuthClient struct {
	clientID     string
	clientSecret string
	redirectURL  string
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewOAuthClient creates a Google OAuth client.
func NewOAuthClient(clientID, clientSecret, redirectURL string, logger *zap.Logger) *OAuthClient {
	return &OAuthClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		logger:       logger.Named("oauth"),
	}
}

// AuthCodeURL builds the Google authorization URL for the given state value.
func (c *OAuthClient) AuthCodeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)
	return googleAuthURL + "?" + params.Encode()
}

// tokenResponse is the relevant subset of Google's token endpoint response.
type tokenResponse struct {
	IDToken          string `json:"id_token"`
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange trades an authorization code for an ID token.
func (c *OAuthClient) Exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || body.Error != "" {
		c.logger.Warn("Token exchange rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("error", body.Error))
		return "", fmt.Errorf("token exchange failed: %s %s", body.Error, body.ErrorDescription)
	}

	if body.IDToken == "" {
		return "", fmt.Errorf("token response is missing an ID token")
	}

	return body.IDToken, nil
}
