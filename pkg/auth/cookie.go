package auth

import (
	"net/url"
)

// CookieSettings contains cookie security settings derived from the base URL.
type CookieSettings struct {
	// Secure indicates whether cookies should only be sent over HTTPS.
	Secure bool
	// Domain is the cookie domain scope. Empty isolates cookies to the
	// serving hostname.
	Domain string
}

// DeriveCookieSettings determines cookie security settings from the base URL.
// Localhost deployments get insecure cookies so local development works over
// plain HTTP; everything else requires HTTPS. The configCookieDomain
// parameter allows an explicit domain override.
func DeriveCookieSettings(baseURL, configCookieDomain string) CookieSettings {
	settings := CookieSettings{
		Secure: true,
		Domain: configCookieDomain,
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil || baseURL == "" {
		// Safe defaults for invalid URLs
		return settings
	}

	hostname := parsedURL.Hostname()
	if hostname == "localhost" || hostname == "127.0.0.1" {
		settings.Secure = false
	} else {
		settings.Secure = parsedURL.Scheme != "http"
	}

	return settings
}
