package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveCookieSettings(t *testing.T) {
	tests := []struct {
		name       string
		baseURL    string
		domain     string
		wantSecure bool
		wantDomain string
	}{
		{"localhost http", "http://localhost:8080", "", false, ""},
		{"loopback http", "http://127.0.0.1:8080", "", false, ""},
		{"production https", "https://portal.airkon.example", "", true, ""},
		{"plain http non-local", "http://portal.internal", "", false, ""},
		{"explicit domain", "https://portal.airkon.example", "airkon.example", true, "airkon.example"},
		{"empty base URL stays secure", "", "", true, ""},
		{"unparseable base URL stays secure", "://bad", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DeriveCookieSettings(tt.baseURL, tt.domain)
			assert.Equal(t, tt.wantSecure, settings.Secure)
			assert.Equal(t, tt.wantDomain, settings.Domain)
		})
	}
}
