// Package logging provides log sanitization helpers. Vendor reports carry
// personal contact data (emails, phone numbers); these are masked before any
// value reaches a log line.
package logging

import (
	"regexp"
	"strings"
)

// RedactedText is the replacement text for sensitive data.
const RedactedText = "[REDACTED]"

var (
	// Pattern to match potential passwords in connection strings
	// Matches: password=xxx, pwd=xxx, pass=xxx (until next delimiter)
	passwordPattern = regexp.MustCompile(`(?i)(password|pwd|pass)=[^;&\s]+`)

	// Pattern to match connection string credentials (user:pass@host format)
	connStringPattern = regexp.MustCompile(`://[^:]+:[^@]+@[^/\s]+`)
)

// SanitizeConnectionString removes sensitive data from connection strings.
// Use this before logging any connection string.
func SanitizeConnectionString(connStr string) string {
	if connStr == "" {
		return ""
	}

	sanitized := passwordPattern.ReplaceAllString(connStr, "${1}="+RedactedText)
	sanitized = connStringPattern.ReplaceAllString(sanitized, "://"+RedactedText+"@"+RedactedText)

	return sanitized
}

// MaskEmail masks the local part of an email address, keeping at most the
// first two characters and the domain.
func MaskEmail(email string) string {
	at := strings.IndexRune(email, '@')
	if at <= 0 {
		return "***"
	}
	prefix := email[:at]
	domain := email[at:]
	if len(prefix) <= 2 {
		return prefix + "***" + domain
	}
	return prefix[:2] + "***" + domain
}

// MaskPhone masks a phone number, keeping only the last two digits.
func MaskPhone(phone string) string {
	runes := []rune(phone)
	n := len(runes)
	if n <= 4 {
		return "***"
	}
	masked := make([]rune, n)
	for i := range runes {
		if i >= n-2 {
			masked[i] = runes[i]
		} else {
			masked[i] = '*'
		}
	}
	return string(masked)
}
