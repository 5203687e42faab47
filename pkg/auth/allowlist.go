package auth

import (
	"github.com/airkon-pratama/vendor-portal/pkg/models"
)

// Allowlist is the fixed set of administrator email addresses. Role is
// always a pure function of membership: changing the list changes effective
// permissions on the next session check, because nothing is stored per user.
type Allowlist struct {
	emails map[string]struct{}
}

// NewAllowlist builds an allow-list from the configured addresses.
// Addresses are normalized so membership checks are case-insensitive.
func NewAllowlist(emails []string) Allowlist {
	set := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		if normalized := models.NormalizeEmail(email); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return Allowlist{emails: set}
}

// ResolveRole derives the role for an email address: ADMIN iff the
// normalized address is on the allow-list, VENDOR otherwise.
func (a Allowlist) ResolveRole(email string) models.Role {
	if _, ok := a.emails[models.NormalizeEmail(email)]; ok {
		return models.RoleAdmin
	}
	return models.RoleVendor
}
