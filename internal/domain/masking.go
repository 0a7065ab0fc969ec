package domain

import (
	"strings"
	"unicode"
)

const maskRun = "***"

// MaskEmail redacts an email for viewers without the pro role. The first
// character and the domain are kept.
func MaskEmail(email string, role Role) string {
	if email == "" || role == RolePro {
		return email
	}

	local, domainPart, found := strings.Cut(email, "@")
	if !found {
		return maskHead(email)
	}
	return maskHead(local) + "@" + domainPart
}

// MaskPhone redacts a phone number for viewers without the pro role. The
// first and last digit are kept and the middle becomes a fixed-length run.
func MaskPhone(phone string, role Role) string {
	if phone == "" || role == RolePro {
		return phone
	}

	var digits []rune
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 2 {
		return strings.Repeat("*", len([]rune(phone)))
	}
	return string(digits[0]) + strings.Repeat("*", 8) + string(digits[len(digits)-1])
}

func maskHead(s string) string {
	runes := []rune(s)
	switch {
	case len(runes) == 0:
		return maskRun
	case len(runes) <= 2:
		return strings.Repeat("*", len(runes)) + maskRun
	}
	return string(runes[0]) + maskRun
}

// Masked returns a copy of c with contact fields redacted for role.
func (c Candidate) Masked(role Role) Candidate {
	c.Email = MaskEmail(c.Email, role)
	c.Mobile = MaskPhone(c.Mobile, role)
	return c
}
