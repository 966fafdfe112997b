package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// maxEmailLength is the RFC 5321 limit on a forward path
const maxEmailLength = 254

// NormalizeEmail trims and lowercases an address before it is stored or looked up
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare address only. Display-name forms such as
// "Ada <ada@example.com>" parse under RFC 5322 but are rejected here.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}
	if len(email) > maxEmailLength {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("invalid email address format")
	}

	return nil
}
