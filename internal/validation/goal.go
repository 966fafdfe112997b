package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateTitle validates a goal title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("title is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return errors.New("title is too long (max 100 characters)")
	}

	return nil
}

func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > 1000 {
		return errors.New("description is too long (max 1000 characters)")
	}
	return nil
}
