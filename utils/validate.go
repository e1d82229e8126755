package utils

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// length limits for human readable fields
const (
	MinNameLength        = 1
	MaxNameLength        = 256
	MaxDescriptionLength = 1024
)

// NormalizeString normalizes a string as NFKC
func NormalizeString(str string) string {
	return norm.NFKC.String(str)
}

// ValidateName checks that the name is a normalized utf8 string within the name length bounds
func ValidateName(name string) error {
	if err := validateString(name, MinNameLength, MaxNameLength); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	return nil
}

// ValidateDescription checks that the description is a normalized utf8 string no longer than the maximum length
func ValidateDescription(description string) error {
	if err := validateString(description, 0, MaxDescriptionLength); err != nil {
		return fmt.Errorf("invalid description: %w", err)
	}

	return nil
}

func validateString(str string, minLen, maxLen int) error {
	if len(str) < minLen {
		return fmt.Errorf("must be at least %d bytes long", minLen)
	}

	if len(str) > maxLen {
		return fmt.Errorf("must be at most %d bytes long", maxLen)
	}

	if !utf8.ValidString(str) {
		return fmt.Errorf("not an utf8 string")
	}

	if !norm.NFKC.IsNormalString(str) {
		return fmt.Errorf("wrong normalization")
	}

	return nil
}
