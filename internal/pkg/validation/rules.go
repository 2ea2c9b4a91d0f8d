package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Roll number pattern - ten alphanumeric characters, e.g. 197Z1A0101.
	// The first two digits encode the admission year and positions 7-8
	// encode the department code.
	RollNumberPattern = `^[0-9][0-9][0-9A-Z]{4}[0-9A-Z]{2}[0-9A-Z]{2}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email      *regexp.Regexp
	RollNumber *regexp.Regexp
}{
	Email:      regexp.MustCompile(EmailPattern),
	RollNumber: regexp.MustCompile(RollNumberPattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidRollNumber reports whether the value looks like a roll number.
func IsValidRollNumber(value string) bool {
	return CompiledPatterns.RollNumber.MatchString(value)
}
