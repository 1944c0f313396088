package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds configured identifiers; SVG editors never emit anything close.
const maxIdentifierLength = 256

// identifierRegex matches identifiers that are safe as XML ids and as the base
// of minted names: a letter or underscore followed by name characters.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)

// ValidateIdentifier validates an element identifier taken from configuration.
//
// The rules are conservative:
//   - No empty identifiers
//   - Maximum length of 256 characters
//   - Must start with a letter or underscore
//   - Only letters, digits, '_', '.', ':' and '-' afterwards
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidIdentifier, "identifier cannot be empty")
	}

	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidIdentifier, "identifier too long (max %d characters)", maxIdentifierLength)
	}

	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidIdentifier, "invalid identifier: %q", id)
	}

	return nil
}

// ValidatePath validates a file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty or whitespace only
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters: %q", path)
		}
	}

	return nil
}
