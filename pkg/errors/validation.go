package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxSourceSize is the largest source text accepted by [ValidateSource].
const MaxSourceSize = 1 << 20

// typeNameRegex matches component type names usable in declarations.
var typeNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateTypeName validates a component type name from a pin table config.
// Type names must be usable as the <type> word of a component declaration.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPinTable, "component type cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidPinTable, "component type too long (max 64 characters): %q", name)
	}
	if !typeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPinTable, "invalid component type %q (letters, digits and _ only)", name)
	}
	return nil
}

// ValidatePinName validates a symbolic pin name from a pin table config.
func ValidatePinName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPinTable, "pin name cannot be blank")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPinTable, "pin name %q contains control characters", name)
		}
	}
	// ':' separates component and pin in rendered node IDs.
	if strings.Contains(name, ":") {
		return New(ErrCodeInvalidPinTable, "pin name %q cannot contain ':'", name)
	}
	return nil
}

// ValidateSource checks that a source text is acceptable for analysis.
// Content is never rejected for syntax; only size and NUL bytes are checked.
func ValidateSource(src string) error {
	if len(src) > MaxSourceSize {
		return New(ErrCodeInputTooLarge, "source too large (%d bytes, max %d)", len(src), MaxSourceSize)
	}
	if strings.ContainsRune(src, '\x00') {
		return New(ErrCodeInvalidInput, "source contains NUL bytes")
	}
	return nil
}

// ValidatePath validates an output path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
