package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a file path relative to a served workspace.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateSheetName validates an Excel worksheet name.
// The rules mirror what spreadsheet applications enforce:
//   - Cannot be empty
//   - Maximum length of 31 characters
//   - Cannot contain : \ / ? * [ ]
func ValidateSheetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSheet, "sheet name cannot be empty")
	}

	const maxSheetNameLength = 31
	if len(name) > maxSheetNameLength {
		return New(ErrCodeInvalidSheet, "sheet name too long (max %d characters)", maxSheetNameLength)
	}

	if strings.ContainsAny(name, `:\/?*[]`) {
		return New(ErrCodeInvalidSheet, "sheet name contains invalid characters: %q", name)
	}

	return nil
}

// ValidateDelimiter validates a CSV field delimiter.
// encoding/csv rejects delimiters that collide with record structure,
// so the same rules apply here:
//   - Exactly one rune
//   - Not a quote, carriage return, or newline
func ValidateDelimiter(delim string) error {
	runes := []rune(delim)
	if len(runes) != 1 {
		return New(ErrCodeInvalidDelimiter, "delimiter must be a single character, got %q", delim)
	}

	switch runes[0] {
	case '"', '\r', '\n', '\x00':
		return New(ErrCodeInvalidDelimiter, "delimiter cannot be a quote or line break")
	}

	return nil
}
