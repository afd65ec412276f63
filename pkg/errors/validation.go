package errors

import (
	"strings"
	"unicode"
)

// ValidateSeparator validates an article or Q&A separator.
// Separators must be non-empty, single-line and free of control characters,
// since they are matched literally against the article file.
func ValidateSeparator(kind, sep string) error {
	if strings.TrimSpace(sep) == "" {
		return New(ErrCodeInvalidConfig, "%s separator cannot be empty", kind)
	}

	const maxSeparatorLength = 256
	if len(sep) > maxSeparatorLength {
		return New(ErrCodeInvalidConfig, "%s separator too long (max %d characters)", kind, maxSeparatorLength)
	}

	for _, r := range sep {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s separator contains control characters", kind)
		}
	}

	return nil
}

// ValidateMinLength validates a minimum fingerprint length.
func ValidateMinLength(kind string, n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidConfig, "%s minimum length must be positive, got %d", kind, n)
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
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
