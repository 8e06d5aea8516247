package errors

import (
	"strings"
	"unicode"
)

// MaxEdgeListBytes bounds inline edge lists accepted over the API.
const MaxEdgeListBytes = 10 << 20 // 10 MiB

// ValidateEdgeList validates an inline edge-list payload for safety.
// It bounds the size and rejects control characters other than whitespace.
// Line-level syntax errors are reported later by the ingest parser.
func ValidateEdgeList(input string) error {
	if input == "" {
		return New(ErrCodeInvalidInput, "edge list cannot be empty")
	}
	if len(input) > MaxEdgeListBytes {
		return New(ErrCodeInvalidInput, "edge list too large (max %d bytes)", MaxEdgeListBytes)
	}
	for _, r := range input {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return New(ErrCodeInvalidInput, "edge list contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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
