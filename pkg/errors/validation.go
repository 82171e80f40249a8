package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Limits bounds the size of a diagram accepted by the HTTP API. Label
// de-overlap is quadratic in the number of labeled relationships, so very
// large diagrams are rejected up front rather than cancelled mid-way.
type Limits struct {
	MaxEntities      int
	MaxRelationships int
}

// DefaultLimits are the limits applied by the server unless overridden.
var DefaultLimits = Limits{
	MaxEntities:      2000,
	MaxRelationships: 5000,
}

// ValidateLimits checks entity and relationship counts against l.
// A zero limit disables the corresponding check.
func ValidateLimits(entities, relationships int, l Limits) error {
	if l.MaxEntities > 0 && entities > l.MaxEntities {
		return New(ErrCodeLimitExceeded, "diagram has %d entities (max %d)", entities, l.MaxEntities)
	}
	if l.MaxRelationships > 0 && relationships > l.MaxRelationships {
		return New(ErrCodeLimitExceeded, "diagram has %d relationships (max %d)", relationships, l.MaxRelationships)
	}
	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal and ensures reasonable path length.
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

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateOutputPath validates a file the CLI is about to write. Unlike
// ValidatePath it accepts absolute paths, but the extension must match one of
// the allowed ones (case-insensitive, with leading dot).
func ValidateOutputPath(path string, allowed ...string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return New(ErrCodeInvalidPath, "output path %q must end in one of %s", path, strings.Join(allowed, ", "))
}
