package errors

import (
	"strings"
	"unicode"
)

// ValidateDashboardID validates a dashboard identifier for safety and
// correctness. Dashboard IDs become file names in the file store and
// cache keys, so the rules are intentionally conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateDashboardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDashboard, "dashboard ID cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidDashboard, "dashboard ID too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDashboard, "dashboard ID contains control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidDashboard, "dashboard ID contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateWidgetID validates a widget identifier. Widget IDs are opaque
// to the engine but travel through URLs and store documents, so the same
// conservative character rules apply as for dashboard IDs.
func ValidateWidgetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "widget ID cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "widget ID too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || r == '/' || r == '\\' {
			return New(ErrCodeInvalidInput, "widget ID contains invalid characters")
		}
	}
	return nil
}
