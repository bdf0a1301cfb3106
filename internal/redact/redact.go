// Package redact scrubs sensitive fragments from strings before they are
// logged. Error messages can embed connection strings, credentials or
// tokens; everything that leaves the process through a log line passes
// through here first.
package redact

import "regexp"

// RedactionPlaceholder replaces matched credential material.
const RedactionPlaceholder = "[REDACTED]"

var patterns = []*regexp.Regexp{
	// Connection strings with inline credentials.
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`),
	// password=..., secret: ..., api_key '...'
	regexp.MustCompile(`(?i)(password|passwd|secret|api[_-]?key|token)(['"\s:=]+)[^'"&\s]{3,}`),
	// Three-part JWTs.
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
	// Email addresses.
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, RedactionPlaceholder)
	}
	return result
}

// Error redacts sensitive information from an error's message. Returns an
// empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
