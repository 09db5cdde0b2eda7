// Package validation sanitizes and validates user-submitted task fields
// before they reach storage.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Field length bounds.
const (
	TitleMinLen       = 3
	TitleMaxLen       = 40
	DescriptionMinLen = 10
	DescriptionMaxLen = 500
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	scriptPattern     = regexp.MustCompile(`(?i)(javascript|script):`)
	alertPattern      = regexp.MustCompile(`(?i)alert\s*\([^)]*\)`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Fields is the raw user input for a create or update form.
type Fields struct {
	Title       string
	Description string
}

// Errors maps a field name to its error message. An empty map means
// the input is valid.
type Errors map[string]string

// Sanitize strips HTML-like tags and injection-looking patterns, then
// collapses whitespace runs to single spaces and trims the result.
// It is pure and idempotent: removal is applied until a fixed point,
// so stripping one layer can never uncover a pattern that survives.
func Sanitize(s string) string {
	for {
		next := tagPattern.ReplaceAllString(s, "")
		next = scriptPattern.ReplaceAllString(next, "")
		next = alertPattern.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ValidateTitle sanitizes the raw title and returns an error message,
// or "" when it is valid. Length is counted in runes over the
// sanitized value.
func ValidateTitle(raw string) string {
	title := Sanitize(raw)
	if title == "" {
		return "Title is required"
	}
	if n := len([]rune(title)); n < TitleMinLen {
		return fmt.Sprintf("Title must be at least %d characters", TitleMinLen)
	} else if n > TitleMaxLen {
		return fmt.Sprintf("Title must not exceed %d characters", TitleMaxLen)
	}
	return ""
}

// ValidateDescription is the description counterpart of ValidateTitle.
func ValidateDescription(raw string) string {
	description := Sanitize(raw)
	if description == "" {
		return "Description is required"
	}
	if n := len([]rune(description)); n < DescriptionMinLen {
		return fmt.Sprintf("Description must be at least %d characters", DescriptionMinLen)
	} else if n > DescriptionMaxLen {
		return fmt.Sprintf("Description must not exceed %d characters", DescriptionMaxLen)
	}
	return ""
}

// Validate checks both form fields. Input consisting only of stripped
// characters sanitizes to "" and fails the required check even though
// the raw input was non-empty; that is intended.
func Validate(f Fields) Errors {
	errs := Errors{}
	if msg := ValidateTitle(f.Title); msg != "" {
		errs["title"] = msg
	}
	if msg := ValidateDescription(f.Description); msg != "" {
		errs["description"] = msg
	}
	return errs
}
