package validation

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Buy milk", "Buy milk"},
		{"strips tags", "Buy <b>milk</b> today", "Buy milk today"},
		{"strips script tag entirely", "<script>alert(1)</script>", ""},
		{"strips javascript scheme", "javascript:doEvil()", "doEvil()"},
		{"strips alert call", "note alert( 'hi' ) end", "note end"},
		{"pattern uncovered by tag removal", "ale<b>rt(1) done", "done"},
		{"collapses whitespace", "a   b\t\nc", "a b c"},
		{"trims", "  hello  ", "hello"},
		{"lone angle bracket survives", "1 < 2", "1 < 2"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.in)
			if got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"Buy milk",
		"<script>alert(1)</script>",
		"<<b>>bold<</b>>",
		"java\nscript: sneaky",
		"  spaced   out  ",
		"alert (1) <a href='x'>link</a>",
		"",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Fatalf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	if msg := ValidateTitle("Buy milk"); msg != "" {
		t.Fatalf("expected valid title, got %q", msg)
	}
	if msg := ValidateTitle(""); msg != "Title is required" {
		t.Fatalf("expected required message, got %q", msg)
	}
	if msg := ValidateTitle("ab"); msg != "Title must be at least 3 characters" {
		t.Fatalf("expected too-short message, got %q", msg)
	}
	if msg := ValidateTitle(strings.Repeat("a", 41)); msg != "Title must not exceed 40 characters" {
		t.Fatalf("expected too-long message, got %q", msg)
	}
	// Exactly at the bounds is valid.
	if msg := ValidateTitle("abc"); msg != "" {
		t.Fatalf("expected 3-char title to be valid, got %q", msg)
	}
	if msg := ValidateTitle(strings.Repeat("a", 40)); msg != "" {
		t.Fatalf("expected 40-char title to be valid, got %q", msg)
	}
}

func TestValidateDescription(t *testing.T) {
	if msg := ValidateDescription("A valid description here"); msg != "" {
		t.Fatalf("expected valid description, got %q", msg)
	}
	if msg := ValidateDescription(""); msg != "Description is required" {
		t.Fatalf("expected required message, got %q", msg)
	}
	if msg := ValidateDescription("too short"); msg != "Description must be at least 10 characters" {
		t.Fatalf("expected too-short message, got %q", msg)
	}
	if msg := ValidateDescription(strings.Repeat("a", 501)); msg != "Description must not exceed 500 characters" {
		t.Fatalf("expected too-long message, got %q", msg)
	}
}

func TestValidate(t *testing.T) {
	errs := Validate(Fields{Title: "Buy milk", Description: "2% milk, one gallon"})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	errs = Validate(Fields{Title: "ab", Description: "short"})
	if errs["title"] != "Title must be at least 3 characters" {
		t.Fatalf("unexpected title error: %q", errs["title"])
	}
	if errs["description"] != "Description must be at least 10 characters" {
		t.Fatalf("unexpected description error: %q", errs["description"])
	}
}

// Input made entirely of stripped characters sanitizes to empty and
// fails the required check even though the raw value was non-empty.
func TestValidateScriptOnlyTitle(t *testing.T) {
	errs := Validate(Fields{
		Title:       "<script>alert(1)</script>",
		Description: "A valid description here",
	})
	if errs["title"] != "Title is required" {
		t.Fatalf("expected required message for script-only title, got %q", errs["title"])
	}
	if _, ok := errs["description"]; ok {
		t.Fatalf("description should be valid, got %q", errs["description"])
	}
}

// Length bounds apply to the sanitized value, not the raw input.
func TestValidateBoundsAfterSanitize(t *testing.T) {
	// Raw length is far over 40, sanitized is 8.
	if msg := ValidateTitle("<b><i><u>Buy milk</u></i></b>" + strings.Repeat("<x>", 20)); msg != "" {
		t.Fatalf("expected tag-padded title to be valid, got %q", msg)
	}
}
