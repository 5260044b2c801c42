package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// TrimAndNormalize trims the string and collapses internal whitespace runs
// into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName cleans a person's display name.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail lowercases an address so identity comparisons are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeLabel cleans a treatment or slot label. Case is preserved because
// slot labels must match the catalog template verbatim.
func NormalizeLabel(label string) string {
	return TrimAndNormalize(label)
}
