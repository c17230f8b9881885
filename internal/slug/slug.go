// Package slug derives URL-safe identifiers from human titles and probes
// the store for a free one when the derived value is already taken.
package slug

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fallback is used when normalization strips a title down to nothing.
const Fallback = "item"

// Slugify NFKC-normalizes and lowercases the input, drops everything that
// is not a letter, digit, whitespace or hyphen, and collapses separator
// runs into single hyphens. Cyrillic and other scripts survive untouched.
// Normalization runs first: compatibility decompositions may introduce
// uppercase letters (№ becomes No) that still need lowercasing.
func Slugify(input string) string {
	s := strings.ToLower(norm.NFKC.String(strings.TrimSpace(input)))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	parts := strings.FieldsFunc(b.String(), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	return strings.Join(parts, "-")
}

// Lookup reports whether a slug is already taken by some entity of the
// same type.
type Lookup func(slug string) (bool, error)

// EnsureUnique slugifies base and probes the lookup until a free slug is
// found, appending -2, -3, ... to the original slug on each collision.
// The probe and the subsequent write are separate operations; the store's
// unique constraint remains the backstop for concurrent writers.
func EnsureUnique(lookup Lookup, base string) (string, error) {
	root := Slugify(base)
	if root == "" {
		root = Fallback
	}

	candidate := root
	for n := 2; ; n++ {
		taken, err := lookup(candidate)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", root, n)
	}
}
