// Package slug builds URL-safe post identifiers from titles.
package slug

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	fallback  = "post"
	suffixLen = 8
)

// letters that do not decompose into a base letter plus a mark
var ligatures = strings.NewReplacer(
	"ß", "ss",
	"æ", "ae",
	"œ", "oe",
	"ø", "o",
	"đ", "d",
	"ł", "l",
	"þ", "th",
)

// Make lowercases s, strips diacritics and joins runs of letters and digits
// with single hyphens. Letters outside the Latin script are kept, so Arabic
// or Persian titles still produce a readable slug.
func Make(s string) string {
	s = ligatures.Replace(strings.ToLower(strings.TrimSpace(s)))

	// Chain keeps internal buffers, so it is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	sep := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			sep = false
		default:
			if !sep && b.Len() > 0 {
				b.WriteByte('-')
				sep = true
			}
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return fallback
	}

	return out
}

// ForPost returns the base slug for a post: "<title>-<language>".
func ForPost(title, language string) string {
	return Make(title) + "-" + Make(language)
}

// WithID appends the first eight characters of id to base.
func WithID(base string, id uuid.UUID) string {
	return base + "-" + id.String()[:suffixLen]
}
