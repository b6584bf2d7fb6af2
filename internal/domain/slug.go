package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify derives the canonical identifier slug for a source label.
// The same input always yields the same slug. Rules, in order:
//
//   - accents are folded to ASCII (é → e)
//   - lower-cased
//   - a leading apostrophe or hyphen is stripped ("'hood" → "hood")
//   - "&" and "&amp;" become "and"
//   - "$" becomes "s"
//   - whitespace and periods become hyphens ("B.I.G." → "b-i-g")
//   - colons and slashes are dropped
//   - remaining apostrophes and commas are dropped
//   - hyphen runs are collapsed and a trailing hyphen is stripped
func Slugify(s string) string {
	s = foldAccents(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ToLower(s)

	for len(s) > 0 && (s[0] == '\'' || s[0] == '-') {
		s = s[1:]
	}

	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '.' || r == '-':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
			continue
		case r == ':' || r == '/' || r == '\'' || r == ',':
			continue
		case r == '$':
			b.WriteByte('s')
		case r == '&':
			b.WriteString("and")
		default:
			b.WriteRune(r)
		}
		prevHyphen = false
	}

	return strings.TrimSuffix(b.String(), "-")
}

// SortKey derives the alphabetization key for a headword. A leading
// definite article is rotated to the end, independent of the slug:
// "The Notorious B.I.G." → "notorious-b-i-g, the".
func SortKey(headword string) string {
	if rest, ok := strings.CutPrefix(headword, "The "); ok {
		return Slugify(rest) + ", the"
	}
	if rest, ok := strings.CutPrefix(headword, "the "); ok {
		return Slugify(rest) + ", the"
	}
	return Slugify(headword)
}

// LetterBucket returns the first-letter bucket for a slug, skipping a
// leading "the-" prefix. Slugs that start with anything other than a-z
// after the skip fall into the "#" bucket.
func LetterBucket(slug string) string {
	s := strings.TrimPrefix(slug, "the-")
	if len(s) == 0 {
		return "#"
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0])
	}
	return "#"
}

// ExpandCamelCase turns a compact camelCase source token into a
// human-readable label: "westCoast" → "West Coast".
func ExpandCamelCase(token string) string {
	var b strings.Builder
	b.Grow(len(token) + 4)
	for i, r := range token {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ExpandSnakeCase turns a compact snake_case source token into a
// human-readable label: "marijuana_products" → "Marijuana Products".
func ExpandSnakeCase(token string) string {
	words := strings.Split(token, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// foldAccents strips combining marks after NFD decomposition (é → e).
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
