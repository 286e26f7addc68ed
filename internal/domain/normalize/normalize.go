// Package normalize canonicalizes knowledge base keys, queries and titles.
//
// Each knowledge base was built with its own convention, so normalization is
// parameterized by Convention. Accent folding is a comparison aid: Fold is
// never applied to stored keys by the accent-preserving conventions.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Convention describes how a table's keys were built.
type Convention struct {
	// Sep joins words: " " for natal titles, "_" for JSON keys.
	Sep string
	// FoldAccents strips diacritics, as the draconic build did.
	FoldAccents bool
	// StripPunct drops characters that are neither letters, digits, spaces nor underscores.
	StripPunct bool
}

// Conventions of the three knowledge bases.
var (
	Natal    = Convention{Sep: " "}
	Transit  = Convention{Sep: "_"}
	Draconic = Convention{Sep: "_", FoldAccents: true, StripPunct: true}
)

// Apply lower-cases, trims and joins words with the convention separator.
func (c Convention) Apply(s string) string {
	s = strings.ToLower(s)
	if c.FoldAccents {
		s = Fold(s)
	}
	if c.StripPunct {
		s = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
				return r
			}
			return ' '
		}, s)
	}
	var words []string
	if c.Sep == "_" {
		words = strings.FieldsFunc(s, func(r rune) bool { return r == '_' || unicode.IsSpace(r) })
	} else {
		words = strings.Fields(s)
	}
	return strings.Join(words, c.Sep)
}

// Join normalizes each part independently and joins the results with the
// convention separator.
func (c Convention) Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := c.Apply(p); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, c.Sep)
}

// Key is the accent-preserving, space-joined normalizer.
func Key(s string) string {
	return Natal.Apply(s)
}

// Underscore is the accent-preserving, underscore-joined normalizer.
func Underscore(s string) string {
	return Transit.Apply(s)
}

var foldTransformer = func() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Fold removes diacritics: "tránsito" becomes "transito".
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer(), s)
	if err != nil {
		return s
	}
	return out
}

// Loose is the comparison form: accent-folded, lower-cased, space-joined.
func Loose(s string) string {
	return Key(Fold(s))
}

// EqualFold reports whether a and b are equal after accent folding and
// whitespace normalization. It is symmetric.
func EqualFold(a, b string) bool {
	return Loose(a) == Loose(b)
}

var (
	parenRe    = regexp.MustCompile(`\s*\([^)]*\)`)
	colonRe    = regexp.MustCompile(`:.*`)
	asteriskRe = regexp.MustCompile(`\*+`)
)

// Title normalizes a human-authored markdown title into lookup form: it
// drops parenthetical asides, anything after a colon and emphasis
// asterisks, then lower-cases and collapses whitespace.
func Title(s string) string {
	s = parenRe.ReplaceAllString(s, "")
	s = colonRe.ReplaceAllString(s, "")
	s = asteriskRe.ReplaceAllString(s, " ")
	s = Key(s)
	s = strings.ReplaceAll(s, " en casa dos", " en casa 2")
	return s
}
