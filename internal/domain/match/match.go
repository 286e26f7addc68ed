// Package match decides whether a generated query is licensed by a set of
// target titles.
//
// Target titles group several aspects under one entry ("sol conjunción o
// cuadratura a marte") while the key generator emits one aspect at a time,
// so membership is exact-or-structural rather than plain set lookup.
package match

import (
	"regexp"
	"strings"

	"github.com/okian/carta/internal/domain/normalize"
)

// Step reports which rule licensed a query.
type Step int

// Matching steps, in evaluation order.
const (
	None Step = iota
	Exact
	TransitPattern
	AspectPattern
)

func (s Step) String() string {
	switch s {
	case Exact:
		return "exact"
	case TransitPattern:
		return "transit"
	case AspectPattern:
		return "aspect"
	default:
		return "none"
	}
}

// Patterns run on accent-folded text, so "tránsito" is spelled without the
// accent. Words are Unicode letters, digits and underscores.
var (
	transitQueryRe = regexp.MustCompile(`([\p{L}\p{N}_]+)\s+en transito\s+(.*?)\s+a\s+([\p{L}\p{N}_]+)\s+natal`)
	transitTitleRe = regexp.MustCompile(`([\p{L}\p{N}_]+)\s+en transito(?:\s+por)?\s+(.*?)\s+(?:a|al|a la)\s+([\p{L}\p{N}_]+)\s+natal`)
	aspectListRe   = regexp.MustCompile(`\s+o\s+|\s+u\s+`)
)

// group is one title entry licensing a set of aspects for a point pair.
type group map[string]bool

func (g group) has(aspect string) bool { return g[aspect] }

// TitleSet is an immutable allow-list of target titles. It is safe for
// concurrent use.
type TitleSet struct {
	exact   map[string]bool
	transit map[string][]group
	general map[string][]group
}

// NewTitleSet indexes titles. Blank lines are ignored.
func NewTitleSet(titles []string) *TitleSet {
	s := &TitleSet{
		exact:   make(map[string]bool, len(titles)),
		transit: make(map[string][]group),
		general: make(map[string][]group),
	}
	for _, t := range titles {
		t = normalize.Loose(t)
		if t == "" {
			continue
		}
		s.exact[t] = true
		s.indexTransit(t)
		s.indexGeneral(t)
	}
	return s
}

func pairKey(p1, p2 string) string { return p1 + "|" + p2 }

func aspectGroup(list string) group {
	g := make(group)
	for _, a := range aspectListRe.Split(strings.TrimSpace(list), -1) {
		if a = strings.TrimSpace(a); a != "" {
			g[a] = true
		}
	}
	return g
}

func (s *TitleSet) indexTransit(title string) {
	if !strings.Contains(title, "en transito") {
		return
	}
	m := transitTitleRe.FindStringSubmatch(title)
	if m == nil || strings.TrimSpace(m[2]) == "" {
		return
	}
	k := pairKey(m[1], m[3])
	s.transit[k] = append(s.transit[k], aspectGroup(m[2]))
}

func (s *TitleSet) indexGeneral(title string) {
	left, p2, ok := splitAspect(title)
	if !ok {
		return
	}
	words := strings.Fields(left)
	k := pairKey(words[0], p2)
	s.general[k] = append(s.general[k], aspectGroup(strings.Join(words[1:], " ")))
}

// splitAspect splits "{p1} {aspects} a {p2}" around its single " a ".
// The left side must hold at least a point and one more word.
func splitAspect(s string) (left, right string, ok bool) {
	parts := strings.Split(s, " a ")
	if len(parts) != 2 {
		return "", "", false
	}
	left, right = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if len(strings.Fields(left)) < 2 {
		return "", "", false
	}
	return left, right, true
}

// Len returns the number of distinct titles.
func (s *TitleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.exact)
}

// IsLicensed reports whether query is licensed by the set.
func (s *TitleSet) IsLicensed(query string) bool {
	return s.Explain(query) != None
}

// Explain returns the first step that licenses query, or None.
func (s *TitleSet) Explain(query string) Step {
	if s == nil {
		return None
	}
	q := normalize.Loose(query)
	if q == "" {
		return None
	}
	if s.exact[q] {
		return Exact
	}

	if m := transitQueryRe.FindStringSubmatch(q); m != nil {
		aspect := strings.TrimSpace(m[2])
		for _, g := range s.transit[pairKey(m[1], m[3])] {
			if g.has(aspect) {
				return TransitPattern
			}
		}
	}

	if left, p2, ok := splitAspect(q); ok {
		words := strings.Fields(left)
		aspect := strings.Join(words[1:], " ")
		for _, g := range s.general[pairKey(words[0], p2)] {
			if g.has(aspect) {
				return AspectPattern
			}
		}
	}
	return None
}
