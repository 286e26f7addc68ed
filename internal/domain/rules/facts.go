package rules

import (
	"github.com/okian/carta/internal/domain/extract"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/translate"
)

type aspectFact struct {
	p1, p2, kind string
}

// Facts is the rule evaluation view of a chart: canonical point names,
// Spanish sign names, resolved houses and natal aspects.
type Facts struct {
	signs   map[string]string
	houses  map[string]int
	aspects []aspectFact
}

// NewFacts indexes chart for rule evaluation.
func NewFacts(chart model.Chart) *Facts {
	f := &Facts{
		signs:  make(map[string]string, len(chart.Points)),
		houses: make(map[string]int, len(chart.Points)),
	}
	for name, p := range chart.Points {
		if p.Sign != "" {
			f.signs[translate.Canonical(name)] = translate.SignQuery(p.Sign)
		}
	}
	for name, h := range extract.Placements(chart.Points, chart.Houses) {
		f.houses[translate.Canonical(name)] = h
	}
	for _, a := range chart.Aspects {
		f.aspects = append(f.aspects, aspectFact{
			p1:   translate.Canonical(a.Point1),
			p2:   translate.Canonical(a.Point2),
			kind: translate.AspectCanonical(a.Aspect),
		})
	}
	return f
}

// House returns the house of point, or 0.
func (f *Facts) House(point string) int {
	return f.houses[point]
}

// InSign reports whether point is in sign, given in either language.
func (f *Facts) InSign(point, sign string) bool {
	s, ok := f.signs[point]
	return ok && s == translate.SignQuery(sign)
}

// Aspect returns the first aspect of one of kinds between p1 and p2, in
// either direction.
func (f *Facts) Aspect(p1, p2 string, kinds ...string) (string, bool) {
	for _, a := range f.aspects {
		if !(a.p1 == p1 && a.p2 == p2) && !(a.p1 == p2 && a.p2 == p1) {
			continue
		}
		for _, k := range kinds {
			if a.kind == k {
				return a.kind, true
			}
		}
	}
	return "", false
}
