// Package keys generates knowledge base lookup keys and licensing queries
// for chart events.
//
// The knowledge bases were authored incrementally and their keys follow
// per-section conventions. Each event kind therefore owns a literal list of
// candidate templates (see templates.go), tried in order; new variants are
// added to the tables, never to the code.
package keys

import (
	"strconv"
	"strings"

	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/normalize"
	"github.com/okian/carta/internal/domain/translate"
)

// Base names one of the three knowledge bases.
type Base string

// Knowledge bases.
const (
	Natal    Base = "natal"
	Transit  Base = "transit"
	Draconic Base = "draconic"
)

// Convention returns the normalization the base's keys were built with.
func (b Base) Convention() normalize.Convention {
	switch b {
	case Transit:
		return normalize.Transit
	case Draconic:
		return normalize.Draconic
	default:
		return normalize.Natal
	}
}

// Target returns the knowledge base an event's keys address.
func Target(ev model.Event, ct model.ChartType) Base {
	switch {
	case ev.Transit:
		return Transit
	case ct == model.Draconic && ev.Kind != model.KindComplexAspect:
		return Draconic
	default:
		return Natal
	}
}

// Generate returns the ordered candidate keys for ev, normalized with the
// target base's convention. Duplicates and empty candidates are dropped.
func Generate(ev model.Event, ct model.ChartType) []string {
	base := Target(ev, ct)
	conv := base.Convention()

	var out []string
	seen := make(map[string]bool)
	add := func(k string) {
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}

	if ev.Kind == model.KindComplexAspect {
		for _, k := range ev.Keys {
			add(conv.Apply(k))
		}
		add(conv.Apply(ev.Title))
		return out
	}

	v := replacer(ev)
	for _, tpl := range table(base)[slotOf(ev)] {
		parts := make([]string, len(tpl))
		for i, p := range tpl {
			parts[i] = v.Replace(p)
		}
		add(conv.Join(parts...))
	}
	return out
}

// Query returns the licensing query for ev, in the space-joined form of the
// target title lists. An empty query means the kind is never licensed.
func Query(ev model.Event, ct model.ChartType) string {
	if ev.Kind == model.KindComplexAspect {
		return normalize.Key(ev.Title)
	}
	var tpl string
	switch {
	case ev.Transit:
		tpl = transitQueries[slotOf(ev)]
	case ct == model.Draconic:
		tpl = draconicQueries[slotOf(ev)]
	default:
		tpl = tropicalQueries[slotOf(ev)]
	}
	if tpl == "" {
		return ""
	}
	return normalize.Key(replacer(ev).Replace(tpl))
}

func table(b Base) map[slot][]template {
	switch b {
	case Transit:
		return transitKeys
	case Draconic:
		return draconicKeys
	default:
		return natalKeys
	}
}

func slotOf(ev model.Event) slot {
	switch ev.Kind {
	case model.KindPlanetInSign:
		switch {
		case translate.IsSun(ev.Point):
			return slotSunInSign
		case translate.IsMoon(ev.Point):
			return slotMoonInSign
		}
	case model.KindAngleInSign:
		if translate.IsAscendant(ev.Point) {
			return slotAscendantInSign
		}
	case model.KindCrossCusp:
		if ev.DraconicHouse == 1 {
			return slotAscendantCusp
		}
	}
	return slot(ev.Kind)
}

// replacer binds the template placeholders for ev.
func replacer(ev model.Event) *strings.Replacer {
	planet := translate.PlanetQuery(ev.Point)
	other := translate.PlanetQuery(ev.Other)
	// Transit keys name the ascendant as an angle; the title lists do not.
	otherQuery := other

	prep, altprep := "a", "al"
	if ev.Transit {
		if translate.IsAscendant(ev.Other) {
			other = "ascendente ángulo"
		}
		if translate.IsSun(ev.Other) || translate.IsAscendant(ev.Other) {
			prep, altprep = "al", "a"
		}
	}

	return strings.NewReplacer(
		"{planet}", planet,
		"{p1}", planet,
		"{p2}", other,
		"{p2q}", otherQuery,
		"{sign}", translate.SignQuery(ev.Sign),
		"{house}", strconv.Itoa(ev.House),
		"{aspect}", translate.Aspect(ev.Aspect),
		"{suffix}", translate.DraconicSuffix(ev.Point, true),
		"{suffix2}", translate.DraconicSuffix(ev.Other, true),
		"{dhouse}", strconv.Itoa(ev.DraconicHouse),
		"{thouse}", strconv.Itoa(ev.TropicalHouse),
		"{prep}", prep,
		"{altprep}", altprep,
	)
}
