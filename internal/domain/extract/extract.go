// Package extract flattens a chart payload into atomic interpretable events.
package extract

import (
	"math"
	"sort"

	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/translate"
)

// Points that never receive a house placement.
var unplaced = map[string]bool{"Vertex": true, "Part of Fortune": true}

// Extract walks the chart's points, houses, aspects and cross-chart fields
// and returns one event per fact. A malformed entry skips only its own
// event.
func Extract(chart model.Chart) []model.Event {
	var events []model.Event

	names := SortedPoints(chart.Points)
	for _, name := range names {
		p := chart.Points[name]
		if p.Sign == "" {
			continue
		}
		deg := Degrees(p)
		if translate.IsAngle(name) {
			events = append(events, model.Event{Kind: model.KindAngleInSign, Point: name, Sign: p.Sign, Degrees: deg})
			continue
		}
		events = append(events, model.Event{Kind: model.KindPlanetInSign, Point: name, Sign: p.Sign, Degrees: deg})
		if p.Retrograde {
			events = append(events, model.Event{Kind: model.KindRetrograde, Point: name, Sign: p.Sign, Degrees: deg})
		}
	}

	placements := Placements(chart.Points, chart.Houses)
	for _, name := range names {
		if h, ok := placements[name]; ok {
			events = append(events, model.Event{Kind: model.KindPlanetInHouse, Point: name, House: h})
		}
	}

	for n := 1; n <= 12; n++ {
		h, ok := chart.Houses[n]
		if !ok || h.Sign == "" {
			continue
		}
		var deg *float64
		if h.Longitude != nil {
			d := math.Mod(normalizeLongitude(*h.Longitude), 30)
			deg = &d
		}
		events = append(events, model.Event{Kind: model.KindHouseInSign, House: n, Sign: h.Sign, Degrees: deg})
	}

	for _, a := range chart.Aspects {
		if a.Point1 == "" || a.Point2 == "" || a.Aspect == "" {
			continue
		}
		events = append(events, model.Event{Kind: model.KindAspect, Point: a.Point1, Other: a.Point2, Aspect: a.Aspect, Orb: a.Orb})
	}
	for _, a := range chart.TransitAspects {
		if a.Point1 == "" || a.Point2 == "" || a.Aspect == "" {
			continue
		}
		events = append(events, model.Event{
			Kind: model.KindAspect, Point: a.Point1, Other: a.Point2, Aspect: a.Aspect, Orb: a.Orb, Transit: true,
		})
	}

	events = append(events, crossCusps(chart)...)

	for _, list := range []model.List[model.CrossAspect]{chart.CrossAspects, chart.Contacts} {
		for _, c := range list {
			if c.DraconicPoint == "" || c.TropicalPoint == "" || c.Aspect == "" {
				continue
			}
			events = append(events, model.Event{
				Kind: model.KindCrossAspect, Point: c.DraconicPoint, Other: c.TropicalPoint, Aspect: c.Aspect, Orb: c.Orb,
			})
		}
	}
	return events
}

// crossCusps prefers explicit cusp records, then the overlap table, then
// overlaps computed from both house sets.
func crossCusps(chart model.Chart) []model.Event {
	var events []model.Event
	if len(chart.CrossCusps) > 0 {
		for _, c := range chart.CrossCusps {
			if !validHouse(c.DraconicHouse) || !validHouse(c.TropicalHouse) {
				continue
			}
			events = append(events, model.Event{
				Kind: model.KindCrossCusp, DraconicHouse: c.DraconicHouse, TropicalHouse: c.TropicalHouse, Description: c.Description,
			})
		}
		return events
	}

	overlaps := chart.HouseOverlaps
	if len(overlaps) == 0 {
		overlaps = HouseOverlaps(chart.Houses, chart.TropicalHouses)
	}
	for d := 1; d <= 12; d++ {
		t, ok := overlaps[d]
		if !ok || !validHouse(t) {
			continue
		}
		events = append(events, model.Event{Kind: model.KindCrossCusp, DraconicHouse: d, TropicalHouse: t})
	}
	return events
}

func validHouse(n int) bool { return n >= 1 && n <= 12 }

// SortedPoints returns the point names in canonical order.
func SortedPoints(points model.Points) []string {
	names := make([]string, 0, len(points))
	for name := range points {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return translate.Less(names[i], names[j]) })
	return names
}

// Degrees returns the position within the sign, from the payload degrees or
// derived from the ecliptic longitude.
func Degrees(p model.Point) *float64 {
	var v float64
	switch {
	case p.Degrees != nil:
		v = *p.Degrees
	case p.Longitude != nil:
		v = *p.Longitude
	default:
		return nil
	}
	if v < 0 || v >= 30 {
		v = math.Mod(normalizeLongitude(v), 30)
	}
	return &v
}

// Placements returns the house of every placeable point: the payload house
// when present, otherwise the one computed from longitude. Angles, the
// Vertex and the Part of Fortune are never placed.
func Placements(points model.Points, houses model.Houses) map[string]int {
	cusps, complete := cuspLongitudes(houses)
	out := make(map[string]int)
	for name, p := range points {
		if translate.IsAngle(name) || unplaced[translate.Canonical(name)] {
			continue
		}
		if validHouse(p.House) {
			out[name] = p.House
			continue
		}
		if !complete || p.Longitude == nil {
			continue
		}
		if h, ok := houseOf(*p.Longitude, cusps); ok {
			out[name] = h
		}
	}
	return out
}

// PlaceHouse returns the house whose half-open interval [cusp_i, cusp_i+1)
// contains longitude, wrapping at 360°. It fails unless all 12 cusps are
// known.
func PlaceHouse(longitude float64, houses model.Houses) (int, bool) {
	cusps, complete := cuspLongitudes(houses)
	if !complete {
		return 0, false
	}
	return houseOf(longitude, cusps)
}

// HouseOverlaps returns, for each draconic cusp, the tropical house that
// contains it. It is empty unless the tropical cusps are complete.
func HouseOverlaps(draconic, tropical model.Houses) map[int]int {
	cusps, complete := cuspLongitudes(tropical)
	if !complete {
		return map[int]int{}
	}
	out := make(map[int]int, 12)
	for d := 1; d <= 12; d++ {
		h, ok := draconic[d]
		if !ok || h.Longitude == nil {
			continue
		}
		if t, ok := houseOf(*h.Longitude, cusps); ok {
			out[d] = t
		}
	}
	return out
}

func cuspLongitudes(houses model.Houses) ([12]float64, bool) {
	var cusps [12]float64
	for i := 1; i <= 12; i++ {
		h, ok := houses[i]
		if !ok || h.Longitude == nil {
			return cusps, false
		}
		cusps[i-1] = normalizeLongitude(*h.Longitude)
	}
	return cusps, true
}

func houseOf(longitude float64, cusps [12]float64) (int, bool) {
	lon := normalizeLongitude(longitude)
	for i := 0; i < 12; i++ {
		start, end := cusps[i], cusps[(i+1)%12]
		if start <= end {
			if lon >= start && lon < end {
				return i + 1, true
			}
			continue
		}
		if lon >= start || lon < end {
			return i + 1, true
		}
	}
	return 0, false
}

func normalizeLongitude(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}
