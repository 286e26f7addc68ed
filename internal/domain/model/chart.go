// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ChartType selects the interpretation frame.
type ChartType string

// Chart types.
const (
	Tropical ChartType = "tropical"
	Draconic ChartType = "draco"
)

// ParseChartType accepts the spellings clients send for each frame.
func ParseChartType(s string) (ChartType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tropical", "tropico", "trópico", "natal":
		return Tropical, true
	case "draco", "draconic", "draconica", "dracónica", "draconico", "dracónico":
		return Draconic, true
	}
	return "", false
}

// Chart is the pre-computed chart payload received from the calculation service.
type Chart struct {
	Name    string       `json:"nombre,omitempty"`
	Points  Points       `json:"points,omitempty"`
	Houses  Houses       `json:"houses,omitempty"`
	Aspects List[Aspect] `json:"aspects,omitempty"`

	// TransitAspects pairs a transiting point1 with a natal point2.
	TransitAspects List[Aspect] `json:"aspectos_transito,omitempty"`

	// Cross-chart fields, draconic charts only.
	CrossCusps     List[CrossCusp]   `json:"cuspides_cruzadas,omitempty"`
	CrossAspects   List[CrossAspect] `json:"aspectos_cruzados,omitempty"`
	TropicalHouses Houses            `json:"tropical_houses,omitempty"`
	HouseOverlaps  Overlaps          `json:"house_overlaps,omitempty"`
	Contacts       List[CrossAspect] `json:"contacts,omitempty"`
}

// UnmarshalJSON accepts "planets" as an alias of "points".
func (c *Chart) UnmarshalJSON(b []byte) error {
	type plain Chart
	aux := struct {
		*plain
		Planets Points `json:"planets"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(c.Points) == 0 && len(aux.Planets) > 0 {
		c.Points = aux.Planets
	}
	return nil
}

// Point is a planet, node or angle placement.
type Point struct {
	Sign       string   `json:"sign,omitempty"`
	Degrees    *float64 `json:"degrees,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	House      int      `json:"house,omitempty"`
	Retrograde bool     `json:"retrograde,omitempty"`
}

// UnmarshalJSON tolerates the field aliases produced by different chart calculators.
func (p *Point) UnmarshalJSON(b []byte) error {
	var raw struct {
		Sign       string          `json:"sign"`
		Degrees    json.RawMessage `json:"degrees"`
		Position   json.RawMessage `json:"position"`
		Longitude  json.RawMessage `json:"longitude"`
		AbsPos     json.RawMessage `json:"abs_pos"`
		House      json.RawMessage `json:"house"`
		Retrograde json.RawMessage `json:"retrograde"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Point{Sign: strings.TrimSpace(raw.Sign)}
	p.Degrees = firstFloat(raw.Degrees, raw.Position)
	p.Longitude = firstFloat(raw.Longitude, raw.AbsPos)
	if n, ok := intFrom(raw.House); ok {
		p.House = n
	}
	p.Retrograde = boolFrom(raw.Retrograde)
	return nil
}

// Points maps English canonical point names to placements.
type Points map[string]Point

// UnmarshalJSON skips entries that are not objects.
func (ps *Points) UnmarshalJSON(b []byte) error {
	var raws map[string]json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		*ps = nil
		return nil //nolint:nilerr // a malformed points field is treated as absent
	}
	out := make(Points, len(raws))
	for name, raw := range raws {
		var p Point
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		out[strings.TrimSpace(name)] = p
	}
	*ps = out
	return nil
}

// House is a house cusp.
type House struct {
	Longitude *float64 `json:"longitude,omitempty"`
	Sign      string   `json:"sign,omitempty"`
}

// UnmarshalJSON accepts a bare number or an object with longitude/degree.
func (h *House) UnmarshalJSON(b []byte) error {
	*h = House{}
	if f, ok := floatFrom(b); ok {
		h.Longitude = &f
		return nil
	}
	var raw struct {
		Sign      string          `json:"sign"`
		Longitude json.RawMessage `json:"longitude"`
		Degree    json.RawMessage `json:"degree"`
		Position  json.RawMessage `json:"position"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	h.Sign = strings.TrimSpace(raw.Sign)
	h.Longitude = firstFloat(raw.Longitude, raw.Degree, raw.Position)
	return nil
}

// Houses maps house numbers 1-12 to cusps.
type Houses map[int]House

// UnmarshalJSON skips keys outside 1-12 and malformed values.
func (hs *Houses) UnmarshalJSON(b []byte) error {
	var raws map[string]json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		*hs = nil
		return nil //nolint:nilerr // a malformed houses field is treated as absent
	}
	out := make(Houses, len(raws))
	for key, raw := range raws {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || n < 1 || n > 12 {
			continue
		}
		var h House
		if err := json.Unmarshal(raw, &h); err != nil {
			continue
		}
		out[n] = h
	}
	*hs = out
	return nil
}

// Aspect is an angular relationship between two points.
type Aspect struct {
	Point1 string   `json:"point1"`
	Point2 string   `json:"point2"`
	Aspect string   `json:"aspect"`
	Orb    *float64 `json:"orb,omitempty"`
}

// UnmarshalJSON accepts p1_name/p2_name/type/orbit aliases.
func (a *Aspect) UnmarshalJSON(b []byte) error {
	var raw struct {
		Point1 string          `json:"point1"`
		P1Name string          `json:"p1_name"`
		Point2 string          `json:"point2"`
		P2Name string          `json:"p2_name"`
		Aspect string          `json:"aspect"`
		Type   string          `json:"type"`
		Orb    json.RawMessage `json:"orb"`
		Orbit  json.RawMessage `json:"orbit"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = Aspect{
		Point1: firstString(raw.Point1, raw.P1Name),
		Point2: firstString(raw.Point2, raw.P2Name),
		Aspect: firstString(raw.Aspect, raw.Type),
		Orb:    firstFloat(raw.Orb, raw.Orbit),
	}
	return nil
}

// CrossCusp places a draconic house cusp inside a tropical house.
type CrossCusp struct {
	DraconicHouse int    `json:"casa_draconica"`
	TropicalHouse int    `json:"casa_tropical_ubicacion"`
	Description   string `json:"descripcion,omitempty"`
}

// UnmarshalJSON accepts numeric strings for the house numbers.
func (c *CrossCusp) UnmarshalJSON(b []byte) error {
	var raw struct {
		Draconic    json.RawMessage `json:"casa_draconica"`
		Tropical    json.RawMessage `json:"casa_tropical_ubicacion"`
		TropicalAlt json.RawMessage `json:"casa_tropical"`
		Description string          `json:"descripcion"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = CrossCusp{Description: raw.Description}
	c.DraconicHouse, _ = intFrom(raw.Draconic)
	if n, ok := intFrom(raw.Tropical); ok {
		c.TropicalHouse = n
	} else {
		c.TropicalHouse, _ = intFrom(raw.TropicalAlt)
	}
	return nil
}

// CrossAspect is a contact between a draconic point and a tropical point.
type CrossAspect struct {
	DraconicPoint string   `json:"punto_draconico"`
	TropicalPoint string   `json:"punto_tropical"`
	Aspect        string   `json:"tipo_aspecto"`
	Orb           *float64 `json:"orbe,omitempty"`
}

// UnmarshalJSON also accepts the compact {p1, p2, aspect} contact shape.
func (c *CrossAspect) UnmarshalJSON(b []byte) error {
	var raw struct {
		DraconicPoint string          `json:"punto_draconico"`
		P1            string          `json:"p1"`
		TropicalPoint string          `json:"punto_tropical"`
		P2            string          `json:"p2"`
		Aspect        string          `json:"tipo_aspecto"`
		AspectAlt     string          `json:"aspect"`
		Orb           json.RawMessage `json:"orbe"`
		OrbAlt        json.RawMessage `json:"orb"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*c = CrossAspect{
		DraconicPoint: firstString(raw.DraconicPoint, raw.P1),
		TropicalPoint: firstString(raw.TropicalPoint, raw.P2),
		Aspect:        firstString(raw.Aspect, raw.AspectAlt),
		Orb:           firstFloat(raw.Orb, raw.OrbAlt),
	}
	return nil
}

// Overlaps maps a draconic house number to the tropical house holding its cusp.
type Overlaps map[int]int

// UnmarshalJSON skips entries that are not house numbers.
func (o *Overlaps) UnmarshalJSON(b []byte) error {
	var raws map[string]json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		*o = nil
		return nil //nolint:nilerr // a malformed overlap table is treated as absent
	}
	out := make(Overlaps, len(raws))
	for key, raw := range raws {
		d, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		if t, ok := intFrom(raw); ok {
			out[d] = t
		}
	}
	*o = out
	return nil
}

// List decodes a JSON array, dropping elements that fail to decode.
type List[T any] []T

// UnmarshalJSON implements json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		*l = nil
		return nil //nolint:nilerr // a non-array field is treated as absent
	}
	out := make(List[T], 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

func floatFrom(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func firstFloat(raws ...json.RawMessage) *float64 {
	for _, raw := range raws {
		if f, ok := floatFrom(raw); ok {
			return &f
		}
	}
	return nil
}

func intFrom(raw json.RawMessage) (int, bool) {
	f, ok := floatFrom(raw)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func boolFrom(raw json.RawMessage) bool {
	var v bool
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "r", "yes", "1":
			return true
		}
	}
	return false
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
