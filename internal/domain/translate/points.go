package translate

import (
	"strings"
)

// Angles of the chart. They use their own key templates.
var angles = map[string]bool{"Asc": true, "MC": true, "Ic": true, "Dsc": true}

// IsAngle reports whether name is the Ascendant, Midheaven, IC or Descendant.
func IsAngle(name string) bool {
	return angles[Canonical(name)]
}

// IsAscendant reports whether name is the Ascendant.
func IsAscendant(name string) bool {
	return Canonical(name) == "Asc"
}

// IsNorthNode reports whether name is any north node spelling.
func IsNorthNode(name string) bool {
	c := Canonical(name)
	return c == "North Node" || c == "True North Node" || strings.Contains(strings.ToLower(name), "north node")
}

// IsMoon reports whether name is the Moon in either language.
func IsMoon(name string) bool {
	return Canonical(name) == "Moon"
}

// IsSun reports whether name is the Sun in either language.
func IsSun(name string) bool {
	return Canonical(name) == "Sun"
}

// DraconicSuffix returns the grammatical-gender suffix for name in a
// draconic chart: feminine for the Moon, masculine for everything else.
func DraconicSuffix(name string, accented bool) string {
	switch {
	case IsMoon(name) && accented:
		return "dracónica"
	case IsMoon(name):
		return "draconica"
	case accented:
		return "dracónico"
	default:
		return "draconico"
	}
}

// DraconicSuffixTitle is DraconicSuffix capitalized for report titles.
func DraconicSuffixTitle(name string) string {
	if IsMoon(name) {
		return "Dracónica"
	}
	return "Dracónico"
}

var pointOrder = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus",
	"Neptune", "Pluto", "True North Node", "North Node", "South Node", "Chiron",
	"Lilith", "Part of Fortune", "Vertex", "Asc", "MC", "Dsc", "Ic",
}

var pointRank = func() map[string]int {
	m := make(map[string]int, len(pointOrder))
	for i, p := range pointOrder {
		m[p] = i
	}
	return m
}()

// Less orders point names planets first, then nodes and minor points, then
// angles; unknown names sort last alphabetically.
func Less(a, b string) bool {
	ra, okA := pointRank[Canonical(a)]
	rb, okB := pointRank[Canonical(b)]
	switch {
	case okA && okB:
		if ra != rb {
			return ra < rb
		}
		return a < b
	case okA:
		return true
	case okB:
		return false
	default:
		return a < b
	}
}
