// Package translate maps English chart vocabulary to the Spanish terms used
// by the knowledge bases. Every lookup falls back to its input.
package translate

import (
	"strings"
)

type term struct {
	display string // capitalized form used in report titles
	query   string // lower-case form used in keys and queries
}

var planets = map[string]term{
	"sun":             {"Sol", "sol"},
	"moon":            {"Luna", "luna"},
	"mercury":         {"Mercurio", "mercurio"},
	"venus":           {"Venus", "venus"},
	"mars":            {"Marte", "marte"},
	"jupiter":         {"Júpiter", "júpiter"},
	"saturn":          {"Saturno", "saturno"},
	"uranus":          {"Urano", "urano"},
	"neptune":         {"Neptuno", "neptuno"},
	"pluto":           {"Plutón", "plutón"},
	"north node":      {"Nodo Norte", "nodo"},
	"true north node": {"Nodo Norte Verdadero", "nodo"},
	"mean node":       {"Nodo Norte", "nodo"},
	"true node":       {"Nodo Norte", "nodo"},
	"northnode":       {"Nodo Norte", "nodo"},
	"south node":      {"Nodo Sur", "nodo sur"},
	"true south node": {"Nodo Sur", "nodo sur"},
	"chiron":          {"Quirón", "quirón"},
	"lilith":          {"Lilith", "lilith"},
	"mean lilith":     {"Lilith", "lilith"},
	"part of fortune": {"Parte de la Fortuna", "parte de la fortuna"},
	"vertex":          {"Vertex", "vertex"},
	"asc":             {"Ascendente", "ascendente"},
	"ascendant":       {"Ascendente", "ascendente"},
	"mc":              {"Medio Cielo", "medio cielo"},
	"midheaven":       {"Medio Cielo", "medio cielo"},
	"ic":              {"Fondo del Cielo", "fondo del cielo"},
	"dsc":             {"Descendente", "descendente"},
	"descendant":      {"Descendente", "descendente"},
}

var signs = map[string]term{
	"aries":       {"Aries", "aries"},
	"taurus":      {"Tauro", "tauro"},
	"gemini":      {"Géminis", "géminis"},
	"cancer":      {"Cáncer", "cáncer"},
	"leo":         {"Leo", "leo"},
	"virgo":       {"Virgo", "virgo"},
	"libra":       {"Libra", "libra"},
	"scorpio":     {"Escorpio", "escorpio"},
	"sagittarius": {"Sagitario", "sagitario"},
	"capricorn":   {"Capricornio", "capricornio"},
	"aquarius":    {"Acuario", "acuario"},
	"pisces":      {"Piscis", "piscis"},
}

// signAbbrev covers the three and two letter codes chart calculators emit.
var signAbbrev = map[string]string{
	"ari": "aries", "ar": "aries",
	"tau": "taurus", "ta": "taurus",
	"gem": "gemini", "ge": "gemini",
	"can": "cancer", "cn": "cancer",
	"leo": "leo", "le": "leo",
	"vir": "virgo", "vi": "virgo",
	"lib": "libra", "li": "libra",
	"sco": "scorpio", "sc": "scorpio",
	"sag": "sagittarius", "sa": "sagittarius",
	"cap": "capricorn", "cp": "capricorn",
	"aqu": "aquarius", "aq": "aquarius",
	"pis": "pisces", "pi": "pisces",
}

var aspects = map[string]string{
	"conjunction": "conjunción",
	"opposition":  "oposición",
	"square":      "cuadratura",
	"trine":       "trígono",
	"sextile":     "sextil",
	"conjuncion":  "conjunción",
	"oposicion":   "oposición",
	"trigono":     "trígono",
	"conjunción":  "conjunción",
	"oposición":   "oposición",
	"trígono":     "trígono",
	"cuadratura":  "cuadratura",
	"sextil":      "sextil",
}

// aspectEnglish reverses aspects for the canonical English key.
var aspectEnglish = map[string]string{
	"conjunción": "conjunction",
	"oposición":  "opposition",
	"cuadratura": "square",
	"trígono":    "trine",
	"sextil":     "sextile",
}

// spanishToEnglish lets already translated point names resolve too.
var spanishToEnglish = func() map[string]string {
	out := make(map[string]string, len(planets)+len(signs))
	for en, t := range planets {
		if _, taken := out[strings.ToLower(t.display)]; !taken {
			out[strings.ToLower(t.display)] = en
		}
	}
	for en, t := range signs {
		out[t.query] = en
	}
	return out
}()

func lookupPlanet(name string) (term, bool) {
	k := strings.ToLower(strings.TrimSpace(name))
	if t, ok := planets[k]; ok {
		return t, true
	}
	if en, ok := spanishToEnglish[k]; ok {
		t, ok := planets[en]
		return t, ok
	}
	return term{}, false
}

func lookupSign(name string) (term, bool) {
	k := strings.ToLower(strings.TrimSpace(name))
	if full, ok := signAbbrev[k]; ok {
		k = full
	}
	if t, ok := signs[k]; ok {
		return t, true
	}
	if en, ok := spanishToEnglish[k]; ok {
		t, ok := signs[en]
		return t, ok
	}
	return term{}, false
}

// Planet returns the capitalized Spanish name of a planet, node or angle.
func Planet(name string) string {
	if t, ok := lookupPlanet(name); ok {
		return t.display
	}
	return strings.TrimSpace(name)
}

// PlanetQuery returns the lower-case word the knowledge base uses for name.
// All north node spellings reduce to "nodo".
func PlanetQuery(name string) string {
	if t, ok := lookupPlanet(name); ok {
		return t.query
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Sign returns the capitalized Spanish sign name.
func Sign(name string) string {
	if t, ok := lookupSign(name); ok {
		return t.display
	}
	return strings.TrimSpace(name)
}

// SignQuery returns the lower-case Spanish sign name.
func SignQuery(name string) string {
	if t, ok := lookupSign(name); ok {
		return t.query
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// Aspect returns the lower-case Spanish aspect name.
func Aspect(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if es, ok := aspects[k]; ok {
		return es
	}
	return k
}

// AspectCanonical returns the English aspect name for any accepted spelling.
func AspectCanonical(name string) string {
	es := Aspect(name)
	if en, ok := aspectEnglish[es]; ok {
		return en
	}
	return es
}

// Canonical returns the English table name for a point given in either
// language, e.g. "Júpiter" and "jupiter" both yield "Jupiter".
func Canonical(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	if _, ok := planets[k]; !ok {
		en, found := spanishToEnglish[k]
		if !found {
			return strings.TrimSpace(name)
		}
		k = en
	}
	if c, ok := canonicalNames[k]; ok {
		return c
	}
	return strings.TrimSpace(name)
}

var canonicalNames = map[string]string{
	"sun": "Sun", "moon": "Moon", "mercury": "Mercury", "venus": "Venus",
	"mars": "Mars", "jupiter": "Jupiter", "saturn": "Saturn", "uranus": "Uranus",
	"neptune": "Neptune", "pluto": "Pluto", "chiron": "Chiron", "lilith": "Lilith",
	"north node": "North Node", "true north node": "True North Node", "mean node": "North Node",
	"true node": "North Node", "northnode": "North Node", "south node": "South Node",
	"true south node": "South Node", "mean lilith": "Lilith",
	"part of fortune": "Part of Fortune", "vertex": "Vertex",
	"asc": "Asc", "ascendant": "Asc", "mc": "MC", "midheaven": "MC",
	"ic": "Ic", "dsc": "Dsc", "descendant": "Dsc",
}
