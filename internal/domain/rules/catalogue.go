package rules

import (
	"strings"

	"github.com/okian/carta/internal/domain/translate"
)

// Catalogue is the built-in list of compound patterns. Only patterns the
// content authors wrote are listed here.
var Catalogue = catalogue()

func catalogue() []Rule {
	groups := [][]Rule{
		jupiterRules("Sun", "Sol"),
		jupiterRules("Moon", "Luna"),
		moonUranusRules(),
		taurusAscendantRules(),
		ascendantRules(),
		mercuryUranusRules(),
		{venusHouseFourRule},
		saturnUranusRules(),
		plutoRules(),
		{venusNeptuneRule},
	}
	var out []Rule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// jupiterRules covers a luminary in hard aspect to Jupiter combined with a
// prominent Saturn or Pluto.
func jupiterRules(point, es string) []Rule {
	id := "jupiter-" + strings.ToLower(point)
	generic := "Aspecto " + es + " en conjunción, cuadratura u oposición a Júpiter y "
	primary := AspectBetween(point, "Jupiter", "aspect", hardAspects...)
	return []Rule{
		{
			ID:        id + "-angular",
			Primary:   primary,
			Secondary: []Predicate{InAngularHouse("planet", "house", "Saturn", "Pluto")},
			Title:     "Aspecto " + es + " en {aspect} a Júpiter y {planet} están en casa {house}",
			Key:       strings.ToLower(es) + " en conjunción o cuadratura u oposición a júpiter y saturno o plutón están en casa 1 o 4 o 7 o 10",
		},
		{
			ID:        id + "-conjunct-personal",
			Primary:   primary,
			Secondary: []Predicate{AspectTo("planet", "personal", conjunction, []string{"Saturn", "Pluto"}, personals)},
			Title:     "Aspecto " + es + " en {aspect} a Júpiter y {planet} están en conjunción al {personal}",
			Key:       generic + "Saturno o Plutón están en conjunción al Sol, la Luna, Mercurio, Venus o Marte",
		},
		{
			ID:        id + "-square-personal",
			Primary:   primary,
			Secondary: []Predicate{AspectTo("planet", "personal", square, []string{"Saturn", "Pluto"}, personals)},
			Title:     "Aspecto " + es + " en {aspect} a Júpiter y {planet} están en cuadratura al {personal}",
			Key:       generic + "Saturno o Plutón están en cuadratura al Sol, la Luna, Mercurio, Venus o Marte",
		},
		{
			ID:        id + "-saturn-pluto",
			Primary:   primary,
			Secondary: []Predicate{AspectBetween("Saturn", "Pluto", "aspect2", hardAspects...)},
			Title:     "Aspecto " + es + " {aspect} a Júpiter y hay {aspect2} entre Saturno y Plutón",
			Key:       generic + "hay conjunción, cuadratura u oposición entre Saturno y Plutón",
		},
	}
}

func moonUranusRules() []Rule {
	primary := AspectBetween("Moon", "Uranus", "aspect", hardAspects...)
	generic := "Aspecto Luna en conjunción, cuadratura u oposición a Urano y Saturno está en "
	return []Rule{
		{
			ID:        "uranus-moon-saturn-angular",
			Primary:   primary,
			Secondary: []Predicate{InAngularHouse("", "house", "Saturn")},
			Title:     "Aspecto Luna {aspect} a Urano y Saturno en casa {house}",
			Key:       generic + "casa 1, 4, 7 o 10",
		},
		{
			ID:        "uranus-moon-saturn-conjunct-personal",
			Primary:   primary,
			Secondary: []Predicate{AspectTo("", "personal", conjunction, []string{"Saturn"}, personals)},
			Title:     "Aspecto Luna {aspect} a Urano y Saturno conjunción {personal}",
			Key:       generic + "conjunción al Sol, la Luna, Mercurio, Venus o Marte",
		},
		{
			ID:        "uranus-moon-saturn-square-personal",
			Primary:   primary,
			Secondary: []Predicate{AspectTo("", "personal", square, []string{"Saturn"}, personals)},
			Title:     "Aspecto Luna {aspect} a Urano y Saturno cuadratura {personal}",
			Key:       generic + "cuadratura al Sol, la Luna, Mercurio, Venus o Marte",
		},
	}
}

func taurusAscendantRules() []Rule {
	primary := InSign("Asc", "Taurus")
	return []Rule{
		{
			ID:        "taurus-ascendant-mars-angular",
			Primary:   primary,
			Secondary: []Predicate{InAngularHouse("", "house", "Mars")},
			Title:     "Ascendente en Tauro y Marte en casa {house}",
			Key:       "ascendente (ángulo) en tauro y marte está en casa 1 o 4 o 7 o 10",
		},
		{
			ID:        "taurus-ascendant-mars-conjunct-luminary",
			Primary:   primary,
			Secondary: []Predicate{AspectTo("", "target", conjunction, []string{"Mars"}, []string{"Sun", "Moon"})},
			Title:     "Ascendente en Tauro y Marte conjunción {target}",
			Key:       "ascendente (ángulo) en tauro y marte está en conjunción al sol o la luna",
		},
	}
}

// ascendantRules flags planets rising in the first house.
func ascendantRules() []Rule {
	var out []Rule
	for _, p := range []string{"Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"} {
		es := translate.Planet(p)
		out = append(out, Rule{
			ID:      "ascendant-" + strings.ToLower(p),
			Primary: InHouse(p, 1),
			Title:   es + " en el ascendente",
			Key:     strings.ToLower(es) + " en el ascendente",
		})
	}
	return out
}

func mercuryUranusRules() []Rule {
	primary := AspectBetween("Mercury", "Uranus", "aspect", hardAspects...)
	return []Rule{
		{
			ID:        "uranus-mercury-angular",
			Primary:   primary,
			Secondary: []Predicate{InAngularHouse("", "house", "Uranus")},
			Title:     "Aspecto Mercurio {aspect} a Urano y Urano en casa {house}",
		},
		{
			ID:        "uranus-mercury-conjunct-luminary",
			Primary:   primary,
			Secondary: []Predicate{AspectTo("", "target", conjunction, []string{"Uranus"}, []string{"Sun", "Moon"})},
			Title:     "Aspecto Mercurio {aspect} a Urano y Urano conjunción {target}",
		},
	}
}

func saturnUranusRules() []Rule {
	saturnAngular := InAngularHouse("", "house", "Saturn")
	uranusAngular := InAngularHouse("", "house2", "Uranus")
	saturnConjunct := AspectTo("", "personal", conjunction, []string{"Saturn"}, personals)
	uranusConjunct := AspectTo("", "personal2", conjunction, []string{"Uranus"}, personals)
	between := AspectBetween("Saturn", "Uranus", "aspect", hardAspects...)
	return []Rule{
		{ID: "saturn-uranus-angular", Primary: saturnAngular, Secondary: []Predicate{uranusAngular},
			Title: "Saturno en casa {house} y Urano en casa {house2}"},
		{ID: "saturn-angular-uranus-conjunct", Primary: saturnAngular, Secondary: []Predicate{uranusConjunct},
			Title: "Saturno en casa {house} y Urano conjunción {personal2}"},
		{ID: "saturn-angular-uranus-aspect", Primary: saturnAngular, Secondary: []Predicate{between},
			Title: "Saturno en casa {house} y hay {aspect} entre Saturno y Urano"},
		{ID: "saturn-conjunct-uranus-angular", Primary: saturnConjunct, Secondary: []Predicate{uranusAngular},
			Title: "Saturno conjunción {personal} y Urano en casa {house2}"},
		{ID: "saturn-uranus-conjunct", Primary: saturnConjunct, Secondary: []Predicate{uranusConjunct},
			Title: "Saturno conjunción {personal} y Urano conjunción {personal2}"},
		{ID: "saturn-conjunct-uranus-aspect", Primary: saturnConjunct, Secondary: []Predicate{between},
			Title: "Saturno conjunción {personal} y hay {aspect} entre Saturno y Urano"},
	}
}

// plutoRules are mutually exclusive: the Pluto polarity title names
// whichever of its two conditions hold.
func plutoRules() []Rule {
	withSun := AspectBetween("Pluto", "Sun", "", hardAspects...)
	rising := InHouse("Pluto", 1)
	return []Rule{
		{ID: "pluto-polarity-both", Primary: withSun, Secondary: []Predicate{rising},
			Title: "Polaridad plutoniana: Plutón con el Sol y en casa 1"},
		{ID: "pluto-polarity-sun", Primary: withSun, Secondary: []Predicate{Not(rising)},
			Title: "Polaridad plutoniana: Plutón con el Sol"},
		{ID: "pluto-polarity-rising", Primary: rising, Secondary: []Predicate{Not(withSun)},
			Title: "Polaridad plutoniana: Plutón en casa 1"},
	}
}

var venusNeptuneRule = Rule{
	ID:        "venus-neptune",
	Primary:   AspectBetween("Venus", "Neptune", "aspect", hardAspects...),
	Secondary: []Predicate{Not(InSign("Venus", "Pisces"))},
	Title:     "Aspecto Venus {aspect} a Neptuno",
	Key:       "venus en conjunción o cuadratura u oposición a neptuno. no usar si venus está en el signo de piscis",
}

// venusHouseFourBlocked holds when Saturn or Pluto shares the fourth house
// or conjoins Venus.
var venusHouseFourBlocked = Any(
	InHouse("Saturn", 4),
	InHouse("Pluto", 4),
	AspectBetween("Venus", "Saturn", "", conjunction),
	AspectBetween("Venus", "Pluto", "", conjunction),
)

var venusHouseFourRule = Rule{
	ID:        "venus-house-4",
	Primary:   InHouse("Venus", 4),
	Secondary: []Predicate{Not(venusHouseFourBlocked)},
	Title:     "Venus en la casa 4",
}

// NegativeFilters lists the simple keys a competing condition supersedes.
var NegativeFilters = []Filter{
	{
		Key: "venus en casa 4",
		When: func(f *Facts, b Binding) bool {
			return InHouse("Venus", 4)(f, b) && venusHouseFourBlocked(f, b)
		},
	},
}
