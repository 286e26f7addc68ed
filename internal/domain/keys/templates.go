package keys

import (
	"github.com/okian/carta/internal/domain/model"
)

// template is one candidate key. Each part is rendered and normalized on its
// own, then the parts are joined with the base separator.
type template []string

// slot selects a template list. Most slots are event kinds; a few kinds
// split into variants because the source headers nest differently.
type slot string

const (
	slotSunInSign       slot = "PlanetaEnSigno/Sol"
	slotMoonInSign      slot = "PlanetaEnSigno/Luna"
	slotAscendantInSign slot = "AnguloEnSigno/Ascendente"
	slotAscendantCusp   slot = "CuspideCruzada/Ascendente"
)

const crossCuspPrefix = "superposicion de casas draconicas con casas tropicas"

// Candidate keys per base, tried in order.
var (
	natalKeys = map[slot][]template{
		slot(model.KindPlanetInSign):  {{"{planet} en {sign}"}},
		slot(model.KindAngleInSign):   {{"{planet} (ángulo) en {sign}"}},
		slotAscendantInSign:           {{"{planet} (ángulo) en {sign}"}},
		slotSunInSign:                 {{"{planet} en {sign}"}},
		slotMoonInSign:                {{"{planet} en {sign}"}},
		slot(model.KindPlanetInHouse): {{"{planet} en casa {house}"}},
		slot(model.KindHouseInSign):   {{"casa {house} en {sign}"}},
		slot(model.KindRetrograde):    {{"{planet} retrógrado"}},
		slot(model.KindAspect):        {{"{p1} {aspect} a {p2}"}},
	}

	transitKeys = map[slot][]template{
		slot(model.KindAspect): {
			{"{p1} en tránsito {aspect} {prep} {p2} natal"},
			{"{p1} en tránsito {aspect} {altprep} {p2} natal"},
		},
	}

	draconicKeys = map[slot][]template{
		slotSunInSign: {
			{"el sol draconico en los signos que es el sol draconico sol draconico en {sign}"},
			{"{planet} {suffix} en {sign}"},
		},
		slotMoonInSign: {
			{"la luna draconica en los signos que es la luna draconica luna draconica en {sign}"},
			{"la luna draconica en los signos luna draconica en {sign}"},
			{"{planet} {suffix} en {sign}"},
		},
		slot(model.KindPlanetInSign): {{"{planet} {suffix} en {sign}"}},
		slotAscendantInSign: {
			{"el ascendente draconico en los signos que es el ascendente draconico ascendente draconico en {sign}"},
			{"{planet} dracónico en {sign}"},
		},
		slot(model.KindAngleInSign):   {{"{planet} dracónico en {sign}"}},
		slot(model.KindPlanetInHouse): {{"{planet} {suffix} en casa {house}"}},
		slot(model.KindHouseInSign): {
			{"casa {house} dracónica en {sign}"},
			{"casa {house} en {sign}"},
		},
		slot(model.KindRetrograde): {{"{planet} {suffix} retrógrado"}},
		slot(model.KindAspect): {
			{"{p1} {suffix} {aspect} a {p2} {suffix2}"},
			{"{p1} {aspect} a {p2}"},
		},
		slot(model.KindCrossCusp): {{
			crossCuspPrefix,
			"significado de la casa {dhouse} draconica",
			"la cuspide de la casa {dhouse} draconica en relacion con la carta tropica",
			"la cuspide de la casa {dhouse} draconica superpuesta a la casa {thouse} tropica",
		}},
		slotAscendantCusp: {{
			crossCuspPrefix,
			"significado de la casa 1 draconica",
			"la cuspide del ascendente draconico en relacion con la carta tropica",
			"la cuspide del ascendente draconico superpuesto a la casa {thouse} tropica",
		}},
		slot(model.KindCrossAspect): {{
			"contactos entre planetas draconicos y tropicos",
			"{aspect} de {p1} {suffix} con {p2} tropico",
		}},
	}
)

// Licensing queries per chart type. Queries address the target title
// lists, which are space-joined.
var (
	tropicalQueries = map[slot]string{
		slot(model.KindPlanetInSign):  "{planet} en {sign}",
		slotSunInSign:                 "{planet} en {sign}",
		slotMoonInSign:                "{planet} en {sign}",
		slot(model.KindAngleInSign):   "{planet} (ángulo) en {sign}",
		slotAscendantInSign:           "{planet} (ángulo) en {sign}",
		slot(model.KindPlanetInHouse): "{planet} en casa {house}",
		slot(model.KindHouseInSign):   "casa {house} en {sign}",
		slot(model.KindRetrograde):    "{planet} retrógrado",
		slot(model.KindAspect):        "{p1} {aspect} a {p2}",
	}

	transitQueries = map[slot]string{
		slot(model.KindAspect): "{p1} en tránsito {aspect} a {p2q} natal",
	}

	draconicQueries = map[slot]string{
		slot(model.KindPlanetInSign):  "{planet} {suffix} en {sign}",
		slotSunInSign:                 "{planet} {suffix} en {sign}",
		slotMoonInSign:                "{planet} {suffix} en {sign}",
		slot(model.KindAngleInSign):   "{planet} dracónico en {sign}",
		slotAscendantInSign:           "{planet} dracónico en {sign}",
		slot(model.KindPlanetInHouse): "{planet} {suffix} en casa {house}",
		slot(model.KindHouseInSign):   "casa {house} en {sign}",
		slot(model.KindRetrograde):    "{planet} {suffix} retrógrado",
		slot(model.KindAspect):        "{p1} {aspect} a {p2}",
		slot(model.KindCrossCusp):     "la cuspide de la casa {dhouse} draconica superpuesta a la casa {thouse} tropica",
		slotAscendantCusp:             "la cuspide del ascendente draconico superpuesto a la casa {thouse} tropica",
		slot(model.KindCrossAspect):   "{aspect} de {p1} {suffix} con {p2} tropico",
	}
)
