package model

// Kind tags an interpretable event. The values double as the wire "tipo".
type Kind string

// Event kinds.
const (
	KindPlanetInSign  Kind = "PlanetaEnSigno"
	KindAngleInSign   Kind = "AnguloEnSigno"
	KindPlanetInHouse Kind = "PlanetaEnCasa"
	KindCrossCusp     Kind = "CuspideCruzada"
	KindHouseInSign   Kind = "CasaEnSigno"
	KindAspect        Kind = "Aspecto"
	KindCrossAspect   Kind = "AspectoCruzado"
	KindRetrograde    Kind = "PlanetaRetrogrado"
	KindComplexAspect Kind = "AspectoComplejo"
)

// Priority orders report sections: sign placements, house placements,
// cusps in signs, aspects, retrogrades, then complex patterns.
func (k Kind) Priority() int {
	switch k {
	case KindPlanetInSign, KindAngleInSign:
		return 0
	case KindPlanetInHouse, KindCrossCusp:
		return 1
	case KindHouseInSign:
		return 2
	case KindAspect, KindCrossAspect:
		return 3
	case KindRetrograde:
		return 4
	default:
		return 5
	}
}

// Event is an atomic interpretable fact extracted from a chart.
// Point names keep the payload's English canonical form; translation
// happens at key generation time.
type Event struct {
	Kind Kind

	// Point is the planet or angle; for aspects the first point and for
	// cross aspects the draconic point.
	Point string
	// Other is the second aspect point or the tropical point of a cross aspect.
	Other string

	Sign    string
	House   int
	Aspect  string
	Degrees *float64
	Orb     *float64

	// Transit marks an aspect from a transiting point to a natal point.
	Transit bool

	DraconicHouse int
	TropicalHouse int
	Description   string

	// Complex aspects carry their own literal title and knowledge base keys.
	Rule  string
	Title string
	Keys  []string
}
