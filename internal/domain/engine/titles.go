package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/translate"
	"github.com/okian/carta/internal/domain/types"
)

// FormatDegrees renders degrees within a sign as "15° 05'". Minutes are
// rounded and 60 carries into the degree, except at the end of a sign
// where the value stays at 29° 59'.
func FormatDegrees(v float64) string {
	deg := int(math.Floor(v))
	mins := int(math.Round((v - float64(deg)) * 60))
	if mins == 60 {
		if deg%30 == 29 {
			mins = 59
		} else {
			deg++
			mins = 0
		}
	}
	return fmt.Sprintf("%d° %02d'", deg, mins)
}

// FormatOrb renders an orb with one decimal.
func FormatOrb(v float64) string {
	return fmt.Sprintf("%.1f°", v)
}

// Record builds the output record for ev.
func Record(ev model.Event, ct model.ChartType, text, key string) types.Interpretation {
	it := types.Interpretation{
		Title: Title(ev, ct),
		Kind:  string(ev.Kind),
		Text:  text,
		Key:   key,
	}
	if ev.Degrees != nil {
		it.Degrees = FormatDegrees(*ev.Degrees)
	}
	if ev.Orb != nil {
		it.Orb = FormatOrb(*ev.Orb)
	}

	switch ev.Kind {
	case model.KindPlanetInSign, model.KindRetrograde:
		it.Planet = translate.Planet(ev.Point)
		it.Sign = translate.Sign(ev.Sign)
	case model.KindAngleInSign:
		it.Angle = translate.Planet(ev.Point)
		it.Sign = translate.Sign(ev.Sign)
	case model.KindPlanetInHouse:
		it.Planet = translate.Planet(ev.Point)
		it.House = strconv.Itoa(ev.House)
	case model.KindHouseInSign:
		it.House = strconv.Itoa(ev.House)
		it.Sign = translate.Sign(ev.Sign)
	case model.KindAspect:
		it.Planet1 = translate.Planet(ev.Point)
		it.Planet2 = translate.Planet(ev.Other)
		it.Aspect = translate.Aspect(ev.Aspect)
	case model.KindCrossAspect:
		it.PlanetDraconic = translate.Planet(ev.Point)
		it.PlanetTropical = translate.Planet(ev.Other)
		it.Aspect = translate.Aspect(ev.Aspect)
	case model.KindCrossCusp:
		it.DraconicHouse = ev.DraconicHouse
		it.TropicalHouse = ev.TropicalHouse
	case model.KindComplexAspect:
		it.Rule = ev.Rule
	}
	return it
}

// Title returns the human-readable report title for ev.
func Title(ev model.Event, ct model.ChartType) string {
	draconic := ct == model.Draconic
	name := translate.Planet(ev.Point)
	if draconic && ev.Kind != model.KindCrossAspect {
		name += " " + translate.DraconicSuffixTitle(ev.Point)
	}
	sign := translate.Sign(ev.Sign)

	switch ev.Kind {
	case model.KindPlanetInSign, model.KindAngleInSign:
		if ev.Degrees != nil {
			return fmt.Sprintf("Tu %s se encuentra a %s de %s", name, FormatDegrees(*ev.Degrees), sign)
		}
		return fmt.Sprintf("Tu %s en %s", name, sign)

	case model.KindPlanetInHouse:
		return fmt.Sprintf("Tu %s en Casa %d", name, ev.House)

	case model.KindRetrograde:
		if ev.Degrees != nil {
			return fmt.Sprintf("Tu %s está Retrógrado a %s de %s", name, FormatDegrees(*ev.Degrees), sign)
		}
		return fmt.Sprintf("Tu %s está Retrógrado", name)

	case model.KindHouseInSign:
		house := fmt.Sprintf("Casa %d", ev.House)
		if draconic {
			house += " Dracónica"
		}
		return fmt.Sprintf("La Cúspide de tu %s está en %s", house, sign)

	case model.KindAspect:
		aspect := translate.Aspect(ev.Aspect)
		other := translate.Planet(ev.Other)
		if ev.Transit {
			return fmt.Sprintf("Aspecto: %s en tránsito en %s con tu %s natal", translate.Planet(ev.Point), aspect, other)
		}
		if draconic {
			other += " " + translate.DraconicSuffixTitle(ev.Other)
		}
		return fmt.Sprintf("Aspecto: Tu %s en %s con tu %s", name, aspect, other)

	case model.KindCrossCusp:
		if ev.DraconicHouse == 1 {
			return fmt.Sprintf("Tu Ascendente Dracónico superpuesto a tu Casa %d Tropical", ev.TropicalHouse)
		}
		return fmt.Sprintf("Tu Casa %d Dracónica superpuesta a tu Casa %d Tropical", ev.DraconicHouse, ev.TropicalHouse)

	case model.KindCrossAspect:
		return fmt.Sprintf("Tu %s %s en %s con tu %s Tropical",
			name, translate.DraconicSuffixTitle(ev.Point), translate.Aspect(ev.Aspect), translate.Planet(ev.Other))

	case model.KindComplexAspect:
		return ev.Title
	}
	return string(ev.Kind)
}
