package match_test

import (
	"testing"

	"github.com/okian/carta/internal/domain/match"
	. "github.com/smartystreets/goconvey/convey"
)

func TestExact(t *testing.T) {
	Convey("Given a title set", t, func() {
		set := match.NewTitleSet([]string{"Sol en Géminis", "  ", "mercurio retrógrado"})
		So(set.Len(), ShouldEqual, 2)

		Convey("Then exact matches ignore accents and spacing on both sides", func() {
			So(set.IsLicensed("sol en geminis"), ShouldBeTrue)
			So(set.IsLicensed("Sol  en  Géminis"), ShouldBeTrue)
			So(set.IsLicensed("mercurio retrogrado"), ShouldBeTrue)
			So(set.Explain("sol en géminis"), ShouldEqual, match.Exact)
		})

		Convey("Then unknown and empty queries are unlicensed", func() {
			So(set.IsLicensed("sol en aries"), ShouldBeFalse)
			So(set.IsLicensed(""), ShouldBeFalse)
			So(set.Explain("luna en leo"), ShouldEqual, match.None)
		})
	})

	Convey("Given no title set", t, func() {
		var set *match.TitleSet
		So(set.IsLicensed("sol en aries"), ShouldBeFalse)
		So(set.Len(), ShouldEqual, 0)
	})
}

func TestGroupingLaw(t *testing.T) {
	Convey("Given a title grouping two aspects", t, func() {
		set := match.NewTitleSet([]string{"sol conjunción o cuadratura a marte"})

		So(set.IsLicensed("sol conjunción a marte"), ShouldBeTrue)
		So(set.IsLicensed("sol cuadratura a marte"), ShouldBeTrue)
		So(set.IsLicensed("sol trígono a marte"), ShouldBeFalse)
		So(set.Explain("sol cuadratura a marte"), ShouldEqual, match.AspectPattern)

		Convey("Then the point pair must match exactly", func() {
			So(set.IsLicensed("luna conjunción a marte"), ShouldBeFalse)
			So(set.IsLicensed("sol conjunción a venus"), ShouldBeFalse)
		})
	})

	Convey("Given a title joined with u", t, func() {
		set := match.NewTitleSet([]string{"luna trígono u oposición a saturno"})
		So(set.IsLicensed("luna oposición a saturno"), ShouldBeTrue)
		So(set.IsLicensed("luna trigono a saturno"), ShouldBeTrue)
	})
}

func TestTransitPattern(t *testing.T) {
	Convey("Given transit titles", t, func() {
		set := match.NewTitleSet([]string{
			"Urano en tránsito por conjunción, cuadratura u oposición al Sol natal",
			"saturno en tránsito conjunción o cuadratura a la luna natal",
			"júpiter en tránsito oposición al ascendente natal",
		})

		Convey("Then a single aspect licenses against the grouped list", func() {
			So(set.IsLicensed("saturno en tránsito cuadratura a luna natal"), ShouldBeTrue)
			So(set.Explain("saturno en tránsito conjunción a luna natal"), ShouldEqual, match.TransitPattern)
			So(set.IsLicensed("saturno en tránsito trígono a luna natal"), ShouldBeFalse)
		})

		Convey("Then por and al are tolerated", func() {
			So(set.IsLicensed("urano en tránsito oposición a sol natal"), ShouldBeTrue)
			So(set.IsLicensed("júpiter en tránsito oposición a ascendente natal"), ShouldBeTrue)
		})

		Convey("Then the planets must agree", func() {
			So(set.IsLicensed("urano en tránsito oposición a luna natal"), ShouldBeFalse)
			So(set.IsLicensed("neptuno en tránsito oposición a sol natal"), ShouldBeFalse)
		})
	})
}
