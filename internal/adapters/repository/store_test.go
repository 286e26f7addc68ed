package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/carta/internal/adapters/repository"
	"github.com/okian/carta/internal/domain/keys"
	"github.com/okian/carta/internal/domain/match"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLookup(t *testing.T) {
	Convey("Given a store", t, func() {
		s := repository.NewStore(map[string]repository.Entry{
			"sol en aries":             {Text: "Energía pionera."},
			"marte conjunción plutón": {Text: "Voluntad intensa."},
			"júpiter en géminis":       {Text: "Curiosidad expansiva."},
			"luna en cancer":           {Text: "sin tilde"},
			"luna en cáncer":           {Text: "con tilde"},
		}, repository.WithName("natal"))

		Convey("Then exact keys hit", func() {
			e, ok := s.Lookup("sol en aries")
			So(ok, ShouldBeTrue)
			So(e.Text, ShouldEqual, "Energía pionera.")
			So(s.Len(), ShouldEqual, 5)
			So(s.Name(), ShouldEqual, "natal")
		})

		Convey("Then whitespace drift is absorbed", func() {
			_, ok := s.Lookup("sol  en   aries")
			So(ok, ShouldBeTrue)
		})

		Convey("Then the preposition a is optional", func() {
			e, ok := s.Lookup("marte conjunción a plutón")
			So(ok, ShouldBeTrue)
			So(e.Text, ShouldEqual, "Voluntad intensa.")
		})

		Convey("Then unambiguous accent drift resolves", func() {
			e, ok := s.Lookup("jupiter en geminis")
			So(ok, ShouldBeTrue)
			So(e.Text, ShouldEqual, "Curiosidad expansiva.")
		})

		Convey("Then distinct accented keys stay distinct", func() {
			e, _ := s.Lookup("luna en cáncer")
			So(e.Text, ShouldEqual, "con tilde")
			e, _ = s.Lookup("luna en cancer")
			So(e.Text, ShouldEqual, "sin tilde")
			_, ok := s.Lookup("LUNA EN CANCER")
			So(ok, ShouldBeFalse)
		})

		Convey("Then LookupFirst reports the candidate used", func() {
			e, k, ok := s.LookupFirst([]string{"sol en tauro", "sol en aries"})
			So(ok, ShouldBeTrue)
			So(k, ShouldEqual, "sol en aries")
			So(e.Text, ShouldEqual, "Energía pionera.")
		})
	})

	Convey("Given an empty store", t, func() {
		s := repository.NewStore(nil)
		_, ok := s.Lookup("sol en aries")
		So(ok, ShouldBeFalse)
	})
}

func TestPlanetInSignRoundTrip(t *testing.T) {
	Convey("Given every supported planet and sign", t, func() {
		planets := []string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto"}
		signs := []string{"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo", "Libra", "Scorpio",
			"Sagittarius", "Capricorn", "Aquarius", "Pisces"}
		empty := repository.NewStore(nil)

		for _, p := range planets {
			for _, sg := range signs {
				ev := model.Event{Kind: model.KindPlanetInSign, Point: p, Sign: sg}
				candidates := keys.Generate(ev, model.Tropical)
				s := repository.NewStore(map[string]repository.Entry{candidates[0]: {Text: p + "/" + sg}})

				e, _, ok := s.LookupFirst(candidates)
				So(ok, ShouldBeTrue)
				So(e.Text, ShouldEqual, p+"/"+sg)

				_, _, ok = empty.LookupFirst(candidates)
				So(ok, ShouldBeFalse)
			}
		}
	})
}

func TestEntry(t *testing.T) {
	Convey("Given entry text with placeholders", t, func() {
		e := repository.Entry{Text: "En {anio} llega {evento}; {desconocido} queda."}
		So(e.Format(map[string]string{"anio": "2026", "evento": "un cambio"}), ShouldEqual,
			"En 2026 llega un cambio; {desconocido} queda.")
		So(e.Format(nil), ShouldEqual, e.Text)
	})
}

func TestLoadJSON(t *testing.T) {
	ctx := context.Background()

	Convey("Given JSON knowledge base files", t, func() {
		dir := t.TempDir()

		Convey("Then strings and records both load, bad values are skipped", func() {
			path := writeFile(t, dir, "natal.json", `{
				"sol en aries": "Texto plano",
				"luna en leo": {"titulo": "Luna en Leo", "texto": "Texto de registro", "tipo": "planeta"},
				"roto": 42
			}`)
			s, err := repository.LoadJSON(ctx, path, repository.WithName("natal"))
			So(err, ShouldBeNil)
			So(s.Len(), ShouldEqual, 2)
			e, ok := s.Lookup("luna en leo")
			So(ok, ShouldBeTrue)
			So(e.Title, ShouldEqual, "Luna en Leo")
			So(e.Category, ShouldEqual, "planeta")
		})

		Convey("Then a missing file yields an empty store", func() {
			s, err := repository.LoadJSON(ctx, filepath.Join(dir, "nope.json"))
			So(errors.Is(err, repository.ErrSourceMissing), ShouldBeTrue)
			So(s, ShouldNotBeNil)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("Then malformed JSON yields an empty store", func() {
			path := writeFile(t, dir, "bad.json", `{"a": `)
			s, err := repository.LoadJSON(ctx, path)
			So(errors.Is(err, repository.ErrSourceMalformed), ShouldBeTrue)
			So(s.Len(), ShouldEqual, 0)
		})
	})
}

func TestLoadKnowledgeBase(t *testing.T) {
	ctx := context.Background()

	Convey("Given a data directory", t, func() {
		dir := t.TempDir()
		paths := repository.Paths{
			DataDir:        dir,
			Natal:          writeFile(t, dir, "natal_map.json", `{"sol en aries": "x"}`),
			Transit:        filepath.Join(dir, "transitos.json"),
			Draconic:       writeFile(t, dir, "draco.json", `{"sol_draconico_en_aries": "y"}`),
			TropicalTitles: writeFile(t, dir, "titulos.txt", "Sol en Aries\n\n  luna en leo  \n"),
			DraconicTitles: filepath.Join(dir, "draco", "titulos_draconicos.txt"),
		}

		kb, err := repository.Load(ctx, paths, nil)
		So(err, ShouldBeNil)

		Convey("Then present files load and missing ones are empty", func() {
			So(kb.Store(keys.Natal).Len(), ShouldEqual, 1)
			So(kb.Store(keys.Transit).Len(), ShouldEqual, 0)
			So(kb.Store(keys.Draconic).Len(), ShouldEqual, 1)
		})

		Convey("Then draconic titles fall back to the tropical list", func() {
			So(kb.Titles(model.Tropical).Len(), ShouldEqual, 2)
			So(kb.Titles(model.Draconic).IsLicensed("luna en leo"), ShouldBeTrue)
			So(kb.Sizes()["draconic_titles"], ShouldEqual, 2)
		})
	})

	Convey("Given no data directory", t, func() {
		_, err := repository.Load(ctx, repository.Paths{DataDir: filepath.Join(t.TempDir(), "missing")}, nil)
		So(errors.Is(err, repository.ErrDataDir), ShouldBeTrue)
	})
}

func TestResolveAndLicense(t *testing.T) {
	Convey("Given a knowledge base", t, func() {
		kb := &repository.KnowledgeBase{
			Natal:          repository.NewStore(map[string]repository.Entry{"sol en aries": {Text: "Fuego en {anio}."}}),
			Transit:        repository.NewStore(map[string]repository.Entry{"saturno_en_tránsito_conjunción_al_sol_natal": {Text: "Maduración."}}),
			Draconic:       repository.NewStore(nil),
			TropicalTitles: match.NewTitleSet([]string{"Sol en Aries"}),
			DraconicTitles: match.NewTitleSet([]string{"Luna dracónica en Leo"}),
		}

		Convey("Then the first resolving candidate wins and variables are filled", func() {
			text, key, ok := kb.Resolve(keys.Natal, []string{"sol en tauro", "sol en aries"}, map[string]string{"anio": "2026"})
			So(ok, ShouldBeTrue)
			So(key, ShouldEqual, "sol en aries")
			So(text, ShouldEqual, "Fuego en 2026.")
		})

		Convey("Then each base answers from its own store", func() {
			_, _, ok := kb.Resolve(keys.Transit, []string{"saturno_en_tránsito_conjunción_al_sol_natal"}, nil)
			So(ok, ShouldBeTrue)
			_, _, ok = kb.Resolve(keys.Draconic, []string{"sol en aries"}, nil)
			So(ok, ShouldBeFalse)
		})

		Convey("Then licensing uses the titles of the chart type", func() {
			So(kb.License(model.Tropical, "sol en aries"), ShouldEqual, match.Exact)
			So(kb.License(model.Draconic, "sol en aries"), ShouldEqual, match.None)
			So(kb.License(model.Draconic, "luna dracónica en leo"), ShouldEqual, match.Exact)
		})
	})
}
