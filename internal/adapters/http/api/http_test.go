package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/carta/internal/adapters/http/api"
	service "github.com/okian/carta/internal/app"
	"github.com/okian/carta/internal/domain/model"
	"github.com/okian/carta/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	lastRequest service.Request
	lastEvents  []model.CalendarEvent
	lastVars    map[string]string
	err         error
	sizes       map[string]int
}

func (m *mockDependencies) Interpret(_ context.Context, req service.Request) (types.Report, error) {
	m.lastRequest = req
	if m.err != nil {
		return types.Report{}, m.err
	}
	return types.Report{
		Name:      req.Chart.Name,
		ChartType: string(req.ChartType),
		Narrative: "### Tu Sol en Aries\nEnergía pionera.",
		Items: []types.Interpretation{
			{Title: "Tu Sol en Aries", Kind: string(model.KindPlanetInSign), Text: "Energía pionera."},
		},
	}, nil
}

func (m *mockDependencies) InterpretEvents(_ context.Context, events []model.CalendarEvent, vars map[string]string) ([]types.CalendarResult, error) {
	m.lastEvents = events
	m.lastVars = vars
	if m.err != nil {
		return nil, m.err
	}
	out := make([]types.CalendarResult, 0, len(events))
	for _, ev := range events {
		out = append(out, types.CalendarResult{Description: ev.Description, Matched: true, Query: "q"})
	}
	return out, nil
}

func (m *mockDependencies) KnowledgeSizes() map[string]int {
	return m.sizes
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := &mockDependencies{sizes: map[string]int{"natal": 3, "transit": 0}}
		mux := newMux(deps)

		Convey("Then health reports ok with the store sizes", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)

			var body struct {
				Status  string         `json:"status"`
				Service string         `json:"service"`
				Version string         `json:"version"`
				Sizes   map[string]int `json:"sizes"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Status, ShouldEqual, "ok")
			So(body.Service, ShouldEqual, "carta")
			So(body.Version, ShouldEqual, api.Version)
			So(body.Sizes["natal"], ShouldEqual, 3)
		})

		Convey("Then health is degraded with an empty knowledge base", func() {
			w := do(newMux(&mockDependencies{sizes: map[string]int{"natal": 0}}), http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"degraded"`)
		})

		Convey("Then stats are served as JSON", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then metrics are exposed after a request", func() {
			do(mux, http.MethodGet, "/healthz", "")
			w := do(mux, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "healthz")
		})

		Convey("Then unknown paths are not found", func() {
			w := do(mux, http.MethodGet, "/unknown", "")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestInterpretHandler(t *testing.T) {
	Convey("Given an interpret handler", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When handling a valid request", func() {
			body := `{"carta_natal":{"nombre":"Ana","points":{"Sun":{"sign":"Aries"}}},"genero":"femenino","tipo":"draconica","variables":{"anio":"2025"}}`
			w := do(mux, http.MethodPost, "/interpretar", body)

			Convey("Then it returns the report", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var report map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &report), ShouldBeNil)
				So(report["nombre"], ShouldEqual, "Ana")
				So(report["tipo"], ShouldEqual, "draco")
				So(report, ShouldContainKey, "interpretacion_narrativa")
				So(report["interpretaciones_individuales"], ShouldHaveLength, 1)
			})

			Convey("Then the request is forwarded with the parsed chart type", func() {
				So(deps.lastRequest.ChartType, ShouldEqual, model.Draconic)
				So(deps.lastRequest.Gender, ShouldEqual, "femenino")
				So(deps.lastRequest.Chart.Name, ShouldEqual, "Ana")
				So(deps.lastRequest.Variables, ShouldResemble, map[string]string{"anio": "2025"})
			})
		})

		Convey("When the type is omitted", func() {
			w := do(mux, http.MethodPost, "/interpretar", `{"carta_natal":{}}`)

			Convey("Then the chart is tropical", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastRequest.ChartType, ShouldEqual, model.Tropical)
			})
		})

		Convey("When the gender is not one the narrative knows", func() {
			w := do(mux, http.MethodPost, "/interpretar", `{"carta_natal":{},"genero":"otro"}`)

			Convey("Then the request is accepted and forwarded as given", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastRequest.Gender, ShouldEqual, "otro")
			})
		})

		Convey("When the chart is missing", func() {
			w := do(mux, http.MethodPost, "/interpretar", `{"tipo":"tropical"}`)

			Convey("Then it returns bad request naming the field", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				body := decodeError(w)
				So(body["code"], ShouldEqual, "bad_request")
				So(body["message"], ShouldContainSubstring, "carta_natal is required")
			})
		})

		Convey("When the type is unknown", func() {
			w := do(mux, http.MethodPost, "/interpretar", `{"carta_natal":{},"tipo":"sideral"}`)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["message"], ShouldContainSubstring, "tipo must be one of")
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/interpretar", `{`)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the method is not POST", func() {
			w := do(mux, http.MethodGet, "/interpretar", "")

			Convey("Then it returns not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the service is not started", func() {
			deps.err = service.ErrNotStarted
			w := do(mux, http.MethodPost, "/interpretar", `{"carta_natal":{}}`)

			Convey("Then it returns service unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decodeError(w)["code"], ShouldEqual, "not_ready")
			})
		})

		Convey("When the service fails unexpectedly", func() {
			deps.err = errors.New("boom")
			w := do(mux, http.MethodPost, "/interpretar", `{"carta_natal":{}}`)

			Convey("Then it returns internal error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(decodeError(w)["code"], ShouldEqual, "internal")
			})
		})
	})
}

func TestEventsHandler(t *testing.T) {
	Convey("Given an events handler", t, func() {
		deps := &mockDependencies{}
		mux := newMux(deps)

		Convey("When handling valid events", func() {
			body := `{"eventos":[{"tipo_evento":"Luna Nueva","descripcion":"Luna nueva en Aries"},{"tipo_evento":"Aspecto","descripcion":"Sol conjunción Luna"}],"variables":{"anio":"2025"}}`
			w := do(mux, http.MethodPost, "/interpretar-eventos", body)

			Convey("Then every event is answered in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Results []types.CalendarResult `json:"interpretaciones"`
					Elapsed *float64               `json:"tiempo_generacion"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Results, ShouldHaveLength, 2)
				So(resp.Results[0].Description, ShouldEqual, "Luna nueva en Aries")
				So(resp.Results[1].Description, ShouldEqual, "Sol conjunción Luna")
				So(resp.Elapsed, ShouldNotBeNil)
				So(deps.lastVars, ShouldResemble, map[string]string{"anio": "2025"})
			})
		})

		Convey("When an event has no type", func() {
			w := do(mux, http.MethodPost, "/interpretar-eventos", `{"eventos":[{"descripcion":"algo"}]}`)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["message"], ShouldContainSubstring, "tipo_evento is required")
				So(deps.lastEvents, ShouldBeNil)
			})
		})

		Convey("When the events list is missing", func() {
			w := do(mux, http.MethodPost, "/interpretar-eventos", `{}`)

			Convey("Then it returns bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the method is not POST", func() {
			w := do(mux, http.MethodGet, "/interpretar-eventos", "")

			Convey("Then it returns not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestMiddleware(t *testing.T) {
	Convey("Given the wrapped API handler", t, func() {
		deps := &mockDependencies{sizes: map[string]int{"natal": 1}}
		server := api.NewServer(deps, &mockStatsProvider{}, api.WithCORSOrigins([]string{"https://app.example.com"}))
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)
		h := server.Handler(mux)

		Convey("Then a request id is assigned when absent", func() {
			w := do(h, http.MethodGet, "/healthz", "")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
		})

		Convey("Then a caller's request id is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})

		Convey("Then the request id reaches the handler context", func() {
			var seen string
			inner := api.RequestIDMiddleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = api.RequestID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "xyz")
			inner.ServeHTTP(httptest.NewRecorder(), req)
			So(seen, ShouldEqual, "xyz")
			So(api.RequestID(context.Background()), ShouldBeEmpty)
		})

		Convey("Then allowed origins receive CORS headers", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set("Origin", "https://app.example.com")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://app.example.com")
		})

		Convey("Then other origins do not", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set("Origin", "https://evil.example.com")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})
	})
}

func TestErrorKinds(t *testing.T) {
	Convey("Given kinded errors", t, func() {
		cause := errors.New("missing field")
		err := api.WrapKind("api.op", api.ErrBadRequest, cause)

		Convey("Then both the kind and the cause match", func() {
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: missing field")
		})

		Convey("Then NewKind has no cause", func() {
			err := api.NewKind("api.op", api.ErrNotReady)
			So(errors.Is(err, api.ErrNotReady), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: service not ready")
		})
	})
}
