package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it uses the carta namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "carta")
				So(manager.subsystem, ShouldEqual, "interpreter")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("pfx"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test_namespace")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.name("kb_entries"), ShouldEqual, "pfx_kb_entries")

				manager.kbEntries.WithLabelValues("natal").Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_pfx_kb_entries" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When empty values are passed to options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "carta")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording pipeline metrics", func() {
			before := testutil.ToFloat64(globalManager.eventsLicensed.WithLabelValues("PlanetaEnSigno"))
			RecordEventLicensed("PlanetaEnSigno")
			RecordEventLicensed("PlanetaEnSigno")

			Convey("Then the counter increases", func() {
				after := testutil.ToFloat64(globalManager.eventsLicensed.WithLabelValues("PlanetaEnSigno"))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When updating knowledge base gauges", func() {
			UpdateKBEntries("natal", 42)
			UpdateTargetTitles("tropical", 7)

			Convey("Then the gauges hold the last value", func() {
				So(testutil.ToFloat64(globalManager.kbEntries.WithLabelValues("natal")), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.kbTitles.WithLabelValues("tropical")), ShouldEqual, 7)
			})
		})

		Convey("When recording the remaining helpers", func() {
			So(func() {
				RecordInterpretation("tropical", 12)
				RecordEventExtracted("Aspecto")
				RecordEventUnlicensed("Aspecto")
				RecordEventFiltered("PlanetaEnCasa")
				RecordComplexRule("sun-jupiter-angular")
				RecordCalendarEvent(true)
				RecordCalendarEvent(false)
				RecordKBLookup("natal", "hit")
				RecordRewriteLatency("narrative", 30)
				RecordRewriteError("item")
				UpdateWorkerActiveCount(1)
				UpdateWorkerActiveCount(-1)
				RecordWorkerProcessingLatency(4)
				RecordHTTPRequest("interpretar", "POST", "200")
				RecordHTTPRequestDuration("interpretar", "POST", "200", 5)
				RecordErrorByEndpoint("interpretar", "POST", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(8)
			}, ShouldNotPanic)
		})

		Convey("Then the registry gathers without error", func() {
			_, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
		})
	})
}
