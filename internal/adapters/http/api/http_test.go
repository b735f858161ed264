package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/okian/sensorboard/internal/adapters/http/api"
	app "github.com/okian/sensorboard/internal/app"
	"github.com/okian/sensorboard/internal/domain/dashboard"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies lets tests feed payloads the real service never produces.
type mockDependencies struct {
	charts dashboard.ChartsPayload
	logs   []dashboard.LogEntry
}

func (m *mockDependencies) Charts(ctx context.Context) dashboard.ChartsPayload { return m.charts }
func (m *mockDependencies) Logs(ctx context.Context) []dashboard.LogEntry      { return m.logs }

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func newMux(opts ...api.ServerOption) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(app.New(), opts...).Register(context.Background(), mux)
	return mux
}

func serve(mux http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		Convey("When registering on a nil mux", func() {
			Convey("Then it should panic", func() {
				So(func() {
					api.NewServer(app.New()).Register(context.Background(), nil)
				}, ShouldPanic)
			})
		})

		Convey("When registering routes", func() {
			mux := newMux()

			Convey("Then health endpoint should be accessible", func() {
				w := serve(mux, http.MethodGet, "/healthz")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, `{"status":"ok"}`)
			})

			Convey("And undefined paths should be not found", func() {
				w := serve(mux, http.MethodGet, "/api/unknown")
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And POST to charts should be rejected by the router", func() {
				w := serve(mux, http.MethodPost, "/api/charts")
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Allow"), ShouldContainSubstring, http.MethodGet)
			})

			Convey("And DELETE to logs should be rejected by the router", func() {
				w := serve(mux, http.MethodDelete, "/api/logs")
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})

			Convey("And metrics should be exposed after a request", func() {
				serve(mux, http.MethodGet, "/api/charts")
				w := serve(mux, http.MethodGet, "/metrics")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "sensorboard_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, `sensorboard_payloads_served_total{payload="charts"}`)
			})
		})

		Convey("When the metrics endpoint is disabled", func() {
			mux := newMux(api.WithMetricsEndpoint(false))

			Convey("Then /metrics should not be routed", func() {
				w := serve(mux, http.MethodGet, "/metrics")
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestChartsEndpoint(t *testing.T) {
	Convey("Given the charts endpoint", t, func() {
		mux := newMux()

		Convey("When requesting the charts", func() {
			w := serve(mux, http.MethodGet, "/api/charts")

			Convey("Then it should return JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			})

			Convey("And it should carry exactly the eight contract keys", func() {
				var keys map[string]json.RawMessage
				So(json.Unmarshal(w.Body.Bytes(), &keys), ShouldBeNil)
				So(keys, ShouldHaveLength, 8)
				for _, k := range []string{
					"sensorActivations", "sensorLabels", "dwellTimes", "performanceData",
					"weekDays", "lowEvents", "mediumEvents", "highEvents",
				} {
					So(keys, ShouldContainKey, k)
				}
			})

			Convey("And series and matrices should have the dashboard shape", func() {
				var p struct {
					SensorActivations []int     `json:"sensorActivations"`
					SensorLabels      []string  `json:"sensorLabels"`
					DwellTimes        []float64 `json:"dwellTimes"`
					PerformanceData   []int     `json:"performanceData"`
					WeekDays          []string  `json:"weekDays"`
					LowEvents         [][]int   `json:"lowEvents"`
					MediumEvents      [][]int   `json:"mediumEvents"`
					HighEvents        [][]int   `json:"highEvents"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &p), ShouldBeNil)
				So(p.SensorActivations, ShouldHaveLength, 3)
				So(p.SensorLabels, ShouldHaveLength, 3)
				So(p.DwellTimes, ShouldHaveLength, 3)
				So(p.PerformanceData, ShouldHaveLength, 3)
				So(p.WeekDays, ShouldHaveLength, 7)
				for _, m := range [][][]int{p.LowEvents, p.MediumEvents, p.HighEvents} {
					So(m, ShouldHaveLength, 3)
					for _, row := range m {
						So(row, ShouldHaveLength, 7)
					}
				}
			})
		})

		Convey("When requesting the charts repeatedly", func() {
			first := serve(mux, http.MethodGet, "/api/charts").Body.Bytes()
			second := serve(mux, http.MethodGet, "/api/charts").Body.Bytes()

			Convey("Then the payloads should be byte-identical", func() {
				So(bytes.Equal(first, second), ShouldBeTrue)
			})
		})

		Convey("When the payload cannot be encoded", func() {
			deps := &mockDependencies{charts: dashboard.Charts()}
			deps.charts.DwellTimes[0] = math.NaN()
			mux := http.NewServeMux()
			api.NewServer(deps).Register(context.Background(), mux)

			w := serve(mux, http.MethodGet, "/api/charts")

			Convey("Then it should answer with a JSON 500", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldContainSubstring, `"code":"internal_error"`)
			})
		})
	})
}

func TestLogsEndpoint(t *testing.T) {
	Convey("Given the logs endpoint", t, func() {
		mux := newMux()

		Convey("When requesting the logs", func() {
			w := serve(mux, http.MethodGet, "/api/logs")

			Convey("Then it should return a JSON array of three string-only entries", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")

				var entries []map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &entries), ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				for _, e := range entries {
					So(e, ShouldHaveLength, 3)
					for _, k := range []string{"area", "date", "event"} {
						So(e, ShouldContainKey, k)
						_, isString := e[k].(string)
						So(isString, ShouldBeTrue)
					}
					So(datePattern.MatchString(e["date"].(string)), ShouldBeTrue)
				}
			})

			Convey("And it should match the published example", func() {
				So(w.Body.String(), ShouldEqual,
					`[{"area":"Sensor 1","date":"2025-09-10","event":"High activity detected"},`+
						`{"area":"Sensor 2","date":"2025-09-10","event":"Medium activity detected"},`+
						`{"area":"Sensor 3","date":"2025-09-10","event":"Low activity detected"}]`)
			})
		})

		Convey("When requesting the logs repeatedly", func() {
			first := serve(mux, http.MethodGet, "/api/logs").Body.String()
			second := serve(mux, http.MethodGet, "/api/logs").Body.String()

			Convey("Then the payloads should be byte-identical", func() {
				So(first, ShouldEqual, second)
			})
		})

		Convey("When the provider returns no log", func() {
			mux := http.NewServeMux()
			api.NewServer(&mockDependencies{}).Register(context.Background(), mux)

			w := serve(mux, http.MethodGet, "/api/logs")

			Convey("Then it should send an empty array", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, "[]")
			})
		})
	})
}
