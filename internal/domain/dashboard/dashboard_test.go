package dashboard_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/sensorboard/internal/domain/dashboard"
	"github.com/smartystreets/goconvey/convey"
)

func TestCharts(t *testing.T) {
	convey.Convey("Given the chart payload", t, func() {
		p := dashboard.Charts()

		convey.Convey("Then it should have the dashboard shape", func() {
			convey.So(p.Validate(), convey.ShouldBeNil)
			convey.So(p.SensorActivations, convey.ShouldResemble, []int{12, 7, 15})
			convey.So(p.SensorLabels, convey.ShouldResemble, []string{"Sensor 1", "Sensor 2", "Sensor 3"})
			convey.So(p.DwellTimes, convey.ShouldResemble, []float64{2.5, 3.1, 1.8})
			convey.So(p.PerformanceData, convey.ShouldResemble, []int{80, 65, 90})
			convey.So(p.WeekDays, convey.ShouldHaveLength, dashboard.DayCount)
			convey.So(p.HighEvents[1], convey.ShouldResemble, []int{2, 2, 1, 2, 2, 2, 2})
		})

		convey.Convey("When a caller mutates the returned value", func() {
			p.SensorActivations[0] = 999
			p.LowEvents[0][0] = 999
			p.WeekDays = p.WeekDays[:2]

			convey.Convey("Then the next call should be unaffected", func() {
				next := dashboard.Charts()
				convey.So(next.SensorActivations[0], convey.ShouldEqual, 12)
				convey.So(next.LowEvents[0][0], convey.ShouldEqual, 2)
				convey.So(next.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When serialized", func() {
			raw, err := json.Marshal(p)
			convey.So(err, convey.ShouldBeNil)

			var keys map[string]json.RawMessage
			convey.So(json.Unmarshal(raw, &keys), convey.ShouldBeNil)

			convey.Convey("Then it should carry exactly the contract keys", func() {
				convey.So(keys, convey.ShouldHaveLength, 8)
				for _, k := range []string{
					"sensorActivations", "sensorLabels", "dwellTimes", "performanceData",
					"weekDays", "lowEvents", "mediumEvents", "highEvents",
				} {
					convey.So(keys, convey.ShouldContainKey, k)
				}
			})
		})
	})
}

func TestChartsValidate(t *testing.T) {
	convey.Convey("Given a chart payload with a broken shape", t, func() {
		convey.Convey("When a series is too short", func() {
			p := dashboard.Charts()
			p.DwellTimes = p.DwellTimes[:2]
			err := p.Validate()

			convey.Convey("Then validation should name the series", func() {
				convey.So(errors.Is(err, dashboard.ErrShape), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "dwellTimes")
			})
		})

		convey.Convey("When a matrix is missing a row", func() {
			p := dashboard.Charts()
			p.MediumEvents = p.MediumEvents[:2]
			err := p.Validate()

			convey.Convey("Then validation should name the matrix", func() {
				convey.So(errors.Is(err, dashboard.ErrShape), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "mediumEvents")
			})
		})

		convey.Convey("When a matrix row is missing a day", func() {
			p := dashboard.Charts()
			p.HighEvents[2] = p.HighEvents[2][:6]
			err := p.Validate()

			convey.Convey("Then validation should report the row", func() {
				convey.So(errors.Is(err, dashboard.ErrShape), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "row 2")
			})
		})
	})
}

func TestLogs(t *testing.T) {
	convey.Convey("Given the activity log", t, func() {
		logs := dashboard.Logs()

		convey.Convey("Then it should hold the three sensor entries", func() {
			convey.So(dashboard.ValidateLogs(logs), convey.ShouldBeNil)
			convey.So(logs[0], convey.ShouldResemble, dashboard.LogEntry{
				Area: "Sensor 1", Date: "2025-09-10", Event: "High activity detected",
			})
			convey.So(logs[2].Event, convey.ShouldEqual, "Low activity detected")
		})

		convey.Convey("When serialized", func() {
			raw, err := json.Marshal(logs)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then it should match the published example", func() {
				convey.So(string(raw), convey.ShouldEqual,
					`[{"area":"Sensor 1","date":"2025-09-10","event":"High activity detected"},`+
						`{"area":"Sensor 2","date":"2025-09-10","event":"Medium activity detected"},`+
						`{"area":"Sensor 3","date":"2025-09-10","event":"Low activity detected"}]`)
			})
		})

		convey.Convey("When an entry has a malformed date", func() {
			logs[1].Date = "10/09/2025"

			convey.Convey("Then validation should fail", func() {
				err := dashboard.ValidateLogs(logs)
				convey.So(errors.Is(err, dashboard.ErrShape), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "entry 1")
			})
		})

		convey.Convey("When an entry has a non-padded date", func() {
			logs[0].Date = "2025-9-10"

			convey.Convey("Then validation should fail", func() {
				convey.So(dashboard.ValidateLogs(logs), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When an entry is missing its area", func() {
			logs[2].Area = " "

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(dashboard.ValidateLogs(logs), dashboard.ErrShape), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the log has the wrong number of entries", func() {
			convey.Convey("Then validation should fail", func() {
				convey.So(dashboard.ValidateLogs(logs[:1]), convey.ShouldNotBeNil)
				convey.So(dashboard.ValidateLogs(nil), convey.ShouldNotBeNil)
			})
		})
	})
}
