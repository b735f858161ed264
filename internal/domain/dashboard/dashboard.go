// Package dashboard holds the payloads rendered by the sensor dashboard.
//
// Every constructor returns a freshly allocated value so callers may mutate
// what they receive without affecting later responses.
package dashboard

// Shape constants of the dashboard payloads.
const (
	SensorCount = 3
	DayCount    = 7
	LogCount    = 3

	// DateLayout is the calendar date layout used by LogEntry.Date.
	DateLayout = "2006-01-02"
)

// ChartsPayload feeds every chart on the dashboard. Field names are part of
// the wire contract consumed by the front end.
type ChartsPayload struct {
	SensorActivations []int     `json:"sensorActivations"`
	SensorLabels      []string  `json:"sensorLabels"`
	DwellTimes        []float64 `json:"dwellTimes"`
	PerformanceData   []int     `json:"performanceData"`
	WeekDays          []string  `json:"weekDays"`

	// Event matrices are indexed [sensor][weekday].
	LowEvents    [][]int `json:"lowEvents"`
	MediumEvents [][]int `json:"mediumEvents"`
	HighEvents   [][]int `json:"highEvents"`
}

// LogEntry is one row of the activity log table.
type LogEntry struct {
	Area  string `json:"area"`
	Date  string `json:"date"`
	Event string `json:"event"`
}

// Charts returns the chart data shown on the dashboard.
func Charts() ChartsPayload {
	return ChartsPayload{
		SensorActivations: []int{12, 7, 15},
		SensorLabels:      []string{"Sensor 1", "Sensor 2", "Sensor 3"},
		DwellTimes:        []float64{2.5, 3.1, 1.8},
		PerformanceData:   []int{80, 65, 90},
		WeekDays:          []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		LowEvents: [][]int{
			{2, 1, 3, 2, 1, 2, 1},
			{1, 2, 1, 2, 2, 1, 2},
			{3, 2, 2, 3, 2, 3, 2},
		},
		MediumEvents: [][]int{
			{5, 4, 6, 5, 4, 5, 4},
			{4, 5, 4, 5, 5, 4, 5},
			{6, 5, 5, 6, 5, 6, 5},
		},
		HighEvents: [][]int{
			{1, 1, 2, 1, 1, 1, 1},
			{2, 2, 1, 2, 2, 2, 2},
			{1, 2, 1, 2, 1, 2, 1},
		},
	}
}

// Logs returns the activity log, newest first.
func Logs() []LogEntry {
	return []LogEntry{
		{Area: "Sensor 1", Date: "2025-09-10", Event: "High activity detected"},
		{Area: "Sensor 2", Date: "2025-09-10", Event: "Medium activity detected"},
		{Area: "Sensor 3", Date: "2025-09-10", Event: "Low activity detected"},
	}
}
