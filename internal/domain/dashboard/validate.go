package dashboard

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks the lengths and matrix dimensions of the payload.
func (p ChartsPayload) Validate() error {
	const op = "dashboard.validate_charts"
	lengths := []struct {
		name string
		got  int
		want int
	}{
		{"sensorActivations", len(p.SensorActivations), SensorCount},
		{"sensorLabels", len(p.SensorLabels), SensorCount},
		{"dwellTimes", len(p.DwellTimes), SensorCount},
		{"performanceData", len(p.PerformanceData), SensorCount},
		{"weekDays", len(p.WeekDays), DayCount},
	}
	for _, l := range lengths {
		if l.got != l.want {
			return fmt.Errorf("%s: %w: %s has %d items, want %d", op, ErrShape, l.name, l.got, l.want)
		}
	}

	matrices := []struct {
		name string
		m    [][]int
	}{
		{"lowEvents", p.LowEvents},
		{"mediumEvents", p.MediumEvents},
		{"highEvents", p.HighEvents},
	}
	for _, mx := range matrices {
		if err := checkMatrix(mx.m); err != nil {
			return fmt.Errorf("%s: %w: %s %w", op, ErrShape, mx.name, err)
		}
	}
	return nil
}

func checkMatrix(m [][]int) error {
	if len(m) != SensorCount {
		return fmt.Errorf("has %d rows, want %d", len(m), SensorCount)
	}
	for i, row := range m {
		if len(row) != DayCount {
			return fmt.Errorf("row %d has %d columns, want %d", i, len(row), DayCount)
		}
	}
	return nil
}

// Validate checks that every field is set and Date is a YYYY-MM-DD calendar date.
func (e LogEntry) Validate() error {
	switch {
	case strings.TrimSpace(e.Area) == "":
		return fmt.Errorf("%w: missing area", ErrShape)
	case strings.TrimSpace(e.Event) == "":
		return fmt.Errorf("%w: missing event", ErrShape)
	}
	if len(e.Date) != len(DateLayout) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrShape, e.Date)
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrShape, e.Date)
	}
	return nil
}

// ValidateLogs checks the log count and every entry.
func ValidateLogs(entries []LogEntry) error {
	const op = "dashboard.validate_logs"
	if len(entries) != LogCount {
		return fmt.Errorf("%s: %w: %d entries, want %d", op, ErrShape, len(entries), LogCount)
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%s: entry %d: %w", op, i, err)
		}
	}
	return nil
}
