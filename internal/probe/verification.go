package probe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/sensorboard/internal/domain/dashboard"
)

// chartsKeys are the only keys a charts payload may carry.
var chartsKeys = []string{
	"sensorActivations", "sensorLabels", "dwellTimes", "performanceData",
	"weekDays", "lowEvents", "mediumEvents", "highEvents",
}

// logKeys are the only keys a log entry may carry.
var logKeys = []string{"area", "date", "event"}

// verifyCharts checks that body is a charts payload with exactly the
// contract keys and the dashboard shape.
func verifyCharts(body []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return fmt.Errorf("%w: charts is not a JSON object: %w", ErrProbe, err)
	}
	if err := exactKeys(keys, chartsKeys); err != nil {
		return fmt.Errorf("%w: charts %w", ErrProbe, err)
	}

	var p dashboard.ChartsPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return fmt.Errorf("%w: charts field types: %w", ErrProbe, err)
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrProbe, err)
	}
	return nil
}

// verifyLogs checks that body is an array of string-only log entries with
// calendar dates.
func verifyLogs(body []byte) error {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: logs is not a JSON array of objects: %w", ErrProbe, err)
	}
	for i, obj := range raw {
		if err := exactKeys(obj, logKeys); err != nil {
			return fmt.Errorf("%w: log entry %d %w", ErrProbe, i, err)
		}
		for _, k := range logKeys {
			var s string
			if err := json.Unmarshal(obj[k], &s); err != nil {
				return fmt.Errorf("%w: log entry %d: %s is not a string", ErrProbe, i, k)
			}
		}
	}

	var entries []dashboard.LogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return fmt.Errorf("%w: logs: %w", ErrProbe, err)
	}
	if err := dashboard.ValidateLogs(entries); err != nil {
		return fmt.Errorf("%w: %w", ErrProbe, err)
	}
	return nil
}

// verifyIdentical checks that every body equals the first one.
func verifyIdentical(bodies [][]byte) error {
	for i := 1; i < len(bodies); i++ {
		if !bytes.Equal(bodies[0], bodies[i]) {
			return fmt.Errorf("%w: response %d differs from response 0", ErrProbe, i)
		}
	}
	return nil
}

func exactKeys(obj map[string]json.RawMessage, want []string) error {
	var missing []string
	for _, k := range want {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("is missing keys %s", strings.Join(missing, ", "))
	}
	if len(obj) != len(want) {
		return fmt.Errorf("has %d keys, want %d", len(obj), len(want))
	}
	return nil
}
