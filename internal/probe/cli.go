package probe

import "os"

// ShowHelp prints usage information for the probe tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Sensor Dashboard Probe
======================

Checks a running dashboard server against its HTTP contract.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the server (default "http://127.0.0.1:5000")
  -requests int
        Requests per JSON endpoint (default 20)
  -workers int
        Concurrent workers (default 4)
  -timeout duration
        Per-request timeout (default 5s)
  -verbose
        Log passing checks too
  -help
        Show this help

Checks:
  GET /healthz is 200, GET / is non-empty HTML, GET /api/charts and
  GET /api/logs have the dashboard shape and repeat byte-identically,
  GET /api/unknown is 404 and POST /api/charts is 405.

Exit status is 1 when any check fails.
`)
}
