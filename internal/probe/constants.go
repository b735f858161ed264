package probe

// Paths checked by the probe.
const (
	pathIndex   = "/"
	pathCharts  = "/api/charts"
	pathLogs    = "/api/logs"
	pathHealth  = "/healthz"
	pathUnknown = "/api/unknown"
)

// Default configuration values.
const (
	DefaultBaseURL  = "http://127.0.0.1:5000"
	DefaultRequests = 20
	DefaultWorkers  = 4
)
