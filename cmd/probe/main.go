package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/sensorboard/internal/probe"
	"github.com/okian/sensorboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout      = 5 * time.Second
	defaultProbeTimeout = 2 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", probe.DefaultBaseURL, "Base URL of the server")
		requests = flag.Int("requests", probe.DefaultRequests, "Requests per JSON endpoint")
		workers  = flag.Int("workers", probe.DefaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "Per-request timeout")
		verbose  = flag.Bool("verbose", false, "Log passing checks too")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, defaultProbeTimeout)

	cfg := &probe.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	_, err := probe.Run(ctx, cfg, logger.Named("probe"))
	cancel()
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Stderr.WriteString("probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
