package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/okian/sensorboard/pkg/logger"
)

// Check is the outcome of one contract check.
type Check struct {
	Name string
	Err  error
}

// OK reports whether the check passed.
func (c Check) OK() bool { return c.Err == nil }

// Report collects the outcome of a probe run.
type Report struct {
	RunID    string
	Checks   []Check
	Requests int
	Duration time.Duration
}

// Failed returns the checks that did not pass.
func (r *Report) Failed() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK() {
			out = append(out, c)
		}
	}
	return out
}

// Err joins every failed check, or returns nil when all passed.
func (r *Report) Err() error {
	var errs []error
	for _, c := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", c.Name, c.Err))
	}
	return errors.Join(errs...)
}

// Run executes every contract check against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	report := &Report{RunID: client.RunID()}
	start := time.Now()

	log.Info(ctx, "starting dashboard probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.String("runID", report.RunID),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers))

	checks := []struct {
		name string
		fn   func() (int, error)
	}{
		{"health", func() (int, error) { return 1, expectStatus(ctx, client, http.MethodGet, pathHealth, http.StatusOK) }},
		{"index page", func() (int, error) { return 1, checkIndex(ctx, client) }},
		{"charts payload", func() (int, error) { return checkRepeated(ctx, client, cfg, pathCharts, verifyCharts) }},
		{"logs payload", func() (int, error) { return checkRepeated(ctx, client, cfg, pathLogs, verifyLogs) }},
		{"unknown path", func() (int, error) {
			return 1, expectStatus(ctx, client, http.MethodGet, pathUnknown, http.StatusNotFound)
		}},
		{"charts rejects POST", func() (int, error) {
			return 1, expectStatus(ctx, client, http.MethodPost, pathCharts, http.StatusMethodNotAllowed)
		}},
	}

	for _, c := range checks {
		n, err := c.fn()
		report.Requests += n
		report.Checks = append(report.Checks, Check{Name: c.name, Err: err})
		switch {
		case err != nil:
			log.Error(ctx, "check failed", logger.String("check", c.name), logger.Error(err))
		case cfg.Verbose:
			log.Info(ctx, "check passed", logger.String("check", c.name), logger.Int("requests", n))
		}
	}

	report.Duration = time.Since(start)
	log.Info(ctx, "dashboard probe finished",
		logger.Int("checks", len(report.Checks)),
		logger.Int("failed", len(report.Failed())),
		logger.Int("requests", report.Requests),
		logger.Duration("duration", report.Duration))

	return report, report.Err()
}

func expectStatus(ctx context.Context, client *HTTPClient, method, path string, want int) error {
	resp, err := client.Do(ctx, method, path)
	if err != nil {
		return err
	}
	if resp.Status != want {
		return fmt.Errorf("%w: %s %s returned %d, want %d", ErrProbe, method, path, resp.Status, want)
	}
	return nil
}

func checkIndex(ctx context.Context, client *HTTPClient) error {
	resp, err := client.Get(ctx, pathIndex)
	if err != nil {
		return err
	}
	switch {
	case resp.Status != http.StatusOK:
		return fmt.Errorf("%w: index returned %d", ErrProbe, resp.Status)
	case !strings.HasPrefix(resp.ContentType, "text/html"):
		return fmt.Errorf("%w: index content type %q", ErrProbe, resp.ContentType)
	case len(bytes.TrimSpace(resp.Body)) == 0:
		return fmt.Errorf("%w: index body is empty", ErrProbe)
	}
	return nil
}

// checkRepeated fetches path cfg.Requests times across cfg.Workers
// goroutines, verifies the first body and requires all bodies to match it.
func checkRepeated(ctx context.Context, client *HTTPClient, cfg *Config, path string, verify func([]byte) error) (int, error) {
	bodies := make([][]byte, cfg.Requests)
	errs := make([]error, cfg.Requests)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				resp, err := client.Get(ctx, path)
				switch {
				case err != nil:
					errs[i] = err
				case resp.Status != http.StatusOK:
					errs[i] = fmt.Errorf("%w: GET %s returned %d", ErrProbe, path, resp.Status)
				case !strings.HasPrefix(resp.ContentType, "application/json"):
					errs[i] = fmt.Errorf("%w: GET %s content type %q", ErrProbe, path, resp.ContentType)
				default:
					bodies[i] = resp.Body
				}
			}
		}()
	}
	for i := 0; i < cfg.Requests; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return cfg.Requests, err
	}
	if err := verify(bodies[0]); err != nil {
		return cfg.Requests, err
	}
	return cfg.Requests, verifyIdentical(bodies)
}
