package framework

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const probeInterval = time.Millisecond * 100

// Target is one of the external systems that the tests run against.
type Target struct {
	Name    string
	BaseURL string
}

// TestHarness holds the targets of a test run. Creating it verifies that every target is
// responding at all; whether it responds correctly is up to the tests.
type TestHarness struct {
	targets map[string]Target
	client  *http.Client
	logger  Logger
}

// NewTestHarness creates a TestHarness and probes each target with a GET request until it gets
// any HTTP response, or until probeTimeout elapses. A zero probeTimeout disables probing.
func NewTestHarness(
	targets []Target,
	probeTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	h := &TestHarness{
		targets: make(map[string]Target),
		client:  &http.Client{Timeout: probeTimeout},
		logger:  debugLogger,
	}
	for _, t := range targets {
		h.targets[t.Name] = t
	}
	if probeTimeout <= 0 {
		return h, nil
	}
	for _, t := range targets {
		if err := h.probe(t, probeTimeout, startupOutput); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// TargetURL returns the base URL of the named target, or "" if there is no such target.
func (h *TestHarness) TargetURL(name string) string {
	return h.targets[name].BaseURL
}

func (h *TestHarness) probe(t Target, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to %s at %s", t.Name, t.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	status, err := backoff.Retry(ctx, func() (int, error) {
		fmt.Fprintf(output, ".")
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL, nil)
		if err != nil {
			return 0, backoff.Permanent(err)
		}
		resp, err := h.client.Do(req)
		if err != nil {
			h.logger.Printf("Probe of %s failed: %s", t.BaseURL, err)
			return 0, err
		}
		_ = resp.Body.Close()
		return resp.StatusCode, nil
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(probeInterval)),
		backoff.WithMaxElapsedTime(timeout),
	)
	fmt.Fprintln(output)
	if err != nil {
		return fmt.Errorf("%s at %s is not reachable: %w", t.Name, t.BaseURL, err)
	}
	fmt.Fprintf(output, "%s responded with status %d\n", t.Name, status)
	return nil
}
