package hris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Client defines the interface for the upstream HR directory API.
// All three fetches are full pulls; the upstream offers no delta endpoint.
type Client interface {
	// FetchEmployees returns the complete employee set.
	FetchEmployees(ctx context.Context) ([]Employee, error)
	// FetchRanks returns the complete rank reference set.
	FetchRanks(ctx context.Context) ([]RefEntry, error)
	// FetchDepartments returns the complete department reference set.
	FetchDepartments(ctx context.Context) ([]RefEntry, error)
}

// NewClient creates an HTTP client for the upstream directory API.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Strict transport timeouts: a slow upstream stalls synchronous sync
	// paths for at most the configured window.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.ApiKey,
		http: &http.Client{
			Timeout:   timeoutDuration,
			Transport: transport,
		},
	}
}

type httpClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func (c *httpClient) FetchEmployees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.get(ctx, "/api/employees", &employees); err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	return employees, nil
}

func (c *httpClient) FetchRanks(ctx context.Context) ([]RefEntry, error) {
	var ranks []RefEntry
	if err := c.get(ctx, "/api/ranks", &ranks); err != nil {
		return nil, fmt.Errorf("failed to fetch ranks: %w", err)
	}
	return ranks, nil
}

func (c *httpClient) FetchDepartments(ctx context.Context) ([]RefEntry, error) {
	var departments []RefEntry
	if err := c.get(ctx, "/api/departments", &departments); err != nil {
		return nil, fmt.Errorf("failed to fetch departments: %w", err)
	}
	return departments, nil
}

// get performs a GET request against the upstream API and decodes the JSON body.
func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a bounded amount of the body for the error message
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}

	return nil
}
