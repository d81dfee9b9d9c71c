// Package client implements the fetch layer: the three read requests and the
// single-step write request issued against the emulator backend.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Manu343726/nesview/pkg/api"
	"github.com/Manu343726/nesview/pkg/utils"
)

var (
	// ErrUnexpectedStatus is returned when the backend answers with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrDecode is returned when a response body cannot be decoded
	ErrDecode = errors.New("decoding response")
)

// Options configures a Client
type Options struct {
	// Timeout for a whole request. Zero means no timeout.
	Timeout time.Duration
	// Transport used for requests (default: http.DefaultTransport)
	Transport http.RoundTripper
	// Logger receives request traces (default: slog.Default())
	Logger *slog.Logger
}

// Client talks to the emulator backend
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for the backend rooted at baseURL
func New(baseURL string, opts Options) (*Client, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: missing host", baseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: NewTracedTransport(transport, &SlogTracer{Logger: logger}),
		},
		logger: logger,
	}, nil
}

// BaseURL returns the backend root URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(path).String()
}

func (c *Client) do(ctx context.Context, method string, path string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), nil)
	if err != nil {
		return nil, err
	}

	if method == http.MethodGet {
		request.Header.Set("Accept", "application/json")
	}

	response, err := c.http.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%v %v: %w", method, path, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		response.Body.Close()
		return nil, utils.MakeError(ErrUnexpectedStatus, "%v %v: %v", method, path, response.Status)
	}

	return response, nil
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var result T

	response, err := c.do(ctx, http.MethodGet, path)
	if err != nil {
		return result, err
	}
	defer response.Body.Close()

	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return result, fmt.Errorf("%w: GET %v: %w", ErrDecode, path, err)
	}

	return result, nil
}

// Instructions fetches the current instruction listing
func (c *Client) Instructions(ctx context.Context) (api.InstructionListing, error) {
	return get[api.InstructionListing](ctx, c, api.PathInstructions)
}

// CpuState fetches the register and flag state
func (c *Client) CpuState(ctx context.Context) (api.CpuState, error) {
	return get[api.CpuState](ctx, c, api.PathCpuState)
}

// MemoryDump fetches the zero page and stack dumps
func (c *Client) MemoryDump(ctx context.Context) (api.MemoryDump, error) {
	return get[api.MemoryDump](ctx, c, api.PathMemoryDump)
}

// Step asks the backend to execute exactly one instruction. The response body
// is ignored; completing with a 2xx status is the only success signal.
func (c *Client) Step(ctx context.Context) error {
	response, err := c.do(ctx, http.MethodPost, api.PathStep)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	_, _ = io.Copy(io.Discard, response.Body)
	return nil
}
