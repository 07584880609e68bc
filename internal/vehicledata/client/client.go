// Package client provides the HTTP client for the RDW open data API.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"autotradespot_backend/internal/vehicledata/transport"
)

const maxBodyBytes = 1 << 20

// FetchError classifies a failed endpoint call.
type FetchError struct {
	Kind     transport.FailureKind
	Endpoint string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s: status %d", e.Endpoint, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client performs single, unretried GET requests against RDW endpoints.
type Client struct {
	httpClient *http.Client
	appToken   string
	timeout    time.Duration
}

// New creates a client. Every request is bounded by timeout on its own.
func New(appToken string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{},
		appToken:   appToken,
		timeout:    timeout,
	}
}

// Fetch returns the raw body of endpoint queried for plate.
func (c *Client) Fetch(ctx context.Context, endpoint, plate string) ([]byte, error) {
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, &FetchError{Kind: transport.FailureUnexpected, Endpoint: endpoint, Err: err}
	}
	q := reqURL.Query()
	q.Set("kenteken", plate)
	reqURL.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, &FetchError{Kind: transport.FailureUnexpected, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("X-App-Token", c.appToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classify(err), Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &FetchError{Kind: transport.FailureHTTPStatus, Endpoint: endpoint, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Kind: classify(err), Endpoint: endpoint, Err: err}
	}
	return body, nil
}

func classify(err error) transport.FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return transport.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return transport.FailureTimeout
	}
	if errors.Is(err, context.Canceled) {
		return transport.FailureUnexpected
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return transport.FailureConnection
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return transport.FailureConnection
	}
	return transport.FailureUnexpected
}
