package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/david/spending-search/internal/metrics"
)

// DefaultBaseURL is the public USAspending API.
const DefaultBaseURL = "https://api.usaspending.gov"

// Endpoint is a named upstream path.
type Endpoint struct {
	Name string // label used in logs and metrics
	Path string
}

var (
	SearchEndpoint = Endpoint{Name: "search", Path: "/api/v2/search/spending_by_award/"}
	CountEndpoint  = Endpoint{Name: "count", Path: "/api/v2/search/spending_by_award_count/"}
)

// Response is a 2xx upstream answer.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// StatusError is a non-2xx upstream answer. Body is the raw upstream payload.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Forwarder posts JSON bodies to the USAspending API without touching them.
type Forwarder struct {
	Client  *http.Client
	BaseURL string
}

func NewForwarder(baseURL string, timeout time.Duration) *Forwarder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Forwarder{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Forward posts body to endpoint. A non-2xx answer is returned as *StatusError;
// any other error means no upstream response was received.
func (f *Forwarder) Forward(ctx context.Context, endpoint Endpoint, body []byte, requestID string) (*Response, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint.Name).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.BaseURL+endpoint.Path, bytes.NewReader(body))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint.Name, "error").Inc()
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	log.Printf("[Proxy] POST %s (%d bytes) request_id=%s", endpoint.Path, len(body), requestID)

	resp, err := f.Client.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint.Name, "error").Inc()
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint.Name, "error").Inc()
		return nil, fmt.Errorf("reading upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint.Name, "status_error").Inc()
		log.Printf("[Proxy] %s returned %d", endpoint.Path, resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: payload}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint.Name, "ok").Inc()
	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        payload,
	}, nil
}
