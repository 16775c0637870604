package awards

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/david/spending-search/internal/metrics"
	"github.com/david/spending-search/internal/models"
	"github.com/david/spending-search/internal/upstream"
)

// GenericErrorMessage is shown when a failure carried no detail text.
const GenericErrorMessage = "Failed to fetch results. Please try again."

// Endpoints are the count and search paths relative to Client.BaseURL.
type Endpoints struct {
	Count  string
	Search string
}

var (
	// ProxyEndpoints targets this service's own pass-through endpoints.
	ProxyEndpoints = Endpoints{Count: "/api/count", Search: "/api/search"}
	// UpstreamEndpoints targets the USAspending API directly.
	UpstreamEndpoints = Endpoints{
		Count:  upstream.CountEndpoint.Path,
		Search: upstream.SearchEndpoint.Path,
	}
)

// PageRequest is the body posted to the search endpoint.
type PageRequest struct {
	Filters FilterSet `json:"filters"`
	Fields  []string  `json:"fields"`
	Limit   int       `json:"limit"`
	Page    int       `json:"page"`
}

type countRequest struct {
	Filters FilterSet `json:"filters"`
}

// APIError is a non-2xx answer from the proxy or the upstream API.
type APIError struct {
	StatusCode    int
	Detail        string
	OriginalError json.RawMessage
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API returned %d", e.StatusCode)
}

// UserMessage returns the text to show next to the results area for err.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return GenericErrorMessage
}

// Client runs the count and search calls for one search form.
type Client struct {
	HTTP      *http.Client
	BaseURL   string
	Endpoints Endpoints
	Renderer  Renderer
}

func NewClient(baseURL string, endpoints Endpoints) *Client {
	return &Client{
		HTTP: &http.Client{
			Timeout: 60 * time.Second,
		},
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Endpoints: endpoints,
		Renderer:  NewRenderer(""),
	}
}

// FetchTotalCount returns the number of awards matching filters, summed over
// every award category. Failures are logged and reported as 0.
func (c *Client) FetchTotalCount(ctx context.Context, filters FilterSet) int {
	var resp models.CountResponse
	if err := c.post(ctx, c.Endpoints.Count, countRequest{Filters: filters}, &resp); err != nil {
		log.Printf("[Client] Count request failed, reporting 0: %v", err)
		metrics.CountFallbacksTotal.Inc()
		return 0
	}
	return resp.Total()
}

// FetchPagedResults fetches one page of awards. Errors are returned to the
// caller unchanged; there is no retry.
func (c *Client) FetchPagedResults(ctx context.Context, filters FilterSet, page int) (models.SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	req := PageRequest{
		Filters: filters,
		Fields:  FixedFields,
		Limit:   PageLimit,
		Page:    page,
	}

	var resp models.SearchResponse
	if err := c.post(ctx, c.Endpoints.Search, req, &resp); err != nil {
		return models.SearchResponse{}, err
	}
	return resp, nil
}

// FetchResults runs one full cycle: filters are rebuilt from form, then the
// count and the page are fetched together. The count leg never fails, so a
// broken count cannot keep results from rendering. Both legs run on ctx, so a
// failed page fetch does not cancel the count.
func (c *Client) FetchResults(ctx context.Context, form FormState, page int) (ResultsView, error) {
	filters := BuildFilters(form)

	var (
		total int
		res   models.SearchResponse
	)
	var g errgroup.Group
	g.Go(func() error {
		total = c.FetchTotalCount(ctx, filters)
		return nil
	})
	g.Go(func() error {
		var err error
		res, err = c.FetchPagedResults(ctx, filters, page)
		return err
	})
	if err := g.Wait(); err != nil {
		return ResultsView{}, err
	}

	return NewResultsView(c.Renderer, res, form, total), nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, _ := io.ReadAll(resp.Body)

	var body struct {
		Detail        string          `json:"detail"`
		OriginalError json.RawMessage `json:"originalError"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Detail = body.Detail
		apiErr.OriginalError = body.OriginalError
	}
	return apiErr
}
