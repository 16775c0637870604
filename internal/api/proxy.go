package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/david/spending-search/internal/upstream"
)

const upstreamFailureDetail = "Error fetching data from USAspending API"

var ErrBodyNotObject = errors.New("request body must be a JSON object")

// ProxyError is the body returned when a forwarded call fails.
type ProxyError struct {
	Detail        string          `json:"detail"`
	OriginalError json.RawMessage `json:"originalError"`
}

// handleProxy forwards the request body untouched to endpoint and relays the
// upstream answer. Upstream errors keep their status; a missing response is a 500.
func (s *Server) handleProxy(endpoint upstream.Endpoint) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				return c.JSON(he.Code, ProxyError{Detail: fmt.Sprint(he.Message)})
			}
			return c.JSON(http.StatusBadRequest, ProxyError{Detail: "Invalid request body"})
		}

		if err := s.checkBody(body); err != nil {
			return c.JSON(http.StatusBadRequest, ProxyError{Detail: err.Error()})
		}

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		resp, err := s.Forwarder.Forward(c.Request().Context(), endpoint, body, requestID)
		if err != nil {
			var statusErr *upstream.StatusError
			if errors.As(err, &statusErr) {
				return c.JSON(statusErr.StatusCode, ProxyError{
					Detail:        failureDetail(statusErr.Body),
					OriginalError: originalError(statusErr.Body),
				})
			}
			c.Logger().Errorf("Proxy %s failed: %v", endpoint.Name, err)
			return c.JSON(http.StatusInternalServerError, ProxyError{Detail: upstreamFailureDetail})
		}

		contentType := resp.ContentType
		if contentType == "" {
			contentType = echo.MIMEApplicationJSON
		}
		return c.Blob(resp.StatusCode, contentType, resp.Body)
	}
}

// checkBody requires a JSON object and, when an allow-list is configured,
// rejects unknown top-level keys.
func (s *Server) checkBody(body []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return ErrBodyNotObject
	}
	if len(s.allowedKeys) == 0 {
		return nil
	}

	var rejected []string
	for k := range obj {
		if _, ok := s.allowedKeys[k]; !ok {
			rejected = append(rejected, k)
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return fmt.Errorf("fields not allowed: %s", strings.Join(rejected, ", "))
	}
	return nil
}

// failureDetail prefers the upstream's own detail message when it sent one.
func failureDetail(body []byte) string {
	var upstreamErr struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &upstreamErr); err == nil && upstreamErr.Detail != "" {
		return upstreamFailureDetail + ": " + upstreamErr.Detail
	}
	return upstreamFailureDetail
}

// originalError embeds the upstream body as JSON, or as a JSON string when it
// is not valid JSON. An empty body becomes null.
func originalError(body []byte) json.RawMessage {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	quoted, _ := json.Marshal(trimmed)
	return quoted
}
