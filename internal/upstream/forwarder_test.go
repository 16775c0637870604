package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestForward_RelaysBodyVerbatim(t *testing.T) {
	reqBody := `{"filters":{"keywords":["laser"]},  "page":1}`
	var (
		gotBody string
		gotPath string
		gotID   string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotPath = r.URL.Path
		gotID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"results":[],"page_metadata":{"page":1,"hasNext":false}}`)
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL+"/", 5*time.Second)
	resp, err := f.Forward(context.Background(), SearchEndpoint, []byte(reqBody), "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != SearchEndpoint.Path {
		t.Errorf("expected path %s, got %s", SearchEndpoint.Path, gotPath)
	}
	if gotBody != reqBody {
		t.Errorf("body was modified: %q", gotBody)
	}
	if gotID != "req-1" {
		t.Errorf("expected request id to be forwarded, got %q", gotID)
	}
	if resp.StatusCode != http.StatusOK || resp.ContentType != "application/json" {
		t.Errorf("unexpected response meta %d %s", resp.StatusCode, resp.ContentType)
	}
	if string(resp.Body) != `{"results":[],"page_metadata":{"page":1,"hasNext":false}}` {
		t.Errorf("unexpected body %s", resp.Body)
	}
}

func TestForward_StatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"validation", http.StatusUnprocessableEntity, `{"detail":"Missing value: 'filters|award_type_codes'"}`},
		{"server error", http.StatusInternalServerError, `upstream exploded`},
		{"empty", http.StatusServiceUnavailable, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewForwarder(srv.URL, time.Second).Forward(context.Background(), CountEndpoint, []byte(`{}`), "")
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != tt.status || string(statusErr.Body) != tt.body {
				t.Errorf("unexpected status error %d %q", statusErr.StatusCode, statusErr.Body)
			}
		})
	}
}

func TestForward_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewForwarder(addr, time.Second).Forward(context.Background(), SearchEndpoint, []byte(`{}`), "")
	if err == nil {
		t.Fatal("expected an error")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Fatalf("transport failure must not be a status error: %v", err)
	}
}

func TestNewForwarder_Defaults(t *testing.T) {
	f := NewForwarder("", 0)
	if f.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %s", f.BaseURL)
	}
	if f.Client.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", f.Client.Timeout)
	}
}
