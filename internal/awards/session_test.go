package awards

import (
	"context"
	"io"
	"net/http"
	"testing"
)

func TestSession_AppliesLatestCycleOnly(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/count" {
			_, _ = io.WriteString(w, `{"results":{"contracts":25}}`)
			return
		}
		_, _ = io.WriteString(w, `{"results":[{"Recipient Name":"Acme","Award ID":"A1"}],"page_metadata":{"page":1,"hasNext":true}}`)
	})
	session := NewSession(client, FormState{Keyword: "laser"})

	stale := session.Controller.Submit()
	latest := session.Controller.Submit()

	if _, applied, err := session.Run(context.Background(), stale); err != nil || applied {
		t.Fatalf("expected stale cycle to be dropped, applied=%v err=%v", applied, err)
	}

	view, applied, err := session.Run(context.Background(), latest)
	if err != nil || !applied {
		t.Fatalf("expected latest cycle to apply, applied=%v err=%v", applied, err)
	}
	if view.Total != 25 {
		t.Fatalf("expected total 25, got %d", view.Total)
	}

	next, ok := session.Controller.Next()
	if !ok || next.Page != 2 {
		t.Fatalf("expected Next to be enabled after applying a hasNext page, got %+v ok=%v", next, ok)
	}
}

func TestSession_StaleErrorIsDiscarded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	session := NewSession(client, FormState{})

	stale := session.Controller.Submit()
	session.Controller.Submit()

	if _, applied, err := session.Run(context.Background(), stale); err != nil || applied {
		t.Fatalf("expected stale failure to be discarded, applied=%v err=%v", applied, err)
	}
}
