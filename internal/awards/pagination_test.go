package awards

import (
	"testing"

	"github.com/david/spending-search/internal/models"
)

func rows(n int) []models.AwardRow {
	out := make([]models.AwardRow, n)
	for i := range out {
		out[i] = models.AwardRow{AwardID: "X", RecipientName: "R"}
	}
	return out
}

func TestComputePagination(t *testing.T) {
	tests := []struct {
		name string
		res  models.SearchResponse
		want Pagination
	}{
		{
			name: "last page full",
			res:  models.SearchResponse{Results: rows(10), PageMetadata: models.PageMetadata{Page: 3, HasNext: false}},
			want: Pagination{Page: 3, StartRecord: 21, EndRecord: 30, PrevEnabled: true, PrevVisible: true},
		},
		{
			name: "first page with next",
			res:  models.SearchResponse{Results: rows(10), PageMetadata: models.PageMetadata{Page: 1, HasNext: true}},
			want: Pagination{Page: 1, StartRecord: 1, EndRecord: 10, NextEnabled: true, NextVisible: true},
		},
		{
			name: "partial last page",
			res:  models.SearchResponse{Results: rows(4), PageMetadata: models.PageMetadata{Page: 2}},
			want: Pagination{Page: 2, StartRecord: 11, EndRecord: 14, PrevEnabled: true, PrevVisible: true},
		},
		{
			name: "middle page uses limit when hasNext",
			res:  models.SearchResponse{Results: rows(7), PageMetadata: models.PageMetadata{Page: 5, HasNext: true}},
			want: Pagination{Page: 5, StartRecord: 41, EndRecord: 50, PrevEnabled: true, PrevVisible: true, NextEnabled: true, NextVisible: true},
		},
		{
			name: "missing metadata defaults to page 1 without next",
			res:  models.SearchResponse{Results: rows(3)},
			want: Pagination{Page: 1, StartRecord: 1, EndRecord: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePagination(tt.res)
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestController_SubmitResetsToFirstPage(t *testing.T) {
	c := NewController()
	c.Submit()
	c.Apply(Cycle{Seq: 1, Page: 1}, Pagination{Page: 1, NextEnabled: true})

	next, ok := c.Next()
	if !ok || next.Page != 2 {
		t.Fatalf("expected to move to page 2, got %+v ok=%v", next, ok)
	}
	c.Apply(next, Pagination{Page: 2, PrevEnabled: true, NextEnabled: true})

	fresh := c.Submit()
	if fresh.Page != 1 || c.CurrentPage() != 1 {
		t.Fatalf("expected submit to reset to page 1, got cycle %+v current %d", fresh, c.CurrentPage())
	}
}

func TestController_NavigationRespectsEnablement(t *testing.T) {
	c := NewController()
	first := c.Submit()

	if _, ok := c.Next(); ok {
		t.Fatal("expected Next to be refused before any page was applied")
	}
	if _, ok := c.Prev(); ok {
		t.Fatal("expected Prev to be refused on page 1")
	}

	c.Apply(first, Pagination{Page: 1, NextEnabled: false})
	if _, ok := c.Next(); ok {
		t.Fatal("expected Next to be refused when hasNext is false")
	}

	c.Apply(first, Pagination{Page: 1, NextEnabled: true})
	second, ok := c.Next()
	if !ok {
		t.Fatal("expected Next to be allowed")
	}
	c.Apply(second, Pagination{Page: 2, PrevEnabled: true})

	back, ok := c.Prev()
	if !ok || back.Page != 1 {
		t.Fatalf("expected to go back to page 1, got %+v ok=%v", back, ok)
	}
}

func TestController_DropsStaleCycles(t *testing.T) {
	c := NewController()
	first := c.Submit()
	c.Apply(first, Pagination{Page: 1, NextEnabled: true})

	// Two quick Next clicks: both are issued before either response lands.
	slow, _ := c.Next()
	fast, _ := c.Next()

	if c.Apply(slow, Pagination{Page: 2}) {
		t.Fatal("expected the older cycle to be rejected")
	}
	if !c.Apply(fast, Pagination{Page: 3, PrevEnabled: true}) {
		t.Fatal("expected the latest cycle to be applied")
	}
	if fast.Seq <= slow.Seq {
		t.Fatalf("expected increasing sequence numbers, got %d then %d", slow.Seq, fast.Seq)
	}
}

func TestController_SubmitAtClampsPage(t *testing.T) {
	c := NewController()
	if cycle := c.SubmitAt(0); cycle.Page != 1 {
		t.Fatalf("expected page 1, got %d", cycle.Page)
	}
	if cycle := c.SubmitAt(4); cycle.Page != 4 {
		t.Fatalf("expected page 4, got %d", cycle.Page)
	}
}

func TestController_PrevLeavesEmptyPagePastEnd(t *testing.T) {
	c := NewController()
	jump := c.SubmitAt(7)
	// An empty page hides both controls, so nothing is enabled.
	c.Apply(jump, Pagination{})

	if _, ok := c.Next(); ok {
		t.Fatal("expected Next to be refused on an empty page")
	}
	back, ok := c.Prev()
	if !ok || back.Page != 6 {
		t.Fatalf("expected to go back to page 6, got %+v ok=%v", back, ok)
	}
}
