package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/david/spending-search/internal/awards"
)

type pageData struct {
	Form       awards.FormState
	AwardTypes []awards.Option
	Searched   bool
	Error      string
	View       awards.ResultsView
	TotalText  string
	PrevURL    string
	NextURL    string
}

// handleIndex serves the search form and, once submitted, one page of results.
// A submitted form carries no page, so every new search starts on page 1;
// Prev/Next links carry the form plus the neighbouring page.
func (s *Server) handleIndex(c echo.Context) error {
	q := c.QueryParams()
	form := awards.FormStateFromValues(q)
	data := pageData{
		Form:       form,
		AwardTypes: awards.AwardTypeOptions,
	}

	if q.Get("search") == "" {
		return s.render(c, data)
	}
	data.Searched = true

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	view, err := s.Client.FetchResults(c.Request().Context(), form, page)
	if err != nil {
		// The UI skips the proxy, so this is the upstream's own detail, unwrapped.
		c.Logger().Errorf("Search failed: %v", err)
		data.Error = awards.UserMessage(err)
		return s.render(c, data)
	}

	data.View = view
	data.TotalText = awards.FormatCount(view.Total)
	if view.Pagination.PrevEnabled {
		data.PrevURL = pageURL(form, page-1)
	}
	if view.Pagination.NextEnabled {
		data.NextURL = pageURL(form, page+1)
	}
	return s.render(c, data)
}

func (s *Server) render(c echo.Context, data pageData) error {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		c.Logger().Errorf("Rendering page: %v", err)
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func pageURL(form awards.FormState, page int) string {
	v := form.Values()
	v.Set("search", "1")
	v.Set("page", strconv.Itoa(page))
	return "/?" + v.Encode()
}
