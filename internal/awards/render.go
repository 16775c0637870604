package awards

import (
	"math"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/david/spending-search/internal/models"
)

const (
	// DefaultSiteURL is the public USAspending site used for outbound links.
	DefaultSiteURL = "https://www.usaspending.gov"

	NoResultsMessage = "No results found for the selected filters."
	notAvailable     = "N/A"
)

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// RenderedRow is one table row ready for display. Upstream strings are kept
// verbatim and must be emitted as text; the HTML adapter escapes them.
type RenderedRow struct {
	RecipientName string
	RecipientURL  string
	AwardID       string
	AwardURL      string
	AwardType     string
	Description   string
	Amount        string
}

// Table is the rendered result area: either rows or a placeholder message.
type Table struct {
	Rows        []RenderedRow
	Placeholder string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Renderer maps API rows to display rows and builds links into the public site.
type Renderer struct {
	SiteURL string
}

func NewRenderer(siteURL string) Renderer {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	return Renderer{SiteURL: strings.TrimRight(siteURL, "/")}
}

// Render builds the result table for one page.
func (r Renderer) Render(res models.SearchResponse, form FormState) Table {
	if len(res.Results) == 0 {
		return Table{Placeholder: NoResultsMessage}
	}

	form = form.Normalized()
	rows := make([]RenderedRow, 0, len(res.Results))
	for _, award := range res.Results {
		rows = append(rows, RenderedRow{
			RecipientName: award.RecipientName,
			RecipientURL:  r.RecipientURL(award.RecipientName, form.AgencyType, form.SubAgencyType),
			AwardID:       award.AwardID,
			AwardURL:      r.AwardURL(award.GeneratedInternalID),
			AwardType:     award.AwardType,
			Description:   orNA(award.Description),
			Amount:        FormatAmount(award.AwardAmount),
		})
	}
	return Table{Rows: rows}
}

// RecipientURL is a keyword search for the quoted recipient, narrowed by the
// selected agency names when present.
func (r Renderer) RecipientURL(recipient, agencyType, subAgencyType string) string {
	terms := []string{quote(recipient)}
	for _, extra := range []string{agencyType, subAgencyType} {
		if extra = strings.TrimSpace(extra); extra != "" {
			terms = append(terms, quote(extra))
		}
	}
	return r.SiteURL + "/keyword_search/" + url.PathEscape(strings.Join(terms, " AND "))
}

// AwardURL links to the award summary page.
func (r Renderer) AwardURL(generatedID string) string {
	return r.SiteURL + "/award/" + url.PathEscape(generatedID)
}

// FormatAmount renders a dollar amount with grouping, e.g. $1,234.50.
// Zero is treated as missing.
func FormatAmount(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return notAvailable
	}
	s := "$" + amountPrinter.Sprintf("%.2f", math.Abs(v))
	if v < 0 {
		s = "-" + s
	}
	return s
}

func quote(s string) string {
	return `"` + s + `"`
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// ResultsView is everything the UI shows after one fetch cycle.
type ResultsView struct {
	Table      Table
	Pagination Pagination
	Total      int
}

// NewResultsView combines the table and pagination. An empty page hides both
// pagination controls whatever page_metadata says.
func NewResultsView(r Renderer, res models.SearchResponse, form FormState, total int) ResultsView {
	view := ResultsView{
		Table: r.Render(res, form),
		Total: total,
	}
	if !view.Table.Empty() {
		view.Pagination = ComputePagination(res)
	}
	return view
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return amountPrinter.Sprintf("%d", n)
}
