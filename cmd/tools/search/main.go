package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/david/spending-search/internal/awards"
	"github.com/david/spending-search/internal/upstream"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8081", "Proxy base URL")
	direct := flag.Bool("direct", false, "Call the USAspending API directly instead of the proxy")
	siteURL := flag.String("site-url", awards.DefaultSiteURL, "Public site used for links")
	timeoutSec := flag.Int("timeout-sec", 60, "HTTP timeout in seconds")
	page := flag.Int("page", 1, "Page to fetch")
	interactive := flag.Bool("interactive", false, "Page through results with n/p/q")
	showLinks := flag.Bool("links", false, "Print recipient and award links")

	var form awards.FormState
	flag.StringVar(&form.Keyword, "keyword", "", "Keyword")
	flag.StringVar(&form.AgencyType, "agency", "", "Top-tier agency name")
	flag.StringVar(&form.SubAgencyType, "sub-agency", "", "Sub-tier agency name")
	flag.StringVar(&form.AgencyDetails, "agency-details", "", "awarding or funding")
	flag.StringVar(&form.PlaceOfPerformanceScope, "pop-scope", "", "Place of performance scope (domestic, foreign)")
	flag.StringVar(&form.RecipientScope, "recipient-scope", "", "Recipient scope (domestic, foreign)")
	flag.StringVar(&form.RecipientSearchText, "recipients", "", "Comma-separated recipient names")
	flag.StringVar(&form.AwardType, "award-type", "", "Award type code or all_contracts, all_grants, all_idvs")
	flag.StringVar(&form.StartDate, "start", "", "Start date YYYY-MM-DD")
	flag.StringVar(&form.EndDate, "end", "", "End date YYYY-MM-DD")
	flag.StringVar(&form.DateType, "date-type", "", "Date type (action_date, last_modified_date, ...)")
	flag.Parse()

	if form.AwardType != "" && !awards.IsKnownAwardType(form.AwardType) {
		fmt.Fprintf(os.Stderr, "warning: unknown award type %q, contracts will be searched\n", form.AwardType)
	}

	client := awards.NewClient(*baseURL, awards.ProxyEndpoints)
	if *direct {
		client = awards.NewClient(upstream.DefaultBaseURL, awards.UpstreamEndpoints)
	}
	client.HTTP.Timeout = time.Duration(*timeoutSec) * time.Second
	client.Renderer = awards.NewRenderer(*siteURL)

	session := awards.NewSession(client, form)
	ctx := context.Background()

	cycle := session.Controller.SubmitAt(*page)

	if err := runCycle(ctx, session, cycle, *showLinks); err != nil {
		exitErr(err)
	}
	if !*interactive {
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("[n]ext, [p]rev, [q]uit: ")
		if !scanner.Scan() {
			return
		}

		var (
			next awards.Cycle
			ok   bool
		)
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n":
			next, ok = session.Controller.Next()
		case "p":
			next, ok = session.Controller.Prev()
		case "q", "":
			return
		default:
			continue
		}
		if !ok {
			fmt.Println("No page in that direction.")
			continue
		}
		if err := runCycle(ctx, session, next, *showLinks); err != nil {
			fmt.Fprintln(os.Stderr, awards.UserMessage(err))
		}
	}
}

func runCycle(ctx context.Context, session *awards.Session, cycle awards.Cycle, showLinks bool) error {
	view, applied, err := session.Run(ctx, cycle)
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}
	printView(view, showLinks)
	return nil
}

func printView(view awards.ResultsView, showLinks bool) {
	if view.Table.Empty() {
		fmt.Println(view.Table.Placeholder)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	header := table.Row{"Recipient", "Award ID", "Type", "Description", "Amount"}
	if showLinks {
		header = append(header, "Recipient link", "Award link")
	}
	t.AppendHeader(header)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: 60},
		{Number: 5, Align: text.AlignRight},
	})

	for _, r := range view.Table.Rows {
		row := table.Row{r.RecipientName, r.AwardID, r.AwardType, r.Description, r.Amount}
		if showLinks {
			row = append(row, r.RecipientURL, r.AwardURL)
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"", "", "", "Showing", fmt.Sprintf("%d-%d of %s",
		view.Pagination.StartRecord, view.Pagination.EndRecord, awards.FormatCount(view.Total))})
	t.Render()
}

func exitErr(err error) {
	var apiErr *awards.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "error: %s\n", awards.UserMessage(err))
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
