package awards

import (
	"context"

	"github.com/david/spending-search/internal/metrics"
)

// Session is one interactive search: a fixed form, a client and the page state.
type Session struct {
	Client     *Client
	Controller *Controller
	Form       FormState
}

func NewSession(client *Client, form FormState) *Session {
	return &Session{
		Client:     client,
		Controller: NewController(),
		Form:       form,
	}
}

// Run executes cycle and applies its result. applied is false when a newer
// cycle was issued meanwhile; the view and error are then discarded.
func (s *Session) Run(ctx context.Context, cycle Cycle) (view ResultsView, applied bool, err error) {
	view, err = s.Client.FetchResults(ctx, s.Form, cycle.Page)
	if !s.Controller.IsLatest(cycle) {
		metrics.StaleCyclesTotal.Inc()
		return ResultsView{}, false, nil
	}
	if err != nil {
		return ResultsView{}, true, err
	}
	return view, s.Controller.Apply(cycle, view.Pagination), nil
}
