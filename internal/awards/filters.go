package awards

import (
	"log"
	"strings"
	"time"
)

const (
	dateLayout        = "2006-01-02"
	defaultWindowDays = 180
)

// FilterSet is the filters object sent upstream. Optional keys are omitted
// rather than sent empty.
type FilterSet struct {
	Keywords                []string       `json:"keywords,omitempty"`
	AwardTypeCodes          []string       `json:"award_type_codes"`
	TimePeriod              []TimePeriod   `json:"time_period"`
	Agencies                []AgencyFilter `json:"agencies,omitempty"`
	PlaceOfPerformanceScope string         `json:"place_of_performance_scope,omitempty"`
	RecipientScope          string         `json:"recipient_scope,omitempty"`
	RecipientSearchText     []string       `json:"recipient_search_text,omitempty"`
}

type TimePeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	DateType  string `json:"date_type,omitempty"`
}

type AgencyFilter struct {
	Type        string `json:"type"` // awarding or funding
	Tier        string `json:"tier"` // toptier or subtier
	Name        string `json:"name"`
	TopTierName string `json:"toptier_name,omitempty"`
}

// BuildFilters derives the upstream filters from the form using the current time
// for any defaulted date bound.
func BuildFilters(form FormState) FilterSet {
	return BuildFiltersAt(form, time.Now())
}

// BuildFiltersAt is BuildFilters with an explicit clock. Calendar days are taken
// in now's location.
func BuildFiltersAt(form FormState, now time.Time) FilterSet {
	form = form.Normalized()

	filters := FilterSet{
		AwardTypeCodes: resolveAwardTypeCodes(form.AwardType),
		TimePeriod:     []TimePeriod{resolveTimePeriod(form, now)},
	}

	if form.Keyword != "" {
		filters.Keywords = []string{form.Keyword}
	}
	if agency, ok := resolveAgency(form.AgencyType, form.SubAgencyType, form.AgencyDetails); ok {
		filters.Agencies = []AgencyFilter{agency}
	}
	filters.PlaceOfPerformanceScope = form.PlaceOfPerformanceScope
	filters.RecipientScope = form.RecipientScope
	if tokens := splitCSV(form.RecipientSearchText); len(tokens) > 0 {
		filters.RecipientSearchText = tokens
	}

	return filters
}

func resolveAwardTypeCodes(awardType string) []string {
	switch awardType {
	case AllContracts:
		return clone(ContractCodes)
	case AllIDVs:
		return clone(IDVCodes)
	case AllGrants:
		return clone(GrantCodes)
	}
	if _, ok := singleCodes[awardType]; ok {
		return []string{awardType}
	}
	log.Printf("[Filters] WARN award type %q not recognised, using default contract codes", awardType)
	return clone(DefaultAwardTypeCodes)
}

func resolveTimePeriod(form FormState, now time.Time) TimePeriod {
	tp := TimePeriod{
		StartDate: form.StartDate,
		EndDate:   form.EndDate,
		DateType:  form.DateType,
	}
	if tp.StartDate == "" || tp.EndDate == "" {
		start, end := defaultWindow(now)
		if tp.StartDate == "" {
			tp.StartDate = start
		}
		if tp.EndDate == "" {
			tp.EndDate = end
		}
	}
	return tp
}

// defaultWindow returns the rolling window ending today.
func defaultWindow(now time.Time) (string, string) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -defaultWindowDays).Format(dateLayout), today.Format(dateLayout)
}

// resolveAgency applies the agency table top to bottom. A sub-tier name always
// wins over the top-tier one; agencyType only matters when subAgencyType is empty.
func resolveAgency(agencyType, subAgencyType, agencyDetails string) (AgencyFilter, bool) {
	kind := agencyDetails
	if kind == "" {
		kind = "awarding"
	}

	switch {
	case subAgencyType != "":
		return AgencyFilter{Type: kind, Tier: "subtier", Name: subAgencyType}, true
	case agencyType != "":
		return AgencyFilter{Type: kind, Tier: "toptier", Name: agencyType, TopTierName: agencyType}, true
	}
	return AgencyFilter{}, false
}

// splitCSV splits a comma-separated value into trimmed non-empty strings.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
