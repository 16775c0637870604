package awards

import (
	"net/url"
	"strings"
)

// FormState holds the raw search form values captured at submit time.
type FormState struct {
	Keyword                 string
	AgencyType              string // top-tier agency name
	SubAgencyType           string // sub-tier agency name
	AgencyDetails           string // "awarding" or "funding"
	PlaceOfPerformanceScope string
	RecipientScope          string
	RecipientSearchText     string // comma separated
	AwardType               string
	StartDate               string // YYYY-MM-DD
	EndDate                 string // YYYY-MM-DD
	DateType                string
}

// Query parameter names used by the HTML form.
const (
	paramKeyword        = "keyword"
	paramAgency         = "agency"
	paramSubAgency      = "sub_agency"
	paramAgencyDetails  = "agency_details"
	paramPopScope       = "pop_scope"
	paramRecipientScope = "recipient_scope"
	paramRecipients     = "recipients"
	paramAwardType      = "award_type"
	paramStartDate      = "start_date"
	paramEndDate        = "end_date"
	paramDateType       = "date_type"
)

// Normalized returns a copy with every field trimmed.
func (f FormState) Normalized() FormState {
	return FormState{
		Keyword:                 strings.TrimSpace(f.Keyword),
		AgencyType:              strings.TrimSpace(f.AgencyType),
		SubAgencyType:           strings.TrimSpace(f.SubAgencyType),
		AgencyDetails:           strings.TrimSpace(f.AgencyDetails),
		PlaceOfPerformanceScope: strings.TrimSpace(f.PlaceOfPerformanceScope),
		RecipientScope:          strings.TrimSpace(f.RecipientScope),
		RecipientSearchText:     strings.TrimSpace(f.RecipientSearchText),
		AwardType:               strings.TrimSpace(f.AwardType),
		StartDate:               strings.TrimSpace(f.StartDate),
		EndDate:                 strings.TrimSpace(f.EndDate),
		DateType:                strings.TrimSpace(f.DateType),
	}
}

// FormStateFromValues reads the form from query or POST values.
func FormStateFromValues(v url.Values) FormState {
	return FormState{
		Keyword:                 v.Get(paramKeyword),
		AgencyType:              v.Get(paramAgency),
		SubAgencyType:           v.Get(paramSubAgency),
		AgencyDetails:           v.Get(paramAgencyDetails),
		PlaceOfPerformanceScope: v.Get(paramPopScope),
		RecipientScope:          v.Get(paramRecipientScope),
		RecipientSearchText:     v.Get(paramRecipients),
		AwardType:               v.Get(paramAwardType),
		StartDate:               v.Get(paramStartDate),
		EndDate:                 v.Get(paramEndDate),
		DateType:                v.Get(paramDateType),
	}.Normalized()
}

// Values encodes the non-empty fields back into query values, used to build the
// Prev/Next links so that every page refetch recomputes filters from the form.
func (f FormState) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set(paramKeyword, f.Keyword)
	set(paramAgency, f.AgencyType)
	set(paramSubAgency, f.SubAgencyType)
	set(paramAgencyDetails, f.AgencyDetails)
	set(paramPopScope, f.PlaceOfPerformanceScope)
	set(paramRecipientScope, f.RecipientScope)
	set(paramRecipients, f.RecipientSearchText)
	set(paramAwardType, f.AwardType)
	set(paramStartDate, f.StartDate)
	set(paramEndDate, f.EndDate)
	set(paramDateType, f.DateType)
	return v
}
