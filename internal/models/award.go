package models

import "encoding/json"

// AwardRow is one result of the spending_by_award search. Only the fields the
// renderer reads are typed; the rest are carried through for callers that want them.
type AwardRow struct {
	InternalID            int64           `json:"internal_id"`
	GeneratedInternalID   string          `json:"generated_internal_id"`
	AwardID               string          `json:"Award ID"`
	AwardAmount           float64         `json:"Award Amount"`
	AwardType             string          `json:"Award Type"`
	Description           string          `json:"Description"`
	RecipientName         string          `json:"Recipient Name"`
	RecipientUEI          string          `json:"Recipient UEI"`
	RecipientID           string          `json:"recipient_id"`
	PrimeAwardRecipientID string          `json:"prime_award_recipient_id"`
	AwardingAgency        string          `json:"Awarding Agency"`
	AwardingAgencyCode    string          `json:"Awarding Agency Code"`
	AwardingSubAgency     string          `json:"Awarding Sub Agency"`
	AwardingSubAgencyCode string          `json:"Awarding Sub Agency Code"`
	FundingAgency         string          `json:"Funding Agency"`
	FundingAgencyCode     string          `json:"Funding Agency Code"`
	FundingSubAgency      string          `json:"Funding Sub Agency"`
	FundingSubAgencyCode  string          `json:"Funding Sub Agency Code"`
	InfraOutlays          *float64        `json:"Infrastructure Outlays"`
	InfraObligations      *float64        `json:"Infrastructure Obligations"`
	PlaceOfPerformance    json.RawMessage `json:"Primary Place of Performance,omitempty"`
	LastModifiedDate      string          `json:"Last Modified Date"`
	BaseObligationDate    string          `json:"Base Obligation Date"`
}

// PageMetadata is the paging block of a search response. HasNext is the only
// forward signal; the API does not report a page count.
type PageMetadata struct {
	Page    int  `json:"page"`
	HasNext bool `json:"hasNext"`
}

// SearchResponse is the body returned by the award search endpoint.
type SearchResponse struct {
	Limit        int          `json:"limit,omitempty"`
	Results      []AwardRow   `json:"results"`
	PageMetadata PageMetadata `json:"page_metadata"`
	Messages     []string     `json:"messages,omitempty"`
}

// CountResponse buckets matching awards by category (contracts, grants, idvs, ...).
type CountResponse struct {
	Results  map[string]int `json:"results"`
	Messages []string       `json:"messages,omitempty"`
}

// Total sums every bucket.
func (c CountResponse) Total() int {
	total := 0
	for _, n := range c.Results {
		total += n
	}
	return total
}
