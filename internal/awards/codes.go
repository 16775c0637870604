package awards

// Group aliases accepted in FormState.AwardType.
const (
	AllContracts = "all_contracts"
	AllIDVs      = "all_idvs"
	AllGrants    = "all_grants"
)

var (
	ContractCodes = []string{"A", "B", "C", "D"}
	IDVCodes      = []string{"IDV_A", "IDV_B", "IDV_B_A", "IDV_B_B", "IDV_B_C", "IDV_C", "IDV_D", "IDV_E"}
	GrantCodes    = []string{"02", "03", "04", "05"}

	// DefaultAwardTypeCodes is used when no recognised award type is selected.
	DefaultAwardTypeCodes = ContractCodes
)

// FixedFields is the column list requested on every search call. The upstream
// rejects unknown names, so keep it in sync with models.AwardRow.
var FixedFields = []string{
	"Awarding Agency",
	"Awarding Agency Code",
	"Awarding Sub Agency",
	"Awarding Sub Agency Code",
	"Funding Agency",
	"Funding Agency Code",
	"Funding Sub Agency",
	"Funding Sub Agency Code",
	"Award ID",
	"Award Amount",
	"Infrastructure Outlays",
	"Infrastructure Obligations",
	"Description",
	"Award Type",
	"Primary Place of Performance",
	"Last Modified Date",
	"Base Obligation Date",
	"Recipient Name",
	"Recipient UEI",
	"recipient_id",
	"prime_award_recipient_id",
}

// Option is a selectable award type with a human label.
type Option struct {
	Value string
	Label string
}

// AwardTypeOptions lists the aliases first, then every single code.
var AwardTypeOptions = []Option{
	{AllContracts, "All contracts"},
	{AllGrants, "All grants"},
	{AllIDVs, "All IDVs"},
	{"A", "BPA Call"},
	{"B", "Purchase Order"},
	{"C", "Delivery Order"},
	{"D", "Definitive Contract"},
	{"02", "Block Grant"},
	{"03", "Formula Grant"},
	{"04", "Project Grant"},
	{"05", "Cooperative Agreement"},
	{"IDV_A", "GWAC Government Wide Acquisition Contract"},
	{"IDV_B", "IDC Multi-Agency Contract, Other Indefinite Delivery Contract"},
	{"IDV_B_A", "IDC Indefinite Delivery Contract / Requirements"},
	{"IDV_B_B", "IDC Indefinite Delivery Contract / Indefinite Quantity"},
	{"IDV_B_C", "IDC Indefinite Delivery Contract / Definite Quantity"},
	{"IDV_C", "FSS Federal Supply Schedule"},
	{"IDV_D", "BOA Basic Ordering Agreement"},
	{"IDV_E", "BPA Blanket Purchase Agreement"},
}

var singleCodes = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, group := range [][]string{ContractCodes, IDVCodes, GrantCodes} {
		for _, c := range group {
			m[c] = struct{}{}
		}
	}
	return m
}()

// IsKnownAwardType reports whether v is an alias or a single recognised code.
func IsKnownAwardType(v string) bool {
	switch v {
	case AllContracts, AllIDVs, AllGrants:
		return true
	}
	_, ok := singleCodes[v]
	return ok
}
