package claim

import "github.com/iris-health/medicare-repricer/internal/diagnostics"

// PFSDetail carries every intermediate PFS derivation field so a priced
// line is fully auditable.
type PFSDetail struct {
	SelectedFacility bool    `json:"selected_facility"`
	WorkRVU          float64 `json:"work_rvu"`
	PERVU            float64 `json:"pe_rvu"`
	MPRVU            float64 `json:"mp_rvu"`
	WorkGPCI         float64 `json:"work_gpci"`
	PEGPCI           float64 `json:"pe_gpci"`
	MPGPCI           float64 `json:"mp_gpci"`
	Locality         string  `json:"locality"`
	ConversionFactor float64 `json:"conversion_factor"`
	ModifierTrail    []string `json:"modifier_trail,omitempty"`
	MPPRRank         int     `json:"mppr_rank,omitempty"`
	MPPRApplied      bool    `json:"mppr_applied"`
	Units            int     `json:"units"`
	BaseAmount       float64 `json:"base_amount"`
}

// IPPSDetail carries every intermediate IPPS derivation field.
type IPPSDetail struct {
	MSDRG            string  `json:"ms_drg"`
	HospitalName     string  `json:"hospital_name"`
	RelativeWeight   float64 `json:"relative_weight"`
	WageIndex        float64 `json:"wage_index"`
	OperatingPayment float64 `json:"operating_payment"`
	CapitalPayment   float64 `json:"capital_payment"`
	BasePayment      float64 `json:"base_payment"`
	IMEAdjustment    float64 `json:"ime_adjustment"`
	DSHAdjustment    float64 `json:"dsh_adjustment"`
	OutlierPayment   float64 `json:"outlier_payment"`
	CoveredDays      int     `json:"covered_days"`
}

// RepricedLine is the priced output for one input ClaimLine.
type RepricedLine struct {
	LineNumber    int    `json:"line_number"`
	ProcedureCode string `json:"procedure_code,omitempty"`

	PFS  *PFSDetail  `json:"pfs,omitempty"`
	IPPS *IPPSDetail `json:"ipps,omitempty"`

	MedicareAllowed float64              `json:"medicare_allowed"`
	Diagnostics     diagnostics.Bag      `json:"diagnostics"`
}

// HasFatalError reports whether this line failed to price.
func (l RepricedLine) HasFatalError() bool {
	return l.Diagnostics.HasFatal()
}

// RepricedClaim is the output of one repricing invocation.
type RepricedClaim struct {
	ClaimID     string         `json:"claim_id"`
	Lines       []RepricedLine `json:"lines"`
	TotalAllowed float64       `json:"total_allowed"`
}
