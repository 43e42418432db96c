// Package refdata implements the Reference Data Store: it loads a directory
// of normalized JSON files into read-only, indexed in-memory tables and
// exposes typed O(1)-expected lookups. Reference entities are immutable
// after Load returns; no code path in this package mutates a Store's tables
// thereafter.
package refdata

// RVURecord is keyed by (procedure_code, optional modifier). All six RVU
// values are non-negative; ProcedureCode is a 5-character CPT/HCPCS token
// or a "D"-prefixed dental code.
type RVURecord struct {
	ProcedureCode string  `json:"procedure_code"`
	Modifier      *string `json:"modifier"`
	Description   string  `json:"description"`

	WorkRVUNonFacility float64 `json:"work_rvu_nf"`
	PERVUNonFacility   float64 `json:"pe_rvu_nf"`
	MPRVUNonFacility   float64 `json:"mp_rvu_nf"`

	WorkRVUFacility float64 `json:"work_rvu_f"`
	PERVUFacility   float64 `json:"pe_rvu_f"`
	MPRVUFacility   float64 `json:"mp_rvu_f"`

	// MPPRIndicator is 0 (not subject to MPPR) or 2 (subject to the 50%
	// multiple-procedure payment reduction).
	MPPRIndicator int `json:"mp_indicator"`
}

// RVUTriple is the three RVU components selected for a given facility
// setting (facility or non-facility).
type RVUTriple struct {
	Work float64
	PE   float64
	MP   float64
}

// NonFacilityTriple returns the non-facility RVU components.
func (r RVURecord) NonFacilityTriple() RVUTriple {
	return RVUTriple{Work: r.WorkRVUNonFacility, PE: r.PERVUNonFacility, MP: r.MPRVUNonFacility}
}

// FacilityTriple returns the facility RVU components.
func (r RVURecord) FacilityTriple() RVUTriple {
	return RVUTriple{Work: r.WorkRVUFacility, PE: r.PERVUFacility, MP: r.MPRVUFacility}
}

// Sum returns work + pe + mp, the MPPR candidacy score.
func (t RVUTriple) Sum() float64 {
	return t.Work + t.PE + t.MP
}

// GPCIRecord is keyed by a 2-character locality code. Locality "00" holds
// national averages and is the documented fallback.
type GPCIRecord struct {
	Locality     string  `json:"locality"`
	LocalityName string  `json:"locality_name"`
	WorkGPCI     float64 `json:"work_gpci"`
	PEGPCI       float64 `json:"pe_gpci"`
	MPGPCI       float64 `json:"mp_gpci"`
}

// MSDRGRecord is keyed by a 3-digit DRG code.
type MSDRGRecord struct {
	MSDRG             string  `json:"ms_drg"`
	Description       string  `json:"description"`
	RelativeWeight    float64 `json:"relative_weight"`
	GeometricMeanLOS  float64 `json:"geometric_mean_los"`
	ArithmeticMeanLOS float64 `json:"arithmetic_mean_los"`
}

// WageIndexRecord is keyed by CBSA code. CapitalWageIndex defaults to
// OperatingWageIndex when absent.
type WageIndexRecord struct {
	CBSACode           string   `json:"cbsa_code"`
	AreaName           string   `json:"area_name"`
	OperatingWageIndex float64  `json:"wage_index"`
	CapitalWageIndex   *float64 `json:"capital_wage_index,omitempty"`
}

// ResolvedCapitalWageIndex returns CapitalWageIndex if present, else
// OperatingWageIndex.
func (w WageIndexRecord) ResolvedCapitalWageIndex() float64 {
	if w.CapitalWageIndex != nil {
		return *w.CapitalWageIndex
	}
	return w.OperatingWageIndex
}

// HospitalRecord is keyed by a 6-character provider number.
type HospitalRecord struct {
	ProviderNumber string `json:"provider_number"`
	HospitalName   string `json:"hospital_name"`
	CBSACode       string `json:"cbsa_code"`

	// WageIndex is the hospital's cached wage index; if zero the IPPS
	// Calculator falls back to a CBSA lookup.
	WageIndex float64 `json:"wage_index"`

	IsTeachingHospital       bool     `json:"is_teaching_hospital"`
	InternResidentToBedRatio *float64 `json:"intern_resident_to_bed_ratio,omitempty"`

	IsDSHHospital        bool     `json:"is_dsh_hospital"`
	DSHPatientPercentage *float64 `json:"dsh_patient_percentage,omitempty"`

	IsRural  bool `json:"is_rural"`
	BedCount *int `json:"bed_count,omitempty"`
}

// ICD10CMEntry is an ICD-10-CM diagnosis entry, keyed by code (normalized
// by stripping the decimal point). CC and MCC are mutually exclusive per
// code; the grouper enforces MCC > CC precedence rather than trusting data
// to never violate it.
type ICD10CMEntry struct {
	Code        string `json:"-"`
	Description string `json:"description"`
	MDC         string `json:"mdc"`
	IsCC        bool   `json:"is_cc"`
	IsMCC       bool   `json:"is_mcc"`
}

// icd10CMFile mirrors icd10_cm_data.json's nested shape:
// {version, codes: {<MDC_section>: {<code>: {...}}}}.
type icd10CMFile struct {
	Version string                              `json:"version"`
	Codes   map[string]map[string]ICD10CMEntry `json:"codes"`
}

// ICD10PCSEntry is an ICD-10-PCS procedure entry, keyed by code.
type ICD10PCSEntry struct {
	Code             string `json:"-"`
	Description      string `json:"description"`
	IsORProcedure    bool   `json:"is_or_procedure"`
	IsNonORProcedure bool   `json:"is_non_or_procedure"`
}

// icd10PCSFile mirrors icd10_pcs_data.json's nested shape:
// {version, procedures: {<group>: {<code>: {...}}}}.
type icd10PCSFile struct {
	Version    string                               `json:"version"`
	Procedures map[string]map[string]ICD10PCSEntry `json:"procedures"`
}

// MDCDefinition is keyed by a two-digit MDC tag.
type MDCDefinition struct {
	MDC        string `json:"mdc"`
	Name       string `json:"name"`
	BodySystem string `json:"body_system"`
}

// SeveritySlots maps a grouping family's severity outcome to a DRG code.
type SeveritySlots struct {
	WithMCC      string `json:"with_mcc"`
	WithCC       string `json:"with_cc"`
	WithoutCCMCC string `json:"without_cc_mcc"`
}

// GroupingRule is one surgical or medical DRG family within an MDC's rule
// set. Pattern is a simple prefix/wildcard token matched against procedure
// codes (surgical families) or diagnosis codes (medical families).
type GroupingRule struct {
	MDC         string        `json:"mdc"`
	Family      string        `json:"family"`
	Kind        string        `json:"kind"` // "surgical" or "medical"
	Pattern     string        `json:"pattern"`
	Description string        `json:"description"`
	Severity    SeveritySlots `json:"severity"`
}

// ZipLocalityEntry maps a 3-digit ZIP prefix to a Medicare locality code,
// supplementing the documented single-fallback behavior with the full
// crosswalk table.
type ZipLocalityEntry struct {
	ZipPrefix string `json:"zip_prefix"`
	Locality  string `json:"locality"`
}
