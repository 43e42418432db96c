// Package pfs implements the Physician Fee Schedule Calculator: the RBRVS
// formula with geographic adjustment, facility/non-facility selection,
// modifier effects, and Multiple Procedure Payment Reduction.
package pfs

import (
	"math"
	"strings"

	"github.com/iris-health/medicare-repricer/internal/diagnostics"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

// NationalAverageLocality is the reserved GPCI fallback locality.
const NationalAverageLocality = "00"

// facilityPOS is the set of place-of-service codes priced under the
// facility RVU regime.
var facilityPOS = map[string]bool{
	"21": true, "22": true, "23": true, "24": true, "26": true,
	"31": true, "34": true, "51": true, "52": true, "53": true,
	"56": true, "61": true,
}

// dentalPrefix and dmePrefix mark service types with no pricing methodology
// in this core; they are rejected before an RVU lookup is attempted.
// Anesthesia codes are the 5-digit numeric CPT range 00100-01999 and are
// detected separately, since they carry no letter prefix of their own.
const (
	dentalPrefix        = "D"
	dmePrefix           = "E"
	anesthesiaRangeLow  = "00100"
	anesthesiaRangeHigh = "01999"
)

// isAnesthesiaCode reports whether code falls in the 5-digit numeric CPT
// anesthesia range 00100-01999.
func isAnesthesiaCode(code string) bool {
	if len(code) != 5 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return code >= anesthesiaRangeLow && code <= anesthesiaRangeHigh
}

// Calculator computes PFS-allowed amounts over a read-only Data Store
// handle.
type Calculator struct {
	store *refdata.Store
}

// New builds a Calculator over store.
func New(store *refdata.Store) *Calculator {
	return &Calculator{store: store}
}

// Input is the per-line contract for one PFS computation. Locality must
// already be resolved (the Repricer Orchestrator owns ZIP-to-locality
// resolution and the locality-or-zip-required fatal check); this
// Calculator only handles the GPCI-table "00" fallback for a locality that
// has no GPCI row.
type Input struct {
	ProcedureCode  string
	Modifiers      []string
	PlaceOfService string
	Locality       string
	Units          int
	// Rank is the externally assigned MPPR rank (1 = primary). Unranked
	// lines pass 1.
	Rank int
}

// Result is the allowed amount and full derivation for one PFS line.
type Result struct {
	Allowed       float64
	Detail        Detail
	Diagnostics   diagnostics.Bag
}

// Detail mirrors claim.PFSDetail so callers in other packages don't need
// to depend on this package's internal working types directly.
type Detail struct {
	SelectedFacility bool
	WorkRVU          float64
	PERVU            float64
	MPRVU            float64
	WorkGPCI         float64
	PEGPCI           float64
	MPGPCI           float64
	Locality         string
	ConversionFactor float64
	ModifierTrail    []string
	MPPRRank         int
	MPPRApplied      bool
	Units            int
	BaseAmount       float64
}

// Calculate runs the PFS algorithm for one line: facility selection, RVU
// fetch, GPCI fetch, base payment, modifier adjustments, MPPR, units, and
// rounding.
func (c *Calculator) Calculate(in Input) Result {
	var res Result
	res.Detail.Units = resolvedUnits(in.Units)

	code := strings.ToUpper(in.ProcedureCode)
	switch {
	case strings.HasPrefix(code, dentalPrefix):
		res.Diagnostics.Add(diagnostics.New(diagnostics.CodeUnsupportedService, "dental procedure codes are not priced by this engine"))
		return res
	case strings.HasPrefix(code, dmePrefix):
		res.Diagnostics.Add(diagnostics.New(diagnostics.CodeUnsupportedService, "DME codes are not priced by this engine"))
		return res
	case isAnesthesiaCode(code):
		res.Diagnostics.Add(diagnostics.New(diagnostics.CodeUnsupportedService, "anesthesia codes are not priced by this engine"))
		return res
	}

	// Step 1: facility selection.
	res.Detail.SelectedFacility = facilityPOS[in.PlaceOfService]

	// Step 2: RVU fetch, (code, first-modifier) then (code, none).
	firstModifier := ""
	if len(in.Modifiers) > 0 {
		firstModifier = in.Modifiers[0]
	}
	rvu, ok := c.store.GetRVU(in.ProcedureCode, firstModifier)
	if !ok {
		res.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeProcedureNotFound, "procedure code %s not found", in.ProcedureCode))
		return res
	}

	triple := rvu.NonFacilityTriple()
	if res.Detail.SelectedFacility {
		triple = rvu.FacilityTriple()
	}

	// Step 3: GPCI fetch, falling back to "00".
	loc := in.Locality
	gpci, gpciOK := c.store.GetGPCI(loc)
	if !gpciOK {
		res.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeGPCIDefaulted, "gpci not found for locality %s; defaulted to national average", loc))
		gpci, _ = c.store.GetGPCI(NationalAverageLocality)
		loc = NationalAverageLocality
	}
	res.Detail.Locality = loc
	res.Detail.WorkGPCI, res.Detail.PEGPCI, res.Detail.MPGPCI = gpci.WorkGPCI, gpci.PEGPCI, gpci.MPGPCI

	// Steps 4-5: apply 26/TC as pre-computation zeroing, then compute base.
	modifierTrail := []string{}
	for _, m := range in.Modifiers {
		switch strings.ToUpper(m) {
		case "26":
			triple.PE = 0
			modifierTrail = append(modifierTrail, "26: professional component, pe_rvu zeroed")
		case "TC":
			triple.Work = 0
			triple.MP = 0
			modifierTrail = append(modifierTrail, "TC: technical component, work_rvu and mp_rvu zeroed")
		}
	}

	conversionFactor := c.store.Scalars.PFSConversionFactor
	res.Detail.WorkRVU, res.Detail.PERVU, res.Detail.MPRVU = triple.Work, triple.PE, triple.MP
	res.Detail.ConversionFactor = conversionFactor

	base := (triple.Work*gpci.WorkGPCI + triple.PE*gpci.PEGPCI + triple.MP*gpci.MPGPCI) * conversionFactor

	// Remaining modifiers apply sequentially, after base is formed.
	for _, m := range in.Modifiers {
		switch strings.ToUpper(m) {
		case "50":
			base *= 1.50
			modifierTrail = append(modifierTrail, "50: bilateral, x1.50")
		case "52", "53":
			base *= 0.50
			modifierTrail = append(modifierTrail, m+": reduced/discontinued, x0.50")
		case "76", "77":
			modifierTrail = append(modifierTrail, m+": repeat procedure, no adjustment")
		case "59", "XE", "XU", "XP", "XS":
			modifierTrail = append(modifierTrail, strings.ToUpper(m)+": distinct service, no adjustment")
		case "26", "TC":
			// already applied above
		default:
			modifierTrail = append(modifierTrail, "unknown modifier "+m+": no adjustment")
			res.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeUnknownModifier, "unknown modifier %s", m))
		}
	}
	res.Detail.ModifierTrail = modifierTrail
	res.Detail.BaseAmount = base

	// Step 6: MPPR.
	rank := in.Rank
	if rank <= 0 {
		rank = 1
	}
	res.Detail.MPPRRank = rank
	if rvu.MPPRIndicator == 2 && rank >= 2 {
		base *= 0.50
		res.Detail.MPPRApplied = true
		res.Diagnostics.Add(diagnostics.New(diagnostics.CodeMPPRApplied, "MPPR applied (50%)"))
	}

	// Step 7: units.
	base *= float64(res.Detail.Units)

	// Step 8: round to cents, half-up.
	res.Allowed = math.Round(base*100) / 100
	return res
}

func resolvedUnits(units int) int {
	if units <= 0 {
		return 1
	}
	return units
}
