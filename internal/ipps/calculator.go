// Package ipps implements the Inpatient Prospective Payment System
// Calculator: DRG-based inpatient payment with wage-index, IME, DSH, and
// outlier components.
package ipps

import (
	"math"

	"github.com/iris-health/medicare-repricer/internal/diagnostics"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

// Calculator computes IPPS-allowed amounts over a read-only Data Store
// handle.
type Calculator struct {
	store *refdata.Store
}

// New builds a Calculator over store.
func New(store *refdata.Store) *Calculator {
	return &Calculator{store: store}
}

// Input is the per-line contract for one IPPS computation.
type Input struct {
	MSDRG          string
	ProviderNumber string
	TotalCharges   float64
	CoveredDays    int
}

// Detail carries every intermediate IPPS derivation field.
type Detail struct {
	MSDRG            string
	HospitalName     string
	RelativeWeight   float64
	WageIndex        float64
	OperatingPayment float64
	CapitalPayment   float64
	BasePayment      float64
	IMEAdjustment    float64
	DSHAdjustment    float64
	OutlierPayment   float64
	CoveredDays      int
}

// Result is the allowed amount and full derivation for one IPPS line.
type Result struct {
	Allowed     float64
	Detail      Detail
	Diagnostics diagnostics.Bag
}

// Calculate runs the IPPS algorithm: lookups, operating payment, capital
// payment, base payment, IME adjustment, DSH adjustment, outlier, and
// rounding. covered_days is carried through for reporting only.
func (c *Calculator) Calculate(in Input) Result {
	var res Result
	res.Detail.CoveredDays = in.CoveredDays

	drg, ok := c.store.GetMSDRG(in.MSDRG)
	if !ok {
		res.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeDRGNotFound, "ms_drg %s not found", in.MSDRG))
		return res
	}
	res.Detail.MSDRG = drg.MSDRG
	res.Detail.RelativeWeight = drg.RelativeWeight

	hospital, ok := c.store.GetHospital(in.ProviderNumber)
	if !ok {
		res.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeHospitalNotFound, "provider %s not found", in.ProviderNumber))
		return res
	}
	res.Detail.HospitalName = hospital.HospitalName

	wageIndex := hospital.WageIndex
	var capitalWageIndex float64
	cbsaWageIndex, cbsaFound := c.store.GetWageIndex(hospital.CBSACode)
	if wageIndex == 0 {
		if !cbsaFound {
			res.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeWageIndexNotFound, "wage index not found for cbsa %s", hospital.CBSACode))
			return res
		}
		wageIndex = cbsaWageIndex.OperatingWageIndex
	}
	// capital_GAF is capital_wage_index if the CBSA record carries one,
	// else the resolved operating wage index — regardless of whether
	// that operating value came from the hospital's cached field or the
	// CBSA fallback above.
	if cbsaFound && cbsaWageIndex.CapitalWageIndex != nil {
		capitalWageIndex = *cbsaWageIndex.CapitalWageIndex
	} else {
		capitalWageIndex = wageIndex
	}
	res.Detail.WageIndex = wageIndex

	s := c.store.Scalars
	weight := drg.RelativeWeight

	operating := ((s.IPPSOperatingStandardizedAmount*s.IPPSLaborShare*wageIndex) +
		(s.IPPSOperatingStandardizedAmount * (1 - s.IPPSLaborShare))) * weight
	res.Detail.OperatingPayment = operating

	capital := s.IPPSCapitalStandardizedAmount * capitalWageIndex * weight
	res.Detail.CapitalPayment = capital

	base := operating + capital
	res.Detail.BasePayment = base

	var ime float64
	if hospital.IsTeachingHospital {
		irb := 0.0
		if hospital.InternResidentToBedRatio != nil {
			irb = *hospital.InternResidentToBedRatio
		}
		imeMultiplier := s.IMEFactorC * (math.Pow(irb+s.IMEIRBShift, s.IMEExponent) - 1)
		ime = base * imeMultiplier
	}
	res.Detail.IMEAdjustment = ime

	var dsh float64
	if hospital.IsDSHHospital {
		dshPct := 0.0
		if hospital.DSHPatientPercentage != nil {
			dshPct = *hospital.DSHPatientPercentage
		}
		dshMultiplier := math.Sqrt(dshPct/100) * s.DSHSimplifiedFactor
		dsh = base * dshMultiplier
	}
	res.Detail.DSHAdjustment = dsh

	estimatedCost := in.TotalCharges * s.OutlierMarginalCostToCharge
	adjustedBase := base + ime + dsh
	excess := estimatedCost - adjustedBase
	var outlier float64
	if excess > s.OutlierFixedLossThreshold {
		outlier = (excess - s.OutlierFixedLossThreshold) * s.OutlierPayoutRate
	}
	res.Detail.OutlierPayment = outlier

	allowed := base + ime + dsh + outlier
	res.Allowed = math.Round(allowed*100) / 100
	return res
}
