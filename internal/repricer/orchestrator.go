// Package repricer implements the Repricer Orchestrator: the per-claim
// pipeline that validates a claim, resolves locality, classifies each
// line's service type, ranks PFS lines for MPPR, dispatches to the PFS or
// IPPS calculators, and aggregates the claim total.
package repricer

import (
	"github.com/iris-health/medicare-repricer/internal/claim"
	"github.com/iris-health/medicare-repricer/internal/diagnostics"
	engerrors "github.com/iris-health/medicare-repricer/internal/errors"
	"github.com/iris-health/medicare-repricer/internal/grouper"
	"github.com/iris-health/medicare-repricer/internal/ipps"
	"github.com/iris-health/medicare-repricer/internal/locality"
	"github.com/iris-health/medicare-repricer/internal/pfs"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

// Orchestrator is the read-only, stateless-across-claims pipeline that
// prices one Claim at a time. It holds only read-only handles to the Data
// Store and the calculators; nothing here is mutated after construction,
// so one Orchestrator may be shared by multiple goroutines pricing
// different claims concurrently.
type Orchestrator struct {
	store       *refdata.Store
	resolver    *locality.Resolver
	pfsCalc     *pfs.Calculator
	ippsCalc    *ipps.Calculator
	grouperImpl *grouper.Grouper
}

// New builds an Orchestrator over store.
func New(store *refdata.Store) *Orchestrator {
	return &Orchestrator{
		store:       store,
		resolver:    locality.New(store),
		pfsCalc:     pfs.New(store),
		ippsCalc:    ipps.New(store),
		grouperImpl: grouper.New(store),
	}
}

// RepriceClaim runs the full per-claim pipeline. A claim-level error
// (no lines, duplicate line numbers, a nil claim) fails the entire call
// with no partial output. Per-line conditions never abort the claim: a
// line with a fatal diagnostic reports $0 and is excluded from the total.
func (o *Orchestrator) RepriceClaim(c *claim.Claim) (*claim.RepricedClaim, error) {
	if c == nil {
		return nil, engerrors.ErrNilClaim
	}
	if err := c.ValidateShape(); err != nil {
		return nil, engerrors.Wrap(err, engerrors.ErrInvalidClaimShape)
	}

	ranks := rankForMPPR(o.store, c.Lines)

	out := &claim.RepricedClaim{ClaimID: c.ClaimID}
	for _, line := range c.Lines {
		priced := o.priceLine(line, ranks[line.LineNumber])
		out.Lines = append(out.Lines, priced)
		if !priced.HasFatalError() {
			out.TotalAllowed += priced.MedicareAllowed
		}
	}
	out.TotalAllowed = roundCents(out.TotalAllowed)
	return out, nil
}

// priceLine classifies one line by its discriminator fields and dispatches
// to the matching calculator.
func (o *Orchestrator) priceLine(line claim.ClaimLine, rank int) claim.RepricedLine {
	out := claim.RepricedLine{LineNumber: line.LineNumber, ProcedureCode: line.ProcedureCode}

	if line.IsInpatient() {
		result := o.ippsCalc.Calculate(ipps.Input{
			MSDRG:          line.MSDRGCode,
			ProviderNumber: line.ProviderNumber,
			TotalCharges:   line.TotalCharges,
			CoveredDays:    line.CoveredDays,
		})
		out.IPPS = &claim.IPPSDetail{
			MSDRG:            result.Detail.MSDRG,
			HospitalName:     result.Detail.HospitalName,
			RelativeWeight:   result.Detail.RelativeWeight,
			WageIndex:        result.Detail.WageIndex,
			OperatingPayment: result.Detail.OperatingPayment,
			CapitalPayment:   result.Detail.CapitalPayment,
			BasePayment:      result.Detail.BasePayment,
			IMEAdjustment:    result.Detail.IMEAdjustment,
			DSHAdjustment:    result.Detail.DSHAdjustment,
			OutlierPayment:   result.Detail.OutlierPayment,
			CoveredDays:      result.Detail.CoveredDays,
		}
		out.MedicareAllowed = result.Allowed
		out.Diagnostics = result.Diagnostics
		return out
	}

	resolvedLocality, locDiag, ok := o.resolver.Resolve(line.Locality, line.Zip)
	if !ok {
		out.Diagnostics.Add(diagnostics.New(diagnostics.CodeLocalityOrZipMissing, "locality or zip required"))
		return out
	}

	result := o.pfsCalc.Calculate(pfs.Input{
		ProcedureCode:  line.ProcedureCode,
		Modifiers:      line.Modifiers,
		PlaceOfService: line.PlaceOfService,
		Locality:       resolvedLocality,
		Units:          line.ResolvedUnits(),
		Rank:           rank,
	})
	if locDiag != nil {
		result.Diagnostics.Add(*locDiag)
	}
	out.PFS = &claim.PFSDetail{
		SelectedFacility: result.Detail.SelectedFacility,
		WorkRVU:          result.Detail.WorkRVU,
		PERVU:            result.Detail.PERVU,
		MPRVU:            result.Detail.MPRVU,
		WorkGPCI:         result.Detail.WorkGPCI,
		PEGPCI:           result.Detail.PEGPCI,
		MPGPCI:           result.Detail.MPGPCI,
		Locality:         result.Detail.Locality,
		ConversionFactor: result.Detail.ConversionFactor,
		ModifierTrail:    result.Detail.ModifierTrail,
		MPPRRank:         result.Detail.MPPRRank,
		MPPRApplied:      result.Detail.MPPRApplied,
		Units:            result.Detail.Units,
		BaseAmount:       result.Detail.BaseAmount,
	}
	out.MedicareAllowed = result.Allowed
	out.Diagnostics = result.Diagnostics
	return out
}

// AssignDRG exposes the Grouper directly, per the read-through tooling
// accessors.
func (o *Orchestrator) AssignDRG(in grouper.Input) grouper.Output {
	return o.grouperImpl.AssignDRG(in)
}

// GetRVU exposes the Data Store's RVU lookup directly.
func (o *Orchestrator) GetRVU(code, modifier string) (refdata.RVURecord, bool) {
	return o.store.GetRVU(code, modifier)
}

// GetGPCI exposes the Data Store's GPCI lookup directly.
func (o *Orchestrator) GetGPCI(locality string) (refdata.GPCIRecord, bool) {
	return o.store.GetGPCI(locality)
}

// GetMSDRG exposes the Data Store's MS-DRG lookup directly.
func (o *Orchestrator) GetMSDRG(drg string) (refdata.MSDRGRecord, bool) {
	return o.store.GetMSDRG(drg)
}

// CalculatePFSAllowed exposes the PFS Calculator directly for a single
// line, without claim-level orchestration (rank defaults to 1 when unset).
func (o *Orchestrator) CalculatePFSAllowed(in pfs.Input) pfs.Result {
	return o.pfsCalc.Calculate(in)
}

// CalculateIPPSAllowed exposes the IPPS Calculator directly for a single
// line, without claim-level orchestration.
func (o *Orchestrator) CalculateIPPSAllowed(in ipps.Input) ipps.Result {
	return o.ippsCalc.Calculate(in)
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
