// Package claim defines the input and output shapes that flow through one
// pricing invocation. Claim entities are single-use values: the engine
// never mutates an input Claim, and nothing here is persisted.
package claim

import "fmt"

// ClaimLine is one line item of an input claim.
type ClaimLine struct {
	LineNumber int `json:"line_number" validate:"required,min=1"`

	// ProcedureCode is required for a PFS line; may be the sentinel
	// "INPATIENT" token for an IPPS line.
	ProcedureCode string `json:"procedure_code"`

	PlaceOfService string    `json:"place_of_service"`
	Modifiers      []string  `json:"modifiers,omitempty" validate:"max=2"`
	Locality       string    `json:"locality,omitempty"`
	Zip            string    `json:"zip,omitempty"`
	Units          int       `json:"units" validate:"omitempty,min=1"`

	// IPPS-only fields.
	MSDRGCode      string  `json:"ms_drg_code,omitempty"`
	ProviderNumber string  `json:"provider_number,omitempty"`
	TotalCharges   float64 `json:"total_charges,omitempty"`
	CoveredDays    int     `json:"covered_days,omitempty"`
}

// IsInpatient reports whether this line carries the IPPS discriminator
// fields (ms_drg_code and provider_number), rather than a PFS
// procedure_code.
func (l ClaimLine) IsInpatient() bool {
	return l.MSDRGCode != "" && l.ProviderNumber != ""
}

// ResolvedUnits returns Units, defaulting to 1 when unset.
func (l ClaimLine) ResolvedUnits() int {
	if l.Units <= 0 {
		return 1
	}
	return l.Units
}

// FirstModifier returns the first modifier, or "" if none were supplied.
func (l ClaimLine) FirstModifier() string {
	if len(l.Modifiers) == 0 {
		return ""
	}
	return l.Modifiers[0]
}

// Claim is the input to one repricing invocation.
type Claim struct {
	ClaimID        string      `json:"claim_id" validate:"required"`
	PatientID      string      `json:"patient_id,omitempty"`
	DiagnosisCodes []string    `json:"diagnosis_codes,omitempty"`
	Lines          []ClaimLine `json:"lines" validate:"required,min=1,dive"`
}

// ValidateShape enforces the claim-level invariants that must hold before
// any line is priced: at least one line, and unique line numbers. This is
// a claim-level failure (spec behavior: fails the entire call, no partial
// output), distinct from a per-line diagnostic.
func (c *Claim) ValidateShape() error {
	if c == nil {
		return fmt.Errorf("claim must not be nil")
	}
	if len(c.Lines) == 0 {
		return fmt.Errorf("claim %s has no lines", c.ClaimID)
	}
	seen := make(map[int]bool, len(c.Lines))
	for _, line := range c.Lines {
		if seen[line.LineNumber] {
			return fmt.Errorf("claim %s has duplicate line_number %d", c.ClaimID, line.LineNumber)
		}
		seen[line.LineNumber] = true
	}
	return nil
}
