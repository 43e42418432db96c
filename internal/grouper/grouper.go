package grouper

import (
	"fmt"
	"strings"

	"github.com/iris-health/medicare-repricer/internal/diagnostics"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

// Grouper assigns an MS-DRG from clinical input, holding a read-only
// handle to the Data Store for the engine's lifetime.
type Grouper struct {
	store *refdata.Store
}

// New builds a Grouper over store.
func New(store *refdata.Store) *Grouper {
	return &Grouper{store: store}
}

// normalizeCode strips decimal points and upper-cases a diagnosis or
// procedure code.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.ReplaceAll(code, ".", ""))
}

// AssignDRG runs the grouping algorithm in order: normalize, validate, MDC
// assignment, CC/MCC detection, surgical/medical branching, rule
// selection, severity selection, and DRG resolution.
func (g *Grouper) AssignDRG(in Input) Output {
	out := Output{GroupingVersion: g.store.GroupingVersion()}

	if in.PrincipalDiagnosis == "" {
		out.Diagnostics.Add(diagnostics.New(diagnostics.CodeGrouperUngroupable, "principal diagnosis is required"))
		out.MSDRG = UngroupableDRG
		out.DRGType = DRGTypePreMDC
		return out
	}
	if in.Age < 0 || in.Age > 120 {
		out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeGrouperUngroupable, "age %d is out of range [0,120]", in.Age))
		out.MSDRG = UngroupableDRG
		out.DRGType = DRGTypePreMDC
		return out
	}
	sex := strings.ToUpper(in.Sex)
	if sex != "M" && sex != "F" && sex != "U" {
		out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeGrouperUngroupable, "sex %q must be one of M, F, U", in.Sex))
		out.MSDRG = UngroupableDRG
		out.DRGType = DRGTypePreMDC
		return out
	}

	principal := normalizeCode(in.PrincipalDiagnosis)
	secondary := make([]string, len(in.SecondaryDiagnoses))
	for i, d := range in.SecondaryDiagnoses {
		secondary[i] = normalizeCode(d)
	}
	procedures := make([]string, len(in.Procedures))
	for i, p := range in.Procedures {
		procedures[i] = normalizeCode(p)
	}

	// MDC assignment.
	mdc := "00"
	if entry, ok := g.store.LookupDiagnosis(principal); ok {
		mdc = entry.MDC
	} else {
		out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeMDCUnassigned, "principal diagnosis %s not found; assigned pre-MDC", principal))
	}
	out.MDC = mdc
	if def, ok := g.store.MDCDefinition(mdc); ok {
		out.MDCDescription = def.Name
	}

	// CC/MCC detection: MCC takes precedence over CC per code.
	for _, code := range secondary {
		entry, ok := g.store.LookupDiagnosis(code)
		if !ok {
			continue
		}
		switch {
		case entry.IsMCC:
			out.MCCList = append(out.MCCList, code)
			out.HasMCC = true
		case entry.IsCC:
			out.CCList = append(out.CCList, code)
			out.HasCC = true
		}
	}

	// Surgical/medical branching: any OR-flagged procedure makes the case
	// surgical; unknown procedures are treated as non-OR, with a warning.
	surgical := false
	for _, code := range procedures {
		entry, ok := g.store.LookupProcedure(code)
		if !ok {
			out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeNonORProcedure, "procedure %s not found; assumed non-OR", code))
			continue
		}
		if entry.IsORProcedure {
			surgical = true
		}
	}

	rules := g.store.RulesForMDC(mdc)
	var selected *refdata.GroupingRule
	if surgical {
		for i := range rules {
			if rules[i].Kind != "surgical" {
				continue
			}
			if matchesAny(rules[i].Pattern, procedures) {
				selected = &rules[i]
				break
			}
		}
	} else {
		for i := range rules {
			if rules[i].Kind != "medical" {
				continue
			}
			if matchAny(rules[i].Pattern, principal, secondary) {
				selected = &rules[i]
				break
			}
		}
	}

	if selected == nil {
		out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeGrouperUngroupable,
			"no grouping rule matched for mdc %s (surgical=%v)", mdc, surgical))
		out.MSDRG = UngroupableDRG
		out.DRGType = DRGTypePreMDC
		return out
	}

	if surgical {
		out.DRGType = DRGTypeSurgical
	} else {
		out.DRGType = DRGTypeMedical
	}

	drgCode, fellBack := selectSeverity(selected.Severity, out.HasMCC, out.HasCC)
	if fellBack {
		out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeSeveritySlotFallback,
			"requested severity slot absent for family %s; fell back to %s", selected.Family, drgCode))
	}
	if drgCode == "" {
		out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeGrouperUngroupable,
			"family %s has no severity slots populated", selected.Family))
		out.MSDRG = UngroupableDRG
		out.DRGType = DRGTypePreMDC
		return out
	}

	record, ok := g.store.GetMSDRG(drgCode)
	if !ok {
		out.Diagnostics.Add(diagnostics.Newf(diagnostics.CodeDRGNotFound, "ms_drg %s not found in reference data", drgCode))
		out.MSDRG = UngroupableDRG
		out.DRGType = DRGTypePreMDC
		return out
	}

	out.MSDRG = record.MSDRG
	out.Description = record.Description
	out.RelativeWeight = record.RelativeWeight
	out.GeometricMeanLOS = record.GeometricMeanLOS
	out.ArithmeticMeanLOS = record.ArithmeticMeanLOS
	return out
}

// selectSeverity picks with_mcc if hasMCC, else with_cc if hasCC, else
// without_cc_mcc, falling back to the next-lower-severity slot (in that
// same order) when the chosen slot is empty in data.
func selectSeverity(slots refdata.SeveritySlots, hasMCC, hasCC bool) (drg string, fellBack bool) {
	candidates := []string{}
	if hasMCC {
		candidates = append(candidates, slots.WithMCC)
	}
	if hasCC {
		candidates = append(candidates, slots.WithCC)
	}
	candidates = append(candidates, slots.WithoutCCMCC)

	for i, c := range candidates {
		if c != "" {
			return c, i > 0
		}
	}
	return "", false
}

// matchesAny reports whether pattern matches any of the given procedure
// codes.
func matchesAny(pattern string, codes []string) bool {
	for _, c := range codes {
		if matchPattern(pattern, c) {
			return true
		}
	}
	return false
}

// matchAny reports whether pattern matches the principal diagnosis or any
// secondary diagnosis.
func matchAny(pattern, principal string, secondary []string) bool {
	if matchPattern(pattern, principal) {
		return true
	}
	for _, c := range secondary {
		if matchPattern(pattern, c) {
			return true
		}
	}
	return false
}

// matchPattern matches a simple prefix/wildcard token (e.g. "027.*",
// normalized to "027*") against a normalized code. A trailing "*" matches
// any suffix; otherwise the pattern must equal the code exactly.
func matchPattern(pattern, code string) bool {
	pattern = normalizeCode(pattern)
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(code, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == code
}

// String renders an Output for logging/debugging.
func (o Output) String() string {
	return fmt.Sprintf("ms_drg=%s mdc=%s type=%s has_mcc=%v has_cc=%v", o.MSDRG, o.MDC, o.DRGType, o.HasMCC, o.HasCC)
}
