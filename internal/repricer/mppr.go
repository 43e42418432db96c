package repricer

import (
	"sort"

	"github.com/iris-health/medicare-repricer/internal/claim"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

// facilityPOS mirrors the PFS Calculator's facility/non-facility split; the
// candidacy score must be computed under the same RVU selection the line
// will actually be priced under.
var facilityPOS = map[string]bool{
	"21": true, "22": true, "23": true, "24": true, "26": true,
	"31": true, "34": true, "51": true, "52": true, "53": true,
	"56": true, "61": true,
}

// rankForMPPR runs the Multiple Procedure Payment Reduction candidacy pass
// over a claim's PFS lines: every line whose RVU record is subject to MPPR
// (mp_indicator == 2) is scored by its selected RVU triple's sum, then
// ranked 1..k in descending score order, ties broken by ascending
// line_number. The primary (rank 1) line prices at full value; rank 2+
// lines take the reduction in the PFS Calculator. Lines not subject to
// MPPR, and all IPPS lines, are not ranked and price at the implicit
// rank 1.
func rankForMPPR(store *refdata.Store, lines []claim.ClaimLine) map[int]int {
	ranks := make(map[int]int, len(lines))

	type candidate struct {
		lineNumber int
		score      float64
	}
	var candidates []candidate

	for _, line := range lines {
		if line.IsInpatient() {
			continue
		}
		rvu, ok := store.GetRVU(line.ProcedureCode, line.FirstModifier())
		if !ok || rvu.MPPRIndicator != 2 {
			continue
		}
		triple := rvu.NonFacilityTriple()
		if facilityPOS[line.PlaceOfService] {
			triple = rvu.FacilityTriple()
		}
		candidates = append(candidates, candidate{lineNumber: line.LineNumber, score: triple.Sum()})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].lineNumber < candidates[j].lineNumber
	})

	for i, c := range candidates {
		ranks[c.lineNumber] = i + 1
	}
	return ranks
}
