package refdata

import (
	"fmt"
	"strings"

	engerrors "github.com/iris-health/medicare-repricer/internal/errors"
)

// validateStore checks the invariants from the reference-entity contract
// that a malformed data file could otherwise silently violate: non-negative
// RVU components, an mp_indicator of 0 or 2, positive GPCI factors, a
// required "00" GPCI fallback row, and positive DRG weights/LOS. Failures are
// aggregated into one EngineError so a bad data directory reports every
// problem in one pass, not just the first.
func validateStore(s *Store) error {
	var problems []string

	for key, rec := range s.rvu {
		if rec.WorkRVUNonFacility < 0 || rec.PERVUNonFacility < 0 || rec.MPRVUNonFacility < 0 ||
			rec.WorkRVUFacility < 0 || rec.PERVUFacility < 0 || rec.MPRVUFacility < 0 {
			problems = append(problems, fmt.Sprintf("rvu record %q/%q has a negative RVU component", key.code, key.modifier))
		}
		if rec.MPPRIndicator != 0 && rec.MPPRIndicator != 2 {
			problems = append(problems, fmt.Sprintf("rvu record %q/%q has unrecognized mp_indicator %d", key.code, key.modifier, rec.MPPRIndicator))
		}
	}

	if _, ok := s.gpci["00"]; !ok {
		problems = append(problems, `gpci_data.json is missing the required "00" national-average row`)
	}
	for locality, rec := range s.gpci {
		if rec.WorkGPCI <= 0 || rec.PEGPCI <= 0 || rec.MPGPCI <= 0 {
			problems = append(problems, fmt.Sprintf("gpci record %q has a non-positive GPCI factor", locality))
		}
	}

	for drg, rec := range s.msdrg {
		if rec.RelativeWeight <= 0 {
			problems = append(problems, fmt.Sprintf("ms_drg record %q has a non-positive relative weight", drg))
		}
		if rec.GeometricMeanLOS <= 0 || rec.ArithmeticMeanLOS <= 0 {
			problems = append(problems, fmt.Sprintf("ms_drg record %q has a non-positive mean length-of-stay", drg))
		}
	}

	// CC/MCC mutual exclusivity is not enforced as a hard load failure: the
	// grouper defends against a data file that violates it by giving MCC
	// precedence over CC rather than trusting the invariant blindly.

	if len(problems) > 0 {
		return engerrors.Wrap(fmt.Errorf("%s", strings.Join(problems, "; ")), engerrors.ErrReferenceFileMalformed)
	}
	return nil
}
