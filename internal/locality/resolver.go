// Package locality resolves a claim line's geographic locality code from
// an explicit locality or a ZIP code, with a documented national-average
// fallback.
package locality

import (
	"github.com/iris-health/medicare-repricer/internal/diagnostics"
	"github.com/iris-health/medicare-repricer/internal/refdata"
)

// NationalAverageLocality is the reserved fallback locality.
const NationalAverageLocality = "00"

// Resolver maps a ZIP prefix to a Medicare locality code using the Data
// Store's crosswalk table.
type Resolver struct {
	store *refdata.Store
}

// New builds a Resolver over store.
func New(store *refdata.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the locality to price a PFS line under, given the
// line's explicit locality and/or ZIP. If locality is given, it is used
// verbatim. Else the 3-digit ZIP prefix is looked up; if mapped, that
// locality is returned, else the national average is returned with a
// warning diagnostic. If neither is supplied, ok is false and the caller
// must treat the line as a fatal "locality or zip required" error.
func (r *Resolver) Resolve(explicitLocality, zip string) (locality string, diag *diagnostics.Diagnostic, ok bool) {
	if explicitLocality != "" {
		return explicitLocality, nil, true
	}
	if zip == "" {
		return "", nil, false
	}
	prefix := zip
	if len(zip) >= 3 {
		prefix = zip[:3]
	}
	if mapped, found := r.store.LocalityForZipPrefix(prefix); found {
		return mapped, nil, true
	}
	d := diagnostics.New(diagnostics.CodeLocalityDefaulted, "locality defaulted to national average")
	return NationalAverageLocality, &d, true
}
