// Package grouper implements the MS-DRG Grouper: rule-driven classification
// of an inpatient encounter into one of the MS-DRG families declared in
// reference data, via MDC assignment, CC/MCC detection, and
// surgical/medical branching.
package grouper

import "github.com/iris-health/medicare-repricer/internal/diagnostics"

// DRGType classifies how a case was routed within its MDC.
type DRGType string

const (
	DRGTypeSurgical DRGType = "SURGICAL"
	DRGTypeMedical  DRGType = "MEDICAL"
	DRGTypePreMDC   DRGType = "PRE-MDC"
)

// UngroupableDRG is the sentinel DRG code returned when no rule family
// matches; callers must never invent a DRG in this case.
const UngroupableDRG = "UNGROUPABLE"

// Input is the clinical input to one grouping call.
type Input struct {
	PrincipalDiagnosis string
	SecondaryDiagnoses []string
	Procedures         []string
	Age                int
	Sex                string // "M", "F", or "U"
	DischargeStatus    string
	LengthOfStay       int
}

// Output is the result of one grouping call.
type Output struct {
	MSDRG          string
	Description    string
	MDC            string
	MDCDescription string
	DRGType        DRGType

	HasMCC  bool
	HasCC   bool
	MCCList []string
	CCList  []string

	RelativeWeight    float64
	GeometricMeanLOS  float64
	ArithmeticMeanLOS float64

	GroupingVersion string

	Diagnostics diagnostics.Bag
}
