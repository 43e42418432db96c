package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iris-health/medicare-repricer/internal/diagnostics"
)

func TestClaimLineIsInpatient(t *testing.T) {
	pfsLine := ClaimLine{ProcedureCode: "99213"}
	assert.False(t, pfsLine.IsInpatient())

	ippsLine := ClaimLine{MSDRGCode: "470", ProviderNumber: "330123"}
	assert.True(t, ippsLine.IsInpatient())
}

func TestClaimLineResolvedUnits(t *testing.T) {
	assert.Equal(t, 1, ClaimLine{}.ResolvedUnits())
	assert.Equal(t, 1, ClaimLine{Units: -3}.ResolvedUnits())
	assert.Equal(t, 4, ClaimLine{Units: 4}.ResolvedUnits())
}

func TestClaimLineFirstModifier(t *testing.T) {
	assert.Equal(t, "", ClaimLine{}.FirstModifier())
	assert.Equal(t, "26", ClaimLine{Modifiers: []string{"26", "59"}}.FirstModifier())
}

func TestValidateShapeRejectsEmptyLines(t *testing.T) {
	c := &Claim{ClaimID: "CLM-1"}
	err := c.ValidateShape()
	assert.Error(t, err)
}

func TestValidateShapeRejectsDuplicateLineNumbers(t *testing.T) {
	c := &Claim{
		ClaimID: "CLM-1",
		Lines: []ClaimLine{
			{LineNumber: 1, ProcedureCode: "99213"},
			{LineNumber: 1, ProcedureCode: "71046"},
		},
	}
	err := c.ValidateShape()
	assert.Error(t, err)
}

func TestValidateShapeAcceptsWellFormedClaim(t *testing.T) {
	c := &Claim{
		ClaimID: "CLM-1",
		Lines: []ClaimLine{
			{LineNumber: 1, ProcedureCode: "99213"},
			{LineNumber: 2, ProcedureCode: "71046"},
		},
	}
	assert.NoError(t, c.ValidateShape())
}

func TestValidateShapeRejectsNilClaim(t *testing.T) {
	var c *Claim
	assert.Error(t, c.ValidateShape())
}

func TestRepricedLineHasFatalError(t *testing.T) {
	var line RepricedLine
	assert.False(t, line.HasFatalError())

	line.Diagnostics.Add(diagnostics.New(diagnostics.CodeProcedureNotFound, "not found"))
	assert.True(t, line.HasFatalError())
}
