package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iris-health/medicare-repricer/internal/claim"
	"github.com/iris-health/medicare-repricer/internal/diagnostics"
)

func TestWriteBatchXLSXTwoSheets(t *testing.T) {
	claims := []*claim.RepricedClaim{
		{
			ClaimID: "CLM-1",
			Lines: []claim.RepricedLine{
				{LineNumber: 1, ProcedureCode: "99213", MedicareAllowed: 92.35, PFS: &claim.PFSDetail{}},
				{LineNumber: 2, ProcedureCode: "71046", MedicareAllowed: 0, Diagnostics: fatalBag()},
			},
			TotalAllowed: 92.35,
		},
		{
			ClaimID: "CLM-2",
			Lines: []claim.RepricedLine{
				{LineNumber: 1, MedicareAllowed: 18422.10, IPPS: &claim.IPPSDetail{}},
			},
			TotalAllowed: 18422.10,
		},
	}

	out, err := WriteBatchXLSX(claims)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, detailSheet)
	assert.Contains(t, sheets, summarySheet)

	claimCell, err := f.GetCellValue(detailSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "CLM-1", claimCell)

	diagCell, err := f.GetCellValue(detailSheet, "G3")
	require.NoError(t, err)
	assert.Contains(t, diagCell, "procedure_code_not_found")

	totalCell, err := f.GetCellValue(summarySheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "18422.1", totalCell)
}

func TestWriteBatchXLSXSkipsNilClaims(t *testing.T) {
	out, err := WriteBatchXLSX([]*claim.RepricedClaim{nil})
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func fatalBag() diagnostics.Bag {
	var b diagnostics.Bag
	b.Add(diagnostics.New(diagnostics.CodeProcedureNotFound, "procedure code 71046 not found"))
	return b
}
