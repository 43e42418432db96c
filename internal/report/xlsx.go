// Package report renders a RepricedClaim (or a batch of them) into the
// downloadable formats used outside the engine: a one-page PDF summary and
// a two-sheet XLSX export. Neither format changes the numbers; both are
// read-only views over claim.RepricedClaim.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iris-health/medicare-repricer/internal/claim"
	"github.com/iris-health/medicare-repricer/internal/diagnostics"
)

const (
	detailSheet  = "Lines"
	summarySheet = "Claims"
)

// detailHeaders is the column order for the Lines sheet: one row per priced
// claim line, across every claim in the batch.
var detailHeaders = []string{
	"ClaimID", "LineNumber", "ProcedureCode", "ServiceType",
	"MedicareAllowed", "HasFatalError", "Diagnostics",
}

// summaryHeaders is the column order for the Claims sheet: one row per
// claim, with its total allowed amount and line count.
var summaryHeaders = []string{
	"ClaimID", "LineCount", "TotalAllowed", "LinesWithErrors",
}

// WriteBatchXLSX renders claims into a workbook with a Lines detail sheet
// and a Claims summary sheet, in that claim order.
func WriteBatchXLSX(claims []*claim.RepricedClaim) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return nil, fmt.Errorf("rename detail sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	writeHeaderRow(f, detailSheet, detailHeaders)
	writeHeaderRow(f, summarySheet, summaryHeaders)

	detailRow := 2
	summaryRow := 2
	for _, rc := range claims {
		if rc == nil {
			continue
		}
		linesWithErrors := 0
		for _, line := range rc.Lines {
			serviceType := "PFS"
			if line.IPPS != nil {
				serviceType = "IPPS"
			}
			fatal := line.HasFatalError()
			if fatal {
				linesWithErrors++
			}
			setRow(f, detailSheet, detailRow,
				rc.ClaimID, line.LineNumber, line.ProcedureCode, serviceType,
				line.MedicareAllowed, fatal, joinDiagnostics(line.Diagnostics))
			detailRow++
		}
		setRow(f, summarySheet, summaryRow,
			rc.ClaimID, len(rc.Lines), rc.TotalAllowed, linesWithErrors)
		summaryRow++
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
}

func setRow(f *excelize.File, sheet string, row int, values ...any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func joinDiagnostics(bag diagnostics.Bag) string {
	var parts []string
	for _, d := range bag.Errors {
		parts = append(parts, d.String())
	}
	for _, d := range bag.Notes {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}
