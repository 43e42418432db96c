package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/iris-health/medicare-repricer/internal/claim"
)

// WriteClaimPDF renders a one-page repricing summary: a colored header
// band with the claim ID, a bordered table with one row per priced line,
// and a totals row.
func WriteClaimPDF(rc *claim.RepricedClaim) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFillColor(30, 60, 114)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(10, 8)
	pdf.Cell(120, 10, "Medicare Repricing Summary")
	pdf.SetFont("Arial", "", 10)
	pdf.SetXY(10, 18)
	pdf.Cell(120, 6, fmt.Sprintf("Claim %s", rc.ClaimID))

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)

	colWidths := []float64{16, 34, 26, 28, 30, 56}
	headers := []string{"Line", "Procedure", "Type", "Allowed", "Status", "Notes"}

	pdf.SetFillColor(220, 220, 220)
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range rc.Lines {
		serviceType := "PFS"
		if line.IPPS != nil {
			serviceType = "IPPS"
		}
		status := "OK"
		fill := false
		if line.HasFatalError() {
			status = "ERROR"
			pdf.SetFillColor(255, 200, 200)
			fill = true
		}
		notes := summarizeDiagnostics(line)

		pdf.CellFormat(colWidths[0], 6, fmt.Sprintf("%d", line.LineNumber), "LR", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 6, line.ProcedureCode, "LR", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 6, serviceType, "LR", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[3], 6, fmt.Sprintf("$%.2f", line.MedicareAllowed), "LR", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[4], 6, status, "LR", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 6, notes, "LR", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	var total float64
	for _, w := range colWidths[:len(colWidths)-1] {
		total += w
	}
	pdf.CellFormat(total, 7, "", "T", 0, "", false, 0, "")
	pdf.CellFormat(0, 7, "", "T", 0, "", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "B", 10)
	labelWidth := colWidths[0] + colWidths[1] + colWidths[2]
	pdf.CellFormat(labelWidth, 8, "Total Allowed", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("$%.2f", rc.TotalAllowed), "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[4]+colWidths[5], 8, "", "1", 0, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func summarizeDiagnostics(line claim.RepricedLine) string {
	if len(line.Diagnostics.Errors) > 0 {
		return string(line.Diagnostics.Errors[0].Code)
	}
	if len(line.Diagnostics.Notes) > 0 {
		return string(line.Diagnostics.Notes[0].Code)
	}
	return ""
}
