// Package export renders reports into downloadable documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/cashfolio/backend/internal/models"
	"github.com/phpdave11/gofpdf"
)

// BudgetReportFilename returns the download filename for a budget report.
func BudgetReportFilename(report models.BudgetReport) string {
	return fmt.Sprintf("budget-report-%s.pdf", report.Budget.ID)
}

// BudgetReportPDF renders a budget report as a PDF document.
func BudgetReportPDF(report models.BudgetReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Budget Report", false)
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, report.Budget.Name)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s (%s)", report.Budget.StartDate, report.Budget.EndDate, report.Budget.PeriodType))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Progress: %s%%, %d days remaining", report.ProgressPercentage, report.DaysRemaining))
	pdf.Ln(10)

	// Summary row
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Planned", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Actual", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Remaining", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, report.TotalPlanned.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, report.TotalActual.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, report.TotalPlanned.Sub(report.TotalActual).StringFixed(2), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Per-category breakdown
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Categories")
	pdf.Ln(8)

	colW := []float64{66, 30, 30, 30, 30}
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.CellFormat(colW[0], 8, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[1], 8, "PLANNED", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[2], 8, "ACTUAL", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[3], 8, "USED", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[4], 8, "LEFT", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	for _, item := range report.Items {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
		}

		pdf.CellFormat(colW[0], 8, item.Category.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 8, item.PlannedAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[2], 8, item.ActualAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 8, item.PercentageUsed.StringFixed(2)+"%", "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[4], 8, item.RemainingAmount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Top spending categories
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Top Spending")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(100, 8, "CATEGORY", "1", 0, "L", true, 0, "")
	pdf.CellFormat(43, 8, "AMOUNT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(43, 8, "SHARE", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, top := range report.TopCategories {
		pdf.CellFormat(100, 8, top.Category.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(43, 8, top.ActualAmount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(43, 8, top.Percentage.StringFixed(2)+"%", "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
