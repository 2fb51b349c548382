package export

import (
	"fmt"
	"io"

	"github.com/Dan9191/stripe-report/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Stripe Report"

// WriteXLSX renders the rows as a single-sheet spreadsheet with the same
// column layout as the delimited export.
func WriteXLSX(w io.Writer, rows []models.DailySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(reportHeader))
	for i, h := range reportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		values := []any{
			row.AccountID,
			row.Date,
			row.ChargesCount,
			row.ChargesAmount.StringFixed(2),
			row.RefundsCount,
			row.RefundsAmount.StringFixed(2),
			row.ChargebacksCount,
			row.ChargebacksAmount.StringFixed(2),
			row.DeclinesCount,
			fmt.Sprintf("%.2f%%", row.ApprovalPct),
			row.TotalsCount,
			row.TotalsAmount.StringFixed(2),
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
