// Package export renders aggregated daily summaries into the delivery
// formats the reporting UI offers: delimited text, spreadsheet and a
// formatted XML document.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Dan9191/stripe-report/internal/models"
)

// reportHeader matches the column layout of the emailed spreadsheet report.
var reportHeader = []string{
	"Account ID",
	"Date",
	"Charges Count",
	"Charges Amount",
	"Refunds Count",
	"Refunds Amount",
	"Chargebacks Count",
	"Chargebacks Amount",
	"Declines Count",
	"Approval %",
	"Total Count",
	"Total Amount",
}

// WriteCSV renders the rows as delimited text.
func WriteCSV(w io.Writer, rows []models.DailySummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(row models.DailySummary) []string {
	return []string{
		row.AccountID,
		row.Date,
		strconv.Itoa(row.ChargesCount),
		row.ChargesAmount.StringFixed(2),
		strconv.Itoa(row.RefundsCount),
		row.RefundsAmount.StringFixed(2),
		strconv.Itoa(row.ChargebacksCount),
		row.ChargebacksAmount.StringFixed(2),
		strconv.Itoa(row.DeclinesCount),
		fmt.Sprintf("%.2f%%", row.ApprovalPct),
		strconv.Itoa(row.TotalsCount),
		row.TotalsAmount.StringFixed(2),
	}
}

// Filename builds the canonical attachment name for an exported report.
func Filename(format, startDate, endDate string) string {
	return fmt.Sprintf("stripe-report_%s_%s.%s", startDate, endDate, format)
}
