package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Dan9191/stripe-report/internal/models"
	"github.com/beevik/etree"
)

// WriteXML renders the full report, including account metadata and fetch
// failures, as a formatted XML document.
func WriteXML(w io.Writer, report *models.MultiAccountReport, startDate, endDate, timezone string) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("report")
	root.CreateAttr("start_date", startDate)
	root.CreateAttr("end_date", endDate)
	root.CreateAttr("timezone", timezone)
	root.CreateAttr("generated_at", time.Now().UTC().Format(time.RFC3339))

	accounts := root.CreateElement("accounts")
	for _, info := range report.Accounts {
		acct := accounts.CreateElement("account")
		acct.CreateAttr("id", info.ID)
		acct.CreateAttr("business_type", info.BusinessType)
		acct.CreateAttr("country", info.Country)
		acct.CreateAttr("type", info.Type)
		acct.CreateAttr("charges_enabled", strconv.FormatBool(info.ChargesEnabled))
		acct.CreateAttr("payouts_enabled", strconv.FormatBool(info.PayoutsEnabled))
		if info.Email != "" {
			acct.CreateAttr("email", info.Email)
		}
	}

	days := root.CreateElement("days")
	for _, row := range report.Rows {
		day := days.CreateElement("day")
		day.CreateAttr("date", row.Date)
		day.CreateAttr("account_id", row.AccountID)

		charges := day.CreateElement("charges")
		charges.CreateAttr("count", strconv.Itoa(row.ChargesCount))
		charges.CreateAttr("amount", row.ChargesAmount.StringFixed(2))

		refunds := day.CreateElement("refunds")
		refunds.CreateAttr("count", strconv.Itoa(row.RefundsCount))
		refunds.CreateAttr("amount", row.RefundsAmount.StringFixed(2))

		chargebacks := day.CreateElement("chargebacks")
		chargebacks.CreateAttr("count", strconv.Itoa(row.ChargebacksCount))
		chargebacks.CreateAttr("amount", row.ChargebacksAmount.StringFixed(2))

		declines := day.CreateElement("declines")
		declines.CreateAttr("count", strconv.Itoa(row.DeclinesCount))

		totals := day.CreateElement("totals")
		totals.CreateAttr("count", strconv.Itoa(row.TotalsCount))
		totals.CreateAttr("amount", row.TotalsAmount.StringFixed(2))
		totals.CreateAttr("approval_pct", fmt.Sprintf("%.2f", row.ApprovalPct))
	}

	if len(report.Failures) > 0 {
		failures := root.CreateElement("failures")
		for _, failure := range report.Failures {
			el := failures.CreateElement("failure")
			el.CreateAttr("account_id", failure.AccountID)
			if failure.EventType != "" {
				el.CreateAttr("event_type", string(failure.EventType))
			}
			el.CreateAttr("reason", failure.Reason)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xml document: %w", err)
	}
	return nil
}
