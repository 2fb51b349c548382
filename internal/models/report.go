package models

import "github.com/shopspring/decimal"

// DailySummary aggregates all transaction activity of one connected account
// for one calendar day. Amounts are in major currency units, rounded to two
// decimals during finalization.
type DailySummary struct {
	Date              string          `json:"date"` // Format: YYYY-MM-DD
	AccountID         string          `json:"account_id"`
	ChargesCount      int             `json:"charges_count"`
	ChargesAmount     decimal.Decimal `json:"charges_amount"`
	RefundsCount      int             `json:"refunds_count"`
	RefundsAmount     decimal.Decimal `json:"refunds_amount"`
	ChargebacksCount  int             `json:"chargebacks_count"`
	ChargebacksAmount decimal.Decimal `json:"chargebacks_amount"`
	DeclinesCount     int             `json:"declines_count"`
	ApprovalPct       float64         `json:"aprvl_pct"`
	TotalsCount       int             `json:"totals_count"`
	TotalsAmount      decimal.Decimal `json:"totals_amount"`
}

// FetchFailure records a partial data loss during report generation: either
// an inaccessible account (EventType empty, no rows contributed) or a
// truncated event listing (rows include whatever was fetched before the
// failing page).
type FetchFailure struct {
	AccountID string    `json:"account_id"`
	EventType EventType `json:"event_type,omitempty"`
	Reason    string    `json:"reason"`
}

// MultiAccountReport is the result of one aggregation run. Rows are sorted by
// date descending; row order within one date is not guaranteed. Accounts
// holds metadata for every account that contributed rows. Failures lets
// callers distinguish a legitimately empty report from one missing data.
type MultiAccountReport struct {
	Rows     []DailySummary `json:"rows"`
	Accounts []AccountInfo  `json:"accounts"`
	Failures []FetchFailure `json:"failures,omitempty"`
}

// Page returns the requested slice of rows using 1-based page numbers.
// Pagination is applied over the fully materialized, already sorted rows.
func (r *MultiAccountReport) Page(page, size int) []DailySummary {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	start := (page - 1) * size
	if start >= len(r.Rows) {
		return []DailySummary{}
	}
	end := start + size
	if end > len(r.Rows) {
		end = len(r.Rows)
	}
	return r.Rows[start:end]
}
