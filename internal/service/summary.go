package service

import (
	"math"
	"time"

	"github.com/Dan9191/stripe-report/internal/models"
	"github.com/shopspring/decimal"
)

// summarizeDaily folds the four event streams of one account into per-day
// summaries. start and end are midnights of the boundary dates in loc.
//
// Every calendar day in [start, end] gets exactly one row, zero-filled when
// no events occurred. Events bucketing outside the range (possible at
// timezone-conversion boundaries) are dropped. Amounts are shifted from minor
// units into decimal major units at accumulation time and rounded to two
// decimals only during finalization.
func summarizeDaily(charges, refunds, chargebacks, declines []models.RawEvent, start, end time.Time, loc *time.Location) []models.DailySummary {
	buckets := make(map[string]*models.DailySummary)
	var order []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayFormat)
		buckets[key] = &models.DailySummary{Date: key, ApprovalPct: 100}
		order = append(order, key)
	}

	for _, ev := range charges {
		day, ok := buckets[eventDay(ev, loc)]
		if !ok {
			continue
		}
		amount := minorToMajor(ev.Amount)
		day.ChargesCount++
		day.ChargesAmount = day.ChargesAmount.Add(amount)
		day.TotalsCount++
		day.TotalsAmount = day.TotalsAmount.Add(amount)
	}

	for _, ev := range refunds {
		day, ok := buckets[eventDay(ev, loc)]
		if !ok {
			continue
		}
		amount := minorToMajor(ev.Amount)
		day.RefundsCount++
		day.RefundsAmount = day.RefundsAmount.Add(amount)
		day.TotalsCount++
		day.TotalsAmount = day.TotalsAmount.Sub(amount)
	}

	for _, ev := range chargebacks {
		day, ok := buckets[eventDay(ev, loc)]
		if !ok {
			continue
		}
		amount := minorToMajor(ev.Amount)
		day.ChargebacksCount++
		day.ChargebacksAmount = day.ChargebacksAmount.Add(amount)
		day.TotalsCount++
		day.TotalsAmount = day.TotalsAmount.Sub(amount)
	}

	// Declines carry no amount, only the attempt count.
	for _, ev := range declines {
		day, ok := buckets[eventDay(ev, loc)]
		if !ok {
			continue
		}
		day.DeclinesCount++
		day.TotalsCount++
	}

	out := make([]models.DailySummary, 0, len(order))
	for _, key := range order {
		day := buckets[key]
		day.ChargesAmount = day.ChargesAmount.Round(2)
		day.RefundsAmount = day.RefundsAmount.Round(2)
		day.ChargebacksAmount = day.ChargebacksAmount.Round(2)
		day.TotalsAmount = day.TotalsAmount.Round(2)

		attempts := day.ChargesCount + day.DeclinesCount
		if attempts > 0 {
			day.ApprovalPct = math.Round(float64(day.ChargesCount)/float64(attempts)*100*100) / 100
		} else {
			day.ApprovalPct = 100
		}
		out = append(out, *day)
	}
	return out
}

func eventDay(ev models.RawEvent, loc *time.Location) string {
	return time.Unix(ev.Created, 0).In(loc).Format(dayFormat)
}

func minorToMajor(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Shift(-2)
}
