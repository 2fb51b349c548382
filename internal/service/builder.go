package service

import (
	"context"
	"time"

	"github.com/Dan9191/stripe-report/internal/models"
)

// fetchOrder is fixed but immaterial: the per-day arithmetic is commutative.
var fetchOrder = []models.EventType{
	models.EventTypeCharge,
	models.EventTypeRefund,
	models.EventTypeDispute,
	models.EventTypeFailedCharge,
}

type accountResult struct {
	info     *models.AccountInfo
	rows     []models.DailySummary
	failures []models.FetchFailure
}

// buildAccount produces the daily summaries for a single connected account.
// start and end are midnights of the boundary dates in loc; the fetch window
// spans start-of-day(start) through end-of-day(end).
//
// If account metadata cannot be retrieved the whole account is skipped. A
// failing event listing only truncates that event type's contribution.
func (s *Service) buildAccount(ctx context.Context, accountID string, start, end time.Time, loc *time.Location) accountResult {
	var res accountResult

	info, err := s.api.GetAccount(ctx, accountID)
	if err != nil {
		s.log.Warnf("Skipping account %s: %v", accountID, err)
		res.failures = append(res.failures, models.FetchFailure{
			AccountID: accountID,
			Reason:    err.Error(),
		})
		return res
	}
	res.info = info

	from := start.Unix()
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, loc).Unix()

	streams := make(map[models.EventType][]models.RawEvent, len(fetchOrder))
	for _, eventType := range fetchOrder {
		events, err := s.api.ListEvents(ctx, eventType, accountID, from, to)
		if err != nil {
			s.log.Warnf("Truncated %s listing for account %s: %v", eventType, accountID, err)
			res.failures = append(res.failures, models.FetchFailure{
				AccountID: accountID,
				EventType: eventType,
				Reason:    err.Error(),
			})
		}
		streams[eventType] = events
	}

	rows := summarizeDaily(
		streams[models.EventTypeCharge],
		streams[models.EventTypeRefund],
		streams[models.EventTypeDispute],
		streams[models.EventTypeFailedCharge],
		start, end, loc,
	)
	for i := range rows {
		rows[i].AccountID = accountID
	}
	res.rows = rows
	return res
}
