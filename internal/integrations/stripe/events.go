package stripe

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Dan9191/stripe-report/internal/models"
)

// pageLimit is the maximum page size the Stripe list endpoints accept.
const pageLimit = 100

type eventListResponse struct {
	Data    []models.RawEvent `json:"data"`
	HasMore bool              `json:"has_more"`
}

// endpointFor maps an event type to its listing endpoint and the client-side
// status filter applied to each record. Stripe has no decline-only endpoint;
// failed charges are charges with status "failed", and the charge stream
// excludes them so the two never overlap.
func endpointFor(eventType models.EventType) (string, func(models.RawEvent) bool, error) {
	switch eventType {
	case models.EventTypeCharge:
		return "/v1/charges", func(e models.RawEvent) bool { return e.Status != "failed" }, nil
	case models.EventTypeFailedCharge:
		return "/v1/charges", func(e models.RawEvent) bool { return e.Status == "failed" }, nil
	case models.EventTypeRefund:
		return "/v1/refunds", func(models.RawEvent) bool { return true }, nil
	case models.EventTypeDispute:
		return "/v1/disputes", func(models.RawEvent) bool { return true }, nil
	default:
		return "", nil, fmt.Errorf("unknown event type: %s", eventType)
	}
}

// ListEvents retrieves all events of one type created within [from, to]
// (inclusive unix timestamps) on behalf of the given connected account,
// following the starting_after cursor until has_more is false.
//
// On a page failure the events accumulated so far are returned together with
// the error, so callers can keep the partial data and record the truncation.
func (c *Client) ListEvents(ctx context.Context, eventType models.EventType, accountID string, from, to int64) ([]models.RawEvent, error) {
	path, keep, err := endpointFor(eventType)
	if err != nil {
		return nil, err
	}

	var events []models.RawEvent
	cursor := ""
	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(pageLimit))
		query.Set("created[gte]", strconv.FormatInt(from, 10))
		query.Set("created[lte]", strconv.FormatInt(to, 10))
		if cursor != "" {
			query.Set("starting_after", cursor)
		}

		var page eventListResponse
		if err := c.get(ctx, path, query, accountID, &page); err != nil {
			return events, fmt.Errorf("failed to list %s events for %s: %w", eventType, accountID, err)
		}

		for _, ev := range page.Data {
			if keep(ev) {
				events = append(events, ev)
			}
		}

		// The cursor is the id of the last raw record on the page, before
		// any status filtering.
		if !page.HasMore || len(page.Data) == 0 {
			break
		}
		cursor = page.Data[len(page.Data)-1].ID
	}

	c.log.Debugf("Fetched %d %s events for account %s", len(events), eventType, accountID)
	return events, nil
}
