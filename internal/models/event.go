package models

// EventType identifies one of the four transaction event streams a report is
// built from.
type EventType string

const (
	EventTypeCharge       EventType = "charge"
	EventTypeRefund       EventType = "refund"
	EventTypeDispute      EventType = "dispute"
	EventTypeFailedCharge EventType = "failed_charge"
)

// RawEvent is a single charge, refund, dispute or failed-charge record as
// returned by the payments API. Amount is in minor units (cents).
type RawEvent struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
}
