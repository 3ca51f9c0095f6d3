package credits

import "time"

// Credit reasons. Anything else is rejected before the transaction opens.
const (
	ReasonAuto   = "auto"
	ReasonManual = "manual"
)

// Credit is one append-only ledger row compensating a cancelled class
// session. Both the booking and the schedule id are denormalised onto the
// row for later reporting; credits are never updated or deleted.
type Credit struct {
	ID              int64     `json:"id"`
	BookingID       *int64    `json:"booking_id"`
	ClassScheduleID *int64    `json:"class_schedule_id"`
	Reference       string    `json:"reference"`
	CreditAmount    int64     `json:"credit_amount"`
	Reason          string    `json:"reason"`
	CreatedAt       time.Time `json:"created_at"`
}

func ValidReason(reason string) bool {
	return reason == ReasonAuto || reason == ReasonManual
}
