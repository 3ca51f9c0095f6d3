package bookings

import "time"

// Booking types as stored on the row. Anything outside this pair still counts
// toward a class's total but belongs to neither the member nor the trial bucket.
const (
	TypeFree = "free"
	TypePaid = "paid"
)

// Booking lifecycle states. There is no central state machine; each
// transition checks its own precondition.
const (
	StatusPending     = "pending"
	StatusActive      = "active"
	StatusCancelled   = "cancelled"
	StatusWaitingList = "waiting list"
	StatusFrozen      = "frozen"
	StatusPaid        = "paid"
)

// Booking is a reservation of a class slot for one or more students
// (siblings share a booking).
type Booking struct {
	ID              int64      `json:"id"`
	ClassScheduleID *int64     `json:"class_schedule_id"`
	BookingType     string     `json:"booking_type"`
	Status          string     `json:"status"`
	TrialDate       *time.Time `json:"trial_date"`
	BookedBy        int64      `json:"booked_by"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Student is one child attached to a booking.
type Student struct {
	ID        int64  `json:"id"`
	BookingID int64  `json:"booking_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
}

// CapacityRow is a booking joined to its schedule's venue, as consumed by the
// capacity aggregator.
type CapacityRow struct {
	Booking
	VenueID int64 `json:"venue_id"`
}

// Detail is a booking joined to its schedule and venue, loaded before a
// credit/freeze/cancel transition so the response can carry a snapshot of
// what was affected.
type Detail struct {
	Booking
	ScheduleDay       string `json:"schedule_day"`
	ScheduleStartTime string `json:"schedule_start_time"`
	ScheduleEndTime   string `json:"schedule_end_time"`
	VenueName         string `json:"venue_name"`
}

// CapacityFilter narrows the capacity read. Zero values mean "not filtered".
type CapacityFilter struct {
	VenueID   int64
	BookedBy  int64
	Status    string
	TrialDate *time.Time
}
