package schedules

import "time"

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// ClassSchedule is a recurring time slot at a venue. Capacity may be null in
// storage; a nil Capacity means no slots were configured and is treated as
// zero available, never as unlimited.
type ClassSchedule struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venue_id"`
	DayOfWeek string    `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Capacity  *int      `json:"capacity"`
	Status    string    `json:"status"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CapacityValue resolves the nullable capacity to its effective value.
func (c *ClassSchedule) CapacityValue() int {
	if c.Capacity == nil || *c.Capacity < 0 {
		return 0
	}
	return *c.Capacity
}
