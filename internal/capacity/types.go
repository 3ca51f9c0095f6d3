package capacity

import "time"

// ClassStats is the computed occupancy block attached to every class and,
// summed class-by-class, to the report overview.
type ClassStats struct {
	TotalCapacity   int `json:"totalCapacity"`
	TotalBooked     int `json:"totalBooked"`
	AvailableSpaces int `json:"availableSpaces"`
	Members         int `json:"members"`
	FreeTrials      int `json:"freeTrials"`
	OccupancyRate   int `json:"occupancyRate"`
}

type StudentView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

type BookingView struct {
	ID          int64         `json:"id"`
	BookingType string        `json:"bookingType"`
	Status      string        `json:"status"`
	TrialDate   *time.Time    `json:"trialDate"`
	BookedBy    int64         `json:"bookedBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	Students    []StudentView `json:"students"`
}

type ClassView struct {
	ID        int64         `json:"id"`
	DayOfWeek string        `json:"dayOfWeek"`
	StartTime string        `json:"startTime"`
	EndTime   string        `json:"endTime"`
	Capacity  int           `json:"capacity"`
	Status    string        `json:"status"`
	Bookings  []BookingView `json:"bookings"`
	Stats     ClassStats    `json:"stats"`
}

type VenueView struct {
	ID      int64       `json:"id"`
	Name    string      `json:"venueName"`
	Address string      `json:"address"`
	Classes []ClassView `json:"classes"`
}

// SearchVenue is the flat {id, venueName} pair used to seed a filter
// dropdown from the already-filtered venue set.
type SearchVenue struct {
	ID        int64  `json:"id"`
	VenueName string `json:"venueName"`
}

type Report struct {
	Venues      []VenueView   `json:"venues"`
	Overview    ClassStats    `json:"overview"`
	SearchVenue []SearchVenue `json:"searchVenue"`
}

// Filter narrows the report. Zero values mean "not filtered". FromDate and
// ToDate bound venue creation and only apply when both are present.
type Filter struct {
	StudentName string
	VenueName   string
	Status      string
	VenueID     int64
	BookedBy    int64
	TrialDate   *time.Time
	FromDate    *time.Time
	ToDate      *time.Time
}
