package capacity

import (
	"context"
	"math"
	"strings"
	"time"

	"hopskip/internal/apperr"
	"hopskip/internal/domain/bookings"
	"hopskip/internal/domain/schedules"
	"hopskip/internal/domain/venues"
)

type VenueReader interface {
	ListCreatedBetween(ctx context.Context, from, to *time.Time) ([]venues.Venue, error)
}

type ScheduleReader interface {
	ListByVenueIDs(ctx context.Context, venueIDs []int64) ([]schedules.ClassSchedule, error)
}

type BookingReader interface {
	ListForCapacity(ctx context.Context, f bookings.CapacityFilter) ([]bookings.CapacityRow, error)
	ListStudentsByBookingIDs(ctx context.Context, bookingIDs []int64) ([]bookings.Student, error)
}

// Service assembles the venues → classes → bookings → students occupancy
// tree. The three entity reads run in sequence without a shared transaction;
// the report is an eventually-consistent snapshot, which is the accepted
// contract for a dashboard read.
type Service struct {
	venues    VenueReader
	schedules ScheduleReader
	bookings  BookingReader
}

func NewService(v VenueReader, s ScheduleReader, b BookingReader) *Service {
	return &Service{venues: v, schedules: s, bookings: b}
}

// Report builds the capacity report. adminID is accepted for future scoping;
// the report is currently global across admins.
func (s *Service) Report(ctx context.Context, adminID int64, f Filter) (*Report, error) {
	from, to := dayBounds(f.FromDate, f.ToDate)

	vs, err := s.venues.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, apperr.Internal("could not load venues", err)
	}

	venueIDs := make([]int64, 0, len(vs))
	for _, v := range vs {
		venueIDs = append(venueIDs, v.ID)
	}

	cs, err := s.schedules.ListByVenueIDs(ctx, venueIDs)
	if err != nil {
		return nil, apperr.Internal("could not load class schedules", err)
	}

	rows, err := s.bookings.ListForCapacity(ctx, bookings.CapacityFilter{
		VenueID:   f.VenueID,
		BookedBy:  f.BookedBy,
		Status:    f.Status,
		TrialDate: f.TrialDate,
	})
	if err != nil {
		return nil, apperr.Internal("could not load bookings", err)
	}

	bookingIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		bookingIDs = append(bookingIDs, row.ID)
	}
	students, err := s.bookings.ListStudentsByBookingIDs(ctx, bookingIDs)
	if err != nil {
		return nil, apperr.Internal("could not load students", err)
	}

	tree := assemble(vs, cs, rows, students)
	tree = filterVenueName(tree, f.VenueName)
	tree = filterStudentName(tree, f.StudentName)

	report := &Report{
		Venues:      tree,
		Overview:    overview(tree),
		SearchVenue: searchList(tree),
	}
	return report, nil
}

// dayBounds expands an inclusive fromDate..toDate pair to full-day
// boundaries. Both dates must be present or no bound applies.
func dayBounds(fromDate, toDate *time.Time) (*time.Time, *time.Time) {
	if fromDate == nil || toDate == nil {
		return nil, nil
	}
	from := time.Date(fromDate.Year(), fromDate.Month(), fromDate.Day(), 0, 0, 0, 0, fromDate.Location())
	to := time.Date(toDate.Year(), toDate.Month(), toDate.Day(), 23, 59, 59, 0, toDate.Location())
	return &from, &to
}

// assemble seeds the tree from venues so venues without bookings still
// appear, adds every class so classes without bookings still appear, folds
// bookings into their class, and finally drops venues left with no classes.
func assemble(vs []venues.Venue, cs []schedules.ClassSchedule, rows []bookings.CapacityRow, students []bookings.Student) []VenueView {
	studentsByBooking := make(map[int64][]StudentView)
	for _, st := range students {
		studentsByBooking[st.BookingID] = append(studentsByBooking[st.BookingID], StudentView{
			ID:        st.ID,
			FirstName: st.FirstName,
			LastName:  st.LastName,
			Age:       st.Age,
		})
	}

	classIndex := make(map[int64]*ClassView)
	classesByVenue := make(map[int64][]*ClassView)
	for _, c := range cs {
		cv := &ClassView{
			ID:        c.ID,
			DayOfWeek: c.DayOfWeek,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Capacity:  c.CapacityValue(),
			Status:    c.Status,
			Bookings:  []BookingView{},
		}
		classIndex[c.ID] = cv
		classesByVenue[c.VenueID] = append(classesByVenue[c.VenueID], cv)
	}

	for _, row := range rows {
		if row.ClassScheduleID == nil {
			continue
		}
		cv, ok := classIndex[*row.ClassScheduleID]
		if !ok {
			continue
		}
		cv.Bookings = append(cv.Bookings, BookingView{
			ID:          row.ID,
			BookingType: row.BookingType,
			Status:      row.Status,
			TrialDate:   row.TrialDate,
			BookedBy:    row.BookedBy,
			CreatedAt:   row.CreatedAt,
			Students:    studentsByBooking[row.ID],
		})
	}

	var out []VenueView
	for _, v := range vs {
		classes := classesByVenue[v.ID]
		if len(classes) == 0 {
			continue
		}
		vv := VenueView{
			ID:      v.ID,
			Name:    v.Name,
			Address: v.Address,
			Classes: make([]ClassView, 0, len(classes)),
		}
		for _, cv := range classes {
			cv.Stats = computeStats(*cv)
			vv.Classes = append(vv.Classes, *cv)
		}
		out = append(out, vv)
	}
	return out
}

// computeStats derives a class's occupancy block. Each student on a booking
// consumes one slot; students on unrecognised booking types count toward
// totalBooked but neither sub-bucket.
func computeStats(cv ClassView) ClassStats {
	stats := ClassStats{TotalCapacity: cv.Capacity}
	for _, b := range cv.Bookings {
		heads := len(b.Students)
		stats.TotalBooked += heads
		switch Classify(b.BookingType) {
		case BucketMember:
			stats.Members += heads
		case BucketFreeTrial:
			stats.FreeTrials += heads
		}
	}

	stats.AvailableSpaces = cv.Capacity - stats.TotalBooked
	if stats.AvailableSpaces < 0 {
		stats.AvailableSpaces = 0
	}
	if cv.Capacity > 0 {
		stats.OccupancyRate = int(math.Round(float64(stats.TotalBooked) / float64(cv.Capacity) * 100))
	}
	return stats
}

// filterVenueName keeps venues whose name contains any of the comma-separated
// terms, case-insensitively.
func filterVenueName(tree []VenueView, needle string) []VenueView {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return tree
	}

	var terms []string
	for _, t := range strings.Split(needle, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, strings.ToLower(t))
		}
	}
	if len(terms) == 0 {
		return tree
	}

	var out []VenueView
	for _, v := range tree {
		name := strings.ToLower(v.Name)
		for _, t := range terms {
			if strings.Contains(name, t) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// filterStudentName prunes bookings with no matching "first last" student,
// then classes and venues left with no bookings. Class stats are computed on
// the unfiltered booking set; a name search narrows what is shown, not what
// the class's occupancy is.
func filterStudentName(tree []VenueView, needle string) []VenueView {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return tree
	}

	var out []VenueView
	for _, v := range tree {
		var keptClasses []ClassView
		for _, c := range v.Classes {
			var keptBookings []BookingView
			for _, b := range c.Bookings {
				if bookingMatchesStudent(b, needle) {
					keptBookings = append(keptBookings, b)
				}
			}
			if len(keptBookings) > 0 {
				c.Bookings = keptBookings
				keptClasses = append(keptClasses, c)
			}
		}
		if len(keptClasses) > 0 {
			v.Classes = keptClasses
			out = append(out, v)
		}
	}
	return out
}

func bookingMatchesStudent(b BookingView, needle string) bool {
	for _, st := range b.Students {
		full := strings.ToLower(st.FirstName + " " + st.LastName)
		if strings.Contains(full, needle) {
			return true
		}
	}
	return false
}

// overview sums the per-class stats across the remaining venues. The class
// is the aggregation unit; summing venue-level rollups would double count
// venues with several classes.
func overview(tree []VenueView) ClassStats {
	var o ClassStats
	for _, v := range tree {
		for _, c := range v.Classes {
			o.TotalCapacity += c.Stats.TotalCapacity
			o.TotalBooked += c.Stats.TotalBooked
			o.AvailableSpaces += c.Stats.AvailableSpaces
			o.Members += c.Stats.Members
			o.FreeTrials += c.Stats.FreeTrials
		}
	}
	if o.TotalCapacity > 0 {
		o.OccupancyRate = int(math.Round(float64(o.TotalBooked) / float64(o.TotalCapacity) * 100))
	}
	return o
}

func searchList(tree []VenueView) []SearchVenue {
	out := make([]SearchVenue, 0, len(tree))
	for _, v := range tree {
		out = append(out, SearchVenue{ID: v.ID, VenueName: v.Name})
	}
	return out
}
