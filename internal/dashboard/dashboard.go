package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"hopskip/internal/apperr"
	"hopskip/internal/domain/bookings"
	"hopskip/internal/domain/schedules"
	"hopskip/internal/domain/widgets"
)

type ScheduleReader interface {
	ListByAdmin(ctx context.Context, adminID int64, from, to *time.Time) ([]schedules.ClassSchedule, error)
}

type BookingReader interface {
	ListByScheduleIDs(ctx context.Context, scheduleIDs []int64, from, to *time.Time) ([]bookings.Booking, error)
	CountStudents(ctx context.Context, bookingIDs []int64) (int64, error)
}

type WidgetStore interface {
	ListByAdmin(ctx context.Context, adminID int64) ([]widgets.Widget, error)
	Upsert(ctx context.Context, adminID int64, p widgets.Placement) error
}

// Service computes the admin-scoped dashboard counters and manages the
// admin's widget layout. Every read is scoped by the admin id.
type Service struct {
	schedules ScheduleReader
	bookings  BookingReader
	widgets   WidgetStore
	now       func() time.Time
}

func NewService(s ScheduleReader, b BookingReader, w WidgetStore) *Service {
	return &Service{schedules: s, bookings: b, widgets: w, now: time.Now}
}

// Stats assembles the four counter blocks for one admin, bounded by the
// resolved date window and ordered by the admin's widget configuration.
func (s *Service) Stats(ctx context.Context, adminID int64, filterType string, fromDate, toDate *time.Time) (Blocks, error) {
	if adminID == 0 {
		return nil, apperr.Validation("admin id is required")
	}

	window := ResolveWindow(filterType, fromDate, toDate, s.now())
	from, to := window.Bounds()

	scheds, err := s.schedules.ListByAdmin(ctx, adminID, from, to)
	if err != nil {
		return nil, apperr.Internal("could not load class schedules", err)
	}

	var totalCapacity int
	scheduleIDs := make([]int64, 0, len(scheds))
	for _, c := range scheds {
		totalCapacity += c.CapacityValue()
		scheduleIDs = append(scheduleIDs, c.ID)
	}
	var avgCapacity float64
	if len(scheds) > 0 {
		avgCapacity = float64(totalCapacity) / float64(len(scheds))
	}

	bs, err := s.bookings.ListByScheduleIDs(ctx, scheduleIDs, from, to)
	if err != nil {
		return nil, apperr.Internal("could not load bookings", err)
	}

	bookingIDs := make([]int64, 0, len(bs))
	var trialsBooked, cancellations int64
	for _, b := range bs {
		bookingIDs = append(bookingIDs, b.ID)
		if b.BookingType == bookings.TypeFree && b.Status == bookings.StatusPending {
			trialsBooked++
		}
		if b.Status == bookings.StatusCancelled {
			cancellations++
		}
	}

	totalStudents, err := s.bookings.CountStudents(ctx, bookingIDs)
	if err != nil {
		return nil, apperr.Internal("could not count students", err)
	}

	blocks := map[string]Block{
		widgets.KeyTotalStudents: newBlock(totalStudents),
		widgets.KeyTrialsBooked:  newBlock(trialsBooked),
		widgets.KeyClassCapacity: newBlock(int64(math.Round(avgCapacity))),
		widgets.KeyCancellations: newBlock(cancellations),
	}

	ws, err := s.widgets.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, apperr.Internal("could not load widget configuration", err)
	}

	return orderBlocks(blocks, ws), nil
}

// newBlock carries the raw count plus the literal "<count>%" strings the
// dashboard renders today.
func newBlock(count int64) Block {
	pct := fmt.Sprintf("%d%%", count)
	return Block{Count: count, ThisWeek: pct, LastMonth: pct}
}

// orderBlocks applies the admin's widget order, then appends any block the
// configuration does not reference, in default order.
func orderBlocks(blocks map[string]Block, ws []widgets.Widget) Blocks {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Order < ws[j].Order })

	out := make(Blocks, 0, len(blocks))
	placed := make(map[string]bool, len(blocks))
	for _, w := range ws {
		b, ok := blocks[w.Key]
		if !ok || placed[w.Key] {
			continue
		}
		placed[w.Key] = true
		out = append(out, NamedBlock{Key: w.Key, Block: b})
	}
	for _, key := range defaultOrder {
		if !placed[key] {
			out = append(out, NamedBlock{Key: key, Block: blocks[key]})
		}
	}
	return out
}

// Widgets returns the admin's widget rows ordered by display order.
func (s *Service) Widgets(ctx context.Context, adminID int64) ([]widgets.Widget, error) {
	if adminID == 0 {
		return nil, apperr.Validation("admin id is required")
	}
	ws, err := s.widgets.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, apperr.Internal("could not load widgets", err)
	}
	return ws, nil
}

// UpdateWidgets validates the whole batch against the fixed key set before
// touching storage, so one bad key rejects the batch with nothing written,
// then upserts each placement and returns the updated set.
func (s *Service) UpdateWidgets(ctx context.Context, adminID int64, ps []widgets.Placement) ([]widgets.Widget, error) {
	if adminID == 0 {
		return nil, apperr.Validation("admin id is required")
	}
	if len(ps) == 0 {
		return nil, apperr.Validation("no widgets supplied")
	}
	for _, p := range ps {
		if !widgets.ValidKey(p.Key) {
			return nil, apperr.Validation("unknown widget key %q", p.Key)
		}
	}

	for _, p := range ps {
		if err := s.widgets.Upsert(ctx, adminID, p); err != nil {
			return nil, apperr.Internal("could not save widget configuration", err)
		}
	}

	ws, err := s.widgets.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, apperr.Internal("could not reload widgets", err)
	}
	return ws, nil
}
