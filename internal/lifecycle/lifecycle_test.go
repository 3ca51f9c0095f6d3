package lifecycle

import (
	"context"
	"strings"
	"testing"
	"time"

	"hopskip/internal/apperr"
	"hopskip/internal/domain/bookings"
	"hopskip/internal/domain/credits"
	"hopskip/internal/domain/schedules"
	"hopskip/internal/domain/storage"
)

// fakeUOW runs the unit of work against mock stores and records whether the
// function committed or rolled back.
type fakeUOW struct {
	tx        *storage.TxStores
	commits   int
	rollbacks int
}

func (f *fakeUOW) WithTx(_ context.Context, fn func(tx *storage.TxStores) error) error {
	if err := fn(f.tx); err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

type mockBookingStore struct {
	details  map[int64]*bookings.Detail
	statuses map[int64]string
}

func (m *mockBookingStore) ListForCapacity(_ context.Context, _ bookings.CapacityFilter) ([]bookings.CapacityRow, error) {
	return nil, nil
}

func (m *mockBookingStore) ListStudentsByBookingIDs(_ context.Context, _ []int64) ([]bookings.Student, error) {
	return nil, nil
}

func (m *mockBookingStore) ListByScheduleIDs(_ context.Context, _ []int64, _, _ *time.Time) ([]bookings.Booking, error) {
	return nil, nil
}

func (m *mockBookingStore) CountStudents(_ context.Context, _ []int64) (int64, error) {
	return 0, nil
}

func (m *mockBookingStore) GetDetail(_ context.Context, id int64) (*bookings.Detail, error) {
	d, ok := m.details[id]
	if !ok {
		return nil, bookings.ErrNotFound
	}
	out := *d
	if status, ok := m.statuses[id]; ok {
		out.Status = status
	}
	return &out, nil
}

func (m *mockBookingStore) TransitionStatus(_ context.Context, id int64, to string, allowedFrom []string) error {
	current, ok := m.statuses[id]
	if !ok {
		return bookings.ErrNotFound
	}
	for _, from := range allowedFrom {
		if current == from {
			m.statuses[id] = to
			return nil
		}
	}
	return bookings.ErrBadTransition
}

type mockScheduleStore struct {
	cancelled []int64
}

func (m *mockScheduleStore) ListByVenueIDs(_ context.Context, _ []int64) ([]schedules.ClassSchedule, error) {
	return nil, nil
}

func (m *mockScheduleStore) ListByAdmin(_ context.Context, _ int64, _, _ *time.Time) ([]schedules.ClassSchedule, error) {
	return nil, nil
}

func (m *mockScheduleStore) MarkCancelled(_ context.Context, id int64) error {
	m.cancelled = append(m.cancelled, id)
	return nil
}

type mockCreditStore struct {
	created []credits.Credit
}

func (m *mockCreditStore) Create(_ context.Context, c *credits.Credit) error {
	c.ID = int64(len(m.created) + 1)
	c.CreatedAt = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	m.created = append(m.created, *c)
	return nil
}

func (m *mockCreditStore) ListByBookingID(_ context.Context, _ int64) ([]credits.Credit, error) {
	return m.created, nil
}

func int64Ptr(v int64) *int64 { return &v }

type fixture struct {
	svc       *Service
	uow       *fakeUOW
	bookings  *mockBookingStore
	schedules *mockScheduleStore
	credits   *mockCreditStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	bs := &mockBookingStore{
		details: map[int64]*bookings.Detail{
			50: {
				Booking: bookings.Booking{
					ID:              50,
					ClassScheduleID: int64Ptr(7),
					BookingType:     bookings.TypePaid,
					BookedBy:        3,
				},
				ScheduleDay:       "Monday",
				ScheduleStartTime: "16:00",
				ScheduleEndTime:   "17:00",
				VenueName:         "Riverside Sports Hall",
			},
			51: {
				Booking: bookings.Booking{ID: 51, BookingType: bookings.TypeFree, BookedBy: 4},
			},
		},
		statuses: map[int64]string{
			50: bookings.StatusActive,
			51: bookings.StatusPending,
		},
	}
	ss := &mockScheduleStore{}
	cs := &mockCreditStore{}
	uow := &fakeUOW{tx: &storage.TxStores{Bookings: bs, Schedules: ss, Credits: cs}}

	refs, err := credits.NewReferenceGenerator("test-salt")
	if err != nil {
		t.Fatalf("reference generator: %v", err)
	}

	svc := NewService(uow, refs)
	svc.now = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, uow: uow, bookings: bs, schedules: ss, credits: cs}
}

func TestCreateCreditCancelsScheduleAndWritesLedger(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.CreateCredit(context.Background(), CreditRequest{
		BookingID:    int64Ptr(50),
		CreditAmount: 2500,
		Reason:       credits.ReasonManual,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.schedules.cancelled) != 1 || f.schedules.cancelled[0] != 7 {
		t.Errorf("expected schedule 7 cancelled, got %v", f.schedules.cancelled)
	}
	if len(f.credits.created) != 1 {
		t.Fatalf("expected 1 credit row, got %d", len(f.credits.created))
	}

	c := f.credits.created[0]
	if c.BookingID == nil || *c.BookingID != 50 {
		t.Errorf("credit booking id = %v", c.BookingID)
	}
	if c.ClassScheduleID == nil || *c.ClassScheduleID != 7 {
		t.Errorf("credit schedule id = %v", c.ClassScheduleID)
	}
	if c.CreditAmount != 2500 || c.Reason != credits.ReasonManual {
		t.Errorf("credit row = %+v", c)
	}
	if !strings.HasPrefix(c.Reference, "CR-") {
		t.Errorf("reference = %q, want CR- prefix", c.Reference)
	}

	if res.ScheduleDetails == nil || res.ScheduleDetails.VenueName != "Riverside Sports Hall" {
		t.Errorf("schedule snapshot = %+v", res.ScheduleDetails)
	}
	if res.Booking == nil || res.Booking.ID != 50 {
		t.Errorf("booking snapshot = %+v", res.Booking)
	}
	if f.uow.commits != 1 {
		t.Errorf("expected 1 commit, got %d", f.uow.commits)
	}
}

func TestCreateCreditMissingBookingRollsBack(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateCredit(context.Background(), CreditRequest{
		BookingID:    int64Ptr(999),
		CreditAmount: 1000,
		Reason:       credits.ReasonAuto,
	})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.credits.created) != 0 {
		t.Errorf("no credit row may survive a missing booking, got %d", len(f.credits.created))
	}
	if len(f.schedules.cancelled) != 0 {
		t.Errorf("no schedule may be cancelled, got %v", f.schedules.cancelled)
	}
	if f.uow.rollbacks != 1 || f.uow.commits != 0 {
		t.Errorf("expected a rollback, commits=%d rollbacks=%d", f.uow.commits, f.uow.rollbacks)
	}
}

func TestCreateCreditValidatesBeforeOpeningTx(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateCredit(context.Background(), CreditRequest{BookingID: int64Ptr(50), CreditAmount: 0, Reason: credits.ReasonAuto})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("zero amount: expected validation, got %v", err)
	}

	_, err = f.svc.CreateCredit(context.Background(), CreditRequest{BookingID: int64Ptr(50), CreditAmount: 100, Reason: "goodwill"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("bad reason: expected validation, got %v", err)
	}

	if f.uow.commits != 0 || f.uow.rollbacks != 0 {
		t.Errorf("validation failures must not open a transaction")
	}
}

func TestCreateCreditWithoutBooking(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.CreateCredit(context.Background(), CreditRequest{
		CreditAmount: 500,
		Reason:       credits.ReasonAuto,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Booking != nil || res.ScheduleDetails != nil {
		t.Errorf("standalone credit should carry no snapshots: %+v", res)
	}
	if len(f.schedules.cancelled) != 0 {
		t.Errorf("standalone credit must not touch schedules")
	}
	if len(f.credits.created) != 1 || f.credits.created[0].BookingID != nil {
		t.Errorf("credit rows = %+v", f.credits.created)
	}
}

func TestCreateCreditBookingWithoutSchedule(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.CreateCredit(context.Background(), CreditRequest{
		BookingID:    int64Ptr(51),
		CreditAmount: 500,
		Reason:       credits.ReasonAuto,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.schedules.cancelled) != 0 {
		t.Errorf("no schedule to cancel, got %v", f.schedules.cancelled)
	}
	if res.ScheduleDetails != nil {
		t.Errorf("expected no schedule snapshot, got %+v", res.ScheduleDetails)
	}
	if res.Booking == nil || res.Booking.ID != 51 {
		t.Errorf("booking snapshot = %+v", res.Booking)
	}
}

func TestFreezeActiveBooking(t *testing.T) {
	f := newFixture(t)

	d, err := f.svc.Freeze(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != bookings.StatusFrozen {
		t.Errorf("status = %s, want frozen", d.Status)
	}
	if f.uow.commits != 1 {
		t.Errorf("expected 1 commit, got %d", f.uow.commits)
	}
}

func TestFreezeCancelledBookingConflicts(t *testing.T) {
	f := newFixture(t)
	f.bookings.statuses[50] = bookings.StatusCancelled

	_, err := f.svc.Freeze(context.Background(), 50)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}
	if f.bookings.statuses[50] != bookings.StatusCancelled {
		t.Errorf("status must be untouched, got %s", f.bookings.statuses[50])
	}
}

func TestReactivateRequiresFrozen(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Reactivate(context.Background(), 50)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("active booking cannot reactivate, got %v", err)
	}

	f.bookings.statuses[50] = bookings.StatusFrozen
	d, err := f.svc.Reactivate(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != bookings.StatusActive {
		t.Errorf("status = %s, want active", d.Status)
	}
}

func TestCancelIsTerminal(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Cancel(context.Background(), 50); err != nil {
		t.Fatalf("first cancel: %v", err)
	}
	_, err := f.svc.Cancel(context.Background(), 50)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("second cancel should conflict, got %v", err)
	}
}

func TestWaitingListPromotion(t *testing.T) {
	f := newFixture(t)
	f.bookings.statuses[51] = bookings.StatusWaitingList

	d, err := f.svc.PromoteWaitingList(context.Background(), 51)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != bookings.StatusActive {
		t.Errorf("status = %s, want active", d.Status)
	}

	// Not queued any more, so a second promotion conflicts.
	_, err = f.svc.PromoteWaitingList(context.Background(), 51)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestWaitingListRemoval(t *testing.T) {
	f := newFixture(t)
	f.bookings.statuses[51] = bookings.StatusWaitingList

	d, err := f.svc.RemoveWaitingList(context.Background(), 51)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != bookings.StatusCancelled {
		t.Errorf("status = %s, want cancelled", d.Status)
	}
}

func TestTransitionUnknownBooking(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Freeze(context.Background(), 404)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
	if f.uow.rollbacks != 1 {
		t.Errorf("expected a rollback, got %d", f.uow.rollbacks)
	}
}

func TestTransitionRequiresBookingID(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Freeze(context.Background(), 0)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation, got %v", err)
	}
	if f.uow.commits != 0 && f.uow.rollbacks != 0 {
		t.Errorf("missing id must not open a transaction")
	}
}
