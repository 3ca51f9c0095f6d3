package lifecycle

import (
	"context"
	"errors"
	"time"

	"hopskip/internal/apperr"
	"hopskip/internal/domain/bookings"
	"hopskip/internal/domain/credits"
	"hopskip/internal/domain/storage"
)

// Service owns the side-effecting booking transitions. Every operation runs
// inside one transaction: either all of its writes land or none do. Legality
// of a transition is checked per operation; there is no central state
// machine.
type Service struct {
	uow  storage.UnitOfWork
	refs *credits.ReferenceGenerator
	now  func() time.Time
}

func NewService(uow storage.UnitOfWork, refs *credits.ReferenceGenerator) *Service {
	return &Service{uow: uow, refs: refs, now: time.Now}
}

type CreditRequest struct {
	BookingID    *int64 `json:"booking_id"`
	CreditAmount int64  `json:"credit_amount" validate:"required,gt=0"`
	Reason       string `json:"reason" validate:"required"`
}

// ScheduleDetails is the snapshot of the cancelled session captured before
// commit, for the credit note shown to the operator.
type ScheduleDetails struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	VenueName string `json:"venue_name"`
}

type CreditResult struct {
	Credit          credits.Credit   `json:"credit"`
	Booking         *bookings.Detail `json:"booking,omitempty"`
	ScheduleDetails *ScheduleDetails `json:"schedule_details,omitempty"`
}

// CreateCredit removes availability from a class: the linked schedule is
// marked cancelled and an append-only credit row is written, referencing
// both the booking and the schedule. A missing booking rolls the whole
// transaction back; no orphan credit row is ever committed.
func (s *Service) CreateCredit(ctx context.Context, req CreditRequest) (*CreditResult, error) {
	if req.CreditAmount <= 0 {
		return nil, apperr.Validation("credit amount must be greater than zero")
	}
	if !credits.ValidReason(req.Reason) {
		return nil, apperr.Validation("reason must be %q or %q", credits.ReasonAuto, credits.ReasonManual)
	}

	var result CreditResult
	err := s.uow.WithTx(ctx, func(tx *storage.TxStores) error {
		credit := credits.Credit{
			BookingID:    req.BookingID,
			CreditAmount: req.CreditAmount,
			Reason:       req.Reason,
		}

		var refID int64
		if req.BookingID != nil {
			detail, err := tx.Bookings.GetDetail(ctx, *req.BookingID)
			if err != nil {
				if errors.Is(err, bookings.ErrNotFound) {
					return apperr.NotFound("booking %d not found", *req.BookingID)
				}
				return apperr.Internal("could not load booking", err)
			}
			result.Booking = detail
			refID = detail.ID

			if detail.ClassScheduleID != nil {
				if err := tx.Schedules.MarkCancelled(ctx, *detail.ClassScheduleID); err != nil {
					return apperr.Internal("could not cancel class schedule", err)
				}
				credit.ClassScheduleID = detail.ClassScheduleID
				result.ScheduleDetails = &ScheduleDetails{
					Day:       detail.ScheduleDay,
					StartTime: detail.ScheduleStartTime,
					EndTime:   detail.ScheduleEndTime,
					VenueName: detail.VenueName,
				}
			}
		}

		ref, err := s.refs.Generate(refID, s.now())
		if err != nil {
			return apperr.Internal("could not generate credit reference", err)
		}
		credit.Reference = ref

		if err := tx.Credits.Create(ctx, &credit); err != nil {
			return apperr.Internal("could not create credit", err)
		}
		result.Credit = credit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Freeze pauses a booked membership. Only pending or active bookings can be
// frozen.
func (s *Service) Freeze(ctx context.Context, bookingID int64) (*bookings.Detail, error) {
	return s.transition(ctx, bookingID, bookings.StatusFrozen,
		[]string{bookings.StatusPending, bookings.StatusActive})
}

// Reactivate resumes a frozen booking.
func (s *Service) Reactivate(ctx context.Context, bookingID int64) (*bookings.Detail, error) {
	return s.transition(ctx, bookingID, bookings.StatusActive,
		[]string{bookings.StatusFrozen})
}

// Cancel ends a booking. Cancelled is terminal; repeating the call fails the
// precondition check instead of cancelling twice.
func (s *Service) Cancel(ctx context.Context, bookingID int64) (*bookings.Detail, error) {
	return s.transition(ctx, bookingID, bookings.StatusCancelled,
		[]string{bookings.StatusPending, bookings.StatusActive, bookings.StatusFrozen})
}

// PromoteWaitingList converts a queued booking into an active one once a
// slot opens.
func (s *Service) PromoteWaitingList(ctx context.Context, bookingID int64) (*bookings.Detail, error) {
	return s.transition(ctx, bookingID, bookings.StatusActive,
		[]string{bookings.StatusWaitingList})
}

// RemoveWaitingList drops a queued booking from the waiting list.
func (s *Service) RemoveWaitingList(ctx context.Context, bookingID int64) (*bookings.Detail, error) {
	return s.transition(ctx, bookingID, bookings.StatusCancelled,
		[]string{bookings.StatusWaitingList})
}

func (s *Service) transition(ctx context.Context, bookingID int64, to string, allowedFrom []string) (*bookings.Detail, error) {
	if bookingID == 0 {
		return nil, apperr.Validation("booking id is required")
	}

	var detail *bookings.Detail
	err := s.uow.WithTx(ctx, func(tx *storage.TxStores) error {
		if err := tx.Bookings.TransitionStatus(ctx, bookingID, to, allowedFrom); err != nil {
			switch {
			case errors.Is(err, bookings.ErrNotFound):
				return apperr.NotFound("booking %d not found", bookingID)
			case errors.Is(err, bookings.ErrBadTransition):
				return apperr.Conflict("booking %d cannot move to %s from its current state", bookingID, to)
			default:
				return apperr.Internal("could not update booking status", err)
			}
		}

		d, err := tx.Bookings.GetDetail(ctx, bookingID)
		if err != nil {
			return apperr.Internal("could not reload booking", err)
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
