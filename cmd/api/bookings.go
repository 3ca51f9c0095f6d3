package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hopskip/internal/domain/bookings"
	"hopskip/internal/notifications"

	"github.com/go-chi/chi/v5"
)

type transitionFunc func(ctx context.Context, bookingID int64) (*bookings.Detail, error)

// FreezeBooking godoc
//
//	@Summary	Freeze a booking
//	@Tags		bookings
//	@Produce	json
//	@Param		bookingID	path		int	true	"Booking ID"
//	@Success	200			{object}	bookings.Detail
//	@Failure	404			{object}	error
//	@Failure	409			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/bookings/{bookingID}/freeze [post]
func (app *application) freezeBookingHandler(w http.ResponseWriter, r *http.Request) {
	app.handleTransition(w, r, "freeze", app.lifecycle.Freeze, notifications.BookingFrozen)
}

// ReactivateBooking godoc
//
//	@Summary	Reactivate a frozen booking
//	@Tags		bookings
//	@Produce	json
//	@Param		bookingID	path		int	true	"Booking ID"
//	@Success	200			{object}	bookings.Detail
//	@Failure	404			{object}	error
//	@Failure	409			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/bookings/{bookingID}/reactivate [post]
func (app *application) reactivateBookingHandler(w http.ResponseWriter, r *http.Request) {
	app.handleTransition(w, r, "reactivate", app.lifecycle.Reactivate, notifications.BookingReactivated)
}

// CancelBooking godoc
//
//	@Summary	Cancel a booking
//	@Tags		bookings
//	@Produce	json
//	@Param		bookingID	path		int	true	"Booking ID"
//	@Success	200			{object}	bookings.Detail
//	@Failure	404			{object}	error
//	@Failure	409			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/bookings/{bookingID}/cancel [post]
func (app *application) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	app.handleTransition(w, r, "cancel", app.lifecycle.Cancel, notifications.BookingCancelled)
}

// PromoteWaitingList godoc
//
//	@Summary	Promote a waiting-list booking to active
//	@Tags		bookings
//	@Produce	json
//	@Param		bookingID	path		int	true	"Booking ID"
//	@Success	200			{object}	bookings.Detail
//	@Failure	404			{object}	error
//	@Failure	409			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/bookings/{bookingID}/waiting-list/promote [post]
func (app *application) promoteWaitingListHandler(w http.ResponseWriter, r *http.Request) {
	app.handleTransition(w, r, "waiting-list-promote", app.lifecycle.PromoteWaitingList, notifications.WaitingPromoted)
}

// RemoveWaitingList godoc
//
//	@Summary	Remove a booking from the waiting list
//	@Tags		bookings
//	@Produce	json
//	@Param		bookingID	path		int	true	"Booking ID"
//	@Success	200			{object}	bookings.Detail
//	@Failure	404			{object}	error
//	@Failure	409			{object}	error
//	@Security	ApiKeyAuth
//	@Router		/bookings/{bookingID}/waiting-list [delete]
func (app *application) removeWaitingListHandler(w http.ResponseWriter, r *http.Request) {
	app.handleTransition(w, r, "waiting-list-remove", app.lifecycle.RemoveWaitingList, notifications.WaitingRemoved)
}

func (app *application) handleTransition(w http.ResponseWriter, r *http.Request, action string, fn transitionFunc, event notifications.BookingEvent) {
	adminID := adminIDFromContext(r.Context())

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid booking id"))
		return
	}

	detail, err := fn(r.Context(), bookingID)
	if err != nil {
		app.logActivity(r.Context(), adminID, "admin", "bookings", action, map[string]int64{"booking_id": bookingID}, false)
		app.serviceError(w, r, err)
		return
	}

	app.logActivity(r.Context(), adminID, "admin", "bookings", action, map[string]int64{"booking_id": bookingID}, true)
	app.notifyTransition(adminID, event, strconv.FormatInt(bookingID, 10))

	if err := app.jsonResponse(w, http.StatusOK, "booking "+detail.Status, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}

// notifyTransition pushes a transition notice in the background. Push
// failures (including admins with no registered device) are logged, never
// propagated.
func (app *application) notifyTransition(adminID int64, event notifications.BookingEvent, ref string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := notifications.SendBookingNotification(ctx, app.push, app.store.PushTokens, adminID, event, ref); err != nil {
			app.logger.Warnw("push notification failed", "event", event, "ref", ref, "error", err.Error())
		}
	}()
}
