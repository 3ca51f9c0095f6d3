package main

import (
	"fmt"
	"net/http"
	"strconv"

	"hopskip/internal/lifecycle"
	"hopskip/internal/mailer"
	"hopskip/internal/notifications"

	"github.com/go-chi/chi/v5"
)

// CreateCredit godoc
//
//	@Summary		Issue a credit
//	@Description	Cancels the booking's class schedule and writes an append-only credit row, atomically.
//	@Tags			credits
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		lifecycle.CreditRequest	true	"Credit request"
//	@Success		201		{object}	lifecycle.CreditResult
//	@Failure		400		{object}	error
//	@Failure		404		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/credits [post]
func (app *application) createCreditHandler(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())

	var req lifecycle.CreditRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.lifecycle.CreateCredit(r.Context(), req)
	if err != nil {
		app.logActivity(r.Context(), adminID, "admin", "credits", "create", req, false)
		app.serviceError(w, r, err)
		return
	}

	app.logActivity(r.Context(), adminID, "admin", "credits", "create", req, true)
	app.notifyTransition(adminID, notifications.CreditIssued, result.Credit.Reference)
	app.sendCreditEmail(result)

	if err := app.jsonResponse(w, http.StatusCreated, "credit issued", result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// sendCreditEmail mails the credit note to the ops inbox in the background;
// a delivery failure is logged and never surfaces to the caller.
func (app *application) sendCreditEmail(result *lifecycle.CreditResult) {
	if app.config.mail.opsEmail == "" {
		return
	}

	data := map[string]any{
		"Username":  "team",
		"Reference": result.Credit.Reference,
		"Amount":    result.Credit.CreditAmount,
	}
	if result.ScheduleDetails != nil {
		data["VenueName"] = result.ScheduleDetails.VenueName
		data["Day"] = result.ScheduleDetails.Day
		data["StartTime"] = result.ScheduleDetails.StartTime
	}

	go func() {
		if _, err := app.mailer.Send(mailer.CreditIssuedTemplate, "team", app.config.mail.opsEmail, data); err != nil {
			app.logger.Warnw("credit email failed", "reference", result.Credit.Reference, "error", err.Error())
		}
	}()
}

// GetCreditsByBooking godoc
//
//	@Summary		Credits for a booking
//	@Tags			credits
//	@Produce		json
//	@Param			bookingID	path		int	true	"Booking ID"
//	@Success		200			{array}		credits.Credit
//	@Failure		400			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/credits/booking/{bookingID} [get]
func (app *application) getCreditsByBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid booking id"))
		return
	}

	cs, err := app.store.Credits.ListByBookingID(r.Context(), bookingID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "credits", cs); err != nil {
		app.internalServerError(w, r, err)
	}
}
