package main

import (
	"encoding/json"
	"net/http"

	"hopskip/internal/params"
)

// GetAllBookings godoc
//
//	@Summary		Capacity report
//	@Description	Venues → classes → bookings → students tree with per-class and overall occupancy stats.
//	@Tags			bookings
//	@Produce		json
//	@Param			studentName	query		string	false	"Case-insensitive substring match on student name"
//	@Param			venueName	query		string	false	"Comma-separated venue name substrings"
//	@Param			venueId		query		int		false	"Filter by venue id"
//	@Param			bookedBy	query		int		false	"Filter by booking admin id"
//	@Param			status		query		string	false	"Filter by booking status"
//	@Param			trialDate	query		string	false	"Trial date (yyyy-mm-dd)"
//	@Param			fromDate	query		string	false	"Venue created from (yyyy-mm-dd)"
//	@Param			toDate		query		string	false	"Venue created to (yyyy-mm-dd)"
//	@Success		200			{object}	capacity.Report
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/bookings [get]
func (app *application) getAllBookingsHandler(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())
	filter := params.ParseCapacityFilter(r.URL.Query())

	key := app.reportCache.Key(adminID, r.URL.RawQuery)
	if payload, ok := app.reportCache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	report, err := app.capacity.Report(r.Context(), adminID, filter)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	body, err := json.Marshal(&envelope{
		Status:  true,
		Message: "capacity report",
		Data:    report,
	})
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.reportCache.Set(r.Context(), key, body)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
