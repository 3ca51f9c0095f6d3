package main

import (
	"net/http"

	"hopskip/internal/params"
)

// GetDashboardStats godoc
//
//	@Summary		Dashboard statistics
//	@Description	Admin-scoped, time-windowed counters ordered by the admin's widget layout.
//	@Tags			dashboard
//	@Produce		json
//	@Param			filterType	query		string	false	"thismonth|lastmonth|thisweek|lastweek|thisyear|lastyear"
//	@Param			fromDate	query		string	false	"Explicit window start (yyyy-mm-dd), wins over filterType with toDate"
//	@Param			toDate		query		string	false	"Explicit window end (yyyy-mm-dd)"
//	@Success		200			{object}	dashboard.Blocks
//	@Failure		400			{object}	error
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/dashboard/stats [get]
func (app *application) getDashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())
	q := r.URL.Query()

	blocks, err := app.dashboard.Stats(
		r.Context(),
		adminID,
		q.Get("filterType"),
		params.ParseDate(q.Get("fromDate")),
		params.ParseDate(q.Get("toDate")),
	)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "dashboard statistics", blocks); err != nil {
		app.internalServerError(w, r, err)
	}
}
