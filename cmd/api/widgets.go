package main

import (
	"net/http"

	"hopskip/internal/domain/widgets"
)

// GetWidgets godoc
//
//	@Summary		Widget configuration
//	@Description	Returns the admin's dashboard widgets ordered by display order.
//	@Tags			dashboard
//	@Produce		json
//	@Success		200	{array}		widgets.Widget
//	@Failure		500	{object}	error
//	@Security		ApiKeyAuth
//	@Router			/dashboard/widgets [get]
func (app *application) getWidgetsHandler(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())

	ws, err := app.dashboard.Widgets(r.Context(), adminID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "widget configuration", ws); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateWidgetsRequest struct {
	Widgets []widgets.Placement `json:"widgets" validate:"required,min=1,dive"`
}

// UpdateWidgets godoc
//
//	@Summary		Update widget order and visibility
//	@Description	Upserts the supplied placements; one unknown key rejects the whole batch.
//	@Tags			dashboard
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		UpdateWidgetsRequest	true	"Widget placements"
//	@Success		200		{array}		widgets.Widget
//	@Failure		400		{object}	error
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/dashboard/widgets [put]
func (app *application) updateWidgetsHandler(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())

	var req UpdateWidgetsRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ws, err := app.dashboard.UpdateWidgets(r.Context(), adminID, req.Widgets)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.logActivity(r.Context(), adminID, "dashboard", "widgets", "update", req, true)

	if err := app.jsonResponse(w, http.StatusOK, "widgets updated", ws); err != nil {
		app.internalServerError(w, r, err)
	}
}
