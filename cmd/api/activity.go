package main

import (
	"context"
	"encoding/json"
	"net/http"

	"hopskip/internal/params"
	"hopskip/internal/store"
)

// logActivity writes an audit row in the background. The trail is
// fire-and-forget: failures are logged and never fail the operation that
// produced them.
func (app *application) logActivity(_ context.Context, actor int64, panel, module, action string, payload any, success bool) {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte("{}")
	}

	entry := &store.ActivityEntry{
		Actor:   actor,
		Panel:   panel,
		Module:  module,
		Action:  action,
		Payload: raw,
		Success: success,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), store.QueryTimeoutDuration)
		defer cancel()

		if err := app.activity.Activity.Log(ctx, entry); err != nil {
			app.logger.Warnw("activity log write failed", "module", module, "action", action, "error", err.Error())
		}
	}()
}

// GetActivity godoc
//
//	@Summary		Recent activity
//	@Description	Paginated audit trail, newest first.
//	@Tags			ops
//	@Produce		json
//	@Param			page	query		int	false	"Page number"		default(1)
//	@Param			limit	query		int	false	"Items per page"	default(25)
//	@Success		200		{array}		store.ActivityEntry
//	@Failure		500		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/activity [get]
func (app *application) getActivityHandler(w http.ResponseWriter, r *http.Request) {
	p := params.ParsePagination(r.URL.Query())

	entries, err := app.activity.Activity.ListRecent(r.Context(), p.Limit, p.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "recent activity", entries); err != nil {
		app.internalServerError(w, r, err)
	}
}
