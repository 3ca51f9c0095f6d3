package main

import (
	"encoding/json"
	"net/http"
)

// SavePushTokenRequest represents the payload for saving/updating a push token
type SavePushTokenRequest struct {
	Token      string          `json:"token" validate:"required"`
	DeviceInfo json.RawMessage `json:"device_info"`
}

// RemovePushTokenRequest represents the payload for removing a push token
type RemovePushTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// SavePushToken godoc
//
//	@Summary	Register an admin device token
//	@Tags		push-tokens
//	@Accept		json
//	@Produce	json
//	@Param		payload	body	SavePushTokenRequest	true	"Token payload"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	error
//	@Security	ApiKeyAuth
//	@Router		/push-tokens [post]
func (app *application) savePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())

	var req SavePushTokenRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.AddOrUpdatePushToken(r.Context(), adminID, req.Token, req.DeviceInfo); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "push token saved", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}

// RemovePushToken godoc
//
//	@Summary	Remove an admin device token
//	@Tags		push-tokens
//	@Accept		json
//	@Produce	json
//	@Param		payload	body	RemovePushTokenRequest	true	"Token payload"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	error
//	@Security	ApiKeyAuth
//	@Router		/push-tokens [delete]
func (app *application) removePushTokenHandler(w http.ResponseWriter, r *http.Request) {
	adminID := adminIDFromContext(r.Context())

	var req RemovePushTokenRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.store.PushTokens.RemovePushToken(r.Context(), adminID, req.Token); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, "push token removed", nil); err != nil {
		app.internalServerError(w, r, err)
	}
}
