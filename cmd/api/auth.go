package main

import (
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

type CreateTokenRequest struct {
	AdminID int64  `json:"admin_id" validate:"required,gt=0"`
	Role    string `json:"role" validate:"required"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateToken godoc
//
//	@Summary		Issue admin tokens
//	@Description	Exchanges ops basic-auth credentials for an admin token pair. Identity itself is managed outside this service.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateTokenRequest	true	"Admin identity"
//	@Success		201		{object}	TokenPairResponse
//	@Failure		400		{object}	error
//	@Security		ApiKeyAuth
//	@Router			/authentication/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTokenRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	access, refresh, err := app.authenticator.GenerateTokens(req.AdminID, req.Role)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := TokenPairResponse{AccessToken: access, RefreshToken: refresh}
	if err := app.jsonResponse(w, http.StatusCreated, "tokens issued", resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshToken godoc
//
//	@Summary	Refresh an admin token pair
//	@Tags		authentication
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		RefreshTokenRequest	true	"Refresh token"
//	@Success	201		{object}	TokenPairResponse
//	@Failure	401		{object}	error
//	@Router		/authentication/refresh [post]
func (app *application) refreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	token, err := app.authenticator.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		app.unauthorizedErrorResponse(w, r, err)
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid token claims"))
		return
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		app.unauthorizedErrorResponse(w, r, fmt.Errorf("invalid subject claim"))
		return
	}

	access, refresh, err := app.authenticator.GenerateTokens(int64(sub), "admin")
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	resp := TokenPairResponse{AccessToken: access, RefreshToken: refresh}
	if err := app.jsonResponse(w, http.StatusCreated, "tokens refreshed", resp); err != nil {
		app.internalServerError(w, r, err)
	}
}
