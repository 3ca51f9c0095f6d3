package main

import (
	"net/http"

	"hopskip/internal/apperr"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusNotFound, err.Error())
}

func (app *application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusConflict, err.Error())
}

// serviceError maps a service-layer error kind onto the right HTTP response.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		app.logger.Warnw("validation failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusBadRequest, apperr.MessageOf(err))
	case apperr.KindNotFound:
		app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusNotFound, apperr.MessageOf(err))
	case apperr.KindConflict:
		app.logger.Warnw("conflict", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusConflict, apperr.MessageOf(err))
	default:
		app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, apperr.MessageOf(err))
	}
}

func (app *application) unauthorizedErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) unauthorizedBasicErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized basic auth", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "unauthorized")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter)
}
