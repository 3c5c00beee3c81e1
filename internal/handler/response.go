package handler

// RESPONSE HELPERS:
// Every response body is JSON. Successful mutations and every error share a
// single shape:
//
//	{"msg": "planet already added"}
//
// so clients only ever need to read one field to show the outcome.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/apperror"
)

// Message is the body of every error and of every mutation response.
type Message struct {
	Msg string `json:"msg"`
}

// writeJSON sends data with the given status code.
// Headers and status must be written before the body; once Encode writes,
// later header changes are ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent, all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// WriteMessage sends {"msg": msg}. Middleware uses it too, so every
// non-entity body has this one shape.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Message{Msg: msg})
}

// StatusFor maps a domain error to its HTTP status.
//
// Conflicts ("already added", "already exists") are 404, not 409. API clients
// were built against that status and it is kept for them.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError translates err into a {"msg"} response.
//
// Only *apperror.AppError messages reach the client. Anything else may carry
// SQL or file paths, so it is logged and replaced with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		WriteMessage(w, StatusFor(err), appErr.Message)
		return
	}

	slog.Error("unhandled error", slog.String("error", err.Error()))
	WriteMessage(w, http.StatusInternalServerError, "internal server error")
}

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteMessage(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed answers requests whose path matches but method does not.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}
