package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
)

// RequestIDHeader is read from incoming requests and echoed on responses.
const RequestIDHeader = "X-Request-Id"

// maxRequestIDLength bounds client-supplied ids before they reach the logs.
const maxRequestIDLength = 64

// RequestID tags each request with an id. A client-supplied X-Request-Id is
// kept; otherwise a new xid is generated (20 chars, sortable by time).
//
// The id is stored under chi's RequestIDKey, so chimiddleware.GetReqID
// works as it would with chi's own RequestID middleware.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = xid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
