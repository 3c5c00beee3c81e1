package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/starwars-api/internal/apperror"
)

// pathID reads a positive integer URL parameter registered on the chi route,
// e.g. "{user_id}" in /likes/planets/{user_id}/{planet_id}.
// Only decimal digits are accepted; ParseInt alone would also take "+1".
// Leading zeros are allowed, so "01" is 1.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" || raw[0] < '0' || raw[0] > '9' {
		return 0, invalidID(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidID(name)
	}
	return id, nil
}

func invalidID(name string) error {
	return apperror.ValidationFailed(name, name+" must be a positive integer")
}
