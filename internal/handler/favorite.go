package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
)

// maxBodyBytes caps favorite request bodies; they hold a single id.
const maxBodyBytes = 1 << 10

// Favorites is implemented by service.FavoriteService.
type Favorites interface {
	Add(ctx context.Context, userID int64, target model.Target) error
	Remove(ctx context.Context, userID int64, target model.Target) error
}

// FavoriteHandler adds and removes likes.
//
// Two route shapes reach the same service calls:
//
//	POST|DELETE /likes/{kind}/{user_id}/{<column>}    ids in the path
//	POST        /user/{user_id}/favorites/{kind}      target id in a JSON body
type FavoriteHandler struct {
	favorites Favorites
	logger    *slog.Logger
}

func NewFavoriteHandler(favorites Favorites, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// HandleAdd returns the handler for POST /likes/<kind>/{user_id}/{<column>},
// where <column> is kind.Column(), e.g. /likes/planets/{user_id}/{planets_id}.
// Kind is fixed per route, so each kind gets its own registration.
func (h *FavoriteHandler) HandleAdd(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, targetID, err := pathIDs(r, kind)
		if err != nil {
			writeError(w, err)
			return
		}
		h.add(w, r, userID, model.Target{Kind: kind, ID: targetID})
	}
}

// HandleRemove returns the handler for DELETE /likes/<kind>/{user_id}/{<column>}.
func (h *FavoriteHandler) HandleRemove(kind model.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, targetID, err := pathIDs(r, kind)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := h.favorites.Remove(r.Context(), userID, model.Target{Kind: kind, ID: targetID}); err != nil {
			writeError(w, err)
			return
		}
		WriteMessage(w, http.StatusOK, kind.Label()+" deleted successfully")
	}
}

// favoriteRequest is the body of POST /user/{user_id}/favorites/{kind}.
// Exactly the key matching kind must be present:
//
//	{"planets_id": 1}   {"people_id": 1}   {"vehicle_id": 1}
type favoriteRequest struct {
	PlanetsID *int64 `json:"planets_id"`
	PeopleID  *int64 `json:"people_id"`
	VehicleID *int64 `json:"vehicle_id"`
}

// targetID validates the body against kind and returns the id to like.
func (req favoriteRequest) targetID(kind model.Kind) (int64, error) {
	ids := map[model.Kind]*int64{
		model.KindPlanet:    req.PlanetsID,
		model.KindCharacter: req.PeopleID,
		model.KindVehicle:   req.VehicleID,
	}

	field := kind.Column()
	for _, k := range model.Kinds {
		if k != kind && ids[k] != nil {
			return 0, apperror.ValidationFailed(k.Column(),
				fmt.Sprintf("%s is not allowed when adding %s", k.Column(), kind))
		}
	}

	id := ids[kind]
	if id == nil || *id <= 0 {
		return 0, apperror.ValidationFailed(field, field+" must be a positive integer")
	}
	return *id, nil
}

// HandleAddFromBody handles POST /user/{user_id}/favorites/{kind}.
// An unknown kind is a missing route, not a bad request.
func (h *FavoriteHandler) HandleAddFromBody(w http.ResponseWriter, r *http.Request) {
	kind, ok := model.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		NotFound(w, r)
		return
	}

	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req favoriteRequest
	if err := decodeStrict(w, r, &req); err != nil {
		h.logger.Warn("invalid favorite body",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	targetID, err := req.targetID(kind)
	if err != nil {
		writeError(w, err)
		return
	}

	h.add(w, r, userID, model.Target{Kind: kind, ID: targetID})
}

func (h *FavoriteHandler) add(w http.ResponseWriter, r *http.Request, userID int64, target model.Target) {
	if err := h.favorites.Add(r.Context(), userID, target); err != nil {
		writeError(w, err)
		return
	}
	WriteMessage(w, http.StatusOK, "added to favorites")
}

func pathIDs(r *http.Request, kind model.Kind) (userID, targetID int64, err error) {
	if userID, err = pathID(r, "user_id"); err != nil {
		return 0, 0, err
	}
	if targetID, err = pathID(r, kind.Column()); err != nil {
		return 0, 0, err
	}
	return userID, targetID, nil
}

// decodeStrict decodes exactly one JSON object with no unknown fields.
func decodeStrict(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}
