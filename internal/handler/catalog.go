package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/model"
)

// Catalog is the read side the handler needs. service.CatalogService
// satisfies it; tests pass a stub.
type Catalog interface {
	ListCharacters(ctx context.Context) ([]model.Character, error)
	GetCharacter(ctx context.Context, id int64) (*model.Character, error)
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanet(ctx context.Context, id int64) (*model.Planet, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUserLikes(ctx context.Context, userID int64) ([]model.Like, error)
}

// CatalogHandler serves the read-only endpoints:
//
//	GET /people            GET /people/{id}
//	GET /planets           GET /planets/{id}
//	GET /vehicles          GET /vehicles/{id}
//	GET /user              GET /user/{id}
//	GET /user/{id}/likes   (also /user/{id}/favorites)
type CatalogHandler struct {
	catalog Catalog
	logger  *slog.Logger
}

func NewCatalogHandler(catalog Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// list and get keep each endpoint to one line. Lists are never null on the
// wire; the stores return empty slices.
func list[T any](w http.ResponseWriter, items []T, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func get[T any](w http.ResponseWriter, r *http.Request, fetch func(context.Context, int64) (*T, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	item, err := fetch(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) HandleListPeople(w http.ResponseWriter, r *http.Request) {
	characters, err := h.catalog.ListCharacters(r.Context())
	list(w, characters, err)
}

// HandleGetPerson answers 404 "character does not exist" for unknown ids.
func (h *CatalogHandler) HandleGetPerson(w http.ResponseWriter, r *http.Request) {
	get(w, r, h.catalog.GetCharacter)
}

func (h *CatalogHandler) HandleListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.catalog.ListPlanets(r.Context())
	list(w, planets, err)
}

func (h *CatalogHandler) HandleGetPlanet(w http.ResponseWriter, r *http.Request) {
	get(w, r, h.catalog.GetPlanet)
}

func (h *CatalogHandler) HandleListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.catalog.ListVehicles(r.Context())
	list(w, vehicles, err)
}

func (h *CatalogHandler) HandleGetVehicle(w http.ResponseWriter, r *http.Request) {
	get(w, r, h.catalog.GetVehicle)
}

// HandleListUsers never includes password hashes; model.User hides them from JSON.
func (h *CatalogHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.catalog.ListUsers(r.Context())
	list(w, users, err)
}

func (h *CatalogHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	get(w, r, h.catalog.GetUser)
}

// HandleListUserLikes returns an empty array for users with no likes,
// including users that do not exist.
func (h *CatalogHandler) HandleListUserLikes(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	likes, err := h.catalog.ListUserLikes(r.Context(), userID)
	list(w, likes, err)
}
