package api

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

// LocationsHandler handles delivery city and place endpoints.
type LocationsHandler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

type createCityRequest struct {
	Name string `json:"name"`
}

type createPlaceRequest struct {
	Name string `json:"name"`
}

// ListCities handles GET /api/cities.
func (h *LocationsHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := store.ListCities(r.Context(), h.DB)
	if err != nil {
		h.Log.Error("failed to list cities", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to list cities")
		return
	}
	if cities == nil {
		cities = []model.City{}
	}
	jsonResponse(w, http.StatusOK, cities)
}

// CreateCity handles POST /api/cities.
func (h *LocationsHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req createCityRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	city, err := store.CreateCity(r.Context(), h.DB, req.Name)
	if err != nil {
		jsonError(w, http.StatusConflict, "city already exists")
		return
	}

	jsonResponse(w, http.StatusCreated, city)
}

// DeleteCity handles DELETE /api/cities/{id}. Its places cascade away;
// recorded inquiries keep their text via SET NULL references.
func (h *LocationsHandler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid city id")
		return
	}

	if err := store.DeleteCity(r.Context(), h.DB, id); err != nil {
		h.Log.Error("failed to delete city", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to delete city")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "city deleted"})
}

// ListPlaces handles GET /api/cities/{id}/places. This endpoint is public:
// the storefront's city dropdown fetches it to populate the place dropdown.
func (h *LocationsHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	cityID, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid city id")
		return
	}

	places, err := store.ListPlacesByCity(r.Context(), h.DB, cityID)
	if err != nil {
		h.Log.Error("failed to list places", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to list places")
		return
	}
	if places == nil {
		places = []model.Place{}
	}
	jsonResponse(w, http.StatusOK, places)
}

// CreatePlace handles POST /api/cities/{id}/places.
func (h *LocationsHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	cityID, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid city id")
		return
	}

	var req createPlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	city, err := store.GetCity(r.Context(), h.DB, cityID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if city == nil {
		jsonError(w, http.StatusNotFound, "city not found")
		return
	}

	place, err := store.CreatePlace(r.Context(), h.DB, cityID, req.Name)
	if err != nil {
		jsonError(w, http.StatusConflict, "place already exists in this city")
		return
	}

	jsonResponse(w, http.StatusCreated, place)
}

// DeletePlace handles DELETE /api/places/{id}.
func (h *LocationsHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid place id")
		return
	}

	if err := store.DeletePlace(r.Context(), h.DB, id); err != nil {
		h.Log.Error("failed to delete place", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to delete place")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "place deleted"})
}
