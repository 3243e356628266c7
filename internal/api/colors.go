package api

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/imaging"
	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

// ColorsHandler handles color variant endpoints.
type ColorsHandler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

type createColorRequest struct {
	Name string `json:"name"`
}

type updateColorRequest struct {
	Name      string `json:"name"`
	IsSoldOut bool   `json:"is_sold_out"`
}

// List handles GET /api/items/{id}/colors.
func (h *ColorsHandler) List(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	colors, err := store.ListColorsWithImages(r.Context(), h.DB, itemID)
	if err != nil {
		h.Log.Error("failed to list colors", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to list colors")
		return
	}
	if colors == nil {
		colors = []model.Color{}
	}
	jsonResponse(w, http.StatusOK, colors)
}

// Create handles POST /api/items/{id}/colors.
func (h *ColorsHandler) Create(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req createColorRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil || item.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if !canManage(GetClaims(r.Context()), item) {
		jsonError(w, http.StatusForbidden, "only the listing's creator or an admin may modify it")
		return
	}

	color, err := store.CreateColor(r.Context(), h.DB, itemID, req.Name)
	if err != nil {
		jsonError(w, http.StatusConflict, "color already exists for this item")
		return
	}

	jsonResponse(w, http.StatusCreated, color)
}

// Update handles PUT /api/colors/{id}.
func (h *ColorsHandler) Update(w http.ResponseWriter, r *http.Request) {
	color, ok := h.manageable(w, r)
	if !ok {
		return
	}

	var req updateColorRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := store.UpdateColor(r.Context(), h.DB, color.ID, req.Name, req.IsSoldOut); err != nil {
		h.Log.Error("failed to update color", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to update color")
		return
	}

	updated, _ := store.GetColor(r.Context(), h.DB, color.ID)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/colors/{id}. The color's images go with it.
func (h *ColorsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	color, ok := h.manageable(w, r)
	if !ok {
		return
	}

	if err := store.DeleteColor(r.Context(), h.DB, color.ID); err != nil {
		h.Log.Error("failed to delete color", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to delete color")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "color deleted"})
}

// UploadImage handles POST /api/colors/{id}/images.
func (h *ColorsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	color, ok := h.manageable(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, err := store.AddColorImage(r.Context(), h.DB, color.ID, photo.Data, photo.MIME)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusCreated, img)
}

// GetImage handles GET /api/colors/images/{id}.
func (h *ColorsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	data, mime, err := store.GetColorImage(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// DeleteImage handles DELETE /api/colors/images/{id}.
func (h *ColorsHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid image id")
		return
	}

	if err := store.DeleteColorImage(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image deleted"})
}

// manageable loads the color and checks the creator-or-admin rule against the
// owning item.
func (h *ColorsHandler) manageable(w http.ResponseWriter, r *http.Request) (*model.Color, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid color id")
		return nil, false
	}

	color, err := store.GetColor(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if color == nil {
		jsonError(w, http.StatusNotFound, "color not found")
		return nil, false
	}

	item, err := store.GetItem(r.Context(), h.DB, color.ItemID)
	if err != nil || item == nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if !canManage(GetClaims(r.Context()), item) {
		jsonError(w, http.StatusForbidden, "only the listing's creator or an admin may modify it")
		return nil, false
	}
	return color, true
}
