package api

import (
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/auth"
	"github.com/hkanaan/shamshop/internal/imaging"
	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

type createItemRequest struct {
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type updateItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsSold      bool    `json:"is_sold"`
}

// canManage reports whether the caller may modify the item. Staff manage
// their own listings; admins manage everything.
func canManage(claims *auth.Claims, item *model.Item) bool {
	if claims == nil {
		return false
	}
	return claims.Role == model.RoleAdmin || item.CreatedBy == claims.UserID
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ItemFilter{
		Query:       r.URL.Query().Get("q"),
		IncludeSold: r.URL.Query().Get("include_sold") == "true",
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid category_id")
			return
		}
		filter.CategoryID = id
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		h.Log.Error("failed to list items", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" || req.CategoryID <= 0 {
		jsonError(w, http.StatusBadRequest, "name and category_id required")
		return
	}
	if req.Price <= 0 {
		jsonError(w, http.StatusBadRequest, "price must be positive")
		return
	}

	category, err := store.GetCategory(r.Context(), h.DB, req.CategoryID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if category == nil {
		jsonError(w, http.StatusBadRequest, "category not found")
		return
	}

	claims := GetClaims(r.Context())
	item, err := store.CreateItem(r.Context(), h.DB, req.CategoryID, req.Name, req.Description, req.Price, claims.UserID)
	if err != nil {
		h.Log.Error("failed to create item", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.Log.Info("item created",
		zap.String("user", claims.Username),
		zap.String("item", req.Name),
		zap.Int64("item_id", item.ID))
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}. Colors come back with their images so a
// client can render the full listing in one round trip.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil || item.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	colors, err := store.ListColorsWithImages(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item colors")
		return
	}
	if colors == nil {
		colors = []model.Color{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"item":   item,
		"colors": colors,
	})
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.manageable(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if req.Price <= 0 {
		jsonError(w, http.StatusBadRequest, "price must be positive")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, item.ID, req.Name, req.Description, req.Price, req.IsSold); err != nil {
		h.Log.Error("failed to update item", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	updated, _ := store.GetItem(r.Context(), h.DB, item.ID)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}. Recorded inquiries keep referencing
// the item, so deletion is soft.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.manageable(w, r)
	if !ok {
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, item.ID); err != nil {
		h.Log.Error("failed to delete item", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	claims := GetClaims(r.Context())
	h.Log.Info("item deleted",
		zap.String("user", claims.Username),
		zap.String("item", item.Name))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	item, ok := h.manageable(w, r)
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

	if err := store.SetItemImage(r.Context(), h.DB, item.ID, photo.Data, photo.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, id)
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

// ListInquiries handles GET /api/items/{id}/inquiries.
func (h *ItemsHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	inquiries, err := store.ListItemInquiries(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list inquiries")
		return
	}
	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}
	jsonResponse(w, http.StatusOK, inquiries)
}

// manageable loads the item and enforces the creator-or-admin rule, writing
// the error response itself when the check fails.
func (h *ItemsHandler) manageable(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return nil, false
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return nil, false
	}
	if item == nil || item.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return nil, false
	}

	if !canManage(GetClaims(r.Context()), item) {
		jsonError(w, http.StatusForbidden, "only the listing's creator or an admin may modify it")
		return nil, false
	}
	return item, true
}
