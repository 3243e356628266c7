package web

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

const homeItemLimit = 8

// HomePage handles GET /{$}: categories plus the latest listings.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		s.Log.Error("failed to list categories", zap.Error(err))
	}

	items, err := store.ListItems(r.Context(), s.DB, store.ItemFilter{})
	if err != nil {
		s.Log.Error("failed to list items", zap.Error(err))
	}
	if len(items) > homeItemLimit {
		items = items[:homeItemLimit]
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		Categories []model.Category
		Items      []model.Item
	}{
		PageData:   PageData{Title: "Sham Shop"},
		Categories: categories,
		Items:      items,
	})
}

// ItemsPage handles GET /items: the browse page with search and category
// filtering. Sold and deleted listings never show up here.
func (s *Server) ItemsPage(w http.ResponseWriter, r *http.Request) {
	filter := store.ItemFilter{Query: r.URL.Query().Get("q")}

	var current *model.Category
	if v := r.URL.Query().Get("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			current, _ = store.GetCategory(r.Context(), s.DB, id)
		}
		if current == nil {
			http.NotFound(w, r)
			return
		}
		filter.CategoryID = current.ID
	}

	items, err := store.ListItems(r.Context(), s.DB, filter)
	if err != nil {
		s.Log.Error("failed to list items", zap.Error(err))
	}

	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		s.Log.Error("failed to list categories", zap.Error(err))
	}

	title := "Browse"
	if current != nil {
		title = current.Name
	}

	s.Templates.Render(w, "items.html", &struct {
		PageData
		Items      []model.Item
		Categories []model.Category
		Current    *model.Category
		Query      string
	}{
		PageData:   PageData{Title: title},
		Items:      items,
		Categories: categories,
		Current:    current,
		Query:      filter.Query,
	})
}

// ItemImageGet handles GET /items/{id}/image.
func (s *Server) ItemImageGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), s.DB, id)
	if err != nil {
		s.Log.Error("failed to get image", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	serveImage(w, data, mime)
}

// ColorImageGet handles GET /colors/images/{id}.
func (s *Server) ColorImageGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetColorImage(r.Context(), s.DB, id)
	if err != nil {
		s.Log.Error("failed to get color image", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	serveImage(w, data, mime)
}

func serveImage(w http.ResponseWriter, data []byte, mime string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
