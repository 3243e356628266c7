package web

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/auth"
	"github.com/hkanaan/shamshop/internal/imaging"
	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

// canManage reports whether the caller may modify the item. Staff manage
// their own listings; admins manage everything.
func canManage(claims *auth.Claims, item *model.Item) bool {
	if claims == nil {
		return false
	}
	return claims.Role == model.RoleAdmin || item.CreatedBy == claims.UserID
}

// ManagePage handles GET /manage: the staff listing overview. Admins see
// every listing, staff only their own.
func (s *Server) ManagePage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, store.ItemFilter{IncludeSold: true})
	if err != nil {
		s.Log.Error("failed to list items", zap.Error(err))
	}

	if claims.Role != model.RoleAdmin {
		own := items[:0]
		for _, item := range items {
			if item.CreatedBy == claims.UserID {
				own = append(own, item)
			}
		}
		items = own
	}

	s.Templates.Render(w, "manage.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "My Listings", User: claims},
		Items:    items,
	})
}

// ItemNewPage handles GET /manage/items/new.
func (s *Server) ItemNewPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		s.Log.Error("failed to list categories", zap.Error(err))
	}

	s.Templates.Render(w, "item_form.html", &struct {
		PageData
		Item       *model.Item
		Colors     []model.Color
		Categories []model.Category
	}{
		PageData:   PageData{Title: "New Listing", User: claims},
		Categories: categories,
	})
}

// ItemCreateSubmit handles POST /manage/items/new.
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	categoryID, _ := strconv.ParseInt(r.FormValue("category_id"), 10, 64)
	name := r.FormValue("name")
	description := r.FormValue("description")
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)

	if name == "" || categoryID <= 0 || price <= 0 {
		http.Redirect(w, r, "/manage/items/new", http.StatusSeeOther)
		return
	}

	item, err := store.CreateItem(r.Context(), s.DB, categoryID, name, description, price, claims.UserID)
	if err != nil {
		s.Log.Error("failed to create item", zap.Error(err))
		http.Redirect(w, r, "/manage/items/new", http.StatusSeeOther)
		return
	}

	s.Log.Info("item created",
		zap.String("user", claims.Username),
		zap.String("item", name))
	http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
}

// ItemEditPage handles GET /manage/items/{id}/edit.
func (s *Server) ItemEditPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	item, ok := s.manageable(w, r, "id")
	if !ok {
		return
	}

	categories, err := store.ListCategories(r.Context(), s.DB)
	if err != nil {
		s.Log.Error("failed to list categories", zap.Error(err))
	}
	colors, err := store.ListColorsWithImages(r.Context(), s.DB, item.ID)
	if err != nil {
		s.Log.Error("failed to list colors", zap.Error(err))
	}

	s.Templates.Render(w, "item_form.html", &struct {
		PageData
		Item       *model.Item
		Colors     []model.Color
		Categories []model.Category
	}{
		PageData:   PageData{Title: "Edit " + item.Name, User: claims},
		Item:       item,
		Colors:     colors,
		Categories: categories,
	})
}

// ItemUpdateSubmit handles POST /manage/items/{id}/edit.
func (s *Server) ItemUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	item, ok := s.manageable(w, r, "id")
	if !ok {
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	isSold := r.FormValue("is_sold") == "on"

	if name == "" || price <= 0 {
		http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
		return
	}

	if err := store.UpdateItem(r.Context(), s.DB, item.ID, name, description, price, isSold); err != nil {
		s.Log.Error("failed to update item", zap.Error(err))
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	s.Log.Info("item updated",
		zap.String("user", claims.Username),
		zap.String("item", name),
		zap.Bool("sold", isSold))
	http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
}

// ItemDeleteSubmit handles POST /manage/items/{id}/delete.
func (s *Server) ItemDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	item, ok := s.manageable(w, r, "id")
	if !ok {
		return
	}

	if err := store.DeleteItem(r.Context(), s.DB, item.ID); err != nil {
		s.Log.Error("failed to delete item", zap.Error(err))
		http.Error(w, "failed to delete", http.StatusInternalServerError)
		return
	}

	s.Log.Info("item deleted",
		zap.String("user", claims.Username),
		zap.String("item", item.Name))
	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}

// ItemImageSubmit handles POST /manage/items/{id}/image.
func (s *Server) ItemImageSubmit(w http.ResponseWriter, r *http.Request) {
	item, ok := s.manageable(w, r, "id")
	if !ok {
		return
	}

	photo, ok := s.readPhoto(w, r)
	if !ok {
		return
	}

	if err := store.SetItemImage(r.Context(), s.DB, item.ID, photo.Data, photo.MIME); err != nil {
		s.Log.Error("failed to save image", zap.Error(err))
		http.Error(w, "failed to save image", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
}

// ColorCreateSubmit handles POST /manage/items/{id}/colors.
func (s *Server) ColorCreateSubmit(w http.ResponseWriter, r *http.Request) {
	item, ok := s.manageable(w, r, "id")
	if !ok {
		return
	}

	name := r.FormValue("name")
	if name == "" {
		http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
		return
	}

	if _, err := store.CreateColor(r.Context(), s.DB, item.ID, name); err != nil {
		s.Log.Warn("failed to create color", zap.Error(err))
	}
	http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
}

// ColorUpdateSubmit handles POST /manage/colors/{id}: rename and the
// sold-out toggle.
func (s *Server) ColorUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	color, item, ok := s.manageableColor(w, r)
	if !ok {
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = color.Name
	}
	isSoldOut := r.FormValue("is_sold_out") == "on"

	if err := store.UpdateColor(r.Context(), s.DB, color.ID, name, isSoldOut); err != nil {
		s.Log.Error("failed to update color", zap.Error(err))
	}
	http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
}

// ColorDeleteSubmit handles POST /manage/colors/{id}/delete.
func (s *Server) ColorDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	color, item, ok := s.manageableColor(w, r)
	if !ok {
		return
	}

	if err := store.DeleteColor(r.Context(), s.DB, color.ID); err != nil {
		s.Log.Error("failed to delete color", zap.Error(err))
	}
	http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
}

// ColorImageSubmit handles POST /manage/colors/{id}/images.
func (s *Server) ColorImageSubmit(w http.ResponseWriter, r *http.Request) {
	color, item, ok := s.manageableColor(w, r)
	if !ok {
		return
	}

	photo, ok := s.readPhoto(w, r)
	if !ok {
		return
	}

	if _, err := store.AddColorImage(r.Context(), s.DB, color.ID, photo.Data, photo.MIME); err != nil {
		s.Log.Error("failed to save color image", zap.Error(err))
		http.Error(w, "failed to save image", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/manage/items/%d/edit", item.ID), http.StatusSeeOther)
}

// manageable loads the item from the path and enforces the creator-or-admin
// rule, writing the error response itself when the check fails.
func (s *Server) manageable(w http.ResponseWriter, r *http.Request, pathName string) (*model.Item, bool) {
	id, err := strconv.ParseInt(r.PathValue(pathName), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		s.Log.Error("failed to get item", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	if item == nil || item.DeletedAt != nil {
		http.NotFound(w, r)
		return nil, false
	}

	if !canManage(GetWebClaims(r.Context()), item) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return item, true
}

// manageableColor resolves a color and its owning item with the same check.
func (s *Server) manageableColor(w http.ResponseWriter, r *http.Request) (*model.Color, *model.Item, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, nil, false
	}

	color, err := store.GetColor(r.Context(), s.DB, id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}
	if color == nil {
		http.NotFound(w, r)
		return nil, nil, false
	}

	item, err := store.GetItem(r.Context(), s.DB, color.ItemID)
	if err != nil || item == nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}
	if !canManage(GetWebClaims(r.Context()), item) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, nil, false
	}
	return color, item, true
}

// readPhoto extracts and normalizes the uploaded "image" form file.
func (s *Server) readPhoto(w http.ResponseWriter, r *http.Request) (*imaging.Photo, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		http.Error(w, "file too large", http.StatusBadRequest)
		return nil, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return photo, true
}
