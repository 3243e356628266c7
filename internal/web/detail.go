package web

import (
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
	"github.com/hkanaan/shamshop/internal/storefront"
)

const relatedItemLimit = 3

// detailPageData is everything item_detail.html needs: the listing, its
// selectable colors, the gallery for the current selection, the delivery
// dropdowns, and any validation errors from a failed inquiry submission.
type detailPageData struct {
	PageData
	Item        *model.Item
	Colors      []model.Color
	Selected    *model.Color
	Gallery     []storefront.GalleryEntry
	Cities      []model.City
	Places      []model.Place
	CityID      int64
	Related     []model.Item
	FieldErrors storefront.FieldErrors
	Form        url.Values
}

// ItemDetailPage handles GET /items/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	item, colors, ok := s.loadListing(w, r)
	if !ok {
		return
	}

	data, err := s.buildDetailData(r, item, colors, "")
	if err != nil {
		s.Log.Error("failed to build detail page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "item_detail.html", data)
}

// InquirySubmit handles POST /items/{id}. A valid submission records the
// inquiry and redirects the customer straight to WhatsApp; a failed one
// re-renders the page with field errors and the gallery recomputed for the
// submitted color.
func (s *Server) InquirySubmit(w http.ResponseWriter, r *http.Request) {
	item, colors, ok := s.loadListing(w, r)
	if !ok {
		return
	}

	in := storefront.InquiryInput{
		CustomerName:  r.FormValue("customer_name"),
		CustomerPhone: r.FormValue("customer_phone"),
		Message:       r.FormValue("message"),
		ColorID:       optionalID(r.FormValue("color_id")),
		CityID:        optionalID(r.FormValue("city_id")),
		PlaceID:       optionalID(r.FormValue("place_id")),
	}

	inquiry, fieldErrs, err := storefront.RecordInquiry(r.Context(), s.DB, item, colors, in)
	if err != nil {
		s.Log.Error("failed to record inquiry", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if fieldErrs != nil {
		data, err := s.buildDetailData(r, item, colors, r.FormValue("color_id"))
		if err != nil {
			s.Log.Error("failed to build detail page", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.FieldErrors = fieldErrs
		data.Form = r.Form
		s.Templates.Render(w, "item_detail.html", data)
		return
	}

	s.Log.Info("inquiry recorded",
		zap.Int64("inquiry_id", inquiry.ID),
		zap.Int64("item_id", item.ID),
		zap.String("customer", inquiry.CustomerName))

	_, redirectURL := storefront.ComposeWhatsApp(s.ShopPhone, item, inquiry)
	http.Redirect(w, r, redirectURL, http.StatusSeeOther)
}

// loadListing fetches the item and its colors for the public detail routes,
// writing the 404 itself when the listing is gone.
func (s *Server) loadListing(w http.ResponseWriter, r *http.Request) (*model.Item, []model.Color, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, nil, false
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		s.Log.Error("failed to get item", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}
	if item == nil || item.DeletedAt != nil {
		http.NotFound(w, r)
		return nil, nil, false
	}

	colors, err := store.ListColorsWithImages(r.Context(), s.DB, id)
	if err != nil {
		s.Log.Error("failed to list colors", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, nil, false
	}

	return item, colors, true
}

// buildDetailData assembles the detail page model. The selected color comes
// from the form value (on re-render after a failed submit) or the ?color
// query parameter, form winning when both are present.
func (s *Server) buildDetailData(r *http.Request, item *model.Item, colors []model.Color, formColor string) (*detailPageData, error) {
	var selected *model.Color
	if id, ok := storefront.SelectedColorID(formColor, r.URL.Query().Get("color")); ok {
		selected = storefront.FindColor(colors, id)
	}

	cities, err := store.ListCities(r.Context(), s.DB)
	if err != nil {
		return nil, err
	}

	// Pre-populate the place dropdown when a city is already chosen.
	var places []model.Place
	var cityID int64
	if id := optionalID(r.FormValue("city_id")); id != nil {
		cityID = *id
	} else if id := optionalID(r.URL.Query().Get("city")); id != nil {
		cityID = *id
	}
	if cityID != 0 {
		places, err = store.ListPlacesByCity(r.Context(), s.DB, cityID)
		if err != nil {
			return nil, err
		}
	}

	related, err := store.ListRelatedItems(r.Context(), s.DB, item, relatedItemLimit)
	if err != nil {
		return nil, err
	}

	return &detailPageData{
		PageData: PageData{Title: item.Name},
		Item:     item,
		Colors:   storefront.SelectableColors(colors),
		Selected: selected,
		Gallery:  storefront.ComposeGallery(item, colors, selected),
		Cities:   cities,
		Places:   places,
		CityID:   cityID,
		Related:  related,
	}, nil
}

// optionalID parses a form value into a nullable id. Empty and garbage
// values both mean "not provided".
func optionalID(v string) *int64 {
	if v == "" {
		return nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
