package api

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

// InquiriesHandler handles the staff view of recorded customer inquiries.
type InquiriesHandler struct {
	DB  *sqlx.DB
	Log *zap.Logger
}

type setContactedRequest struct {
	Contacted bool `json:"contacted"`
}

// List handles GET /api/inquiries. An optional ?contacted=true|false filter
// narrows the list; results come back newest first.
func (h *InquiriesHandler) List(w http.ResponseWriter, r *http.Request) {
	var contacted *bool
	switch r.URL.Query().Get("contacted") {
	case "":
	case "true":
		v := true
		contacted = &v
	case "false":
		v := false
		contacted = &v
	default:
		jsonError(w, http.StatusBadRequest, "contacted must be true or false")
		return
	}

	inquiries, err := store.ListInquiries(r.Context(), h.DB, contacted)
	if err != nil {
		h.Log.Error("failed to list inquiries", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to list inquiries")
		return
	}
	if inquiries == nil {
		inquiries = []model.Inquiry{}
	}
	jsonResponse(w, http.StatusOK, inquiries)
}

// Get handles GET /api/inquiries/{id}.
func (h *InquiriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid inquiry id")
		return
	}

	inquiry, err := store.GetInquiry(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get inquiry")
		return
	}
	if inquiry == nil {
		jsonError(w, http.StatusNotFound, "inquiry not found")
		return
	}

	jsonResponse(w, http.StatusOK, inquiry)
}

// SetContacted handles PUT /api/inquiries/{id}/contacted.
func (h *InquiriesHandler) SetContacted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		jsonError(w, http.StatusBadRequest, "invalid inquiry id")
		return
	}

	var req setContactedRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SetInquiryContacted(r.Context(), h.DB, id, req.Contacted); err != nil {
		h.Log.Error("failed to update inquiry", zap.Error(err))
		jsonError(w, http.StatusInternalServerError, "failed to update inquiry")
		return
	}

	inquiry, _ := store.GetInquiry(r.Context(), h.DB, id)
	if inquiry == nil {
		jsonError(w, http.StatusNotFound, "inquiry not found")
		return
	}

	claims := GetClaims(r.Context())
	h.Log.Info("inquiry contact status updated",
		zap.String("user", claims.Username),
		zap.Int64("inquiry_id", id),
		zap.Bool("contacted", req.Contacted))
	jsonResponse(w, http.StatusOK, inquiry)
}
