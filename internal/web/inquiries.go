package web

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hkanaan/shamshop/internal/model"
	"github.com/hkanaan/shamshop/internal/store"
)

// InquiriesPage handles GET /manage/inquiries: the staff follow-up queue,
// newest first, optionally narrowed to pending or contacted.
func (s *Server) InquiriesPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	var contacted *bool
	filter := r.URL.Query().Get("contacted")
	switch filter {
	case "true":
		v := true
		contacted = &v
	case "false":
		v := false
		contacted = &v
	}

	inquiries, err := store.ListInquiries(r.Context(), s.DB, contacted)
	if err != nil {
		s.Log.Error("failed to list inquiries", zap.Error(err))
	}

	s.Templates.Render(w, "inquiries.html", &struct {
		PageData
		Inquiries []model.Inquiry
		Filter    string
	}{
		PageData:  PageData{Title: "Inquiries", User: claims},
		Inquiries: inquiries,
		Filter:    filter,
	})
}

// InquiryContactedSubmit handles POST /manage/inquiries/{id}/contacted.
func (s *Server) InquiryContactedSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	contacted := r.FormValue("contacted") == "true"
	if err := store.SetInquiryContacted(r.Context(), s.DB, id, contacted); err != nil {
		s.Log.Error("failed to update inquiry", zap.Error(err))
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	s.Log.Info("inquiry contact status updated",
		zap.String("user", claims.Username),
		zap.Int64("inquiry_id", id),
		zap.Bool("contacted", contacted))
	http.Redirect(w, r, "/manage/inquiries", http.StatusSeeOther)
}
