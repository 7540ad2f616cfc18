package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/rcliao/puffin/internal/export"
	"github.com/rcliao/puffin/internal/model"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.dash.Compose(r.Context())
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// handleActivities returns the merged feed for [start, end], typically one
// calendar day.
func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	start, err := s.requiredTime(r, "start")
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	end, err := s.requiredTime(r, "end")
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	if end.Before(start) {
		s.fail(w, r, "", &model.ValidationError{Field: "end", Message: "must not be before start"})
		return
	}

	acts, err := s.dash.Activities(r.Context(), start, end)
	if err != nil {
		s.fail(w, r, "", err)
		return
	}
	writeJSON(w, http.StatusOK, acts)
}

// handleExport streams every record as a CSV or JSON download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, "", err)
		return
	}

	data, err := s.store.ExportAll(r.Context())
	if err != nil {
		s.fail(w, r, "", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+format.Filename())
	if err := export.Write(w, format, data); err != nil {
		s.log.Error("export write failed", zap.String("format", string(format)), zap.Error(err))
		return
	}
	s.log.Info("exported", zap.String("format", string(format)), zap.Int("records", data.Len()))
}
