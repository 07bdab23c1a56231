package handler

import (
	"net/http"
	"time"

	"github.com/sitecrew/sitelog/internal/domain"
	"github.com/sitecrew/sitelog/internal/service"
)

// GetProjectReport handles GET /projects/{projectID}/report.
//
// Query parameters:
//
//	mode   daily | weekly (required)
//	start  YYYY-MM-DD (required), the report day or the weekly window start
//	end    YYYY-MM-DD (optional, weekly only), a user-edited end date that is
//	       silently repaired back into the 7-day window when it overshoots
//
// Bounds violations come back as 422 with the field-error map so the UI can
// annotate the offending inputs inline.
func (s *Server) GetProjectReport(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathUUID(r, "projectID")
	if !ok {
		writeError(w, domain.ErrNotFound)
		return
	}

	const layout = "2006-01-02"
	q := r.URL.Query()

	mode := service.ReportMode(q.Get("mode"))
	start, err := time.Parse(layout, q.Get("start"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("start must be a YYYY-MM-DD date"))
		return
	}

	var end *time.Time
	if v := q.Get("end"); v != "" {
		parsed, err := time.Parse(layout, v)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, requestBody("end must be a YYYY-MM-DD date"))
			return
		}
		end = &parsed
	}

	rep, err := s.reports.Generate(r.Context(), projectID, mode, start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	if rep.FieldErrors.Any() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"field_errors": rep.FieldErrors,
			"range":        rep.Range,
		})
		return
	}

	writeJSON(w, http.StatusOK, rep)
}
