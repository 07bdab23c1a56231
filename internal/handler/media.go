package handler

import (
	"net/http"
)

// PresignResponse carries an issued upload or download URL.
type PresignResponse struct {
	StorageKey string `json:"storage_key"`
	URL        string `json:"url"`
}

// PresignUpload handles POST /media/presign.
// Body: {"content_type": "image/jpeg"} (optional). Returns a fresh storage
// key and a URL the client PUTs the photo bytes to.
func (s *Server) PresignUpload(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: ErrorDetail{
			Code: "storage_unconfigured", Message: "media storage is not configured",
		}})
		return
	}

	var body struct {
		ContentType string `json:"content_type"`
	}
	_ = decodeJSON(r, &body) // an empty body is fine

	key, url, err := s.media.PresignPut(r.Context(), body.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PresignResponse{StorageKey: key, URL: url})
}

// PresignDownload handles GET /media/presign?key=...
func (s *Server) PresignDownload(w http.ResponseWriter, r *http.Request) {
	if s.media == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: ErrorDetail{
			Code: "storage_unconfigured", Message: "media storage is not configured",
		}})
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("key query parameter is required"))
		return
	}

	url, err := s.media.PresignGet(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PresignResponse{StorageKey: key, URL: url})
}
