package stub

import (
	"net/http"
	"time"
)

const (
	apiVersion  = "0.1.0"
	apiRevision = "v1"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": apiVersion,
		"api":     apiRevision,
	})
}

func (s *Server) handleDocs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "thought-diary-stub",
		"endpoints": []string{
			"POST /auth/register",
			"POST /auth/login",
			"POST /auth/refresh",
			"POST /auth/logout",
			"GET /auth/me",
			"GET /diaries",
			"POST /diaries",
			"GET /diaries/{id}",
			"PUT /diaries/{id}",
			"DELETE /diaries/{id}",
			"GET /diaries/stats",
			"GET /health",
			"GET /version",
		},
	})
}
