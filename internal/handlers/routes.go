package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes attaches all API routes to the router.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/media", h.ImportMedia).Methods(http.MethodPost)
	r.HandleFunc("/api/media/{id}", h.ServeMedia).Methods(http.MethodGet)

	r.HandleFunc("/api/projects", h.ListProjects).Methods(http.MethodGet)
	r.HandleFunc("/api/projects", h.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/api/projects/{id}", h.GetProject).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{id}", h.SaveProject).Methods(http.MethodPut)
	r.HandleFunc("/api/projects/{id}", h.DeleteProject).Methods(http.MethodDelete)
	r.HandleFunc("/api/projects/{id}/duplicate", h.DuplicateProject).Methods(http.MethodPost)

	r.HandleFunc("/api/enhance", h.Enhance).Methods(http.MethodPost)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
