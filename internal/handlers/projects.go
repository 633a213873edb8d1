package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"media-studio/internal/project"
)

// ListProjects handles GET /api/projects.
func (h *Handlers) ListProjects(w http.ResponseWriter, r *http.Request) {
	scope := h.scopeFrom(r)
	writeJSON(w, h.projects.List(r.Context(), scope))
}

// CreateProject handles POST /api/projects. The body names the project;
// everything else starts empty.
func (h *Handlers) CreateProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		writeJSONError(w, "project name is required", http.StatusBadRequest)
		return
	}

	scope := h.scopeFrom(r)
	p := project.New(body.Name)
	if err := h.projects.Save(r.Context(), scope, p); err != nil {
		writeJSONError(w, "failed to save project: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, http.StatusCreated, p)
}

// GetProject handles GET /api/projects/{id}.
func (h *Handlers) GetProject(w http.ResponseWriter, r *http.Request) {
	scope := h.scopeFrom(r)
	p, err := h.projects.Get(r.Context(), scope, mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, "project not found", http.StatusNotFound)
		return
	}
	writeJSON(w, p)
}

// SaveProject handles PUT /api/projects/{id}: a full-document upsert. The
// id in the path wins over any id in the body.
func (h *Handlers) SaveProject(w http.ResponseWriter, r *http.Request) {
	var p project.Project
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	p.ID = mux.Vars(r)["id"]

	if err := p.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	scope := h.scopeFrom(r)
	if err := h.projects.Save(r.Context(), scope, &p); err != nil {
		writeJSONError(w, "failed to save project: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, &p)
}

// DeleteProject handles DELETE /api/projects/{id}. Deleting an unknown id
// succeeds; the end state is the same either way.
func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	scope := h.scopeFrom(r)
	if err := h.projects.Delete(r.Context(), scope, mux.Vars(r)["id"]); err != nil {
		writeJSONError(w, "failed to delete project: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateProject handles POST /api/projects/{id}/duplicate.
func (h *Handlers) DuplicateProject(w http.ResponseWriter, r *http.Request) {
	scope := h.scopeFrom(r)
	dup, err := h.projects.Duplicate(r.Context(), scope, mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			writeJSONError(w, "project not found", http.StatusNotFound)
			return
		}
		writeJSONError(w, "failed to duplicate project: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, http.StatusCreated, dup)
}
