package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"media-studio/internal/importer"
	"media-studio/internal/logging"
	"media-studio/internal/mediatypes"
)

// maxUploadMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxUploadMemory = 32 << 20

// ImportMedia handles POST /api/media: a multipart upload of one or more
// files under the "files" field. Every file is classified before any byte
// is stored; an unsupported file fails the whole request with 415 so the
// caller can fix the selection instead of getting a partial import.
func (h *Handlers) ImportMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSONError(w, "invalid multipart request: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		writeJSONError(w, "no files in request", http.StatusBadRequest)
		return
	}

	var files []importer.File
	for _, part := range parts {
		contentType := part.Header.Get("Content-Type")
		if !mediatypes.IsSupported(part.Filename, contentType) {
			writeJSONError(w, "unsupported media type: "+part.Filename, http.StatusUnsupportedMediaType)
			return
		}

		f, err := part.Open()
		if err != nil {
			writeJSONError(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeJSONError(w, "failed to read upload: "+err.Error(), http.StatusBadRequest)
			return
		}

		files = append(files, importer.File{
			Name:        part.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	results := h.importer.ImportAll(r.Context(), files)

	type importedFile struct {
		Name  string                `json:"name"`
		Item  *mediatypes.MediaItem `json:"item,omitempty"`
		Error string                `json:"error,omitempty"`
	}
	out := make([]importedFile, 0, len(results))
	failed := 0
	for _, res := range results {
		entry := importedFile{Name: res.Name, Item: res.Item}
		if res.Err != nil {
			entry.Error = res.Err.Error()
			failed++
		}
		out = append(out, entry)
	}
	if failed > 0 {
		logging.Warn("Import batch finished with %d/%d failures", failed, len(results))
	}

	writeJSON(w, map[string]interface{}{"files": out})
}

// ServeMedia handles GET /api/media/{id}: resolves the durable reference
// to a session playback path and streams the file. A reference that stays
// unresolved points at bytes that no longer exist (a dead ref) and answers
// 404 rather than an opaque read error.
func (h *Handlers) ServeMedia(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeJSONError(w, "missing media id", http.StatusBadRequest)
		return
	}

	ref := mediatypes.PersistedRef(id).String()
	path := h.resolver.Resolve(r.Context(), ref)
	if path == ref {
		writeJSONError(w, "media not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", mediatypes.GetMimeType(strings.ToLower(filepath.Ext(path))))
	http.ServeFile(w, r, path)
}
