package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nauticalab/confstore/pkg/config"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Handler holds dependencies for HTTP handlers
type Handler struct {
	// mu serializes access to file; a config.File is not safe for concurrent use
	mu sync.Mutex
	// file is the configuration served by the API
	file *config.File
	// version is the application version
	version string
	// gitCommit is the git commit hash of the build
	gitCommit string
	// buildTime is the time when the application was built
	buildTime string
	// goVersion is the Go version used to build the application
	goVersion string
}

// NewHandler creates a new Handler instance
func NewHandler(file *config.File, version, gitCommit, buildTime, goVersion string) *Handler {
	return &Handler{
		file:      file,
		version:   version,
		gitCommit: gitCommit,
		buildTime: buildTime,
		goVersion: goVersion,
	}
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		File:      h.file.Path(),
		Timestamp: time.Now(),
	})
}

// Version handles GET /api/v1/version
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{
		Version:   h.version,
		GitCommit: h.gitCommit,
		BuildTime: h.buildTime,
		GoVersion: h.goVersion,
	})
}

// ListKeys handles GET /api/v1/keys
// With ?deep=true every path is listed, otherwise only the top-level keys
func (h *Handler) ListKeys(w http.ResponseWriter, r *http.Request) {
	deep := false
	if raw := r.URL.Query().Get("deep"); raw != "" {
		var err error
		if deep, err = strconv.ParseBool(raw); err != nil {
			respondError(w, badRequest("Invalid deep parameter %q", raw))
			return
		}
	}

	h.mu.Lock()
	keys := h.file.AllKeys(deep)
	h.mu.Unlock()

	if keys == nil {
		keys = []string{}
	}
	respondJSON(w, http.StatusOK, KeysResponse{
		Keys:  keys,
		Count: len(keys),
	})
}

// GetValue handles GET /api/v1/values/{path}
func (h *Handler) GetValue(w http.ResponseWriter, r *http.Request) {
	path := pathParam(r)

	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.file.Get(path)
	if !ok || path == "" {
		respondError(w, notFound("No value at %s", path))
		return
	}

	respondJSON(w, http.StatusOK, ValueResponse{
		Path:   path,
		Value:  config.Plain(v),
		Header: h.file.NodeHeader(path),
	})
}

// SetValue handles PUT /api/v1/values/{path}
// The change is kept in memory until POST /api/v1/save
func (h *Handler) SetValue(w http.ResponseWriter, r *http.Request) {
	path := pathParam(r)

	var req SetValueRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		respondError(w, badRequest("Invalid request body: %v", err))
		return
	}
	if req.Value == nil {
		respondError(w, badRequest("Missing value; use DELETE to remove a path"))
		return
	}
	value := fromJSON(req.Value)

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.file.Set(path, value); err != nil {
		respondError(w, fmt.Errorf("failed to set %s: %w", path, err))
		return
	}

	v, _ := h.file.Get(path)
	respondJSON(w, http.StatusOK, ValueResponse{
		Path:   path,
		Value:  config.Plain(v),
		Header: h.file.NodeHeader(path),
	})
}

// DeleteValue handles DELETE /api/v1/values/{path}
func (h *Handler) DeleteValue(w http.ResponseWriter, r *http.Request) {
	path := pathParam(r)

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.file.Remove(path) {
		respondError(w, notFound("No value at %s", path))
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: fmt.Sprintf("Removed %s", path),
	})
}

// GetHeader handles GET /api/v1/headers/{path}
// The path "_" addresses the document header
func (h *Handler) GetHeader(w http.ResponseWriter, r *http.Request) {
	path := headerPath(r)

	h.mu.Lock()
	text, ok := h.file.Headers().Get(path)
	h.mu.Unlock()

	if !ok {
		respondError(w, notFound("No header at %s", displayPath(path)))
		return
	}

	respondJSON(w, http.StatusOK, HeaderResponse{
		Path:   displayPath(path),
		Header: text,
	})
}

// SetHeader handles PUT /api/v1/headers/{path}
// The path does not need to hold a value
func (h *Handler) SetHeader(w http.ResponseWriter, r *http.Request) {
	path := headerPath(r)

	var req SetHeaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, badRequest("Invalid request body: %v", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, badRequest("Invalid header: %v; use DELETE to remove a header", err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if path == "" {
		h.file.SetHeader(req.Header)
	} else {
		h.file.SetNodeHeader(path, req.Header)
	}

	respondJSON(w, http.StatusOK, HeaderResponse{
		Path:   displayPath(path),
		Header: req.Header,
	})
}

// DeleteHeader handles DELETE /api/v1/headers/{path}
func (h *Handler) DeleteHeader(w http.ResponseWriter, r *http.Request) {
	path := headerPath(r)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.file.Headers().Get(path); !ok {
		respondError(w, notFound("No header at %s", displayPath(path)))
		return
	}
	h.file.RemoveHeader(path)

	respondJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: fmt.Sprintf("Removed header of %s", displayPath(path)),
	})
}

// Reload handles POST /api/v1/reload
// Unsaved changes are discarded
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.file.Load()
	if err := h.file.Err(); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: fmt.Sprintf("Reloaded %s", h.file.Path()),
	})
}

// Save handles POST /api/v1/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.file.Save()
	if err := h.file.Err(); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{
		Success: true,
		Message: fmt.Sprintf("Saved %s", h.file.Path()),
	})
}

// pathParam returns the unescaped {path} route parameter
func pathParam(r *http.Request) string {
	raw := chi.URLParam(r, "path")
	if path, err := url.PathUnescape(raw); err == nil {
		return path
	}
	return raw
}

// headerPath maps the {path} parameter of header routes to a header store path
func headerPath(r *http.Request) string {
	path := pathParam(r)
	if path == DocumentHeaderPath {
		return ""
	}
	return path
}

func displayPath(path string) string {
	if path == "" {
		return DocumentHeaderPath
	}
	return path
}

// fromJSON converts decoded JSON into tree values, turning json.Number into
// int where it fits and float64 otherwise
func fromJSON(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		f, _ := val.Float64()
		return f
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromJSON(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[key] = fromJSON(item)
		}
		return out
	}
	return v
}
