package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/taaha3244/quicktools/internal/catalog"
	"github.com/taaha3244/quicktools/internal/logger"
	"github.com/taaha3244/quicktools/internal/tools"
)

const (
	maxJSONBody      = 1 << 20
	defaultMaxMemory = 32 << 20
)

// AddToolRequest is the POST /api/tools payload.
type AddToolRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "tools": s.store.Len()})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": catalog.Categories})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	category, ok := catalog.ParseCategory(r.URL.Query().Get("category"))
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q", r.URL.Query().Get("category")))
		return
	}

	list := s.store.Filter(category, r.URL.Query().Get("q"))
	if list == nil {
		list = []catalog.Descriptor{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": list})
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	tool, err := s.store.Get(r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Tool not found")
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

func (s *Server) handleAddTool(w http.ResponseWriter, r *http.Request) {
	var req AddToolRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	tool, err := s.store.Add(catalog.NewDashboardTool(req.Name, req.Slug, s.newID))
	switch {
	case errors.Is(err, catalog.ErrDuplicateSlug), errors.Is(err, catalog.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.FromContext(r.Context()).Info("tool added", zap.String("tool", tool.Slug), zap.String("id", tool.ID))
	writeJSON(w, http.StatusCreated, tool)
}

func (s *Server) handleDeleteTool(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Remove(id); err != nil {
		writeError(w, http.StatusNotFound, "Tool not found")
		return
	}
	logger.FromContext(r.Context()).Info("tool removed", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRunTool(w http.ResponseWriter, r *http.Request) {
	tool, err := s.store.Get(r.PathValue("slug"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Tool not found")
		return
	}

	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}
	values, err := s.readValues(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Upload too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := s.dispatcher.Execute(r.Context(), tool, values)
	if res.IsFile() {
		writeFile(w, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readValues collects the submitted form. Only the first value of each
// field is kept.
func (s *Server) readValues(r *http.Request) (tools.Values, error) {
	values := tools.Values{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}
		for name, vs := range r.PostForm {
			if len(vs) > 0 {
				values[name] = vs[0]
			}
		}
		return values, nil
	}

	maxMemory := s.cfg.MaxUploadBytes
	if maxMemory <= 0 {
		maxMemory = defaultMaxMemory
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	for name, vs := range r.MultipartForm.Value {
		if len(vs) > 0 {
			values[name] = vs[0]
		}
	}
	for name, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		file, err := readFile(headers[0])
		if err != nil {
			return nil, err
		}
		values[name] = file
	}
	return values, nil
}

func readFile(h *multipart.FileHeader) (*tools.File, error) {
	f, err := h.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", h.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", h.Filename, err)
	}
	return &tools.File{
		Name:     h.Filename,
		MimeType: h.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func writeFile(w http.ResponseWriter, res tools.Result) {
	w.Header().Set("Content-Type", res.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.DownloadName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
