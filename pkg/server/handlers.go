package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mhartmann/schemap/pkg/errors"
	"github.com/mhartmann/schemap/pkg/layout"
	"github.com/mhartmann/schemap/pkg/schema"
	"github.com/mhartmann/schemap/pkg/store"
)

// layoutRequest is the body of POST /api/layout and POST /api/snapshots.
type layoutRequest struct {
	Name    string         `json:"name,omitempty"`
	Schema  *schema.Schema `json:"schema"`
	Options layout.Options `json:"options,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	result := s.engine.Optimize(s.engine.Apply(req.Schema, req.Options))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLayoutRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	result := s.engine.Optimize(s.engine.Apply(req.Schema, req.Options))
	snap := store.NewSnapshot(req.Name, req.Schema, result)
	if err := s.store.Put(r.Context(), snap); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []*store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeLayoutRequest parses and validates a layout request body. Validation
// is strict here even though the engine would fall back silently: an API
// client sending a bad selector should hear about it.
func decodeLayoutRequest(r *http.Request) (*layoutRequest, error) {
	var req layoutRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if req.Schema == nil {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "request has no schema")
	}
	if a := req.Options.Algorithm; a != "" && !a.IsValid() {
		return nil, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm: %s", a)
	}
	if d := req.Options.Direction; d != "" && !d.IsValid() {
		return nil, errors.New(errors.ErrCodeInvalidDirection, "unknown direction: %s", d)
	}
	return &req, nil
}

// writeError maps structured error codes to HTTP status and writes the JSON
// envelope. Unstructured errors become 500 INTERNAL_ERROR.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAlgorithm,
		errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidSchema,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeSnapshotNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeDatabase, errors.ErrCodeConnection:
		status = http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    code,
		Message: errors.UserMessage(err),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
