package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dimchain/dimchain/pkg/buildinfo"
	apperrors "github.com/dimchain/dimchain/pkg/errors"
	"github.com/dimchain/dimchain/pkg/model"
	"github.com/dimchain/dimchain/pkg/pipeline"
	"github.com/dimchain/dimchain/pkg/settings"
	"github.com/dimchain/dimchain/pkg/store"
)

// dimensionRequest is the body of POST /v1/dimension.
type dimensionRequest struct {
	Document *model.Document    `json:"document"`
	Settings *settings.Settings `json:"settings,omitempty"`
	Views    []string           `json:"views,omitempty"`
	Refresh  bool               `json:"refresh,omitempty"`
	NoNudge  bool               `json:"no_nudge,omitempty"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDimension(w http.ResponseWriter, r *http.Request) {
	var req dimensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, err, "decode request"))
		return
	}
	if req.Document == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidRequest, "document is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Document: req.Document,
		Settings: req.Settings,
		Views:    req.Views,
		Refresh:  req.Refresh,
		NoNudge:  req.NoNudge,
		Logger:   s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.store != nil {
		if err := s.store.Save(r.Context(), result); err != nil {
			// Persistence trouble must not hide a computed result.
			s.logger.Error("save run", "run", result.RunID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeRunNotFound, "run persistence is not configured"))
		return
	}
	runID := chi.URLParam(r, "runID")
	run, err := s.store.Get(r.Context(), runID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidRequest, "invalid limit %q", q))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// writeError maps application error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)
	switch code {
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeInvalidDocument,
		apperrors.ErrCodeInvalidSettings, apperrors.ErrCodeInvalidView:
		status = http.StatusBadRequest
	case apperrors.ErrCodeViewNotFound, apperrors.ErrCodeRunNotFound,
		apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeStore:
		status = http.StatusBadGateway
	case "":
		code = apperrors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
