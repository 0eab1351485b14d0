package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hszk-dev/tubepulse/internal/export"
	"github.com/hszk-dev/tubepulse/internal/usecase"
)

// MaxBodyBytes caps analysis request bodies.
const MaxBodyBytes = 1 << 20

// AnalyzeRequest is the body of POST /v1/analyze and /v1/analyze/export.
type AnalyzeRequest struct {
	Inputs    []string `json:"inputs"`
	Days      int      `json:"days"`
	MaxVideos int      `json:"maxVideos"`
}

// AnalyzeHandler handles channel analysis HTTP requests.
type AnalyzeHandler struct {
	svc usecase.AnalysisService
	now func() time.Time
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(svc usecase.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, now: time.Now}
}

// Analyze handles POST /v1/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Analyze(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	JSON(w, http.StatusOK, report)
}

// Export handles POST /v1/analyze/export
func (h *AnalyzeHandler) Export(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Analyze(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	// Render fully before writing so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, report.Rows); err != nil {
		slog.Error("failed to render export", "error", err)
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	filename := fmt.Sprintf("tubepulse-%s.csv", h.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (usecase.AnalyzeInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			Error(w, http.StatusRequestEntityTooLarge, "request_too_large", "Request body exceeds 1 MiB")
			return usecase.AnalyzeInput{}, false
		}
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return usecase.AnalyzeInput{}, false
	}

	return usecase.AnalyzeInput{
		Inputs:    req.Inputs,
		Days:      req.Days,
		MaxVideos: req.MaxVideos,
	}, true
}

func (h *AnalyzeHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *usecase.ValidationError
		resolutionErr *usecase.ResolutionError
		upstreamErr   *usecase.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		Error(w, http.StatusBadRequest, "invalid_request", validationErr.Error())
	case errors.As(err, &resolutionErr):
		Error(w, http.StatusNotFound, "channel_not_found", resolutionErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		Error(w, http.StatusGatewayTimeout, "timeout", "Analysis did not finish in time")
	case errors.As(err, &upstreamErr):
		slog.Error("upstream failure", "input", upstreamErr.Input, "error", upstreamErr.Err)
		Error(w, http.StatusBadGateway, "upstream_error", "Upstream provider request failed")
	default:
		slog.Error("analysis failed", "path", r.URL.Path, "error", err)
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
