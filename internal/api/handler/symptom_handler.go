package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healthsync/healthsync/internal/api/validation"
	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/service"
	"github.com/healthsync/healthsync/pkg/problem"
)

type SymptomHandler struct {
	service service.SymptomService
}

func NewSymptomHandler(service service.SymptomService) *SymptomHandler {
	return &SymptomHandler{service: service}
}

// Create handles POST /v1/users/{userId}/symptoms
// @Summary Log symptoms
// @Description Record symptoms with a severity from 1 to 10. The log is classified and a high-severity alert is raised when medical attention may be needed.
// @Tags symptoms
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.CreateSymptomLogRequest true "Symptoms"
// @Success 201 {object} domain.SymptomLog
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/symptoms [post]
func (h *SymptomHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req domain.CreateSymptomLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	log, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest(err.Error()).Write(w)
		default:
			problem.InternalError("Failed to log symptoms").Write(w)
		}
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

// List handles GET /v1/users/{userId}/symptoms
// @Summary List symptom logs
// @Tags symptoms
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window in days" default(30) minimum(1) maximum(365)
// @Success 200 {array} domain.SymptomLog
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/symptoms [get]
func (h *SymptomHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	days, ok := intParam(w, r, "days", service.DefaultTrendDays, 1, service.MaxTrendDays)
	if !ok {
		return
	}

	logs, err := h.service.List(r.Context(), userID, days)
	if err != nil {
		writeAnalysisError(w, err, "Failed to list symptoms")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// Analysis handles GET /v1/users/{userId}/symptoms/analysis
// @Summary Symptom analysis
// @Description Frequency, severity trend, day-of-week pattern, most common and most severe symptoms. Returns status no_symptoms when nothing was logged.
// @Tags symptoms
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window in days" default(30) minimum(1) maximum(365)
// @Success 200 {object} domain.SymptomAnalysisData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/symptoms/analysis [get]
func (h *SymptomHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	days, ok := intParam(w, r, "days", service.DefaultTrendDays, 1, service.MaxTrendDays)
	if !ok {
		return
	}

	result, err := h.service.Analyze(r.Context(), userID, days)
	if err != nil {
		writeAnalysisError(w, err, "Failed to analyze symptoms")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Predictions handles GET /v1/users/{userId}/predictions
// @Summary Symptom predictions
// @Description Predicted symptom classification for each of the next N days, derived from the last 30 days of logs.
// @Tags symptoms
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days_ahead query integer false "Days to predict" default(3) minimum(1) maximum(14)
// @Success 200 {object} domain.PredictionReportData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/predictions [get]
func (h *SymptomHandler) Predictions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	daysAhead, ok := intParam(w, r, "days_ahead", service.DefaultPredictionDays, 1, service.MaxPredictionDays)
	if !ok {
		return
	}

	result, err := h.service.Predict(r.Context(), userID, daysAhead)
	if err != nil {
		writeAnalysisError(w, err, "Failed to predict symptoms")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
