package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/healthsync/healthsync/internal/api/validation"
	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/service"
	"github.com/healthsync/healthsync/pkg/pagination"
	"github.com/healthsync/healthsync/pkg/problem"
)

type ProgressHandler struct {
	service service.ProgressService
}

func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// Create handles POST /v1/users/{userId}/progress
// @Summary Log a health measurement
// @Description Record weight, blood sugar and/or blood pressure. At least one metric is required. Use client_request_id for safe retries: returns 200 for a duplicate, 201 when new.
// @Tags progress
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.CreateProgressRequest true "Measurement"
// @Success 201 {object} domain.ProgressEntry "New entry created"
// @Success 200 {object} domain.ProgressEntry "Existing entry returned (idempotent duplicate)"
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/progress [post]
func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req domain.CreateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, isExisting, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest("At least one of weight_kg, blood_sugar or blood pressure is required").Write(w)
		default:
			problem.InternalError("Failed to log progress").Write(w)
		}
		return
	}

	status := http.StatusCreated
	if isExisting {
		status = http.StatusOK
	}
	writeJSON(w, status, entry)
}

// List handles GET /v1/users/{userId}/progress
// @Summary List health measurements
// @Description Paginated measurement history, newest first.
// @Tags progress
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Only entries from the last N days" minimum(1) maximum(365)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.ProgressListResponse
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/progress [get]
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	filter, fieldErrors := parseProgressFilter(r, time.Now())
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list progress").Write(w)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func parseProgressFilter(r *http.Request, now time.Time) (domain.ProgressFilter, []problem.FieldError) {
	var filter domain.ProgressFilter
	var fieldErrors []problem.FieldError
	q := r.URL.Query()

	if daysStr := q.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 1 || days > service.MaxTrendDays {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "days",
				Message: "must be an integer between 1 and " + strconv.Itoa(service.MaxTrendDays),
			})
		} else {
			from := now.UTC().AddDate(0, 0, -days)
			filter.From = &from
		}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	if cursor := q.Get("cursor"); cursor != "" {
		if _, err := pagination.DecodeCursor(cursor); err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "cursor",
				Message: "is invalid",
			})
		} else {
			filter.Cursor = cursor
		}
	}

	return filter, fieldErrors
}

// WeightTrend handles GET /v1/users/{userId}/trends/weight
// @Summary Weight trend
// @Description Analyze weight change over the last N days. Returns status insufficient_data with a message when fewer than two weights were logged.
// @Tags trends
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window in days" default(30) minimum(1) maximum(365)
// @Success 200 {object} domain.WeightTrendData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/trends/weight [get]
func (h *ProgressHandler) WeightTrend(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	days, ok := intParam(w, r, "days", service.DefaultTrendDays, 1, service.MaxTrendDays)
	if !ok {
		return
	}

	result, err := h.service.WeightTrend(r.Context(), userID, days)
	if err != nil {
		writeAnalysisError(w, err, "Failed to analyze weight trend")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// BloodPressureTrend handles GET /v1/users/{userId}/trends/blood-pressure
// @Summary Blood pressure trend
// @Description Average, min and max blood pressure with a category over the last N days.
// @Tags trends
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window in days" default(30) minimum(1) maximum(365)
// @Success 200 {object} domain.BloodPressureTrendData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/trends/blood-pressure [get]
func (h *ProgressHandler) BloodPressureTrend(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	days, ok := intParam(w, r, "days", service.DefaultTrendDays, 1, service.MaxTrendDays)
	if !ok {
		return
	}

	result, err := h.service.BloodPressureTrend(r.Context(), userID, days)
	if err != nil {
		writeAnalysisError(w, err, "Failed to analyze blood pressure trend")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GoalProgress handles GET /v1/users/{userId}/goals/{goalType}
// @Summary Goal progress
// @Description Progress toward a target value over the last 90 days.
// @Tags goals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param goalType path string true "Goal type" Enums(weight, blood_sugar, blood_pressure)
// @Param target query number true "Target value"
// @Success 200 {object} domain.GoalProgressData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid goal type or target"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/goals/{goalType} [get]
func (h *ProgressHandler) GoalProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	goalType := chi.URLParam(r, "goalType")
	if !domain.IsValidGoalType(goalType) {
		problem.BadRequest("goalType must be one of: weight, blood_sugar, blood_pressure").Write(w)
		return
	}
	target, err := strconv.ParseFloat(r.URL.Query().Get("target"), 64)
	if err != nil || math.IsNaN(target) || math.IsInf(target, 0) {
		problem.BadRequest("target must be a number").Write(w)
		return
	}

	result, err := h.service.GoalProgress(r.Context(), userID, goalType, target)
	if err != nil {
		writeAnalysisError(w, err, "Failed to compute goal progress")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeAnalysisError maps service errors of the analysis endpoints.
func writeAnalysisError(w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("User not found").Write(w)
	case errors.Is(err, domain.ErrInvalidGoalType):
		problem.BadRequest("Invalid goal type").Write(w)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	default:
		problem.InternalError(detail).Write(w)
	}
}
