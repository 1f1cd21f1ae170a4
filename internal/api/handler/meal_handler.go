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

type MealHandler struct {
	service service.MealService
}

func NewMealHandler(service service.MealService) *MealHandler {
	return &MealHandler{service: service}
}

// Create handles POST /v1/users/{userId}/meals
// @Summary Log a meal
// @Description Record a meal with its foods and any symptoms noticed afterwards. Total calories are summed from the foods.
// @Tags meals
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.CreateMealLogRequest true "Meal"
// @Success 201 {object} domain.MealLog
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/meals [post]
func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req domain.CreateMealLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	meal, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to log meal").Write(w)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

// List handles GET /v1/users/{userId}/meals
// @Summary List meals
// @Tags meals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window in days" default(30) minimum(1) maximum(365)
// @Success 200 {array} domain.MealLog
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/meals [get]
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	days, ok := intParam(w, r, "days", service.DefaultTrendDays, 1, service.MaxTrendDays)
	if !ok {
		return
	}

	meals, err := h.service.List(r.Context(), userID, days)
	if err != nil {
		writeAnalysisError(w, err, "Failed to list meals")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// Correlations handles GET /v1/users/{userId}/correlations
// @Summary Food-symptom correlations
// @Description Foods followed by a symptom within 24 hours, ranked by how often the pairing occurs, with avoidance recommendations.
// @Tags meals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.CorrelationReportData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/correlations [get]
func (h *MealHandler) Correlations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.Correlations(r.Context(), userID)
	if err != nil {
		writeAnalysisError(w, err, "Failed to compute correlations")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// NutritionSummary handles GET /v1/users/{userId}/meals/nutrition-summary
// @Summary Meal nutrition summary
// @Description Calorie totals, meal frequency, most eaten foods and meals followed by symptoms over a recent window.
// @Tags meals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window in days" default(7) minimum(1) maximum(365)
// @Success 200 {object} domain.MealNutritionData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/meals/nutrition-summary [get]
func (h *MealHandler) NutritionSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	days, ok := intParam(w, r, "days", service.NutritionWindowDays, 1, service.MaxTrendDays)
	if !ok {
		return
	}

	result, err := h.service.NutritionSummary(r.Context(), userID, days)
	if err != nil {
		writeAnalysisError(w, err, "Failed to summarize meals")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
