package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/healthsync/healthsync/internal/api/validation"
	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/service"
	"github.com/healthsync/healthsync/pkg/pagination"
	"github.com/healthsync/healthsync/pkg/problem"
)

type MealPlanHandler struct {
	service service.MealPlanService
}

func NewMealPlanHandler(service service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{service: service}
}

// Generate handles POST /v1/users/{userId}/meal-plans
// @Summary Generate a meal plan
// @Description Build a one-day plan from the user's profile. Calorie needs follow Mifflin-St Jeor scaled by activity and goal; foods are filtered by diet, allergies and conditions and ranked per meal.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param request body domain.GenerateMealPlanRequest false "Plan options"
// @Success 201 {object} domain.MealPlan
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/meal-plans [post]
func (h *MealPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req domain.GenerateMealPlanRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			problem.BadRequest("Invalid JSON body").Write(w)
			return
		}
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	plan, err := h.service.Generate(r.Context(), userID, &req)
	if err != nil {
		writeAnalysisError(w, err, "Failed to generate meal plan")
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// History handles GET /v1/users/{userId}/meal-plans
// @Summary Meal plan history
// @Description Previously generated plans, newest first.
// @Tags meal-plans
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param limit query integer false "Results per page (1-100)" default(10) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.MealPlanListResponse
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/meal-plans [get]
func (h *MealPlanHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	limit, ok := intParam(w, r, "limit", service.DefaultMealPlanHistory, 1, pagination.MaxLimit)
	if !ok {
		return
	}

	response, err := h.service.History(r.Context(), userID, limit, r.URL.Query().Get("cursor"))
	if err != nil {
		writeAnalysisError(w, err, "Failed to list meal plans")
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// Feedback handles POST /v1/meal-plans/{planId}/feedback
// @Summary Rate a meal plan
// @Description Record whether the plan was followed, a 1-5 rating, free text and any symptoms noticed.
// @Tags meal-plans
// @Accept json
// @Produce json
// @Param planId path string true "Meal plan UUID" format(uuid)
// @Param request body domain.MealPlanFeedbackRequest true "Feedback"
// @Success 200 {object} domain.MealPlan
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "Meal plan not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/meal-plans/{planId}/feedback [post]
func (h *MealPlanHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	planID, ok := uuidParam(w, r, "planId", "Invalid meal plan ID")
	if !ok {
		return
	}

	var req domain.MealPlanFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	plan, err := h.service.Feedback(r.Context(), planID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("Meal plan not found").Write(w)
		case errors.Is(err, domain.ErrInvalidInput):
			problem.BadRequest(err.Error()).Write(w)
		default:
			problem.InternalError("Failed to record feedback").Write(w)
		}
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
