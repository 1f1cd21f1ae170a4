package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/api/validation"
	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/llm"
	"github.com/healthsync/healthsync/internal/service"
	"github.com/healthsync/healthsync/pkg/problem"
)

// ConsultationHandler serves health tips and the AI health assistant.
type ConsultationHandler struct {
	tips         service.TipsService
	consultation service.ConsultationService
	logger       *zap.Logger
}

func NewConsultationHandler(tips service.TipsService, consultation service.ConsultationService, logger *zap.Logger) *ConsultationHandler {
	return &ConsultationHandler{
		tips:         tips,
		consultation: consultation,
		logger:       logger,
	}
}

// TipsResponse is the body of the health tips endpoint.
type TipsResponse struct {
	Category string             `json:"category" example:"sleep"`
	Tips     []domain.HealthTip `json:"tips"`
}

// Tips handles GET /v1/health-tips/{category}
// @Summary Health tips
// @Description General health tips for a category. Categories are matched case-insensitively.
// @Tags consultation
// @Produce json
// @Param category path string true "Tip category" Enums(nutrition, exercise, sleep, stress, hydration)
// @Success 200 {object} TipsResponse
// @Failure 404 {object} problem.Problem "Unknown category"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/health-tips/{category} [get]
func (h *ConsultationHandler) Tips(w http.ResponseWriter, r *http.Request) {
	category := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "category")))

	tips, err := h.tips.Tips(r.Context(), category)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategory) {
			problem.NotFound("Unknown health tips category").Write(w)
			return
		}
		problem.InternalError("Failed to load health tips").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, TipsResponse{Category: category, Tips: tips})
}

// Ask handles POST /v1/consultation
// @Summary Ask the health assistant
// @Description Ask a free-form health question. When user_id is given the user's health report is used as context. Returns the raw answer, sanitized HTML and a trace ID for feedback.
// @Tags consultation
// @Accept json
// @Produce json
// @Param request body domain.ConsultationRequest true "Question"
// @Success 200 {object} domain.ConsultationResponse
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 422 {object} problem.Problem "Validation error"
// @Failure 502 {object} problem.Problem "LLM error"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Router /v1/consultation [post]
func (h *ConsultationHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req domain.ConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	resp, err := h.consultation.Ask(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, llm.ErrLLMUnavailable):
			problem.ServiceUnavailable("Health assistant is not configured").Write(w)
		case errors.Is(err, llm.ErrLLMRequest), errors.Is(err, llm.ErrLLMResponse):
			problem.BadGateway("llm-error", "LLM Error", "Failed to get an answer from the health assistant").Write(w)
		default:
			problem.InternalError("Failed to answer consultation").Write(w)
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Feedback handles POST /v1/consultation/feedback
// @Summary Rate an assistant answer
// @Description Attach a user rating to the trace of a previous answer. Scoring failures are logged and do not fail the request.
// @Tags consultation
// @Accept json
// @Param request body domain.FeedbackRequest true "Feedback"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 422 {object} problem.Problem "Validation error"
// @Router /v1/consultation/feedback [post]
func (h *ConsultationHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req domain.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	if err := h.consultation.Feedback(r.Context(), &req); err != nil {
		h.logger.Warn("failed to record consultation feedback",
			zap.String("trace_id", req.TraceID),
			zap.Error(err),
		)
	}
	w.WriteHeader(http.StatusNoContent)
}
