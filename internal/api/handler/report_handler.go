package handler

import (
	"net/http"

	"github.com/healthsync/healthsync/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(service service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// HealthReport handles GET /v1/users/{userId}/health-report
// @Summary Health report
// @Description Consolidated report: profile, weight and blood pressure analyses, nutrition summary, symptom patterns and recommendations. Sections without data are omitted or carry their own status.
// @Tags reports
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.HealthReportData "Flat payload with status"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/health-report [get]
func (h *ReportHandler) HealthReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	report, err := h.service.HealthReport(r.Context(), userID)
	if err != nil {
		writeAnalysisError(w, err, "Failed to generate health report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
