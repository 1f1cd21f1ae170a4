package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/service"
	"github.com/healthsync/healthsync/pkg/problem"
)

type AlertHandler struct {
	service service.AlertService
}

func NewAlertHandler(service service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

// List handles GET /v1/users/{userId}/alerts
// @Summary List health alerts
// @Tags alerts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param unread_only query boolean false "Only unread alerts" default(false)
// @Success 200 {array} domain.HealthAlert
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/alerts [get]
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	unreadOnly := false
	if raw := r.URL.Query().Get("unread_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			problem.BadRequest("unread_only must be a boolean").Write(w)
			return
		}
		unreadOnly = v
	}

	alerts, err := h.service.List(r.Context(), userID, unreadOnly)
	if err != nil {
		writeAnalysisError(w, err, "Failed to list alerts")
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// MarkRead handles POST /v1/users/{userId}/alerts/{alertId}/read
// @Summary Mark an alert as read
// @Tags alerts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param alertId path string true "Alert UUID" format(uuid)
// @Success 200 {object} domain.HealthAlert
// @Failure 400 {object} problem.Problem "Invalid ID"
// @Failure 404 {object} problem.Problem "Alert not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/alerts/{alertId}/read [post]
func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	alertID, ok := uuidParam(w, r, "alertId", "Invalid alert ID format")
	if !ok {
		return
	}

	alert, err := h.service.MarkRead(r.Context(), userID, alertID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Alert not found").Write(w)
			return
		}
		problem.InternalError("Failed to update alert").Write(w)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

// Summary handles GET /v1/users/{userId}/alerts/summary
// @Summary Alert summary
// @Description Totals, unread count, distributions by severity and type, and the most recent high-severity alerts.
// @Tags alerts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.AlertSummary
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/alerts/summary [get]
func (h *AlertHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		writeAnalysisError(w, err, "Failed to summarize alerts")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Check handles POST /v1/users/{userId}/alerts/check
// @Summary Run a health status check
// @Description Inspect recent symptoms and measurements and raise an alert for every threshold crossed.
// @Tags alerts
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {object} domain.HealthCheckResult
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /v1/users/{userId}/alerts/check [post]
func (h *AlertHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.CheckHealth(r.Context(), userID)
	if err != nil {
		writeAnalysisError(w, err, "Failed to check health status")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
