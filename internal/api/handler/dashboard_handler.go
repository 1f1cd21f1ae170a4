package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/dashboard"
	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/render"
	"github.com/healthsync/healthsync/internal/service"
	"github.com/healthsync/healthsync/pkg/problem"
)

// DashboardHandler exposes dashboard sessions over HTTP. Session state is
// server-owned; clients only hold the session ID.
type DashboardHandler struct {
	store     *dashboard.Store
	fragments *dashboard.Fragments
	logger    *zap.Logger
}

func NewDashboardHandler(store *dashboard.Store, fragments *dashboard.Fragments, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{store: store, fragments: fragments, logger: logger}
}

// CreateSessionRequest opens a dashboard for a user.
type CreateSessionRequest struct {
	UserID uuid.UUID `json:"user_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// SessionResponse carries the session ID and the current dashboard state.
type SessionResponse struct {
	SessionID uuid.UUID       `json:"session_id"`
	State     dashboard.State `json:"state"`
}

type selectTabRequest struct {
	Tab string `json:"tab" example:"blood-pressure"`
}

type selectRangeRequest struct {
	Days int `json:"days" example:"7"`
}

// setGoalRequest accepts the target as typed by the user, either a JSON
// number or a string.
type setGoalRequest struct {
	GoalType string          `json:"goal_type" example:"weight"`
	Target   json.RawMessage `json:"target" swaggertype:"string" example:"70"`
}

func (r setGoalRequest) rawTarget() string {
	var s string
	if err := json.Unmarshal(r.Target, &s); err == nil {
		return s
	}
	return string(r.Target)
}

// CreateSession handles POST /dashboard/sessions
// @Summary Open a dashboard session
// @Description Opens a session on the weight tab with a 30-day range and loads it.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Session request"
// @Success 201 {object} SessionResponse
// @Failure 400 {object} problem.Problem "Invalid request"
// @Router /dashboard/sessions [post]
func (h *DashboardHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if req.UserID == uuid.Nil {
		problem.BadRequest("user_id is required").Write(w)
		return
	}

	sess := h.store.Create(r.Context(), req.UserID)
	writeJSON(w, http.StatusCreated, SessionResponse{SessionID: sess.ID, State: sess.Controller.State()})
}

// GetSession handles GET /dashboard/sessions/{sessionId}
// @Summary Dashboard state
// @Tags dashboard
// @Produce json
// @Param sessionId path string true "Session UUID" format(uuid)
// @Success 200 {object} SessionResponse
// @Failure 404 {object} problem.Problem "Session not found"
// @Router /dashboard/sessions/{sessionId} [get]
func (h *DashboardHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: sess.ID, State: sess.Controller.State()})
}

// DeleteSession handles DELETE /dashboard/sessions/{sessionId}
// @Summary Close a dashboard session
// @Tags dashboard
// @Param sessionId path string true "Session UUID" format(uuid)
// @Success 204 "Session closed"
// @Failure 404 {object} problem.Problem "Session not found"
// @Router /dashboard/sessions/{sessionId} [delete]
func (h *DashboardHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "sessionId", "Invalid session ID format")
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		problem.NotFound("Dashboard session not found").Write(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectTab handles POST /dashboard/sessions/{sessionId}/tab
// @Summary Switch tab
// @Description Activates a tab and loads its data.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param request body selectTabRequest true "Tab: weight, blood-pressure, goals or report"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} problem.Problem "Unknown tab"
// @Failure 404 {object} problem.Problem "Session not found"
// @Router /dashboard/sessions/{sessionId}/tab [post]
func (h *DashboardHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	tab, err := dashboard.ParseTab(req.Tab)
	if err != nil {
		problem.BadRequest("tab must be one of: weight, blood-pressure, goals, report").Write(w)
		return
	}
	if err := sess.Controller.SelectTab(r.Context(), tab); err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: sess.ID, State: sess.Controller.State()})
}

// SelectRange handles POST /dashboard/sessions/{sessionId}/range
// @Summary Change time range
// @Description Sets the range in days (7, 30 or 90). Only the weight and blood pressure tabs reload.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param request body selectRangeRequest true "Range"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} problem.Problem "Unsupported range"
// @Failure 404 {object} problem.Problem "Session not found"
// @Router /dashboard/sessions/{sessionId}/range [post]
func (h *DashboardHandler) SelectRange(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}
	if err := sess.Controller.SelectRange(r.Context(), req.Days); err != nil {
		problem.BadRequest(fmt.Sprintf("days must be one of %v", dashboard.Ranges)).Write(w)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: sess.ID, State: sess.Controller.State()})
}

// SetGoal handles POST /dashboard/sessions/{sessionId}/goal
// @Summary Set the tracked goal
// @Description Validates the goal locally. Invalid input leaves a notice on the goals surface and loads nothing.
// @Tags dashboard
// @Accept json
// @Produce json
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param request body setGoalRequest true "Goal"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} problem.Problem "Invalid goal"
// @Failure 404 {object} problem.Problem "Session not found"
// @Router /dashboard/sessions/{sessionId}/goal [post]
func (h *DashboardHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req setGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if err := sess.Controller.SetGoal(r.Context(), req.GoalType, req.rawTarget()); err != nil {
		if errors.Is(err, domain.ErrInvalidGoalType) {
			problem.BadRequest(dashboard.MsgInvalidType).Write(w)
			return
		}
		problem.BadRequest(dashboard.MsgInvalidGoal).Write(w)
		return
	}
	writeJSON(w, http.StatusOK, SessionResponse{SessionID: sess.ID, State: sess.Controller.State()})
}

// Surface handles GET /dashboard/sessions/{sessionId}/surfaces/{tab}
// @Summary Tab surface HTML
// @Description HTML fragment of one tab: any notice, the rendered analysis and an embedded chart.
// @Tags dashboard
// @Produce html
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param tab path string true "Tab" Enums(weight, blood-pressure, goals, report)
// @Success 200 {string} string "HTML fragment"
// @Failure 400 {object} problem.Problem "Unknown tab"
// @Failure 404 {object} problem.Problem "Session not found"
// @Router /dashboard/sessions/{sessionId}/surfaces/{tab} [get]
func (h *DashboardHandler) Surface(w http.ResponseWriter, r *http.Request) {
	sess, surface, ok := h.surface(w, r)
	if !ok {
		return
	}
	snap := surface.Snapshot()

	var chartURL string
	if snap.Output.Chart != nil {
		chartURL = fmt.Sprintf("/dashboard/sessions/%s/surfaces/%s/chart", sess.ID, snap.Tab)
	}
	h.writeFragment(w, surfaceView{
		Tab:        string(snap.Tab),
		Active:     snap.Active,
		Loading:    snap.Loading,
		Generation: snap.Generation,
		Notice:     snap.Notice,
		Body:       snap.Output.HTML,
		ChartURL:   chartURL,
	})
}

// SurfaceChart handles GET /dashboard/sessions/{sessionId}/surfaces/{tab}/chart
// @Summary Tab chart
// @Description Standalone chart page for a tab's current output.
// @Tags dashboard
// @Produce html
// @Param sessionId path string true "Session UUID" format(uuid)
// @Param tab path string true "Tab" Enums(weight, blood-pressure, goals, report)
// @Success 200 {string} string "HTML page"
// @Failure 404 {object} problem.Problem "Session or chart not found"
// @Router /dashboard/sessions/{sessionId}/surfaces/{tab}/chart [get]
func (h *DashboardHandler) SurfaceChart(w http.ResponseWriter, r *http.Request) {
	_, surface, ok := h.surface(w, r)
	if !ok {
		return
	}
	h.writeChart(w, surface.Snapshot().Output.Chart)
}

// Correlations handles GET /dashboard/users/{userId}/correlations
// @Summary Correlations fragment
// @Tags dashboard
// @Produce html
// @Param userId path string true "User UUID" format(uuid)
// @Success 200 {string} string "HTML fragment"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Router /dashboard/users/{userId}/correlations [get]
func (h *DashboardHandler) Correlations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	h.writeOutput(w, "correlations", h.fragments.Correlations(r.Context(), userID))
}

// Predictions handles GET /dashboard/users/{userId}/predictions
// @Summary Predictions fragment
// @Tags dashboard
// @Produce html
// @Param userId path string true "User UUID" format(uuid)
// @Param days_ahead query integer false "Days to predict" default(3) minimum(1) maximum(14)
// @Success 200 {string} string "HTML fragment"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Router /dashboard/users/{userId}/predictions [get]
func (h *DashboardHandler) Predictions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	daysAhead, ok := intParam(w, r, "days_ahead", service.DefaultPredictionDays, 1, service.MaxPredictionDays)
	if !ok {
		return
	}
	h.writeOutput(w, "predictions", h.fragments.Predictions(r.Context(), userID, daysAhead))
}

// Symptoms handles GET /dashboard/users/{userId}/symptoms
// @Summary Symptom analysis fragment
// @Tags dashboard
// @Produce html
// @Param userId path string true "User UUID" format(uuid)
// @Param days query integer false "Window in days" default(30) minimum(1) maximum(365)
// @Success 200 {string} string "HTML fragment"
// @Failure 400 {object} problem.Problem "Invalid parameters"
// @Router /dashboard/users/{userId}/symptoms [get]
func (h *DashboardHandler) Symptoms(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	days, ok := intParam(w, r, "days", service.DefaultTrendDays, 1, service.MaxTrendDays)
	if !ok {
		return
	}
	h.writeOutput(w, "symptoms", h.fragments.SymptomAnalysis(r.Context(), userID, days))
}

func (h *DashboardHandler) session(w http.ResponseWriter, r *http.Request) (*dashboard.Session, bool) {
	id, ok := uuidParam(w, r, "sessionId", "Invalid session ID format")
	if !ok {
		return nil, false
	}
	sess, err := h.store.Get(id)
	if err != nil {
		problem.NotFound("Dashboard session not found").Write(w)
		return nil, false
	}
	return sess, true
}

func (h *DashboardHandler) surface(w http.ResponseWriter, r *http.Request) (*dashboard.Session, *dashboard.Surface, bool) {
	sess, ok := h.session(w, r)
	if !ok {
		return nil, nil, false
	}
	tab, err := dashboard.ParseTab(chi.URLParam(r, "tab"))
	if err != nil {
		problem.BadRequest("tab must be one of: weight, blood-pressure, goals, report").Write(w)
		return nil, nil, false
	}
	surface, err := sess.Controller.Surface(tab)
	if err != nil {
		problem.BadRequest(err.Error()).Write(w)
		return nil, nil, false
	}
	return sess, surface, true
}

type surfaceView struct {
	Tab        string
	Active     bool
	Loading    bool
	Generation uint64
	Notice     string
	Body       template.HTML
	ChartURL   string
}

var fragmentTemplate = template.Must(template.New("surface").Parse(
	`<section class="surface{{if .Active}} active{{end}}" id="surface-{{.Tab}}" data-generation="{{.Generation}}">` +
		`{{if .Loading}}<div class="loading">Loading...</div>{{end}}` +
		`{{if .Notice}}<div class="notice notice-warning"><p>{{.Notice}}</p></div>{{end}}` +
		`{{.Body}}` +
		`{{if .ChartURL}}<iframe class="chart" src="{{.ChartURL}}" title="{{.Tab}} chart" loading="lazy"></iframe>{{end}}` +
		`</section>`,
))

func (h *DashboardHandler) writeFragment(w http.ResponseWriter, view surfaceView) {
	var buf bytes.Buffer
	if err := fragmentTemplate.Execute(&buf, view); err != nil {
		h.logger.Error("failed to render dashboard surface", zap.String("tab", view.Tab), zap.Error(err))
		problem.InternalError("Failed to render dashboard").Write(w)
		return
	}
	writeHTML(w, buf.Bytes())
}

// writeOutput writes a fragment with any chart inlined as a standalone
// echarts page in srcdoc.
func (h *DashboardHandler) writeOutput(w http.ResponseWriter, name string, out render.Output) {
	view := surfaceView{Tab: name, Active: true, Body: out.HTML}
	if out.Chart != nil {
		var chart bytes.Buffer
		if err := out.Chart.Render(&chart); err != nil {
			h.logger.Warn("failed to render chart", zap.String("fragment", name), zap.Error(err))
		} else {
			view.Body += template.HTML(`<iframe class="chart" srcdoc="` + template.HTMLEscapeString(chart.String()) + `"></iframe>`)
		}
	}
	h.writeFragment(w, view)
}

func (h *DashboardHandler) writeChart(w http.ResponseWriter, chart *render.ChartSpec) {
	if chart == nil {
		problem.NotFound("No chart for this tab").Write(w)
		return
	}
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		h.logger.Error("failed to render chart", zap.String("title", chart.Title), zap.Error(err))
		problem.InternalError("Failed to render chart").Write(w)
		return
	}
	writeHTML(w, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
