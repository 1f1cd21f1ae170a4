package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/healthsync/healthsync/internal/domain"
)

var errBoom = errors.New("boom")

// withURLParams attaches chi URL params given as key, value pairs.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.User{ID: uuid.New(), Name: req.Name, DateOfBirth: req.DateOfBirth, Gender: req.Gender}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// MockProgressService is a mock implementation of ProgressService
type MockProgressService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateProgressRequest) (*domain.ProgressEntry, bool, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) (*domain.ProgressListResponse, error)
	weightFunc func(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error)
	bpFunc     func(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error)
	goalFunc   func(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error)
}

func (m *MockProgressService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateProgressRequest) (*domain.ProgressEntry, bool, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.ProgressEntry{ID: uuid.New(), UserID: userID, WeightKG: req.WeightKG}, false, nil
}

func (m *MockProgressService) List(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) (*domain.ProgressListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.ProgressListResponse{Data: []domain.ProgressEntry{}}, nil
}

func (m *MockProgressService) WeightTrend(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error) {
	if m.weightFunc != nil {
		return m.weightFunc(ctx, userID, days)
	}
	return domain.Failure[domain.WeightTrendData](domain.StatusInsufficientData, "Need at least two weight measurements to analyze trends"), nil
}

func (m *MockProgressService) BloodPressureTrend(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error) {
	if m.bpFunc != nil {
		return m.bpFunc(ctx, userID, days)
	}
	return domain.Failure[domain.BloodPressureTrendData](domain.StatusInsufficientData, "No blood pressure measurements found"), nil
}

func (m *MockProgressService) GoalProgress(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error) {
	if m.goalFunc != nil {
		return m.goalFunc(ctx, userID, goalType, target)
	}
	return domain.Success(domain.GoalProgressData{GoalType: goalType, TargetValue: target}), nil
}

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	report domain.HealthReport
	err    error
}

func (m *MockReportService) HealthReport(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error) {
	if m.err != nil {
		return domain.HealthReport{}, m.err
	}
	if m.report.Status == "" {
		return domain.Success(domain.HealthReportData{UserID: userID.String(), UserInfo: domain.UserInfo{Name: "Ada"}}), nil
	}
	return m.report, nil
}

// MockSymptomService is a mock implementation of SymptomService
type MockSymptomService struct {
	err          error
	gotDays      int
	gotDaysAhead int
}

func (m *MockSymptomService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSymptomLogRequest) (*domain.SymptomLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SymptomLog{ID: uuid.New(), UserID: userID, Symptoms: req.Symptoms, Severity: req.Severity}, nil
}

func (m *MockSymptomService) List(ctx context.Context, userID uuid.UUID, days int) ([]domain.SymptomLog, error) {
	m.gotDays = days
	return []domain.SymptomLog{}, m.err
}

func (m *MockSymptomService) Analyze(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error) {
	m.gotDays = days
	if m.err != nil {
		return domain.SymptomAnalysis{}, m.err
	}
	return domain.Failure[domain.SymptomAnalysisData](domain.StatusNoSymptoms, "No symptoms reported"), nil
}

func (m *MockSymptomService) Predict(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error) {
	m.gotDaysAhead = daysAhead
	if m.err != nil {
		return domain.PredictionReport{}, m.err
	}
	return domain.Success(domain.PredictionReportData{Predictions: []domain.Prediction{}}), nil
}

// MockMealService is a mock implementation of MealService
type MockMealService struct {
	err     error
	gotDays int
}

func (m *MockMealService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealLogRequest) (*domain.MealLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.MealLog{ID: uuid.New(), UserID: userID, MealType: req.MealType, Foods: req.Foods}, nil
}

func (m *MockMealService) List(ctx context.Context, userID uuid.UUID, days int) ([]domain.MealLog, error) {
	return []domain.MealLog{}, m.err
}

func (m *MockMealService) Correlations(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error) {
	if m.err != nil {
		return domain.CorrelationReport{}, m.err
	}
	return domain.Success(domain.CorrelationReportData{
		Correlations: []domain.Correlation{{Food: "milk", Symptom: "bloating", Confidence: domain.ConfidenceHigh, CorrelationPercentage: 80, Occurrences: 5}},
	}), nil
}

func (m *MockMealService) NutritionSummary(ctx context.Context, userID uuid.UUID, days int) (domain.MealNutritionSummary, error) {
	m.gotDays = days
	if m.err != nil {
		return domain.MealNutritionSummary{}, m.err
	}
	return domain.Success(domain.MealNutritionData{
		NutritionData:  domain.NutritionData{AverageDailyCalories: 1800, DaysTracked: 2},
		TotalMeals:     4,
		TotalCalories:  3600,
		MostEatenFoods: []domain.FoodCount{{Food: "rice", Count: 3}},
	}), nil
}

// MockMealPlanService is a mock implementation of MealPlanService
type MockMealPlanService struct {
	err       error
	gotReq    *domain.GenerateMealPlanRequest
	gotLimit  int
	gotCursor string
}

func (m *MockMealPlanService) Generate(ctx context.Context, userID uuid.UUID, req *domain.GenerateMealPlanRequest) (*domain.MealPlan, error) {
	m.gotReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.MealPlan{ID: uuid.New(), UserID: userID, Goal: req.Goal, DailyCaloriesTarget: 2000}, nil
}

func (m *MockMealPlanService) History(ctx context.Context, userID uuid.UUID, limit int, cursor string) (*domain.MealPlanListResponse, error) {
	m.gotLimit, m.gotCursor = limit, cursor
	if m.err != nil {
		return nil, m.err
	}
	return &domain.MealPlanListResponse{Data: []domain.MealPlan{}}, nil
}

func (m *MockMealPlanService) Feedback(ctx context.Context, planID uuid.UUID, req *domain.MealPlanFeedbackRequest) (*domain.MealPlan, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.MealPlan{ID: planID, UserRating: req.Rating, UserFollowed: req.Followed}, nil
}

// MockAlertService is a mock implementation of AlertService
type MockAlertService struct {
	alerts        []domain.HealthAlert
	err           error
	gotUnreadOnly bool
}

func (m *MockAlertService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.HealthAlert, error) {
	m.gotUnreadOnly = unreadOnly
	return m.alerts, m.err
}

func (m *MockAlertService) MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*domain.HealthAlert, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.alerts {
		if a.ID == alertID {
			a.IsRead = true
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockAlertService) Summary(ctx context.Context, userID uuid.UUID) (*domain.AlertSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AlertSummary{TotalAlerts: len(m.alerts)}, nil
}

func (m *MockAlertService) CheckHealth(ctx context.Context, userID uuid.UUID) (*domain.HealthCheckResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.HealthCheckResult{NewAlerts: []domain.HealthAlert{}}, nil
}

// MockTipsService is a mock implementation of TipsService
type MockTipsService struct {
	err error
}

func (m *MockTipsService) Tips(ctx context.Context, category string) ([]domain.HealthTip, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.HealthTip{{Title: "Balanced Diet", Importance: "high"}}, nil
}

// MockConsultationService is a mock implementation of ConsultationService
type MockConsultationService struct {
	askErr      error
	feedbackErr error
	lastAsk     *domain.ConsultationRequest
	feedbacks   int
}

func (m *MockConsultationService) Ask(ctx context.Context, req *domain.ConsultationRequest) (*domain.ConsultationResponse, error) {
	m.lastAsk = req
	if m.askErr != nil {
		return nil, m.askErr
	}
	return &domain.ConsultationResponse{Answer: "Drink **water**.", HTML: "Drink <strong>water</strong>.", TraceID: "trace-1"}, nil
}

func (m *MockConsultationService) Feedback(ctx context.Context, req *domain.FeedbackRequest) error {
	m.feedbacks++
	return m.feedbackErr
}
