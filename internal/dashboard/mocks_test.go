package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthsync/healthsync/internal/domain"
)

type mockSource struct {
	mu    sync.Mutex
	calls map[string]int
	days  []int

	WeightTrendFunc        func(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error)
	BloodPressureTrendFunc func(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error)
	GoalProgressFunc       func(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error)
	HealthReportFunc       func(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error)
	CorrelationsFunc       func(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error)
	PredictionsFunc        func(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error)
	SymptomAnalysisFunc    func(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error)
}

func newMockSource() *mockSource {
	return &mockSource{calls: map[string]int{}}
}

func (m *mockSource) record(name string, days int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
	if days > 0 {
		m.days = append(m.days, days)
	}
}

func (m *mockSource) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockSource) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

func (m *mockSource) WeightTrend(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error) {
	m.record("weight", days)
	if m.WeightTrendFunc != nil {
		return m.WeightTrendFunc(ctx, userID, days)
	}
	return sampleWeight(), nil
}

func (m *mockSource) BloodPressureTrend(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error) {
	m.record("blood-pressure", days)
	if m.BloodPressureTrendFunc != nil {
		return m.BloodPressureTrendFunc(ctx, userID, days)
	}
	return domain.Success(domain.BloodPressureTrendData{AverageSystolic: 118, AverageDiastolic: 76, Category: domain.BPNormal}), nil
}

func (m *mockSource) GoalProgress(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error) {
	m.record("goals", 0)
	if m.GoalProgressFunc != nil {
		return m.GoalProgressFunc(ctx, userID, goalType, target)
	}
	return domain.Success(domain.GoalProgressData{GoalType: goalType, TargetValue: target, InitialValue: 80, CurrentValue: 75, ProgressPercentage: 50}), nil
}

func (m *mockSource) HealthReport(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error) {
	m.record("report", 0)
	if m.HealthReportFunc != nil {
		return m.HealthReportFunc(ctx, userID)
	}
	return domain.Success(domain.HealthReportData{UserInfo: domain.UserInfo{Name: "Ada"}}), nil
}

func (m *mockSource) Correlations(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error) {
	m.record("correlations", 0)
	if m.CorrelationsFunc != nil {
		return m.CorrelationsFunc(ctx, userID)
	}
	return domain.Success(domain.CorrelationReportData{}), nil
}

func (m *mockSource) Predictions(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error) {
	m.record("predictions", 0)
	if m.PredictionsFunc != nil {
		return m.PredictionsFunc(ctx, userID, daysAhead)
	}
	return domain.Success(domain.PredictionReportData{}), nil
}

func (m *mockSource) SymptomAnalysis(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error) {
	m.record("symptoms", 0)
	if m.SymptomAnalysisFunc != nil {
		return m.SymptomAnalysisFunc(ctx, userID, days)
	}
	return domain.Failure[domain.SymptomAnalysisData](domain.StatusNoSymptoms, "No symptoms logged yet"), nil
}

func sampleWeight() domain.WeightTrend {
	return domain.Success(domain.WeightTrendData{
		FirstMeasurement:  domain.Measurement{Date: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), WeightKG: 80},
		LatestMeasurement: domain.Measurement{Date: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), WeightKG: 78},
		TotalChangeKG:     -2,
		Trend:             "losing",
	})
}
