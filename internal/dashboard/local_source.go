package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/service"
)

// LocalSource serves payloads straight from the in-process services.
type LocalSource struct {
	progress service.ProgressService
	reports  service.ReportService
	meals    service.MealService
	symptoms service.SymptomService
}

func NewLocalSource(
	progress service.ProgressService,
	reports service.ReportService,
	meals service.MealService,
	symptoms service.SymptomService,
) *LocalSource {
	return &LocalSource{
		progress: progress,
		reports:  reports,
		meals:    meals,
		symptoms: symptoms,
	}
}

func (s *LocalSource) WeightTrend(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error) {
	return s.progress.WeightTrend(ctx, userID, days)
}

func (s *LocalSource) BloodPressureTrend(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error) {
	return s.progress.BloodPressureTrend(ctx, userID, days)
}

func (s *LocalSource) GoalProgress(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error) {
	return s.progress.GoalProgress(ctx, userID, goalType, target)
}

func (s *LocalSource) HealthReport(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error) {
	return s.reports.HealthReport(ctx, userID)
}

func (s *LocalSource) Correlations(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error) {
	return s.meals.Correlations(ctx, userID)
}

func (s *LocalSource) Predictions(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error) {
	return s.symptoms.Predict(ctx, userID, daysAhead)
}

func (s *LocalSource) SymptomAnalysis(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error) {
	return s.symptoms.Analyze(ctx, userID, days)
}
