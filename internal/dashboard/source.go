package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/healthsync/healthsync/internal/domain"
)

// Source provides analysis payloads. It is implemented over the local
// services and by the remote analytics client.
type Source interface {
	WeightTrend(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error)
	BloodPressureTrend(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error)
	GoalProgress(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error)
	HealthReport(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error)
	Correlations(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error)
	Predictions(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error)
	SymptomAnalysis(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error)
}
