package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/repository"
)

const (
	symptomCheckDays  = 3
	progressCheckDays = 7
	recentCritical    = 5

	weightSwingKG       = 2.0
	highSystolic        = 140
	highBloodSugarMgDL  = 140.0
	severeSymptomsLevel = 8
)

type AlertService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.HealthAlert, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*domain.HealthAlert, error)
	Summary(ctx context.Context, userID uuid.UUID) (*domain.AlertSummary, error)
	// CheckHealth inspects recent symptoms and measurements and stores an
	// alert for every threshold crossed.
	CheckHealth(ctx context.Context, userID uuid.UUID) (*domain.HealthCheckResult, error)
}

type alertService struct {
	repo     repository.AlertRepository
	progress repository.ProgressRepository
	symptoms repository.SymptomLogRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewAlertService(
	repo repository.AlertRepository,
	progress repository.ProgressRepository,
	symptoms repository.SymptomLogRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) AlertService {
	return &alertService{
		repo:     repo,
		progress: progress,
		symptoms: symptoms,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *alertService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.HealthAlert, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	alerts, err := s.repo.List(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []domain.HealthAlert{}
	}
	return alerts, nil
}

func (s *alertService) MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*domain.HealthAlert, error) {
	return s.repo.MarkRead(ctx, userID, alertID)
}

func (s *alertService) Summary(ctx context.Context, userID uuid.UUID) (*domain.AlertSummary, error) {
	alerts, err := s.List(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	summary := &domain.AlertSummary{
		TotalAlerts:           len(alerts),
		SeverityDistribution:  map[string]int{},
		AlertTypeDistribution: map[string]int{},
		RecentCriticalAlerts:  []domain.HealthAlert{},
	}
	// alerts are newest first
	for _, a := range alerts {
		if !a.IsRead {
			summary.UnreadAlerts++
		}
		summary.SeverityDistribution[a.Severity]++
		summary.AlertTypeDistribution[a.AlertType]++
		if a.Severity == domain.SeverityHigh && len(summary.RecentCriticalAlerts) < recentCritical {
			summary.RecentCriticalAlerts = append(summary.RecentCriticalAlerts, a)
		}
	}
	return summary, nil
}

func (s *alertService) CheckHealth(ctx context.Context, userID uuid.UUID) (*domain.HealthCheckResult, error) {
	ctx, span := startSpan(ctx, "AlertService.CheckHealth",
		map[string]any{"user_id": userID.String()},
		attribute.String("user.id", userID.String()),
	)
	defer span.End()

	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	symptoms, err := s.symptoms.Since(ctx, userID, now.AddDate(0, 0, -symptomCheckDays))
	if err != nil {
		return nil, err
	}
	history, err := s.progress.Since(ctx, userID, now.AddDate(0, 0, -progressCheckDays))
	if err != nil {
		return nil, err
	}

	result := &domain.HealthCheckResult{NewAlerts: []domain.HealthAlert{}}
	for _, alert := range evaluateHealth(userID, symptoms, history) {
		if err := s.repo.Create(ctx, &alert); err != nil {
			return nil, err
		}
		result.NewAlerts = append(result.NewAlerts, alert)
	}
	result.AlertsGenerated = len(result.NewAlerts)

	s.logger.Info("health status checked",
		zap.String("user_id", userID.String()),
		zap.Int("alerts_generated", result.AlertsGenerated),
	)
	span.SetAttributes(attribute.Int("alerts.generated", result.AlertsGenerated))
	return result, nil
}

// evaluateHealth expects history oldest first.
func evaluateHealth(userID uuid.UUID, symptoms []domain.SymptomLog, history []domain.ProgressEntry) []domain.HealthAlert {
	var alerts []domain.HealthAlert
	add := func(alertType, severity, message string) {
		alerts = append(alerts, domain.HealthAlert{
			UserID:    userID,
			AlertType: alertType,
			Message:   message,
			Severity:  severity,
		})
	}

	for _, l := range symptoms {
		if l.Severity >= severeSymptomsLevel {
			add(domain.AlertSevereSymptoms, domain.SeverityHigh,
				"Severe symptoms detected in the last 3 days. Please consult a healthcare provider.")
			break
		}
	}

	var weights []float64
	for _, e := range history {
		if e.WeightKG != nil {
			weights = append(weights, *e.WeightKG)
		}
	}
	if len(weights) >= 2 {
		diffs := make([]float64, 0, len(weights)-1)
		for i := 1; i < len(weights); i++ {
			diffs = append(diffs, math.Abs(weights[i]-weights[i-1]))
		}
		if avg := mean(diffs); avg > weightSwingKG {
			add(domain.AlertWeightChange, domain.SeverityMedium,
				fmt.Sprintf("Significant weight change detected (%.1fkg average). Monitor your health.", avg))
		}
	}

	if e := latestWith(history, func(e domain.ProgressEntry) bool { return e.BloodPressureSystolic != nil }); e != nil {
		if *e.BloodPressureSystolic > highSystolic {
			diastolic := "?"
			if e.BloodPressureDiastolic != nil {
				diastolic = strconv.Itoa(*e.BloodPressureDiastolic)
			}
			add(domain.AlertHighBloodPressure, domain.SeverityMedium,
				fmt.Sprintf("High blood pressure detected (%d/%s). Consider lifestyle changes.", *e.BloodPressureSystolic, diastolic))
		}
	}

	if e := latestWith(history, func(e domain.ProgressEntry) bool { return e.BloodSugar != nil }); e != nil {
		if *e.BloodSugar > highBloodSugarMgDL {
			add(domain.AlertHighBloodSugar, domain.SeverityMedium,
				fmt.Sprintf("High blood sugar detected (%s mg/dL). Monitor your diet and consult a doctor.",
					strconv.FormatFloat(*e.BloodSugar, 'f', -1, 64)))
		}
	}

	return alerts
}

func latestWith(history []domain.ProgressEntry, has func(domain.ProgressEntry) bool) *domain.ProgressEntry {
	for i := len(history) - 1; i >= 0; i-- {
		if has(history[i]) {
			return &history[i]
		}
	}
	return nil
}
