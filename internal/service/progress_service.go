package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/repository"
	"github.com/healthsync/healthsync/pkg/pagination"
)

const (
	DefaultTrendDays = 30
	MaxTrendDays     = 365
	GoalHistoryDays  = 90

	stableWeightDeltaKG = 0.5
)

const (
	msgNeedTwoWeights = "Need at least two weight measurements to analyze trends"
	msgNoBloodPress   = "No blood pressure measurements found"
	msgNoProgress     = "No progress data found"
)

type ProgressService interface {
	// Create logs a measurement. Returns (entry, isExisting, error); isExisting
	// is true when an entry with the same client request ID already exists.
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateProgressRequest) (*domain.ProgressEntry, bool, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) (*domain.ProgressListResponse, error)
	WeightTrend(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error)
	BloodPressureTrend(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error)
	GoalProgress(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error)
}

type progressService struct {
	repo     repository.ProgressRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewProgressService(repo repository.ProgressRepository, userRepo repository.UserRepository) ProgressService {
	return &progressService{
		repo:     repo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *progressService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateProgressRequest) (*domain.ProgressEntry, bool, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, false, err
	}
	if !req.HasMetric() {
		return nil, false, fmt.Errorf("%w: at least one measurement is required", domain.ErrInvalidInput)
	}

	// Check for idempotency (duplicate client_request_id)
	if req.ClientRequestID != nil && *req.ClientRequestID != "" {
		existing, err := s.repo.GetByClientRequestID(ctx, userID, *req.ClientRequestID)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	ts := s.now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	entry := &domain.ProgressEntry{
		UserID:                 userID,
		WeightKG:               req.WeightKG,
		BloodSugar:             req.BloodSugar,
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		Notes:                  req.Notes,
		Timestamp:              ts,
		ClientRequestID:        req.ClientRequestID,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, false, err
	}
	// Backdated entries leave the current weight alone.
	if req.WeightKG != nil && req.Timestamp == nil {
		if err := s.userRepo.UpdateWeight(ctx, userID, *req.WeightKG); err != nil {
			return nil, false, fmt.Errorf("failed to update current weight: %w", err)
		}
	}
	return entry, false, nil
}

func (s *progressService) List(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) (*domain.ProgressListResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	entries, next := pagination.Page(entries, pagination.NormalizeLimit(filter.Limit), func(e domain.ProgressEntry) pagination.Cursor {
		return pagination.At(e.Timestamp, e.ID)
	})

	response := &domain.ProgressListResponse{
		Data:       entries,
		Pagination: domain.PaginationResponse{NextCursor: next, HasMore: next != ""},
	}
	if response.Data == nil {
		response.Data = []domain.ProgressEntry{}
	}
	return response, nil
}

func (s *progressService) WeightTrend(ctx context.Context, userID uuid.UUID, days int) (domain.WeightTrend, error) {
	ctx, span := startSpan(ctx, "ProgressService.WeightTrend",
		map[string]any{"user_id": userID.String(), "days": days},
		attribute.String("user.id", userID.String()),
		attribute.Int("window.days", days),
	)

	history, err := s.history(ctx, userID, days)
	if err != nil {
		span.End()
		return domain.WeightTrend{}, err
	}
	result := analyzeWeight(history)
	endSpan(span, result)
	return result, nil
}

func (s *progressService) BloodPressureTrend(ctx context.Context, userID uuid.UUID, days int) (domain.BloodPressureTrend, error) {
	ctx, span := startSpan(ctx, "ProgressService.BloodPressureTrend",
		map[string]any{"user_id": userID.String(), "days": days},
		attribute.String("user.id", userID.String()),
		attribute.Int("window.days", days),
	)

	history, err := s.history(ctx, userID, days)
	if err != nil {
		span.End()
		return domain.BloodPressureTrend{}, err
	}
	result := analyzeBloodPressure(history)
	endSpan(span, result)
	return result, nil
}

func (s *progressService) GoalProgress(ctx context.Context, userID uuid.UUID, goalType string, target float64) (domain.GoalProgress, error) {
	if !domain.IsValidGoalType(goalType) {
		return domain.GoalProgress{}, fmt.Errorf("%w: %q", domain.ErrInvalidGoalType, goalType)
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return domain.GoalProgress{}, fmt.Errorf("%w: target must be a finite number", domain.ErrInvalidInput)
	}

	ctx, span := startSpan(ctx, "ProgressService.GoalProgress",
		map[string]any{"user_id": userID.String(), "goal_type": goalType, "target": target},
		attribute.String("user.id", userID.String()),
		attribute.String("goal.type", goalType),
	)

	history, err := s.history(ctx, userID, GoalHistoryDays)
	if err != nil {
		span.End()
		return domain.GoalProgress{}, err
	}
	result := trackGoal(history, goalType, target)
	endSpan(span, result)
	return result, nil
}

// history returns the user's entries for the last days, oldest first.
func (s *progressService) history(ctx context.Context, userID uuid.UUID, days int) ([]domain.ProgressEntry, error) {
	if days < 1 || days > MaxTrendDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidInput, MaxTrendDays)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.Since(ctx, userID, s.now().UTC().AddDate(0, 0, -days))
}

func (s *progressService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	return ensureUser(ctx, s.userRepo, userID)
}

func ensureUser(ctx context.Context, users repository.UserRepository, userID uuid.UUID) error {
	exists, err := users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// analyzeWeight expects entries oldest first.
func analyzeWeight(history []domain.ProgressEntry) domain.WeightTrend {
	var samples []domain.Measurement
	for _, e := range history {
		if e.WeightKG != nil {
			samples = append(samples, domain.Measurement{Date: e.Timestamp, WeightKG: *e.WeightKG})
		}
	}
	if len(samples) < 2 {
		return domain.Failure[domain.WeightTrendData](domain.StatusInsufficientData, msgNeedTwoWeights)
	}

	first, last := samples[0], samples[len(samples)-1]
	change := last.WeightKG - first.WeightKG
	percent := change / first.WeightKG * 100

	daysElapsed := int(last.Date.Sub(first.Date).Hours() / 24)
	if daysElapsed < 1 {
		daysElapsed = 1
	}
	weekly := change / float64(daysElapsed) * 7

	trend := "stable"
	switch {
	case math.Abs(change) < stableWeightDeltaKG:
	case change > 0:
		trend = "gaining"
	default:
		trend = "losing"
	}

	return domain.Success(domain.WeightTrendData{
		FirstMeasurement:   first,
		LatestMeasurement:  last,
		TotalChangeKG:      round(change, 2),
		PercentChange:      round(percent, 2),
		WeeklyChangeRateKG: round(weekly, 2),
		Trend:              trend,
		DataPoints:         len(samples),
		DaysTracked:        daysElapsed,
		Insights:           weightInsights(trend, weekly, change),
	})
}

func weightInsights(trend string, weekly, change float64) []string {
	insights := []string{}
	switch trend {
	case "stable":
		insights = append(insights, "Your weight has remained stable over this period.")
	case "gaining":
		insights = append(insights, fmt.Sprintf("You've gained %s kg over this period.", formatKG(change)))
		if weekly > 0.9 {
			insights = append(insights, "Your rate of weight gain is relatively fast. Consider reviewing your diet and exercise routine.")
		}
	case "losing":
		insights = append(insights, fmt.Sprintf("You've lost %s kg over this period.", formatKG(change)))
		if weekly < -1.0 {
			insights = append(insights, "You're losing weight at a rapid pace. While weight loss may be your goal, losing too quickly can sometimes be unhealthy.")
		} else if weekly > -0.5 && weekly < 0 {
			insights = append(insights, "You're losing weight at a healthy, sustainable pace. Great job!")
		}
	}
	return insights
}

func analyzeBloodPressure(history []domain.ProgressEntry) domain.BloodPressureTrend {
	var systolic, diastolic []float64
	for _, e := range history {
		if e.BloodPressureSystolic != nil && e.BloodPressureDiastolic != nil {
			systolic = append(systolic, float64(*e.BloodPressureSystolic))
			diastolic = append(diastolic, float64(*e.BloodPressureDiastolic))
		}
	}
	if len(systolic) == 0 {
		return domain.Failure[domain.BloodPressureTrendData](domain.StatusInsufficientData, msgNoBloodPress)
	}

	avgSys, avgDia := mean(systolic), mean(diastolic)
	minSys, maxSys := minMax(systolic)
	minDia, maxDia := minMax(diastolic)
	category := CategorizeBloodPressure(avgSys, avgDia)

	return domain.Success(domain.BloodPressureTrendData{
		AverageSystolic:  round(avgSys, 1),
		AverageDiastolic: round(avgDia, 1),
		MinSystolic:      minSys,
		MinDiastolic:     minDia,
		MaxSystolic:      maxSys,
		MaxDiastolic:     maxDia,
		Category:         category,
		DataPoints:       len(systolic),
		Insights:         bloodPressureInsights(category),
	})
}

// CategorizeBloodPressure classifies average readings. Rules are checked in
// order: crisis before stage 1, and stage 1 before stage 2, so a reading
// with either value in the stage 1 band is stage 1.
func CategorizeBloodPressure(systolic, diastolic float64) string {
	switch {
	case systolic < 120 && diastolic < 80:
		return domain.BPNormal
	case systolic >= 120 && systolic < 130 && diastolic < 80:
		return domain.BPElevated
	case systolic > 180 || diastolic > 120:
		return domain.BPHypertensiveCrisis
	case (systolic >= 130 && systolic < 140) || (diastolic >= 80 && diastolic < 90):
		return domain.BPHypertensionStage1
	case systolic >= 140 || diastolic >= 90:
		return domain.BPHypertensionStage2
	default:
		return domain.BPUnknown
	}
}

var bloodPressureInsightText = map[string]string{
	domain.BPNormal:             "Your blood pressure is in the normal range. Keep up the good work!",
	domain.BPElevated:           "Your blood pressure is slightly elevated. Consider lifestyle changes like reducing sodium intake and increasing physical activity.",
	domain.BPHypertensionStage1: "Your blood pressure falls into hypertension stage 1. Consider consulting with a healthcare provider about lifestyle changes and possibly medication.",
	domain.BPHypertensionStage2: "Your blood pressure falls into hypertension stage 2. It's recommended to consult with a healthcare provider about a treatment plan.",
	domain.BPHypertensiveCrisis: "Your blood pressure readings indicate a hypertensive crisis. If these readings are accurate, please seek immediate medical attention.",
}

func bloodPressureInsights(category string) []string {
	if text, ok := bloodPressureInsightText[category]; ok {
		return []string{text}
	}
	return []string{}
}

// goalMetric extracts the tracked value for a goal type.
func goalMetric(e domain.ProgressEntry, goalType string) (float64, bool) {
	switch goalType {
	case domain.GoalWeight:
		if e.WeightKG != nil {
			return *e.WeightKG, true
		}
	case domain.GoalBloodSugar:
		if e.BloodSugar != nil {
			return *e.BloodSugar, true
		}
	case domain.GoalBloodPressure:
		if e.BloodPressureSystolic != nil {
			return float64(*e.BloodPressureSystolic), true
		}
	}
	return 0, false
}

func trackGoal(history []domain.ProgressEntry, goalType string, target float64) domain.GoalProgress {
	if len(history) == 0 {
		return domain.Failure[domain.GoalProgressData](domain.StatusInsufficientData, msgNoProgress)
	}

	var values []float64
	for _, e := range history {
		if v, ok := goalMetric(e, goalType); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return domain.Failure[domain.GoalProgressData](domain.StatusInsufficientData, fmt.Sprintf("No %s data found", goalType))
	}

	initial, current := values[0], values[len(values)-1]

	var needed, achieved float64
	switch {
	case goalType == domain.GoalWeight && target < initial:
		needed, achieved = initial-target, initial-current
	case goalType == domain.GoalWeight:
		needed, achieved = target-initial, current-initial
	default:
		needed, achieved = math.Abs(target-initial), math.Abs(current-initial)
	}

	progress := 100.0
	if needed != 0 {
		progress = math.Max(0, math.Min(100, achieved/needed*100))
	}

	return domain.Success(domain.GoalProgressData{
		GoalType:           goalType,
		TargetValue:        target,
		InitialValue:       initial,
		CurrentValue:       current,
		ProgressPercentage: round(progress, 1),
		Insights:           []string{goalInsight(goalType, progress)},
	})
}

func goalInsight(goalType string, progress float64) string {
	switch {
	case progress >= 100:
		return fmt.Sprintf("Congratulations! You've reached your %s goal.", goalType)
	case progress >= 75:
		return fmt.Sprintf("You're making excellent progress toward your %s goal. Keep it up!", goalType)
	case progress >= 50:
		return fmt.Sprintf("You're halfway to your %s goal. Stay consistent!", goalType)
	case progress >= 25:
		return fmt.Sprintf("You're making steady progress toward your %s goal.", goalType)
	case progress > 0:
		return fmt.Sprintf("You've started making progress toward your %s goal.", goalType)
	default:
		return fmt.Sprintf("You haven't made progress toward your %s goal yet. Consider reviewing your approach.", goalType)
	}
}
