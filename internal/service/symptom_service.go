package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/repository"
)

const (
	DefaultPredictionDays = 3
	MaxPredictionDays     = 14
	PredictionWindowDays  = 30

	attentionSeverity = 8
	severeSeverity    = 7
)

const msgNoPredictionHistory = "Not enough symptom history for predictions"

var (
	fluLikeSymptoms = map[string]bool{
		"fever": true, "headache": true, "cough": true, "body aches": true,
	}
	foodIntoleranceSymptoms = map[string]bool{
		"nausea": true, "bloating": true, "stomach pain": true,
	}

	possibleSymptoms = map[string][]string{
		domain.ClassificationFluLike:         {"fever", "headache", "body aches", "fatigue"},
		domain.ClassificationFoodIntolerance: {"nausea", "bloating", "stomach pain", "indigestion"},
	}
)

type SymptomService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSymptomLogRequest) (*domain.SymptomLog, error)
	List(ctx context.Context, userID uuid.UUID, days int) ([]domain.SymptomLog, error)
	Analyze(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error)
	Predict(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error)
}

type symptomService struct {
	repo     repository.SymptomLogRepository
	alerts   repository.AlertRepository
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewSymptomService(
	repo repository.SymptomLogRepository,
	alerts repository.AlertRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) SymptomService {
	return &symptomService{
		repo:     repo,
		alerts:   alerts,
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *symptomService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateSymptomLogRequest) (*domain.SymptomLog, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	symptoms := make([]string, 0, len(req.Symptoms))
	for _, raw := range req.Symptoms {
		if name := normalizeSymptom(raw); name != "" {
			symptoms = append(symptoms, name)
		}
	}
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("%w: at least one symptom is required", domain.ErrInvalidInput)
	}

	ts := s.now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	log := &domain.SymptomLog{
		UserID:                userID,
		Symptoms:              symptoms,
		Severity:              req.Severity,
		Classification:        ClassifySymptoms(symptoms),
		NeedsMedicalAttention: NeedsMedicalAttention(symptoms, req.Severity),
		Timestamp:             ts,
	}
	if err := s.repo.Create(ctx, log); err != nil {
		return nil, err
	}

	if log.NeedsMedicalAttention {
		alert := &domain.HealthAlert{
			UserID:    userID,
			AlertType: domain.AlertSevereSymptoms,
			Message:   fmt.Sprintf("Severe symptoms detected: %s. Please consult a healthcare provider.", strings.Join(symptoms, ", ")),
			Severity:  domain.SeverityHigh,
		}
		// The symptom log is already stored; a failed alert is logged, not returned.
		if err := s.alerts.Create(ctx, alert); err != nil {
			s.logger.Error("failed to create symptom alert",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	return log, nil
}

func (s *symptomService) List(ctx context.Context, userID uuid.UUID, days int) ([]domain.SymptomLog, error) {
	if days < 1 || days > MaxTrendDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidInput, MaxTrendDays)
	}
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	logs, err := s.repo.Since(ctx, userID, s.now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []domain.SymptomLog{}
	}
	return logs, nil
}

func (s *symptomService) Analyze(ctx context.Context, userID uuid.UUID, days int) (domain.SymptomAnalysis, error) {
	ctx, span := startSpan(ctx, "SymptomService.Analyze",
		map[string]any{"user_id": userID.String(), "days": days},
		attribute.String("user.id", userID.String()),
		attribute.Int("window.days", days),
	)

	logs, err := s.List(ctx, userID, days)
	if err != nil {
		span.End()
		return domain.SymptomAnalysis{}, err
	}
	result := analyzeSymptoms(logs)
	endSpan(span, result)
	return result, nil
}

func (s *symptomService) Predict(ctx context.Context, userID uuid.UUID, daysAhead int) (domain.PredictionReport, error) {
	if daysAhead < 1 || daysAhead > MaxPredictionDays {
		return domain.PredictionReport{}, fmt.Errorf("%w: days_ahead must be between 1 and %d", domain.ErrInvalidInput, MaxPredictionDays)
	}

	ctx, span := startSpan(ctx, "SymptomService.Predict",
		map[string]any{"user_id": userID.String(), "days_ahead": daysAhead},
		attribute.String("user.id", userID.String()),
		attribute.Int("prediction.days_ahead", daysAhead),
	)

	logs, err := s.List(ctx, userID, PredictionWindowDays)
	if err != nil {
		span.End()
		return domain.PredictionReport{}, err
	}
	result := predictSymptoms(logs, s.now().UTC(), daysAhead)
	endSpan(span, result)
	return result, nil
}

// ClassifySymptoms scores a symptom list against the flu-like and
// food-intolerance sets. Ties go to flu-like only when fever is present.
func ClassifySymptoms(symptoms []string) string {
	var flu, food int
	fever := false
	for _, raw := range symptoms {
		name := normalizeSymptom(raw)
		if fluLikeSymptoms[name] {
			flu++
		}
		if foodIntoleranceSymptoms[name] {
			food++
		}
		if name == "fever" {
			fever = true
		}
	}

	switch {
	case flu == 0 && food == 0:
		return domain.ClassificationNone
	case flu > food:
		return domain.ClassificationFluLike
	case food > flu:
		return domain.ClassificationFoodIntolerance
	case fever:
		return domain.ClassificationFluLike
	default:
		return domain.ClassificationFoodIntolerance
	}
}

// NeedsMedicalAttention is true for severity 8 and above, or when fever or
// a symptom named "severe" is reported.
func NeedsMedicalAttention(symptoms []string, severity int) bool {
	if severity >= attentionSeverity {
		return true
	}
	for _, raw := range symptoms {
		switch normalizeSymptom(raw) {
		case "fever", "severe":
			return true
		}
	}
	return false
}

// analyzeSymptoms expects logs oldest first.
func analyzeSymptoms(logs []domain.SymptomLog) domain.SymptomAnalysis {
	if len(logs) == 0 {
		return domain.Failure[domain.SymptomAnalysisData](domain.StatusNoSymptoms, msgNoSymptoms)
	}

	tallies := tallySymptoms(logs)
	frequency := make(map[string]int, len(tallies))
	for _, t := range tallies {
		frequency[t.name] = t.count
	}

	data := domain.SymptomAnalysisData{
		SymptomFrequency: frequency,
		TotalLogs:        len(logs),
		SeverityTrend:    severityTrend(logs),
		DayOfWeekPattern: dayOfWeekPattern(logs),
		MostCommon:       topStats(tallies, byCount),
		MostSevere:       topStats(tallies, bySeverity),
		Recommendations:  symptomRecommendations(logs),
	}
	data.Insights = symptomInsights(data)
	return domain.Success(data)
}

func severityTrend(logs []domain.SymptomLog) *domain.SeverityTrend {
	if len(logs) < 2 {
		return nil
	}
	half := len(logs) / 2
	first := make([]float64, 0, half)
	second := make([]float64, 0, len(logs)-half)
	for i, l := range logs {
		if i < half {
			first = append(first, float64(l.Severity))
		} else {
			second = append(second, float64(l.Severity))
		}
	}

	firstAvg, secondAvg := mean(first), mean(second)
	change := secondAvg - firstAvg
	trend := "stable"
	if change > 0.5 {
		trend = "increasing"
	} else if change < -0.5 {
		trend = "decreasing"
	}
	return &domain.SeverityTrend{
		Trend:         trend,
		FirstHalfAvg:  round(firstAvg, 1),
		SecondHalfAvg: round(secondAvg, 1),
		Change:        round(change, 1),
	}
}

func dayOfWeekPattern(logs []domain.SymptomLog) map[string]domain.DayPattern {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, l := range logs {
		day := l.Timestamp.UTC().Weekday().String()
		sums[day] += l.Severity
		counts[day]++
	}
	pattern := make(map[string]domain.DayPattern, len(counts))
	for day, n := range counts {
		pattern[day] = domain.DayPattern{
			AvgSeverity: round(float64(sums[day])/float64(n), 1),
			Count:       n,
		}
	}
	return pattern
}

type statOrder func(a, b symptomTally) bool

func byCount(a, b symptomTally) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.name < b.name
}

func bySeverity(a, b symptomTally) bool {
	if a.avg() != b.avg() {
		return a.avg() > b.avg()
	}
	return a.name < b.name
}

func topStats(tallies []symptomTally, less statOrder) []domain.SymptomStat {
	sorted := make([]symptomTally, len(tallies))
	copy(sorted, tallies)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > topSymptoms {
		sorted = sorted[:topSymptoms]
	}
	stats := make([]domain.SymptomStat, 0, len(sorted))
	for _, t := range sorted {
		stats = append(stats, domain.SymptomStat{
			Symptom:     t.name,
			Count:       t.count,
			AvgSeverity: round(t.avg(), 1),
		})
	}
	return stats
}

func symptomRecommendations(logs []domain.SymptomLog) []string {
	var flu, food int
	severe := false
	for _, l := range logs {
		switch l.Classification {
		case domain.ClassificationFluLike:
			flu++
		case domain.ClassificationFoodIntolerance:
			food++
		}
		if l.Severity >= severeSeverity {
			severe = true
		}
	}

	recs := []string{}
	if flu > food && flu > 2 {
		recs = append(recs, "Consider consulting a doctor for flu-like symptoms")
	}
	if food > 3 {
		recs = append(recs, "Consider keeping a food diary to identify trigger foods")
	}
	if severe {
		recs = append(recs, "Seek medical attention for severe symptoms")
	}
	return recs
}

func symptomInsights(data domain.SymptomAnalysisData) []string {
	insights := []string{}
	if len(data.MostCommon) > 0 {
		top := data.MostCommon[0]
		insights = append(insights, fmt.Sprintf(
			"Your most frequently reported symptom is '%s' with an average severity of %s/10.",
			top.Symptom, formatOneDecimal(top.AvgSeverity)))
	}
	if data.SeverityTrend != nil {
		switch data.SeverityTrend.Trend {
		case "increasing":
			insights = append(insights, "Your symptom severity has been increasing recently.")
		case "decreasing":
			insights = append(insights, "Your symptom severity has been decreasing recently.")
		}
	}
	return insights
}

// predictSymptoms projects the dominant recent classification forward with
// confidence decaying by five points per day.
func predictSymptoms(logs []domain.SymptomLog, now time.Time, daysAhead int) domain.PredictionReport {
	if len(logs) == 0 {
		return domain.Failure[domain.PredictionReportData](domain.StatusInsufficientData, msgNoPredictionHistory)
	}

	counts := map[string]int{}
	for _, l := range logs {
		counts[l.Classification]++
	}
	dominant := domain.ClassificationNone
	best := 0
	for _, class := range []string{domain.ClassificationFluLike, domain.ClassificationFoodIntolerance, domain.ClassificationNone} {
		if counts[class] > best {
			dominant, best = class, counts[class]
		}
	}
	share := float64(best) / float64(len(logs))

	predictions := make([]domain.Prediction, 0, daysAhead)
	for i := 1; i <= daysAhead; i++ {
		confidence := share * (1 - 0.05*float64(i-1))
		if confidence < 0.1 {
			confidence = 0.1
		}
		symptoms := possibleSymptoms[dominant]
		if symptoms == nil {
			symptoms = []string{}
		}
		predictions = append(predictions, domain.Prediction{
			Date:                    now.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedClassification: dominant,
			Confidence:              round(confidence, 2),
			PossibleSymptoms:        symptoms,
		})
	}
	return domain.Success(domain.PredictionReportData{Predictions: predictions})
}
