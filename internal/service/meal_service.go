package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/repository"
)

const (
	CorrelationWindowDays = 30
	NutritionWindowDays   = 7

	maxMostEatenFoods = 5

	symptomWindow     = 24 * time.Hour
	minPairCount      = 2
	maxCorrelations   = 10
	eliminationAdvice = "Try an elimination diet by removing suspected trigger foods for 2-4 weeks, then reintroducing them one at a time to confirm correlations."
)

const (
	msgNoCorrelationData = "Not enough symptom or meal data for correlation analysis"
	msgNoRecentMeals     = "No recent meals to analyze"
)

type MealService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealLogRequest) (*domain.MealLog, error)
	List(ctx context.Context, userID uuid.UUID, days int) ([]domain.MealLog, error)
	Correlations(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error)
	// NutritionSummary summarizes the meals logged in the last days days.
	NutritionSummary(ctx context.Context, userID uuid.UUID, days int) (domain.MealNutritionSummary, error)
}

type mealService struct {
	repo     repository.MealLogRepository
	symptoms repository.SymptomLogRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewMealService(repo repository.MealLogRepository, symptoms repository.SymptomLogRepository, userRepo repository.UserRepository) MealService {
	return &mealService{
		repo:     repo,
		symptoms: symptoms,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *mealService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealLogRequest) (*domain.MealLog, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	ts := s.now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	total := 0.0
	for _, f := range req.Foods {
		total += f.Calories
	}

	after := make([]string, 0, len(req.SymptomsAfter))
	for _, raw := range req.SymptomsAfter {
		if name := normalizeSymptom(raw); name != "" {
			after = append(after, name)
		}
	}

	meal := &domain.MealLog{
		UserID:        userID,
		MealType:      strings.ToLower(req.MealType),
		Foods:         req.Foods,
		TotalCalories: total,
		SymptomsAfter: after,
		Timestamp:     ts,
	}
	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

func (s *mealService) List(ctx context.Context, userID uuid.UUID, days int) ([]domain.MealLog, error) {
	if days < 1 || days > MaxTrendDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidInput, MaxTrendDays)
	}
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	meals, err := s.repo.Since(ctx, userID, s.now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []domain.MealLog{}
	}
	return meals, nil
}

func (s *mealService) Correlations(ctx context.Context, userID uuid.UUID) (domain.CorrelationReport, error) {
	ctx, span := startSpan(ctx, "MealService.Correlations",
		map[string]any{"user_id": userID.String()},
		attribute.String("user.id", userID.String()),
	)

	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		span.End()
		return domain.CorrelationReport{}, err
	}

	from := s.now().UTC().AddDate(0, 0, -CorrelationWindowDays)
	meals, err := s.repo.Since(ctx, userID, from)
	if err != nil {
		span.End()
		return domain.CorrelationReport{}, err
	}
	symptoms, err := s.symptoms.Since(ctx, userID, from)
	if err != nil {
		span.End()
		return domain.CorrelationReport{}, err
	}

	result := correlate(meals, symptoms)
	endSpan(span, result)
	return result, nil
}

func (s *mealService) NutritionSummary(ctx context.Context, userID uuid.UUID, days int) (domain.MealNutritionSummary, error) {
	if days < 1 || days > MaxTrendDays {
		return domain.MealNutritionSummary{}, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrInvalidInput, MaxTrendDays)
	}
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return domain.MealNutritionSummary{}, err
	}
	meals, err := s.repo.Since(ctx, userID, s.now().UTC().AddDate(0, 0, -days))
	if err != nil {
		return domain.MealNutritionSummary{}, err
	}
	return summarizeMeals(meals), nil
}

func summarizeMeals(meals []domain.MealLog) domain.MealNutritionSummary {
	base := summarizeNutrition(meals)
	if !base.OK() {
		return domain.Failure[domain.MealNutritionData](domain.StatusInsufficientData, msgNoRecentMeals)
	}

	total := 0.0
	withSymptoms := 0
	counts := map[string]int{}
	for _, m := range meals {
		total += m.TotalCalories
		if len(m.SymptomsAfter) > 0 {
			withSymptoms++
		}
		for _, item := range m.Foods {
			if food := strings.ToLower(strings.TrimSpace(item.Name)); food != "" {
				counts[food]++
			}
		}
	}

	foods := make([]domain.FoodCount, 0, len(counts))
	for food, n := range counts {
		foods = append(foods, domain.FoodCount{Food: food, Count: n})
	}
	sort.Slice(foods, func(i, j int) bool {
		if foods[i].Count != foods[j].Count {
			return foods[i].Count > foods[j].Count
		}
		return foods[i].Food < foods[j].Food
	})
	if len(foods) > maxMostEatenFoods {
		foods = foods[:maxMostEatenFoods]
	}

	recs := []string{}
	switch avg := base.Data.AverageDailyCalories; {
	case avg < 1200:
		recs = append(recs, "Consider increasing daily calorie intake")
	case avg > 3000:
		recs = append(recs, "Consider reducing daily calorie intake")
	}
	if float64(withSymptoms) > float64(len(meals))*0.3 {
		recs = append(recs, "Many meals are causing symptoms. Consider consulting a nutritionist.")
	}

	return domain.Success(domain.MealNutritionData{
		NutritionData:     *base.Data,
		TotalMeals:        len(meals),
		TotalCalories:     round(total, 1),
		MostEatenFoods:    foods,
		MealsWithSymptoms: withSymptoms,
		Recommendations:   recs,
	})
}

type foodSymptomPair struct {
	food    string
	symptom string
}

// correlate counts, per food, the meals followed by each symptom within 24
// hours. A meal contributes at most once to a pair, so the percentage never
// exceeds 100.
func correlate(meals []domain.MealLog, symptoms []domain.SymptomLog) domain.CorrelationReport {
	if len(meals) == 0 || len(symptoms) == 0 {
		return domain.Failure[domain.CorrelationReportData](domain.StatusInsufficientData, msgNoCorrelationData)
	}

	foodTotals := map[string]int{}
	pairs := map[foodSymptomPair]int{}
	for _, meal := range meals {
		after := symptomsAfter(meal.Timestamp, symptoms)

		seen := map[string]bool{}
		for _, item := range meal.Foods {
			food := strings.ToLower(strings.TrimSpace(item.Name))
			if food == "" || seen[food] {
				continue
			}
			seen[food] = true
			foodTotals[food]++
			for symptom := range after {
				pairs[foodSymptomPair{food, symptom}]++
			}
		}
	}

	correlations := []domain.Correlation{}
	for pair, count := range pairs {
		if count < minPairCount {
			continue
		}
		pct := float64(count) / float64(foodTotals[pair.food]) * 100
		correlations = append(correlations, domain.Correlation{
			Food:                  pair.food,
			Symptom:               pair.symptom,
			Confidence:            correlationConfidence(count, pct),
			CorrelationPercentage: round(pct, 1),
			Occurrences:           count,
		})
	}
	sort.Slice(correlations, func(i, j int) bool {
		a, b := correlations[i], correlations[j]
		if a.CorrelationPercentage != b.CorrelationPercentage {
			return a.CorrelationPercentage > b.CorrelationPercentage
		}
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		if a.Food != b.Food {
			return a.Food < b.Food
		}
		return a.Symptom < b.Symptom
	})

	recommendations := avoidanceRecommendations(correlations)
	if len(correlations) > maxCorrelations {
		correlations = correlations[:maxCorrelations]
	}
	return domain.Success(domain.CorrelationReportData{
		Correlations:    correlations,
		Recommendations: recommendations,
	})
}

// symptomsAfter returns the distinct symptoms logged in (at, at+24h].
func symptomsAfter(at time.Time, symptoms []domain.SymptomLog) map[string]bool {
	out := map[string]bool{}
	for _, log := range symptoms {
		elapsed := log.Timestamp.Sub(at)
		if elapsed <= 0 || elapsed > symptomWindow {
			continue
		}
		for _, raw := range log.Symptoms {
			if symptom := normalizeSymptom(raw); symptom != "" {
				out[symptom] = true
			}
		}
	}
	return out
}

func correlationConfidence(count int, pct float64) string {
	switch {
	case count < 3:
		return domain.ConfidenceLow
	case pct >= 75 && count >= 5:
		return domain.ConfidenceHigh
	case pct >= 50:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func avoidanceRecommendations(correlations []domain.Correlation) []string {
	recs := []string{}
	for _, c := range correlations {
		if c.CorrelationPercentage < 50 {
			continue
		}
		pct := formatOneDecimal(c.CorrelationPercentage)
		switch c.Confidence {
		case domain.ConfidenceHigh:
			recs = append(recs, fmt.Sprintf("Consider avoiding %s as it strongly correlates with %s (%s%% of the time).", c.Food, c.Symptom, pct))
		case domain.ConfidenceMedium:
			recs = append(recs, fmt.Sprintf("Consider temporarily eliminating %s to see if %s improves (correlation: %s%%).", c.Food, c.Symptom, pct))
		}
	}
	if len(recs) > 0 {
		recs = append(recs, eliminationAdvice)
	}
	return recs
}
