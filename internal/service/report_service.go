package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/repository"
)

const (
	ReportProgressDays = 90
	ReportActivityDays = 30

	topSymptoms = 5
)

const (
	msgNoMeals    = "No meal data available"
	msgNoSymptoms = "No symptoms reported"

	generalAdvice = "Keep up with your current health tracking habits. Regular monitoring is key to maintaining and improving your health."
)

type ReportService interface {
	HealthReport(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error)
}

type reportService struct {
	users    repository.UserRepository
	progress repository.ProgressRepository
	meals    repository.MealLogRepository
	symptoms repository.SymptomLogRepository
	now      func() time.Time
}

func NewReportService(
	users repository.UserRepository,
	progress repository.ProgressRepository,
	meals repository.MealLogRepository,
	symptoms repository.SymptomLogRepository,
) ReportService {
	return &reportService{
		users:    users,
		progress: progress,
		meals:    meals,
		symptoms: symptoms,
		now:      time.Now,
	}
}

func (s *reportService) HealthReport(ctx context.Context, userID uuid.UUID) (domain.HealthReport, error) {
	ctx, span := startSpan(ctx, "ReportService.HealthReport",
		map[string]any{"user_id": userID.String()},
		attribute.String("user.id", userID.String()),
	)
	defer span.End()

	now := s.now().UTC()

	var (
		user     *domain.User
		history  []domain.ProgressEntry
		meals    []domain.MealLog
		symptoms []domain.SymptomLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.GetByID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.progress.Since(gctx, userID, now.AddDate(0, 0, -ReportProgressDays))
		return err
	})
	g.Go(func() error {
		var err error
		meals, err = s.meals.Since(gctx, userID, now.AddDate(0, 0, -ReportActivityDays))
		return err
	})
	g.Go(func() error {
		var err error
		symptoms, err = s.symptoms.Since(gctx, userID, now.AddDate(0, 0, -ReportActivityDays))
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.HealthReport{}, err
	}

	report := domain.HealthReportData{
		UserID:     userID.String(),
		ReportDate: now,
		UserInfo: domain.UserInfo{
			Name:            user.Name,
			Age:             user.Age(now),
			Gender:          user.Gender,
			HeightCM:        user.HeightCM,
			CurrentWeightKG: latestWeight(history),
		},
		Summary: domain.ReportSummary{
			DataPointsCollected: len(history) + len(meals) + len(symptoms),
			DaysTracked:         ReportProgressDays,
			MetricsTracked:      trackedMetrics(history),
		},
	}

	if weight := analyzeWeight(history); weight.OK() {
		report.WeightAnalysis = &weight
	}
	if bp := analyzeBloodPressure(history); bp.OK() {
		report.BloodPressureAnalysis = &bp
	}
	nutrition := summarizeNutrition(meals)
	report.NutritionSummary = &nutrition
	patterns := symptomPatterns(symptoms)
	report.SymptomPatterns = &patterns
	report.Recommendations = reportRecommendations(report.WeightAnalysis, meals, symptoms)

	result := domain.Success(report)
	endSpan(span, report.Summary)
	return result, nil
}

func latestWeight(history []domain.ProgressEntry) *float64 {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].WeightKG != nil {
			w := *history[i].WeightKG
			return &w
		}
	}
	return nil
}

func trackedMetrics(history []domain.ProgressEntry) []string {
	var weight, sugar, bp bool
	for _, e := range history {
		weight = weight || e.WeightKG != nil
		sugar = sugar || e.BloodSugar != nil
		bp = bp || e.BloodPressureSystolic != nil
	}
	metrics := []string{}
	if weight {
		metrics = append(metrics, "weight")
	}
	if sugar {
		metrics = append(metrics, "blood_sugar")
	}
	if bp {
		metrics = append(metrics, "blood_pressure")
	}
	return metrics
}

func summarizeNutrition(meals []domain.MealLog) domain.NutritionSummary {
	if len(meals) == 0 {
		return domain.Failure[domain.NutritionData](domain.StatusInsufficientData, msgNoMeals)
	}

	daily := map[string]float64{}
	frequency := map[string]int{}
	for _, m := range meals {
		daily[m.Timestamp.UTC().Format("2006-01-02")] += m.TotalCalories
		frequency[strings.ToLower(m.MealType)]++
	}

	total := 0.0
	for _, c := range daily {
		total += c
	}
	avg := total / float64(len(daily))

	return domain.Success(domain.NutritionData{
		AverageDailyCalories: round(avg, 1),
		DaysTracked:          len(daily),
		MealFrequency:        frequency,
		Insights:             nutritionInsights(avg, frequency, len(meals), len(daily)),
	})
}

func nutritionInsights(avgCalories float64, frequency map[string]int, totalMeals, days int) []string {
	insights := []string{}
	if avgCalories < 1200 {
		insights = append(insights, "Your average calorie intake appears to be quite low. Ensure you're getting adequate nutrition.")
	} else if avgCalories > 2500 {
		insights = append(insights, "Your average calorie intake is relatively high. Consider reviewing portion sizes if weight management is a goal.")
	}

	expectedBreakfasts := float64(totalMeals) / 3
	if days >= 3 && expectedBreakfasts > 0 && float64(frequency[domain.MealBreakfast])/expectedBreakfasts < 0.7 {
		insights = append(insights, "You appear to skip breakfast frequently. Consider adding a nutritious breakfast to start your day.")
	}
	if frequency["snack"] > days*2 {
		insights = append(insights, "You log frequent snacks. Consider the nutritional content of snacks and whether they're supporting your health goals.")
	}
	return insights
}

type symptomTally struct {
	name     string
	count    int
	severity int
}

func (t symptomTally) avg() float64 {
	if t.count == 0 {
		return 0
	}
	return float64(t.severity) / float64(t.count)
}

// tallySymptoms counts each normalised symptom name with the severity of the
// log it appeared in.
func tallySymptoms(logs []domain.SymptomLog) []symptomTally {
	index := map[string]int{}
	var tallies []symptomTally
	for _, log := range logs {
		for _, raw := range log.Symptoms {
			name := normalizeSymptom(raw)
			if name == "" {
				continue
			}
			i, ok := index[name]
			if !ok {
				i = len(tallies)
				index[name] = i
				tallies = append(tallies, symptomTally{name: name})
			}
			tallies[i].count++
			tallies[i].severity += log.Severity
		}
	}
	return tallies
}

func normalizeSymptom(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func symptomPatterns(logs []domain.SymptomLog) domain.SymptomPatterns {
	if len(logs) == 0 {
		return domain.Failure[domain.SymptomPatternData](domain.StatusInsufficientData, msgNoSymptoms)
	}

	tallies := tallySymptoms(logs)
	sort.SliceStable(tallies, func(i, j int) bool {
		if tallies[i].count != tallies[j].count {
			return tallies[i].count > tallies[j].count
		}
		return tallies[i].avg() > tallies[j].avg()
	})

	top := tallies
	if len(top) > topSymptoms {
		top = top[:topSymptoms]
	}
	frequency := make(map[string]int, len(top))
	severity := make(map[string]float64, len(top))
	for _, t := range top {
		frequency[t.name] = t.count
		severity[t.name] = round(t.avg(), 1)
	}

	insights := []string{}
	if len(top) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Your most frequently reported symptom is '%s' with an average severity of %s/10.",
			top[0].name, formatOneDecimal(top[0].avg())))
	}
	var severe []string
	for _, t := range tallies {
		if t.avg() >= 7 && t.count >= 2 {
			severe = append(severe, t.name)
		}
	}
	if len(severe) > 0 {
		insights = append(insights, "The following symptoms consistently show high severity and may need attention: "+strings.Join(severe, ", "))
	}

	return domain.Success(domain.SymptomPatternData{
		TotalLogs:        len(logs),
		UniqueSymptoms:   len(tallies),
		SymptomFrequency: frequency,
		AvgSeverity:      severity,
		Insights:         insights,
	})
}

func reportRecommendations(weight *domain.WeightTrend, meals []domain.MealLog, symptoms []domain.SymptomLog) []string {
	recs := []string{}

	if weight != nil && weight.OK() {
		change := weight.Data.TotalChangeKG
		if math.Abs(change) > 2 {
			if change > 0 {
				recs = append(recs, "Consider consulting with a nutritionist about your recent weight gain to ensure it aligns with your health goals.")
			} else {
				recs = append(recs, "Your recent weight loss might benefit from professional guidance to ensure it's happening at a healthy rate.")
			}
		}
	}

	highSeverity := 0
	for _, s := range symptoms {
		if s.Severity >= 8 {
			highSeverity++
		}
	}
	if highSeverity >= 2 {
		recs = append(recs, "You've reported multiple high-severity symptoms recently. Consider scheduling a check-up with your healthcare provider.")
	}

	lateMeals := 0
	for _, m := range meals {
		if m.Timestamp.UTC().Hour() >= 22 {
			lateMeals++
		}
	}
	if lateMeals >= 3 {
		recs = append(recs, "Consider avoiding late-night meals as they might affect your sleep quality and digestion.")
	}

	if len(recs) == 0 {
		recs = append(recs, generalAdvice)
	}
	return recs
}
