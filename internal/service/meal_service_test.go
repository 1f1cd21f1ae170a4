package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/healthsync/healthsync/internal/domain"
)

func newTestMealService() (*mealService, *MockMealLogRepository, *MockSymptomLogRepository, uuid.UUID) {
	users := NewMockUserRepository()
	userID := users.addUser("Ada")
	meals := NewMockMealLogRepository()
	symptoms := NewMockSymptomLogRepository()
	svc := NewMealService(meals, symptoms, users).(*mealService)
	svc.now = func() time.Time { return fixedNow }
	return svc, meals, symptoms, userID
}

func TestMealService_Create(t *testing.T) {
	svc, repo, _, userID := newTestMealService()

	meal, err := svc.Create(context.Background(), userID, &domain.CreateMealLogRequest{
		MealType: "lunch",
		Foods: []domain.FoodItem{
			{Name: "Rice", Calories: 200},
			{Name: "Chicken", Calories: 250.5},
		},
		SymptomsAfter: []string{" Bloating "},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meal.TotalCalories != 450.5 {
		t.Errorf("expected 450.5 kcal, got %v", meal.TotalCalories)
	}
	if len(meal.SymptomsAfter) != 1 || meal.SymptomsAfter[0] != "bloating" {
		t.Errorf("expected normalised symptoms, got %v", meal.SymptomsAfter)
	}
	if len(repo.meals) != 1 {
		t.Errorf("expected 1 stored meal, got %d", len(repo.meals))
	}

	if _, err := svc.Create(context.Background(), uuid.New(), &domain.CreateMealLogRequest{MealType: "lunch"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMealService_Correlations(t *testing.T) {
	svc, meals, symptoms, userID := newTestMealService()
	ctx := context.Background()

	got, err := svc.Correlations(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusInsufficientData || got.Message != msgNoCorrelationData {
		t.Fatalf("expected insufficient data, got %+v", got)
	}

	// milk is followed by bloating within a few hours on 5 of 6 days,
	// bread on 2 of 6.
	for d := 6; d >= 1; d-- {
		at := daysAgo(d)
		foods := []string{"Milk"}
		if d <= 2 {
			foods = append(foods, "bread")
		}
		meals.meals = append(meals.meals, meal(userID, at, "breakfast", 300, foods...))
		if d != 6 {
			symptoms.logs = append(symptoms.logs, symptomLog(userID, at.Add(2*time.Hour), 4, "bloating"))
		}
	}
	// outside the 24 hour window
	symptoms.logs = append(symptoms.logs, symptomLog(userID, daysAgo(6).Add(-time.Hour), 4, "headache"))

	got, err = svc.Correlations(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.OK() {
		t.Fatalf("expected success, got %s", got.Status)
	}

	corrs := got.Data.Correlations
	if len(corrs) != 2 {
		t.Fatalf("expected 2 correlations, got %+v", corrs)
	}
	if corrs[0].Food != "bread" || corrs[0].CorrelationPercentage != 100 || corrs[0].Confidence != domain.ConfidenceLow {
		t.Errorf("unexpected first correlation %+v", corrs[0])
	}
	if corrs[1].Food != "milk" || corrs[1].Occurrences != 5 || corrs[1].CorrelationPercentage != 83.3 || corrs[1].Confidence != domain.ConfidenceHigh {
		t.Errorf("unexpected second correlation %+v", corrs[1])
	}

	want := []string{
		"Consider avoiding milk as it strongly correlates with bloating (83.3% of the time).",
		eliminationAdvice,
	}
	recs := got.Data.Recommendations
	if len(recs) != len(want) || recs[0] != want[0] || recs[1] != want[1] {
		t.Errorf("expected %v, got %v", want, recs)
	}
}

func TestMealService_NutritionSummary(t *testing.T) {
	svc, meals, _, userID := newTestMealService()
	ctx := context.Background()

	got, err := svc.NutritionSummary(ctx, userID, NutritionWindowDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusInsufficientData || got.Message != msgNoRecentMeals {
		t.Fatalf("expected insufficient data, got %+v", got)
	}

	withSymptoms := func(m domain.MealLog) domain.MealLog {
		m.SymptomsAfter = []string{"bloating"}
		return m
	}
	meals.meals = append(meals.meals,
		meal(userID, daysAgo(1), "breakfast", 500, "Oatmeal", "banana"),
		withSymptoms(meal(userID, daysAgo(1).Add(2*time.Hour), "lunch", 400, "rice")),
		meal(userID, daysAgo(2), "dinner", 300, "rice "),
		withSymptoms(meal(userID, daysAgo(2).Add(time.Hour), "snack", 100, "apple")),
		meal(userID, daysAgo(10), "dinner", 5000, "cake"),
	)

	got, err = svc.NutritionSummary(ctx, userID, NutritionWindowDays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.OK() {
		t.Fatalf("expected success, got %s", got.Status)
	}

	data := got.Data
	if data.TotalMeals != 4 || data.TotalCalories != 1300 || data.DaysTracked != 2 || data.AverageDailyCalories != 650 {
		t.Errorf("unexpected totals %+v", data)
	}
	if data.MealsWithSymptoms != 2 {
		t.Errorf("meals with symptoms = %d, want 2", data.MealsWithSymptoms)
	}
	wantFoods := []domain.FoodCount{{Food: "rice", Count: 2}, {Food: "apple", Count: 1}, {Food: "banana", Count: 1}, {Food: "oatmeal", Count: 1}}
	if len(data.MostEatenFoods) != len(wantFoods) {
		t.Fatalf("most eaten = %+v", data.MostEatenFoods)
	}
	for i, w := range wantFoods {
		if data.MostEatenFoods[i] != w {
			t.Errorf("food %d = %+v, want %+v", i, data.MostEatenFoods[i], w)
		}
	}
	wantRecs := []string{
		"Consider increasing daily calorie intake",
		"Many meals are causing symptoms. Consider consulting a nutritionist.",
	}
	if len(data.Recommendations) != 2 || data.Recommendations[0] != wantRecs[0] || data.Recommendations[1] != wantRecs[1] {
		t.Errorf("recommendations = %v", data.Recommendations)
	}

	if _, err := svc.NutritionSummary(ctx, userID, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.NutritionSummary(ctx, uuid.New(), 7); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSummarizeMeals_TopFoodsCapped(t *testing.T) {
	userID := uuid.New()
	var meals []domain.MealLog
	for i, food := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		meals = append(meals, meal(userID, daysAgo(1).Add(time.Duration(i)*time.Minute), "snack", 3500, food))
	}

	got := summarizeMeals(meals)
	if !got.OK() {
		t.Fatalf("expected success, got %s", got.Status)
	}
	if len(got.Data.MostEatenFoods) != maxMostEatenFoods {
		t.Errorf("most eaten = %d foods, want %d", len(got.Data.MostEatenFoods), maxMostEatenFoods)
	}
	if len(got.Data.Recommendations) != 1 || got.Data.Recommendations[0] != "Consider reducing daily calorie intake" {
		t.Errorf("recommendations = %v", got.Data.Recommendations)
	}
}

func TestCorrelate_MealCountsOncePerSymptom(t *testing.T) {
	userID := uuid.New()
	var meals []domain.MealLog
	var symptoms []domain.SymptomLog
	for d := 2; d >= 1; d-- {
		at := daysAgo(d)
		meals = append(meals, meal(userID, at, "lunch", 300, "Milk", "milk"))
		symptoms = append(symptoms,
			symptomLog(userID, at.Add(2*time.Hour), 4, "nausea"),
			symptomLog(userID, at.Add(6*time.Hour), 5, "nausea", "Nausea"),
		)
	}

	got := correlate(meals, symptoms)
	if !got.OK() || len(got.Data.Correlations) != 1 {
		t.Fatalf("expected one correlation, got %+v", got)
	}
	c := got.Data.Correlations[0]
	if c.Occurrences != 2 || c.CorrelationPercentage != 100 {
		t.Errorf("expected 2 occurrences at 100%%, got %+v", c)
	}

	body, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded domain.CorrelationReport
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.OK() {
		t.Errorf("report did not survive decoding: %s %q", decoded.Status, decoded.Message)
	}
}

func TestCorrelate_Window(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		offset  time.Duration
		wantHit bool
	}{
		{name: "exactly 24 hours later", offset: 24 * time.Hour, wantHit: true},
		{name: "just past 24 hours", offset: 24*time.Hour + time.Second},
		{name: "same instant as the meal", offset: 0},
		{name: "before the meal", offset: -time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meals []domain.MealLog
			var symptoms []domain.SymptomLog
			for _, d := range []int{10, 5} {
				at := daysAgo(d)
				meals = append(meals, meal(userID, at, "dinner", 400, "bread"))
				symptoms = append(symptoms, symptomLog(userID, at.Add(tt.offset), 3, "bloating"))
			}

			got := correlate(meals, symptoms)
			hit := got.OK() && len(got.Data.Correlations) == 1
			if hit != tt.wantHit {
				t.Errorf("correlation found = %v, want %v (%+v)", hit, tt.wantHit, got)
			}
		})
	}
}

func TestCorrelate_PercentageBounded(t *testing.T) {
	userID := uuid.New()
	var meals []domain.MealLog
	var symptoms []domain.SymptomLog
	// meals every 6 hours with a symptom after each, so every symptom
	// falls in the window of several meals
	for i := 0; i < 20; i++ {
		at := daysAgo(6).Add(time.Duration(i) * 6 * time.Hour)
		meals = append(meals, meal(userID, at, "snack", 100, "apple", "cheese"))
		symptoms = append(symptoms, symptomLog(userID, at.Add(time.Hour), 2, "bloating", "nausea"))
	}

	got := correlate(meals, symptoms)
	if !got.OK() {
		t.Fatalf("expected success, got %s", got.Status)
	}
	for _, c := range got.Data.Correlations {
		if c.CorrelationPercentage < 0 || c.CorrelationPercentage > 100 {
			t.Errorf("%s/%s percentage %v out of range", c.Food, c.Symptom, c.CorrelationPercentage)
		}
		if c.Occurrences > 20 {
			t.Errorf("%s/%s occurrences %d exceed meal count", c.Food, c.Symptom, c.Occurrences)
		}
	}
}

func TestCorrelationConfidence(t *testing.T) {
	tests := []struct {
		count int
		pct   float64
		want  string
	}{
		{2, 100, domain.ConfidenceLow},
		{3, 60, domain.ConfidenceMedium},
		{4, 80, domain.ConfidenceMedium},
		{5, 75, domain.ConfidenceHigh},
		{5, 40, domain.ConfidenceLow},
	}
	for _, tt := range tests {
		if got := correlationConfidence(tt.count, tt.pct); got != tt.want {
			t.Errorf("correlationConfidence(%d, %v) = %s, want %s", tt.count, tt.pct, got, tt.want)
		}
	}
}

func TestAvoidanceRecommendations_Medium(t *testing.T) {
	got := avoidanceRecommendations([]domain.Correlation{
		{Food: "cheese", Symptom: "bloating", Confidence: domain.ConfidenceMedium, CorrelationPercentage: 60, Occurrences: 3},
		{Food: "apple", Symptom: "nausea", Confidence: domain.ConfidenceLow, CorrelationPercentage: 100, Occurrences: 2},
	})
	want := "Consider temporarily eliminating cheese to see if bloating improves (correlation: 60.0%)."
	if len(got) != 2 || got[0] != want || got[1] != eliminationAdvice {
		t.Errorf("unexpected recommendations %v", got)
	}
}
