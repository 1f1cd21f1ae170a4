package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/domain"
)

func newTestSymptomService() (*symptomService, *MockSymptomLogRepository, *MockAlertRepository, uuid.UUID) {
	users := NewMockUserRepository()
	userID := users.addUser("Ada")
	repo := NewMockSymptomLogRepository()
	alerts := NewMockAlertRepository()
	svc := NewSymptomService(repo, alerts, users, zap.NewNop()).(*symptomService)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo, alerts, userID
}

func TestClassifySymptoms(t *testing.T) {
	tests := []struct {
		name     string
		symptoms []string
		want     string
	}{
		{"flu majority", []string{"fever", "cough", "nausea"}, domain.ClassificationFluLike},
		{"food majority", []string{"nausea", "bloating"}, domain.ClassificationFoodIntolerance},
		{"tie with fever", []string{"fever", "nausea"}, domain.ClassificationFluLike},
		{"tie without fever", []string{"headache", "bloating"}, domain.ClassificationFoodIntolerance},
		{"unrelated", []string{"itchy eyes"}, domain.ClassificationNone},
		{"case and spacing", []string{"  Body Aches ", "COUGH"}, domain.ClassificationFluLike},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySymptoms(tt.symptoms); got != tt.want {
				t.Errorf("ClassifySymptoms(%v) = %s, want %s", tt.symptoms, got, tt.want)
			}
		})
	}
}

func TestNeedsMedicalAttention(t *testing.T) {
	tests := []struct {
		symptoms []string
		severity int
		want     bool
	}{
		{[]string{"headache"}, 8, true},
		{[]string{"headache"}, 7, false},
		{[]string{"Fever"}, 2, true},
		{[]string{"severe"}, 1, true},
	}
	for _, tt := range tests {
		if got := NeedsMedicalAttention(tt.symptoms, tt.severity); got != tt.want {
			t.Errorf("NeedsMedicalAttention(%v, %d) = %v, want %v", tt.symptoms, tt.severity, got, tt.want)
		}
	}
}

func TestSymptomService_Create(t *testing.T) {
	svc, repo, alerts, userID := newTestSymptomService()

	log, err := svc.Create(context.Background(), userID, &domain.CreateSymptomLogRequest{
		Symptoms: []string{"Fever", "cough"},
		Severity: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Classification != domain.ClassificationFluLike {
		t.Errorf("expected flu-like, got %s", log.Classification)
	}
	if !log.NeedsMedicalAttention {
		t.Error("expected fever to need attention")
	}
	if len(repo.logs) != 1 {
		t.Errorf("expected 1 stored log, got %d", len(repo.logs))
	}
	if len(alerts.alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts.alerts))
	}
	a := alerts.alerts[0]
	if a.AlertType != domain.AlertSevereSymptoms || a.Severity != domain.SeverityHigh {
		t.Errorf("unexpected alert %+v", a)
	}
	if a.Message != "Severe symptoms detected: fever, cough. Please consult a healthcare provider." {
		t.Errorf("unexpected alert message %q", a.Message)
	}
}

func TestSymptomService_Create_AlertFailureDoesNotFail(t *testing.T) {
	svc, repo, alerts, userID := newTestSymptomService()
	alerts.SetError(errors.New("alerts table locked"))

	if _, err := svc.Create(context.Background(), userID, &domain.CreateSymptomLogRequest{
		Symptoms: []string{"headache"},
		Severity: 9,
	}); err != nil {
		t.Fatalf("expected log to be stored despite alert failure, got %v", err)
	}
	if len(repo.logs) != 1 {
		t.Errorf("expected 1 stored log, got %d", len(repo.logs))
	}
}

func TestSymptomService_Create_Errors(t *testing.T) {
	svc, _, _, userID := newTestSymptomService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, uuid.New(), &domain.CreateSymptomLogRequest{Symptoms: []string{"cough"}, Severity: 2}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, userID, &domain.CreateSymptomLogRequest{Symptoms: []string{"  "}, Severity: 2}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSymptomService_Analyze(t *testing.T) {
	svc, repo, _, userID := newTestSymptomService()
	ctx := context.Background()

	got, err := svc.Analyze(ctx, userID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusNoSymptoms {
		t.Fatalf("expected no_symptoms, got %s", got.Status)
	}

	// 2024-03-11 is a Monday
	repo.logs = append(repo.logs,
		symptomLog(userID, daysAgo(4), 2, "nausea", "bloating"),
		symptomLog(userID, daysAgo(3), 3, "nausea"),
		symptomLog(userID, daysAgo(2), 7, "fever", "cough"),
		symptomLog(userID, daysAgo(1), 8, "fever", "headache"),
	)

	got, err = svc.Analyze(ctx, userID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.OK() {
		t.Fatalf("expected success, got %s", got.Status)
	}
	d := got.Data
	if d.TotalLogs != 4 {
		t.Errorf("expected 4 logs, got %d", d.TotalLogs)
	}
	if d.SymptomFrequency["nausea"] != 2 || d.SymptomFrequency["fever"] != 2 {
		t.Errorf("unexpected frequency %v", d.SymptomFrequency)
	}
	if d.SeverityTrend == nil || d.SeverityTrend.Trend != "increasing" || d.SeverityTrend.Change != 5 {
		t.Errorf("unexpected severity trend %+v", d.SeverityTrend)
	}
	if p := d.DayOfWeekPattern["Monday"]; p.Count != 1 || p.AvgSeverity != 2 {
		t.Errorf("unexpected Monday pattern %+v", p)
	}
	if d.MostCommon[0].Symptom != "fever" || d.MostCommon[1].Symptom != "nausea" {
		t.Errorf("unexpected most common %v", d.MostCommon)
	}
	if d.MostSevere[0].Symptom != "headache" || d.MostSevere[0].AvgSeverity != 8 {
		t.Errorf("unexpected most severe %v", d.MostSevere)
	}
	wantRecs := []string{"Seek medical attention for severe symptoms"}
	if len(d.Recommendations) != 1 || d.Recommendations[0] != wantRecs[0] {
		t.Errorf("expected %v, got %v", wantRecs, d.Recommendations)
	}
	if len(d.Insights) != 2 || d.Insights[1] != "Your symptom severity has been increasing recently." {
		t.Errorf("unexpected insights %v", d.Insights)
	}
}

func TestSymptomRecommendations(t *testing.T) {
	id := uuid.New()
	var flu, food []domain.SymptomLog
	for i := 0; i < 3; i++ {
		flu = append(flu, symptomLog(id, daysAgo(i), 3, "fever", "cough"))
	}
	for i := 0; i < 4; i++ {
		food = append(food, symptomLog(id, daysAgo(i), 3, "nausea"))
	}

	if got := symptomRecommendations(flu); len(got) != 1 || got[0] != "Consider consulting a doctor for flu-like symptoms" {
		t.Errorf("unexpected flu recommendations %v", got)
	}
	if got := symptomRecommendations(food); len(got) != 1 || got[0] != "Consider keeping a food diary to identify trigger foods" {
		t.Errorf("unexpected food recommendations %v", got)
	}
}

func TestSymptomService_Predict(t *testing.T) {
	svc, repo, _, userID := newTestSymptomService()
	ctx := context.Background()

	got, err := svc.Predict(ctx, userID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.StatusInsufficientData {
		t.Fatalf("expected insufficient data, got %s", got.Status)
	}

	repo.logs = append(repo.logs,
		symptomLog(userID, daysAgo(3), 4, "fever"),
		symptomLog(userID, daysAgo(2), 4, "cough"),
		symptomLog(userID, daysAgo(1), 2, "nausea"),
		symptomLog(userID, daysAgo(1), 2, "headache", "cough"),
	)

	got, err = svc.Predict(ctx, userID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.OK() {
		t.Fatalf("expected success, got %s", got.Status)
	}
	preds := got.Data.Predictions
	if len(preds) != 3 {
		t.Fatalf("expected 3 predictions, got %d", len(preds))
	}
	if preds[0].Date != "2024-03-16" || preds[2].Date != "2024-03-18" {
		t.Errorf("unexpected dates %s..%s", preds[0].Date, preds[2].Date)
	}
	if preds[0].PredictedClassification != domain.ClassificationFluLike {
		t.Errorf("expected flu-like, got %s", preds[0].PredictedClassification)
	}
	if preds[0].Confidence != 0.75 || preds[1].Confidence != 0.71 {
		t.Errorf("unexpected confidences %v, %v", preds[0].Confidence, preds[1].Confidence)
	}
	if len(preds[0].PossibleSymptoms) != 4 {
		t.Errorf("expected 4 possible symptoms, got %v", preds[0].PossibleSymptoms)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("prediction payload should validate: %v", err)
	}
}

func TestSymptomService_Predict_DaysAheadBounds(t *testing.T) {
	svc, _, _, userID := newTestSymptomService()
	for _, n := range []int{0, MaxPredictionDays + 1} {
		if _, err := svc.Predict(context.Background(), userID, n); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("days_ahead=%d: expected ErrInvalidInput, got %v", n, err)
		}
	}
}
