package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsync/healthsync/internal/domain"
)

func weightData() domain.WeightTrendData {
	return domain.WeightTrendData{
		FirstMeasurement:   domain.Measurement{Date: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), WeightKG: 80},
		LatestMeasurement:  domain.Measurement{Date: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), WeightKG: 78.5},
		TotalChangeKG:      -1.5,
		PercentChange:      -1.875,
		WeeklyChangeRateKG: -0.75,
		Trend:              "losing",
		Insights:           []string{"You've lost 1.5 kg over this period."},
	}
}

func TestFailureRendersOnlyMessage(t *testing.T) {
	const msg = "Need at least two weight measurements to analyze trends"

	outputs := map[string]func() (Output, error){
		"weight": func() (Output, error) {
			return Weight(domain.Failure[domain.WeightTrendData](domain.StatusInsufficientData, msg))
		},
		"blood pressure": func() (Output, error) {
			return BloodPressure(domain.Failure[domain.BloodPressureTrendData](domain.StatusInsufficientData, msg))
		},
		"goal": func() (Output, error) {
			return GoalProgress(domain.Failure[domain.GoalProgressData](domain.StatusInsufficientData, msg))
		},
		"correlations": func() (Output, error) {
			return Correlations(domain.Failure[domain.CorrelationReportData](domain.StatusError, msg))
		},
		"predictions": func() (Output, error) {
			return Predictions(domain.Failure[domain.PredictionReportData](domain.StatusInsufficientData, msg))
		},
		"report": func() (Output, error) {
			return Report(domain.Failure[domain.HealthReportData](domain.StatusError, msg))
		},
	}

	for name, render := range outputs {
		t.Run(name, func(t *testing.T) {
			out, err := render()
			require.NoError(t, err)

			html := string(out.HTML)
			assert.Contains(t, html, msg)
			assert.Nil(t, out.Chart)
			assert.NotContains(t, html, "Insights")
			assert.NotContains(t, html, " kg")
			assert.NotContains(t, html, "mmHg")
			assert.NotContains(t, html, "%")
		})
	}
}

func TestFailureWithoutMessageFallsBack(t *testing.T) {
	outputs := map[string]func() (Output, error){
		"weight": func() (Output, error) {
			return Weight(domain.Failure[domain.WeightTrendData](domain.StatusError, ""))
		},
		"correlations": func() (Output, error) {
			return Correlations(domain.Failure[domain.CorrelationReportData](domain.StatusInsufficientData, ""))
		},
		"no symptoms": func() (Output, error) {
			return SymptomAnalysis(domain.Failure[domain.SymptomAnalysisData](domain.StatusNoSymptoms, ""))
		},
		"zero value": func() (Output, error) {
			return BloodPressure(domain.BloodPressureTrend{})
		},
	}

	for name, render := range outputs {
		t.Run(name, func(t *testing.T) {
			out, err := render()
			require.NoError(t, err)
			assert.Contains(t, string(out.HTML), domain.MsgNoData)
			assert.Nil(t, out.Chart)
		})
	}
}

func TestFailureMessageIsEscaped(t *testing.T) {
	out, err := Weight(domain.Failure[domain.WeightTrendData](domain.StatusError, "<script>x</script>"))
	require.NoError(t, err)
	assert.NotContains(t, string(out.HTML), "<script>")
	assert.Contains(t, string(out.HTML), "&lt;script&gt;")
}

func TestWeight_Success(t *testing.T) {
	out, err := Weight(domain.Success(weightData()))
	require.NoError(t, err)

	html := string(out.HTML)
	assert.Contains(t, html, "80.0 kg")
	assert.Contains(t, html, "78.5 kg")
	assert.Contains(t, html, "-1.5 kg")
	assert.Contains(t, html, "-1.9%")
	assert.Contains(t, html, "<strong>Losing</strong>")
	assert.Contains(t, html, "<h4>Insights</h4>")
	assert.Contains(t, html, "You&#39;ve lost 1.5 kg over this period.")

	require.NotNil(t, out.Chart)
	assert.Equal(t, ChartLine, out.Chart.Kind)
	assert.Equal(t, []string{"Jan 1, 2024", "Jan 15, 2024"}, out.Chart.Categories)
	require.Len(t, out.Chart.Series, 1)
	assert.Equal(t, []float64{80, 78.5}, out.Chart.Series[0].Values)
}

func TestWeight_SameDayIsSinglePoint(t *testing.T) {
	d := weightData()
	d.FirstMeasurement.Date = time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC)
	d.LatestMeasurement.Date = time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC)

	out, err := Weight(domain.Success(d))
	require.NoError(t, err)
	require.NotNil(t, out.Chart)
	assert.Equal(t, 1, out.Chart.Points())
	assert.Equal(t, []float64{78.5}, out.Chart.Series[0].Values)

	var buf bytes.Buffer
	require.NoError(t, out.Chart.Render(&buf))
	assert.NotEmpty(t, buf.String())
}

func TestWeight_NoInsightsOmitsHeading(t *testing.T) {
	d := weightData()
	d.Insights = nil

	out, err := Weight(domain.Success(d))
	require.NoError(t, err)
	assert.NotContains(t, string(out.HTML), "Insights")
}

func TestBloodPressure_Success(t *testing.T) {
	out, err := BloodPressure(domain.Success(domain.BloodPressureTrendData{
		AverageSystolic:  132.4,
		AverageDiastolic: 84.1,
		MinSystolic:      120,
		MinDiastolic:     78,
		MaxSystolic:      145,
		MaxDiastolic:     92,
		Category:         domain.BPHypertensionStage1,
	}))
	require.NoError(t, err)

	html := string(out.HTML)
	assert.Contains(t, html, "132.4/84.1 mmHg")
	assert.Contains(t, html, "Hypertension Stage 1")
	assert.NotContains(t, html, "Insights")

	require.NotNil(t, out.Chart)
	assert.Equal(t, ChartBar, out.Chart.Kind)
	assert.Equal(t, []string{"Systolic", "Diastolic"}, out.Chart.Categories)
	require.Len(t, out.Chart.Series, 3)
	assert.Equal(t, "Average", out.Chart.Series[0].Name)
	assert.Equal(t, []float64{145, 92}, out.Chart.Series[2].Values)

	var buf bytes.Buffer
	require.NoError(t, out.Chart.Render(&buf))
}

func TestBloodPressure_UnknownCategoryPassesThrough(t *testing.T) {
	out, err := BloodPressure(domain.Success(domain.BloodPressureTrendData{
		AverageSystolic: 110, AverageDiastolic: 70, Category: "foo",
	}))
	require.NoError(t, err)
	assert.Contains(t, string(out.HTML), "<strong>foo</strong>")
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		want     string
	}{
		{name: "halfway", progress: 50, want: "50.0%"},
		{name: "over target", progress: 130, want: "100.0%"},
		{name: "negative", progress: -20, want: "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := GoalProgress(domain.Success(domain.GoalProgressData{
				GoalType:           domain.GoalWeight,
				TargetValue:        70,
				InitialValue:       80,
				CurrentValue:       75,
				ProgressPercentage: tt.progress,
			}))
			require.NoError(t, err)

			html := string(out.HTML)
			assert.Contains(t, html, tt.want)
			assert.Equal(t, 1, strings.Count(html, "%"))
			assert.Contains(t, html, "Weight Goal")
			assert.Contains(t, html, "70.0 kg")
			assert.Nil(t, out.Chart)
		})
	}
}

func TestCorrelations(t *testing.T) {
	t.Run("empty list renders one message", func(t *testing.T) {
		out, err := Correlations(domain.Success(domain.CorrelationReportData{}))
		require.NoError(t, err)
		html := string(out.HTML)
		assert.Contains(t, html, MsgNoCorrelations)
		assert.NotContains(t, html, "<tr")
	})

	t.Run("rows keep source order", func(t *testing.T) {
		out, err := Correlations(domain.Success(domain.CorrelationReportData{
			Correlations: []domain.Correlation{
				{Food: "milk", Symptom: "bloating", Confidence: "high", CorrelationPercentage: 80, Occurrences: 8},
				{Food: "bread", Symptom: "nausea", Confidence: "medium", CorrelationPercentage: 55.5, Occurrences: 3},
			},
			Recommendations: []string{"Consider avoiding milk"},
		}))
		require.NoError(t, err)

		html := string(out.HTML)
		assert.Equal(t, 2, strings.Count(html, "<tr class="))
		assert.Less(t, strings.Index(html, "milk"), strings.Index(html, "bread"))
		assert.Contains(t, html, "🔴 High")
		assert.Contains(t, html, "🟡 Medium")
		assert.Contains(t, html, "55.5%")
		assert.Contains(t, html, "Consider avoiding milk")
	})
}

func TestPredictions(t *testing.T) {
	out, err := Predictions(domain.Success(domain.PredictionReportData{
		Predictions: []domain.Prediction{
			{Date: "2024-01-16", PredictedClassification: "flu-like", Confidence: 0.724, PossibleSymptoms: []string{"fever"}},
			{Date: "2024-01-17", PredictedClassification: "food-intolerance", Confidence: 0.5},
			{Date: "2024-01-18", PredictedClassification: "none", Confidence: 0.9},
			{Date: "2024-01-19", PredictedClassification: "mystery", Confidence: 0.1},
		},
	}))
	require.NoError(t, err)

	html := string(out.HTML)
	assert.Contains(t, html, "prediction-warning")
	assert.Contains(t, html, "prediction-caution")
	assert.Equal(t, 2, strings.Count(html, "prediction-normal"))
	assert.Contains(t, html, "72%")
	assert.Contains(t, html, "90%")
	assert.Less(t, strings.Index(html, "2024-01-16"), strings.Index(html, "2024-01-19"))

	empty, err := Predictions(domain.Success(domain.PredictionReportData{}))
	require.NoError(t, err)
	assert.Contains(t, string(empty.HTML), MsgNoPredictions)
}

func TestSymptomAnalysis(t *testing.T) {
	t.Run("no symptoms is muted", func(t *testing.T) {
		out, err := SymptomAnalysis(domain.Failure[domain.SymptomAnalysisData](domain.StatusNoSymptoms, "No symptoms logged yet"))
		require.NoError(t, err)
		assert.Contains(t, string(out.HTML), `class="text-muted"`)
		assert.Contains(t, string(out.HTML), "No symptoms logged yet")
	})

	t.Run("lists only when non-empty", func(t *testing.T) {
		out, err := SymptomAnalysis(domain.Success(domain.SymptomAnalysisData{
			TotalLogs:  3,
			MostCommon: []domain.SymptomStat{{Symptom: "headache", Count: 3, AvgSeverity: 5}},
		}))
		require.NoError(t, err)
		html := string(out.HTML)
		assert.Contains(t, html, "Most common symptoms")
		assert.Contains(t, html, "headache")
		assert.NotContains(t, html, "Most severe symptoms")
		assert.NotContains(t, html, "Insights")
	})
}

func TestNutrition(t *testing.T) {
	out, err := Nutrition(domain.Success(domain.NutritionData{
		AverageDailyCalories: 1850.4,
		DaysTracked:          5,
		MealFrequency:        map[string]int{"snack": 2, "breakfast": 5, "brunch": 1},
	}))
	require.NoError(t, err)

	html := string(out.HTML)
	assert.Contains(t, html, "1850 kcal")
	assert.Less(t, strings.Index(html, "Breakfast"), strings.Index(html, "Snack"))
	assert.Less(t, strings.Index(html, "Snack"), strings.Index(html, "Brunch"))
}
