package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsync/healthsync/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func fullReport() domain.HealthReportData {
	weight := domain.Success(weightData())
	bp := domain.Success(domain.BloodPressureTrendData{AverageSystolic: 118, AverageDiastolic: 76, Category: domain.BPNormal})
	nutrition := domain.Success(domain.NutritionData{AverageDailyCalories: 2100, DaysTracked: 7})
	symptoms := domain.Success(domain.SymptomPatternData{
		TotalLogs:        4,
		UniqueSymptoms:   2,
		SymptomFrequency: map[string]int{"headache": 3, "nausea": 1},
		AvgSeverity:      map[string]float64{"headache": 6.3, "nausea": 2},
	})

	return domain.HealthReportData{
		UserInfo: domain.UserInfo{
			Name:            "Ada Lovelace",
			Age:             ptr(36),
			Gender:          "female",
			HeightCM:        ptr(168.0),
			CurrentWeightKG: ptr(78.5),
		},
		Summary: domain.ReportSummary{
			DataPointsCollected: 42,
			DaysTracked:         90,
			MetricsTracked:      []string{"weight", "blood_pressure"},
		},
		WeightAnalysis:        &weight,
		BloodPressureAnalysis: &bp,
		NutritionSummary:      &nutrition,
		SymptomPatterns:       &symptoms,
		Recommendations:       []string{"Keep up with your current health tracking habits"},
	}
}

func TestReport_SectionOrder(t *testing.T) {
	out, err := Report(domain.Success(fullReport()))
	require.NoError(t, err)

	html := string(out.HTML)
	order := []string{
		"report-user", "report-summary", "report-weight", "report-blood-pressure",
		"report-nutrition", "report-symptoms", "report-recommendations",
	}
	last := -1
	for _, id := range order {
		idx := strings.Index(html, id)
		require.NotEqual(t, -1, idx, "missing section %s", id)
		assert.Greater(t, idx, last, "section %s out of order", id)
		last = idx
	}

	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "168.0 cm")
	assert.Contains(t, html, "Weight, Blood Pressure")
	assert.Less(t, strings.Index(html, "headache"), strings.Index(html, "nausea"))
	require.NotNil(t, out.Chart)
	assert.Equal(t, ChartLine, out.Chart.Kind)
}

func TestReport_AbsentSectionsLeaveNoGap(t *testing.T) {
	d := fullReport()
	d.WeightAnalysis = nil
	d.BloodPressureAnalysis = nil
	d.Recommendations = nil
	d.UserInfo.Age = nil
	d.UserInfo.CurrentWeightKG = nil

	out, err := Report(domain.Success(d))
	require.NoError(t, err)

	html := string(out.HTML)
	assert.NotContains(t, html, "report-weight")
	assert.NotContains(t, html, "report-blood-pressure")
	assert.NotContains(t, html, "report-recommendations")
	assert.NotContains(t, html, "Age")
	assert.NotContains(t, html, "Current weight")
	assert.Contains(t, html, "report-nutrition")
	assert.Nil(t, out.Chart)
}

func TestReport_NestedStatusCheckedIndependently(t *testing.T) {
	d := fullReport()
	nutrition := domain.Failure[domain.NutritionData](domain.StatusInsufficientData, "no meals")
	symptoms := domain.Failure[domain.SymptomPatternData](domain.StatusInsufficientData, "no symptoms")
	d.NutritionSummary = &nutrition
	d.SymptomPatterns = &symptoms

	out, err := Report(domain.Success(d))
	require.NoError(t, err)

	html := string(out.HTML)
	assert.NotContains(t, html, "report-nutrition")
	assert.NotContains(t, html, "report-symptoms")
	assert.NotContains(t, html, "no meals")
	assert.Contains(t, html, "report-weight")
}
