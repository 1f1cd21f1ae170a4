package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/healthsync/healthsync/internal/domain"
)

type reportSection struct {
	ID    string
	Title string
	Body  template.HTML
}

type reportInfo struct {
	Name            string
	Age             string
	Gender          string
	HeightCM        string
	CurrentWeightKG string
}

type reportView struct {
	Info            reportInfo
	Summary         domain.ReportSummary
	Metrics         string
	Sections        []reportSection
	Recommendations []string
}

// Report composes a health report. Sections appear in a fixed order and
// absent sections leave no gap. Nutrition and symptom sections carry their
// own status and are shown only when that status is success. The chart of
// the weight section, if any, becomes the report chart.
func Report(a domain.HealthReport) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}
	d := a.Data

	view := reportView{
		Info:            infoView(d.UserInfo),
		Summary:         d.Summary,
		Metrics:         metricsList(d.Summary.MetricsTracked),
		Recommendations: d.Recommendations,
	}

	var chart *ChartSpec
	if d.WeightAnalysis != nil {
		out, err := Weight(*d.WeightAnalysis)
		if err != nil {
			return Output{}, err
		}
		chart = out.Chart
		view.Sections = append(view.Sections, reportSection{ID: "weight", Title: "Weight Analysis", Body: out.HTML})
	}
	if d.BloodPressureAnalysis != nil {
		out, err := BloodPressure(*d.BloodPressureAnalysis)
		if err != nil {
			return Output{}, err
		}
		view.Sections = append(view.Sections, reportSection{ID: "blood-pressure", Title: "Blood Pressure Analysis", Body: out.HTML})
	}
	if d.NutritionSummary != nil && d.NutritionSummary.OK() {
		out, err := Nutrition(*d.NutritionSummary)
		if err != nil {
			return Output{}, err
		}
		view.Sections = append(view.Sections, reportSection{ID: "nutrition", Title: "Nutrition Summary", Body: out.HTML})
	}
	if d.SymptomPatterns != nil && d.SymptomPatterns.OK() {
		out, err := SymptomPatterns(*d.SymptomPatterns)
		if err != nil {
			return Output{}, err
		}
		view.Sections = append(view.Sections, reportSection{ID: "symptoms", Title: "Symptom Patterns", Body: out.HTML})
	}

	html, err := execute("report", view)
	if err != nil {
		return Output{}, err
	}
	return Output{HTML: html, Chart: chart}, nil
}

func infoView(u domain.UserInfo) reportInfo {
	info := reportInfo{Name: u.Name, Gender: u.Gender}
	if u.Age != nil {
		info.Age = fmt.Sprintf("%d", *u.Age)
	}
	if u.HeightCM != nil {
		info.HeightCM = fmt.Sprintf("%.1f cm", *u.HeightCM)
	}
	if u.CurrentWeightKG != nil {
		info.CurrentWeightKG = fmt.Sprintf("%.1f kg", *u.CurrentWeightKG)
	}
	return info
}

func metricsList(metrics []string) string {
	labels := make([]string, 0, len(metrics))
	for _, m := range metrics {
		labels = append(labels, GoalTypeLabel(m))
	}
	return strings.Join(labels, ", ")
}
