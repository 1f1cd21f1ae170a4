package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/healthsync/healthsync/internal/domain"
)

// Weight renders a weight trend with a line chart through the first and
// latest measurements. Measurements on the same day give a single point.
func Weight(a domain.WeightTrend) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}
	d := a.Data

	html, err := execute("weight", d)
	if err != nil {
		return Output{}, err
	}

	first, latest := d.FirstMeasurement, d.LatestMeasurement
	chart := &ChartSpec{Kind: ChartLine, Title: "Weight", Unit: "kg"}
	if sameDay(first, latest) {
		chart.Categories = []string{latest.Date.Format(dateLayout)}
		chart.Series = []Series{{Name: "Weight", Values: []float64{latest.WeightKG}}}
	} else {
		chart.Categories = []string{first.Date.Format(dateLayout), latest.Date.Format(dateLayout)}
		chart.Series = []Series{{Name: "Weight", Values: []float64{first.WeightKG, latest.WeightKG}}}
	}
	return Output{HTML: html, Chart: chart}, nil
}

func sameDay(a, b domain.Measurement) bool {
	ay, am, ad := a.Date.Date()
	by, bm, bd := b.Date.Date()
	return ay == by && am == bm && ad == bd
}

// BloodPressure renders a blood-pressure trend with a grouped bar chart of
// average, min and max for systolic and diastolic.
func BloodPressure(a domain.BloodPressureTrend) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}
	d := a.Data

	html, err := execute("blood-pressure", d)
	if err != nil {
		return Output{}, err
	}
	return Output{
		HTML: html,
		Chart: &ChartSpec{
			Kind:       ChartBar,
			Title:      "Blood Pressure",
			Unit:       "mmHg",
			Categories: []string{"Systolic", "Diastolic"},
			Series: []Series{
				{Name: "Average", Values: []float64{d.AverageSystolic, d.AverageDiastolic}},
				{Name: "Min", Values: []float64{d.MinSystolic, d.MinDiastolic}},
				{Name: "Max", Values: []float64{d.MaxSystolic, d.MaxDiastolic}},
			},
		},
	}, nil
}

type goalView struct {
	Data    *domain.GoalProgressData
	Initial string
	Current string
	Target  string
	Value   string
	Label   string
}

// GoalProgress renders the supplied progress percentage clamped to [0, 100].
func GoalProgress(a domain.GoalProgress) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}
	d := a.Data

	unit := goalUnit(d.GoalType)
	progress := clampPercent(d.ProgressPercentage)
	html, err := execute("goal", goalView{
		Data:    d,
		Initial: unit(d.InitialValue),
		Current: unit(d.CurrentValue),
		Target:  unit(d.TargetValue),
		Value:   fmt.Sprintf("%.1f", progress),
		Label:   fmt.Sprintf("%.1f%%", progress),
	})
	return Output{HTML: html}, err
}

func goalUnit(goalType string) func(float64) string {
	switch goalType {
	case domain.GoalWeight:
		return func(v float64) string { return fmt.Sprintf("%.1f kg", v) }
	case domain.GoalBloodSugar:
		return func(v float64) string { return fmt.Sprintf("%.1f mg/dL", v) }
	case domain.GoalBloodPressure:
		return func(v float64) string { return fmt.Sprintf("%.1f mmHg", v) }
	default:
		return func(v float64) string { return fmt.Sprintf("%.1f", v) }
	}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

const (
	MsgNoCorrelations = "No significant food-symptom correlations found yet. Keep logging meals and symptoms to discover patterns."
	MsgNoPredictions  = "No symptom predictions available yet."
)

// Correlations renders correlation entries as a table in the order given.
func Correlations(a domain.CorrelationReport) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}
	if len(a.Data.Correlations) == 0 {
		return Notice(MsgNoCorrelations)
	}
	html, err := execute("correlations", a.Data)
	return Output{HTML: html}, err
}

type predictionView struct {
	Date       string
	Label      string
	Class      string
	Confidence float64
	Symptoms   []string
}

// PredictionClass maps a predicted classification to its card colour.
func PredictionClass(classification string) string {
	switch classification {
	case domain.ClassificationFluLike:
		return "warning"
	case domain.ClassificationFoodIntolerance:
		return "caution"
	default:
		return "normal"
	}
}

// Predictions renders one card per forecast day.
func Predictions(a domain.PredictionReport) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}
	if len(a.Data.Predictions) == 0 {
		return Notice(MsgNoPredictions)
	}

	views := make([]predictionView, 0, len(a.Data.Predictions))
	for _, p := range a.Data.Predictions {
		label := "No symptoms expected"
		if p.PredictedClassification != "" && p.PredictedClassification != domain.ClassificationNone {
			label = TrendLabel(p.PredictedClassification) + " symptoms"
		}
		views = append(views, predictionView{
			Date:       p.Date,
			Label:      label,
			Class:      PredictionClass(p.PredictedClassification),
			Confidence: p.Confidence,
			Symptoms:   p.PossibleSymptoms,
		})
	}
	html, err := execute("predictions", views)
	return Output{HTML: html}, err
}

// SymptomAnalysis renders the symptom breakdown. When nothing was logged
// only a muted message is shown.
func SymptomAnalysis(a domain.SymptomAnalysis) (Output, error) {
	if a.Status == domain.StatusNoSymptoms {
		html, err := execute("muted", orNoData(a.Message))
		return Output{HTML: html}, err
	}
	if !a.OK() {
		return Notice(a.Message)
	}
	html, err := execute("symptoms", a.Data)
	return Output{HTML: html}, err
}

type countView struct {
	Name  string
	Count int
}

// Nutrition renders a nutrition summary.
func Nutrition(a domain.NutritionSummary) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}

	meals := make([]countView, 0, len(a.Data.MealFrequency))
	for _, name := range domain.MealTypes {
		if n, ok := a.Data.MealFrequency[name]; ok {
			meals = append(meals, countView{Name: name, Count: n})
		}
	}
	var other []string
	for name := range a.Data.MealFrequency {
		switch name {
		case domain.MealBreakfast, domain.MealLunch, domain.MealDinner, domain.MealSnack:
		default:
			other = append(other, name)
		}
	}
	sort.Strings(other)
	for _, name := range other {
		meals = append(meals, countView{Name: name, Count: a.Data.MealFrequency[name]})
	}

	html, err := execute("nutrition", struct {
		Data  *domain.NutritionData
		Meals []countView
	}{a.Data, meals})
	return Output{HTML: html}, err
}

// SymptomPatterns renders the symptom section of a health report, most
// frequent first.
func SymptomPatterns(a domain.SymptomPatterns) (Output, error) {
	if !a.OK() {
		return Notice(a.Message)
	}

	top := make([]domain.SymptomStat, 0, len(a.Data.SymptomFrequency))
	for name, n := range a.Data.SymptomFrequency {
		top = append(top, domain.SymptomStat{Symptom: name, Count: n, AvgSeverity: a.Data.AvgSeverity[name]})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Symptom < top[j].Symptom
	})

	html, err := execute("symptom-patterns", struct {
		Data *domain.SymptomPatternData
		Top  []domain.SymptomStat
	}{a.Data, top})
	return Output{HTML: html}, err
}
