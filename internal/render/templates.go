package render

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"time"

	"github.com/healthsync/healthsync/internal/domain"
)

// Output is the result of rendering one analysis payload.
type Output struct {
	HTML  template.HTML `json:"html"`
	Chart *ChartSpec    `json:"chart,omitempty"`
}

const dateLayout = "Jan 2, 2006"

var funcs = template.FuncMap{
	"kg":    func(v float64) string { return fmt.Sprintf("%.1f kg", v) },
	"mmhg":  func(v float64) string { return fmt.Sprintf("%.1f mmHg", v) },
	"mgdl":  func(v float64) string { return fmt.Sprintf("%.1f mg/dL", v) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"kcal":  func(v float64) string { return fmt.Sprintf("%.0f kcal", v) },
	"num":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"date":  func(t time.Time) string { return t.Format(dateLayout) },
	"trend": TrendLabel,
	"bp":    BloodPressureLabel,
	"goal":  GoalTypeLabel,
	"conf":  Confidence,
	"signedKG": func(v float64) string {
		return fmt.Sprintf("%+.1f kg", v)
	},
	"roundPct": func(v float64) string {
		return fmt.Sprintf("%d%%", int(math.Round(v*100)))
	},
}

const baseTemplates = `
{{define "notice"}}<div class="notice notice-info"><p>{{.}}</p></div>{{end}}

{{define "muted"}}<p class="text-muted">{{.}}</p>{{end}}

{{define "insights"}}{{if .}}<div class="insights"><h4>Insights</h4><ul>{{range .}}<li>{{.}}</li>{{end}}</ul></div>{{end}}{{end}}

{{define "stat"}}<div class="stat"><span class="stat-label">{{index . 0}}</span> <span class="stat-value">{{index . 1}}</span></div>{{end}}
`

const metricTemplates = `
{{define "weight"}}<div class="metric metric-weight">
<div class="metric-stats">
{{template "stat" (list "Starting weight" (kg .FirstMeasurement.WeightKG))}}
{{template "stat" (list "Current weight" (kg .LatestMeasurement.WeightKG))}}
{{template "stat" (list "Total change" (signedKG .TotalChangeKG))}}
{{template "stat" (list "Percent change" (pct .PercentChange))}}
{{template "stat" (list "Weekly rate" (print (signedKG .WeeklyChangeRateKG) "/week"))}}
</div>
<p class="trend">Trend: <strong>{{trend .Trend}}</strong></p>
{{template "insights" .Insights}}
</div>{{end}}

{{define "blood-pressure"}}<div class="metric metric-blood-pressure">
<div class="metric-stats">
{{template "stat" (list "Average" (print (num .AverageSystolic) "/" (mmhg .AverageDiastolic)))}}
{{template "stat" (list "Lowest" (print (num .MinSystolic) "/" (mmhg .MinDiastolic)))}}
{{template "stat" (list "Highest" (print (num .MaxSystolic) "/" (mmhg .MaxDiastolic)))}}
</div>
<p class="category category-{{.Category}}">Category: <strong>{{bp .Category}}</strong></p>
{{template "insights" .Insights}}
</div>{{end}}

{{define "goal"}}<div class="metric metric-goal">
<h4>{{goal .Data.GoalType}} Goal</h4>
<div class="metric-stats">
{{template "stat" (list "Starting value" .Initial)}}
{{template "stat" (list "Current value" .Current)}}
{{template "stat" (list "Target value" .Target)}}
</div>
<div class="goal-progress">
<progress value="{{.Value}}" max="100"></progress>
<span class="goal-progress-label">{{.Label}}</span>
</div>
{{template "insights" .Data.Insights}}
</div>{{end}}

{{define "correlations"}}<div class="metric metric-correlations">
<table class="correlations">
<thead><tr><th>Food</th><th>Symptom</th><th>Confidence</th><th>Correlation</th><th>Occurrences</th></tr></thead>
<tbody>
{{range .Correlations}}{{$c := conf .Confidence}}<tr class="confidence-{{$c.Level}}"><td>{{.Food}}</td><td>{{.Symptom}}</td><td>{{$c.Indicator}} {{$c.Label}}</td><td>{{pct .CorrelationPercentage}}</td><td>{{.Occurrences}}</td></tr>
{{end}}</tbody>
</table>
{{if .Recommendations}}<div class="recommendations"><h4>Recommendations</h4><ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul></div>{{end}}
</div>{{end}}

{{define "predictions"}}<div class="metric metric-predictions">
{{range .}}<div class="prediction-card prediction-{{.Class}}">
<div class="prediction-date">{{.Date}}</div>
<div class="prediction-label">{{.Label}}</div>
<div class="prediction-confidence">Confidence: {{roundPct .Confidence}}</div>
{{if .Symptoms}}<ul class="prediction-symptoms">{{range .Symptoms}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}</div>{{end}}

{{define "symptoms"}}<div class="metric metric-symptoms">
<div class="metric-stats">
{{template "stat" (list "Logs analysed" (print .TotalLogs))}}
{{if .SeverityTrend}}{{template "stat" (list "Severity trend" (trend .SeverityTrend.Trend))}}{{end}}
</div>
{{if .MostCommon}}<div class="symptom-list"><h4>Most common symptoms</h4><ul>{{range .MostCommon}}<li>{{.Symptom}} <span class="count">({{.Count}})</span></li>{{end}}</ul></div>{{end}}
{{if .MostSevere}}<div class="symptom-list"><h4>Most severe symptoms</h4><ul>{{range .MostSevere}}<li>{{.Symptom}} <span class="severity">{{num .AvgSeverity}}/10</span></li>{{end}}</ul></div>{{end}}
{{template "insights" .Insights}}
{{if .Recommendations}}<div class="recommendations"><h4>Recommendations</h4><ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul></div>{{end}}
</div>{{end}}

{{define "nutrition"}}<div class="metric metric-nutrition">
<div class="metric-stats">
{{template "stat" (list "Average daily calories" (kcal .Data.AverageDailyCalories))}}
{{template "stat" (list "Days tracked" (print .Data.DaysTracked))}}
</div>
{{if .Meals}}<ul class="meal-frequency">{{range .Meals}}<li>{{trend .Name}}: {{.Count}}</li>{{end}}</ul>{{end}}
{{template "insights" .Data.Insights}}
</div>{{end}}

{{define "symptom-patterns"}}<div class="metric metric-symptom-patterns">
<div class="metric-stats">
{{template "stat" (list "Symptom logs" (print .Data.TotalLogs))}}
{{template "stat" (list "Unique symptoms" (print .Data.UniqueSymptoms))}}
</div>
{{if .Top}}<ul class="symptom-frequency">{{range .Top}}<li>{{.Symptom}} <span class="count">({{.Count}})</span>{{if .AvgSeverity}} <span class="severity">{{num .AvgSeverity}}/10</span>{{end}}</li>{{end}}</ul>{{end}}
{{template "insights" .Data.Insights}}
</div>{{end}}
`

const reportTemplates = `
{{define "report"}}<div class="health-report">
<section class="report-section report-user">
<h3>Personal Information</h3>
{{template "stat" (list "Name" .Info.Name)}}
{{with .Info.Age}}{{template "stat" (list "Age" .)}}{{end}}
{{with .Info.Gender}}{{template "stat" (list "Gender" (trend .))}}{{end}}
{{with .Info.HeightCM}}{{template "stat" (list "Height" .)}}{{end}}
{{with .Info.CurrentWeightKG}}{{template "stat" (list "Current weight" .)}}{{end}}
</section>
<section class="report-section report-summary">
<h3>Summary</h3>
{{template "stat" (list "Data points collected" (print .Summary.DataPointsCollected))}}
{{template "stat" (list "Days tracked" (print .Summary.DaysTracked))}}
{{if .Metrics}}{{template "stat" (list "Metrics tracked" .Metrics)}}{{end}}
</section>
{{range .Sections}}<section class="report-section report-{{.ID}}">
<h3>{{.Title}}</h3>
{{.Body}}
</section>
{{end}}{{if .Recommendations}}<section class="report-section report-recommendations">
<h3>Recommendations</h3>
<ol>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ol>
</section>
{{end}}</div>{{end}}
`

var templates = template.Must(
	template.New("render").
		Funcs(funcs).
		Funcs(template.FuncMap{"list": func(v ...string) []string { return v }}).
		Parse(baseTemplates + metricTemplates + reportTemplates),
)

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Notice renders an informational message with no data or chart. An empty
// message becomes domain.MsgNoData.
func Notice(text string) (Output, error) {
	html, err := execute("notice", orNoData(text))
	return Output{HTML: html}, err
}

func orNoData(text string) string {
	if text == "" {
		return domain.MsgNoData
	}
	return text
}
