package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Status discriminates the variants of an analysis payload.
type Status string

const (
	StatusSuccess          Status = "success"
	StatusInsufficientData Status = "insufficient_data"
	StatusNoSymptoms       Status = "no_symptoms"
	StatusError            Status = "error"
)

const (
	MsgNoData            = "No data available"
	MsgIncompletePayload = "Received an incomplete analysis payload"
)

var payloadValidator = validator.New()

// Analysis is a result-or-failure value. Data is set if and only if Status
// is StatusSuccess; otherwise Message explains why there is no result.
//
// On the wire the success fields sit next to "status", e.g.
// {"status":"success","trend":"stable",...} or {"status":"insufficient_data","message":"..."}.
type Analysis[T any] struct {
	Status  Status
	Message string
	Data    *T
}

// Success wraps data in a success variant.
func Success[T any](data T) Analysis[T] {
	return Analysis[T]{Status: StatusSuccess, Data: &data}
}

// Failure builds a non-success variant. A success status is downgraded to
// StatusError since it would carry no data.
func Failure[T any](status Status, message string) Analysis[T] {
	if status == StatusSuccess || status == "" {
		status = StatusError
	}
	return Analysis[T]{Status: status, Message: message}
}

// OK reports whether the analysis carries a success payload.
func (a Analysis[T]) OK() bool {
	return a.Status == StatusSuccess && a.Data != nil
}

func (a Analysis[T]) MarshalJSON() ([]byte, error) {
	if !a.OK() {
		status := a.Status
		if status == "" || status == StatusSuccess {
			status = StatusError
		}
		return json.Marshal(struct {
			Status  Status `json:"status"`
			Message string `json:"message,omitempty"`
		}{status, a.Message})
	}

	raw, err := json.Marshal(a.Data)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("analysis payload must be an object: %w", err)
	}
	fields["status"] = json.RawMessage(`"success"`)
	if a.Message != "" {
		msg, _ := json.Marshal(a.Message)
		fields["message"] = msg
	}
	return json.Marshal(fields)
}

// UnmarshalJSON checks the discriminator before touching success-only fields.
// A success payload missing required fields decodes to an error variant;
// a missing discriminator decodes to insufficient data.
func (a *Analysis[T]) UnmarshalJSON(b []byte) error {
	var envelope struct {
		Status  *Status `json:"status"`
		Message string  `json:"message"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}

	if envelope.Status == nil || *envelope.Status == "" {
		*a = Failure[T](StatusInsufficientData, orDefault(envelope.Message, MsgNoData))
		return nil
	}

	if *envelope.Status != StatusSuccess {
		*a = Failure[T](*envelope.Status, orDefault(envelope.Message, MsgNoData))
		return nil
	}

	var data T
	if err := json.Unmarshal(b, &data); err != nil {
		*a = Failure[T](StatusError, MsgIncompletePayload)
		return nil
	}
	if err := payloadValidator.Struct(data); err != nil {
		*a = Failure[T](StatusError, MsgIncompletePayload)
		return nil
	}
	*a = Analysis[T]{Status: StatusSuccess, Message: envelope.Message, Data: &data}
	return nil
}

// Validate returns ErrIncompletePayload when a success variant lacks
// required fields. Producers call it before handing a payload on.
func (a Analysis[T]) Validate() error {
	if a.Status == StatusSuccess {
		if a.Data == nil {
			return ErrIncompletePayload
		}
		if err := payloadValidator.Struct(*a.Data); err != nil {
			return fmt.Errorf("%w: %v", ErrIncompletePayload, err)
		}
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Measurement is a dated weight sample.
type Measurement struct {
	Date     time.Time `json:"date" validate:"required"`
	WeightKG float64   `json:"weight_kg" validate:"gt=0"`
}

type WeightTrendData struct {
	FirstMeasurement   Measurement `json:"first_measurement"`
	LatestMeasurement  Measurement `json:"latest_measurement"`
	TotalChangeKG      float64     `json:"total_change_kg"`
	PercentChange      float64     `json:"percent_change"`
	WeeklyChangeRateKG float64     `json:"weekly_change_rate_kg"`
	Trend              string      `json:"trend" validate:"required"`
	DataPoints         int         `json:"data_points"`
	DaysTracked        int         `json:"days_tracked"`
	Insights           []string    `json:"insights"`
}

// Blood-pressure categories.
const (
	BPNormal             = "normal"
	BPElevated           = "elevated"
	BPHypertensionStage1 = "hypertension_stage_1"
	BPHypertensionStage2 = "hypertension_stage_2"
	BPHypertensiveCrisis = "hypertensive_crisis"
	BPUnknown            = "unknown"
)

type BloodPressureTrendData struct {
	AverageSystolic  float64  `json:"average_systolic" validate:"gt=0"`
	AverageDiastolic float64  `json:"average_diastolic" validate:"gt=0"`
	MinSystolic      float64  `json:"min_systolic"`
	MinDiastolic     float64  `json:"min_diastolic"`
	MaxSystolic      float64  `json:"max_systolic"`
	MaxDiastolic     float64  `json:"max_diastolic"`
	Category         string   `json:"category" validate:"required"`
	DataPoints       int      `json:"data_points"`
	Insights         []string `json:"insights"`
}

// Goal types.
const (
	GoalWeight        = "weight"
	GoalBloodSugar    = "blood_sugar"
	GoalBloodPressure = "blood_pressure"
)

// IsValidGoalType reports whether t is one of the supported goal types.
func IsValidGoalType(t string) bool {
	switch t {
	case GoalWeight, GoalBloodSugar, GoalBloodPressure:
		return true
	}
	return false
}

type GoalProgressData struct {
	GoalType           string   `json:"goal_type" validate:"required"`
	TargetValue        float64  `json:"target_value"`
	InitialValue       float64  `json:"initial_value"`
	CurrentValue       float64  `json:"current_value"`
	ProgressPercentage float64  `json:"progress_percentage"`
	Insights           []string `json:"insights"`
}

type NutritionData struct {
	AverageDailyCalories float64        `json:"average_daily_calories"`
	DaysTracked          int            `json:"days_tracked" validate:"gte=1"`
	MealFrequency        map[string]int `json:"meal_frequency"`
	Insights             []string       `json:"insights"`
}

type SymptomPatternData struct {
	TotalLogs        int                `json:"total_logs" validate:"gte=1"`
	UniqueSymptoms   int                `json:"unique_symptoms"`
	SymptomFrequency map[string]int     `json:"symptom_frequency"`
	AvgSeverity      map[string]float64 `json:"avg_severity"`
	Insights         []string           `json:"insights"`
}

type UserInfo struct {
	Name            string   `json:"name" validate:"required"`
	Age             *int     `json:"age"`
	Gender          string   `json:"gender"`
	HeightCM        *float64 `json:"height_cm"`
	CurrentWeightKG *float64 `json:"current_weight_kg"`
}

type ReportSummary struct {
	DataPointsCollected int      `json:"data_points_collected"`
	DaysTracked         int      `json:"days_tracked"`
	MetricsTracked      []string `json:"metrics_tracked"`
}

// HealthReportData is the consolidated report. A nil section is absent,
// which is distinct from a present section whose status is not success.
type HealthReportData struct {
	UserID                string              `json:"user_id"`
	ReportDate            time.Time           `json:"report_date"`
	UserInfo              UserInfo            `json:"user_info"`
	Summary               ReportSummary       `json:"summary"`
	WeightAnalysis        *WeightTrend        `json:"weight_analysis"`
	BloodPressureAnalysis *BloodPressureTrend `json:"blood_pressure_analysis"`
	NutritionSummary      *NutritionSummary   `json:"nutrition_summary"`
	SymptomPatterns       *SymptomPatterns    `json:"symptom_patterns"`
	Recommendations       []string            `json:"recommendations"`
}

// Correlation confidence tiers.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

type Correlation struct {
	Food                  string  `json:"food" validate:"required"`
	Symptom               string  `json:"symptom" validate:"required"`
	Confidence            string  `json:"confidence"`
	CorrelationPercentage float64 `json:"correlation_percentage" validate:"gte=0,lte=100"`
	Occurrences           int     `json:"occurrences" validate:"gte=0"`
}

type CorrelationReportData struct {
	Correlations    []Correlation `json:"correlations" validate:"dive"`
	Recommendations []string      `json:"recommendations"`
}

type Prediction struct {
	Date                    string   `json:"date" validate:"required"`
	PredictedClassification string   `json:"predicted_classification"`
	Confidence              float64  `json:"confidence" validate:"gte=0,lte=1"`
	PossibleSymptoms        []string `json:"possible_symptoms"`
}

type PredictionReportData struct {
	Predictions []Prediction `json:"predictions" validate:"dive"`
}

type SeverityTrend struct {
	Trend         string  `json:"trend"`
	FirstHalfAvg  float64 `json:"first_half_avg"`
	SecondHalfAvg float64 `json:"second_half_avg"`
	Change        float64 `json:"change"`
}

type DayPattern struct {
	AvgSeverity float64 `json:"avg_severity"`
	Count       int     `json:"count"`
}

// SymptomStat is one entry of the most-common / most-severe lists.
type SymptomStat struct {
	Symptom     string  `json:"symptom"`
	Count       int     `json:"count"`
	AvgSeverity float64 `json:"avg_severity"`
}

type SymptomAnalysisData struct {
	SymptomFrequency map[string]int        `json:"symptom_frequency"`
	TotalLogs        int                   `json:"total_logs"`
	SeverityTrend    *SeverityTrend        `json:"severity_trend,omitempty"`
	DayOfWeekPattern map[string]DayPattern `json:"day_of_week_pattern"`
	MostCommon       []SymptomStat         `json:"most_common"`
	MostSevere       []SymptomStat         `json:"most_severe"`
	Insights         []string              `json:"insights"`
	Recommendations  []string              `json:"recommendations"`
}

type (
	WeightTrend        = Analysis[WeightTrendData]
	BloodPressureTrend = Analysis[BloodPressureTrendData]
	GoalProgress       = Analysis[GoalProgressData]
	NutritionSummary   = Analysis[NutritionData]
	SymptomPatterns    = Analysis[SymptomPatternData]
	HealthReport       = Analysis[HealthReportData]
	CorrelationReport  = Analysis[CorrelationReportData]
	PredictionReport   = Analysis[PredictionReportData]
	SymptomAnalysis    = Analysis[SymptomAnalysisData]
)
