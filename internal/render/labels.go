package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/healthsync/healthsync/internal/domain"
)

var bloodPressureLabels = map[string]string{
	domain.BPNormal:             "Normal",
	domain.BPElevated:           "Elevated",
	domain.BPHypertensionStage1: "Hypertension Stage 1",
	domain.BPHypertensionStage2: "Hypertension Stage 2",
	domain.BPHypertensiveCrisis: "Hypertensive Crisis",
	domain.BPUnknown:            "Unknown",
}

// BloodPressureLabel maps a category code to its display label, echoing
// unknown codes.
func BloodPressureLabel(code string) string {
	if label, ok := bloodPressureLabels[code]; ok {
		return label
	}
	return code
}

// ConfidenceLabel is the display form of a correlation confidence tier.
type ConfidenceLabel struct {
	Label     string
	Indicator string
	// Level is used as a CSS class suffix.
	Level string
}

var confidenceLabels = map[string]ConfidenceLabel{
	domain.ConfidenceLow:    {Label: "Low", Indicator: "⚪", Level: "low"},
	domain.ConfidenceMedium: {Label: "Medium", Indicator: "🟡", Level: "medium"},
	domain.ConfidenceHigh:   {Label: "High", Indicator: "🔴", Level: "high"},
}

// Confidence maps a tier to its label and indicator. Unknown tiers keep
// their text and get the lowest indicator.
func Confidence(tier string) ConfidenceLabel {
	if c, ok := confidenceLabels[tier]; ok {
		return c
	}
	return ConfidenceLabel{Label: tier, Indicator: "⚪", Level: "low"}
}

var goalTypeLabels = map[string]string{
	domain.GoalWeight:        "Weight",
	domain.GoalBloodSugar:    "Blood Sugar",
	domain.GoalBloodPressure: "Blood Pressure",
}

// GoalTypeLabel maps a goal type to its display label, echoing unknown types.
func GoalTypeLabel(goalType string) string {
	if label, ok := goalTypeLabels[goalType]; ok {
		return label
	}
	return goalType
}

// TrendLabel capitalises a trend code for display ("gaining" -> "Gaining").
func TrendLabel(trend string) string {
	trend = strings.ReplaceAll(trend, "_", " ")
	r, size := utf8.DecodeRuneInString(trend)
	if r == utf8.RuneError {
		return trend
	}
	return string(unicode.ToUpper(r)) + trend[size:]
}
