package domain

import "github.com/google/uuid"

// HealthTip is one entry of the health tips catalog.
// @Description General health tip.
type HealthTip struct {
	Title       string `json:"title" yaml:"title" example:"Balanced Diet"`
	Description string `json:"description" yaml:"description"`
	// high or medium
	Importance string `json:"importance" yaml:"importance" example:"high"`
}

// HealthTipCategories lists the categories served by the tips catalog.
var HealthTipCategories = []string{"nutrition", "exercise", "sleep", "stress", "hydration"}

// ConsultationRequest is the request body for asking the health assistant.
// @Description Free-form health question.
type ConsultationRequest struct {
	Message string `json:"message" validate:"required,max=4000" example:"How can I lower my blood pressure?"`
	// When set, the user's health report is included as context
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

// ConsultationResponse is the assistant answer.
// @Description Assistant answer as raw text and sanitised HTML.
type ConsultationResponse struct {
	Answer string `json:"answer"`
	HTML   string `json:"html"`
	// Trace ID for feedback (optional, only present when Langfuse is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// FeedbackRequest scores a previous consultation answer.
// @Description User feedback on a consultation answer.
type FeedbackRequest struct {
	TraceID string `json:"trace_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	// 1 = helpful, 0 = not helpful
	Score   float64 `json:"score" validate:"min=0,max=1" example:"1"`
	Comment string  `json:"comment,omitempty" validate:"max=1000"`
}
