package domain

import (
	"time"

	"github.com/google/uuid"
)

// Symptom classifications produced when a log is recorded.
const (
	ClassificationFluLike         = "flu-like"
	ClassificationFoodIntolerance = "food-intolerance"
	ClassificationNone            = "none"
)

type SymptomLog struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID        `gorm:"type:uuid;not null;index:idx_symptom_user_ts" json:"user_id"`
	Symptoms              JSONList[string] `json:"symptoms"`
	Severity              int              `gorm:"type:smallint;not null" json:"severity"`
	Classification        string           `gorm:"type:varchar(32);not null;default:'none'" json:"ai_classification"`
	NeedsMedicalAttention bool             `gorm:"not null;default:false" json:"needs_medical_attention"`
	Timestamp             time.Time        `gorm:"not null;index:idx_symptom_user_ts,sort:desc" json:"timestamp"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SymptomLog) TableName() string {
	return "symptom_logs"
}

// CreateSymptomLogRequest is the request body for logging symptoms.
type CreateSymptomLogRequest struct {
	Symptoms  []string   `json:"symptoms" validate:"required,min=1,dive,required,max=64"`
	Severity  int        `json:"severity" validate:"required,min=1,max=10" example:"4"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}
