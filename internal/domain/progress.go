package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProgressEntry is a single health measurement. Any metric may be missing.
type ProgressEntry struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID                 uuid.UUID `gorm:"type:uuid;not null;index:idx_progress_user_ts" json:"user_id"`
	WeightKG               *float64  `json:"weight_kg,omitempty"`
	BloodSugar             *float64  `json:"blood_sugar,omitempty"`
	BloodPressureSystolic  *int      `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int      `json:"blood_pressure_diastolic,omitempty"`
	Notes                  string    `gorm:"type:text" json:"notes,omitempty"`
	Timestamp              time.Time `gorm:"not null;index:idx_progress_user_ts,sort:desc" json:"timestamp"`
	ClientRequestID        *string   `gorm:"type:varchar(255);uniqueIndex:idx_progress_client_request,where:client_request_id IS NOT NULL" json:"client_request_id,omitempty"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProgressEntry) TableName() string {
	return "progress"
}

// CreateProgressRequest is the request body for logging a measurement.
// @Description Health measurement; at least one metric must be present.
type CreateProgressRequest struct {
	// Body weight in kilograms
	WeightKG *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0,lt=700" example:"72.5"`
	// Blood sugar in mg/dL
	BloodSugar *float64 `json:"blood_sugar,omitempty" validate:"omitempty,gt=0,lt=1000" example:"95"`
	// Systolic pressure in mmHg
	BloodPressureSystolic *int `json:"blood_pressure_systolic,omitempty" validate:"omitempty,min=40,max=300" example:"118"`
	// Diastolic pressure in mmHg (required with systolic)
	BloodPressureDiastolic *int `json:"blood_pressure_diastolic,omitempty" validate:"required_with=BloodPressureSystolic,omitempty,min=20,max=200" example:"76"`
	// Free-text notes
	Notes string `json:"notes,omitempty" validate:"max=2000"`
	// Measurement time, defaults to now
	Timestamp *time.Time `json:"timestamp,omitempty" example:"2024-01-16T07:00:00Z"`
	// Optional client-generated ID for idempotent requests (max 255 chars)
	ClientRequestID *string `json:"client_request_id,omitempty" validate:"omitempty,max=255" example:"client-uuid-12345"`
}

// HasMetric reports whether the request carries at least one measurement.
func (r *CreateProgressRequest) HasMetric() bool {
	return r.WeightKG != nil || r.BloodSugar != nil || r.BloodPressureSystolic != nil
}

// ProgressFilter contains filter parameters for listing progress entries.
type ProgressFilter struct {
	From   *time.Time
	Limit  int
	Cursor string
}

// ProgressListResponse is a page of progress entries.
type ProgressListResponse struct {
	Data       []ProgressEntry    `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}
