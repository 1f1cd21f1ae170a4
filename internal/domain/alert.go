package domain

import (
	"time"

	"github.com/google/uuid"
)

// Alert types raised by the health status check.
const (
	AlertSevereSymptoms    = "severe_symptoms"
	AlertWeightChange      = "weight_change"
	AlertHighBloodPressure = "high_blood_pressure"
	AlertHighBloodSugar    = "high_blood_sugar"
)

// Alert severities.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

type HealthAlert struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AlertType string    `gorm:"type:varchar(32);not null" json:"alert_type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Severity  string    `gorm:"type:varchar(16);not null" json:"severity"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (HealthAlert) TableName() string {
	return "health_alerts"
}

// HealthCheckResult summarises alerts raised by a status check.
type HealthCheckResult struct {
	AlertsGenerated int           `json:"alerts_generated"`
	NewAlerts       []HealthAlert `json:"new_alerts"`
}

// AlertSummary aggregates a user's alerts.
type AlertSummary struct {
	TotalAlerts           int            `json:"total_alerts"`
	UnreadAlerts          int            `json:"unread_alerts"`
	SeverityDistribution  map[string]int `json:"severity_distribution"`
	AlertTypeDistribution map[string]int `json:"alert_type_distribution"`
	RecentCriticalAlerts  []HealthAlert  `json:"recent_critical_alerts"`
}
