package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth *string   `gorm:"type:varchar(10)" json:"date_of_birth,omitempty"`
	Gender      string    `gorm:"type:varchar(32)" json:"gender"`
	HeightCM    *float64  `json:"height_cm,omitempty"`
	WeightKG    *float64  `json:"weight_kg,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Age returns the age in whole years at the given instant, or nil when the
// date of birth is missing or unparsable.
func (u *User) Age(now time.Time) *int {
	if u.DateOfBirth == nil {
		return nil
	}
	dob, err := time.Parse("2006-01-02", *u.DateOfBirth)
	if err != nil {
		return nil
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return &age
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	DateOfBirth *string  `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender      string   `json:"gender" validate:"omitempty,oneof=male female other"`
	HeightCM    *float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0,lt=300"`
	WeightKG    *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0,lt=700"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	Gender      string    `json:"gender"`
	HeightCM    *float64  `json:"height_cm,omitempty"`
	WeightKG    *float64  `json:"weight_kg,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		HeightCM:    u.HeightCM,
		WeightKG:    u.WeightKG,
		CreatedAt:   u.CreatedAt,
	}
}
