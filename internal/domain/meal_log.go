package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meal types.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// MealTypes in the order meals happen during a day.
var MealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// FoodItem is one food eaten as part of a meal.
type FoodItem struct {
	Name     string  `json:"name" validate:"required,max=128"`
	Calories float64 `json:"calories" validate:"min=0"`
}

type MealLog struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index:idx_meal_user_ts" json:"user_id"`
	MealType      string             `gorm:"type:varchar(16);not null" json:"meal_type"`
	Foods         JSONList[FoodItem] `json:"foods"`
	TotalCalories float64            `json:"total_calories"`
	SymptomsAfter JSONList[string]   `json:"symptoms_after"`
	Timestamp     time.Time          `gorm:"not null;index:idx_meal_user_ts,sort:desc" json:"timestamp"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MealLog) TableName() string {
	return "meal_logs"
}

// CreateMealLogRequest is the request body for logging a meal.
type CreateMealLogRequest struct {
	MealType      string     `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	Foods         []FoodItem `json:"foods" validate:"required,min=1,dive"`
	SymptomsAfter []string   `json:"symptoms_after,omitempty" validate:"omitempty,dive,max=64"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
}
