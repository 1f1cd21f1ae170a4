package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meal plan goals scale the daily energy target.
const (
	PlanGoalWeightLoss  = "weight_loss"
	PlanGoalMaintenance = "maintenance"
	PlanGoalMuscleGain  = "muscle_gain"
	PlanGoalExtremeLoss = "extreme_loss"
	PlanGoalExtremeGain = "extreme_gain"
)

// Macro profiles split the energy target between protein, carbs and fat.
const (
	MacroBalanced    = "balanced"
	MacroHighProtein = "high_protein"
	MacroLowCarb     = "low_carb"
	MacroKeto        = "keto"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Meal distributions decide which meals a plan has and their share of the
// daily energy.
const (
	DistributionStandard            = "standard"
	DistributionIntermittentFasting = "intermittent_fasting"
	DistributionSixSmallMeals       = "six_small_meals"
)

const (
	DietVegetarian = "vegetarian"
	DietVegan      = "vegan"
)

// Conditions that restrict the food catalog.
const (
	ConditionDiabetes     = "diabetes"
	ConditionHypertension = "hypertension"
)

// Food is one catalog entry used to build meal plans.
type Food struct {
	Name            string   `yaml:"name" json:"name"`
	CaloriesPer100g float64  `yaml:"calories_per_100g" json:"calories_per_100g"`
	ProteinPer100g  float64  `yaml:"protein_g_per_100g" json:"protein_g_per_100g"`
	CarbsPer100g    float64  `yaml:"carbs_g_per_100g" json:"carbs_g_per_100g"`
	FatPer100g      float64  `yaml:"fat_g_per_100g" json:"fat_g_per_100g"`
	ServingG        float64  `yaml:"serving_g" json:"serving_g"`
	Tags            []string `yaml:"tags" json:"tags"`
}

type Macros struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// PlannedFood is a serving of a catalog food within a planned meal.
type PlannedFood struct {
	Name     string  `json:"name"`
	Grams    int     `json:"grams"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type PlannedMeal struct {
	MealType       string        `json:"meal_type"`
	TargetCalories int           `json:"target_calories"`
	Items          []PlannedFood `json:"items"`
	Nutrition      Macros        `json:"nutrition"`
}

// MealPlan is a generated daily plan kept as recommendation history, with
// the user's feedback once given.
type MealPlan struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_meal_plan_user_created" json:"user_id"`
	Goal          string    `gorm:"type:varchar(32);not null" json:"goal"`
	MacroProfile  string    `gorm:"type:varchar(32);not null" json:"macro_profile"`
	ActivityLevel string    `gorm:"type:varchar(32);not null" json:"activity_level"`
	Distribution  string    `gorm:"type:varchar(32);not null" json:"distribution"`

	DailyCaloriesTarget int     `json:"daily_calories_target"`
	ProteinTargetG      float64 `json:"protein_target_g"`
	CarbsTargetG        float64 `json:"carbs_target_g"`
	FatTargetG          float64 `json:"fat_target_g"`

	Meals            JSONList[PlannedMeal] `json:"meals"`
	Totals           Macros                `gorm:"embedded;embeddedPrefix:total_" json:"totals"`
	Recommendations  JSONList[string]      `json:"recommendations"`
	AlgorithmVersion string                `gorm:"type:varchar(16)" json:"algorithm_version"`

	UserRating       *int             `json:"user_rating,omitempty"`
	UserFollowed     *bool            `json:"user_followed,omitempty"`
	UserFeedback     *string          `gorm:"type:text" json:"user_feedback,omitempty"`
	SymptomsReported JSONList[string] `json:"symptoms_reported,omitempty"`
	FollowedAt       *time.Time       `json:"followed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_meal_plan_user_created,sort:desc" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

// GenerateMealPlanRequest is the request body for generating a meal plan.
// Empty fields take their defaults: maintenance, balanced, moderate, standard.
type GenerateMealPlanRequest struct {
	Goal          string   `json:"goal,omitempty" validate:"omitempty,oneof=weight_loss maintenance muscle_gain extreme_loss extreme_gain" example:"weight_loss"`
	MacroProfile  string   `json:"macro_profile,omitempty" validate:"omitempty,oneof=balanced high_protein low_carb keto" example:"balanced"`
	ActivityLevel string   `json:"activity_level,omitempty" validate:"omitempty,oneof=sedentary light moderate active very_active" example:"moderate"`
	Distribution  string   `json:"distribution,omitempty" validate:"omitempty,oneof=standard intermittent_fasting six_small_meals" example:"standard"`
	DietType      string   `json:"diet_type,omitempty" validate:"omitempty,oneof=vegetarian vegan"`
	Allergies     []string `json:"allergies,omitempty" validate:"omitempty,max=20,dive,min=1,max=64" example:"peanut"`
	Conditions    []string `json:"conditions,omitempty" validate:"omitempty,dive,oneof=diabetes hypertension"`
}

// MealPlanFeedbackRequest records how a plan worked out. At least one field
// must be set.
type MealPlanFeedbackRequest struct {
	Rating   *int     `json:"rating,omitempty" validate:"omitempty,min=1,max=5" example:"4"`
	Followed *bool    `json:"followed,omitempty" example:"true"`
	Feedback *string  `json:"feedback,omitempty" validate:"omitempty,max=2000"`
	Symptoms []string `json:"symptoms,omitempty" validate:"omitempty,dive,min=1,max=64"`
}

func (r *MealPlanFeedbackRequest) Empty() bool {
	return r.Rating == nil && r.Followed == nil && r.Feedback == nil && len(r.Symptoms) == 0
}

type MealPlanListResponse struct {
	Data       []MealPlan         `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// MealNutritionData is the standalone nutrition summary over a window of
// logged meals.
type MealNutritionData struct {
	NutritionData
	TotalMeals        int         `json:"total_meals" validate:"gte=1"`
	TotalCalories     float64     `json:"total_calories"`
	MostEatenFoods    []FoodCount `json:"most_eaten_foods"`
	MealsWithSymptoms int         `json:"meals_with_symptoms"`
	Recommendations   []string    `json:"recommendations"`
}

type FoodCount struct {
	Food  string `json:"food"`
	Count int    `json:"count"`
}

type MealNutritionSummary = Analysis[MealNutritionData]
