package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/pkg/pagination"
)

type MealPlanRepository interface {
	Create(ctx context.Context, plan *domain.MealPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error)
	// List returns up to limit+1 plans newest first, starting after cursor
	// when one is given.
	List(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]domain.MealPlan, error)
	Update(ctx context.Context, plan *domain.MealPlan) error
}

type mealPlanRepository struct {
	db *gorm.DB
}

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *mealPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealPlan, error) {
	var plan domain.MealPlan
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: meal plan %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *mealPlanRepository) List(ctx context.Context, userID uuid.UUID, limit int, cursor *pagination.Cursor) ([]domain.MealPlan, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1)
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.Timestamp, cursor.Timestamp, cursor.ID,
		)
	}

	var plans []domain.MealPlan
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Update writes the feedback columns only; the generated plan is immutable.
func (r *mealPlanRepository) Update(ctx context.Context, plan *domain.MealPlan) error {
	return r.db.WithContext(ctx).
		Model(plan).
		Select("user_rating", "user_followed", "user_feedback", "symptoms_reported", "followed_at").
		Updates(plan).Error
}
