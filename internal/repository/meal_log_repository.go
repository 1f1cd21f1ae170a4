package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthsync/healthsync/internal/domain"
)

type MealLogRepository interface {
	Create(ctx context.Context, log *domain.MealLog) error
	// Since returns all meals at or after from, oldest first.
	Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.MealLog, error)
}

type mealLogRepository struct {
	db *gorm.DB
}

func NewMealLogRepository(db *gorm.DB) MealLogRepository {
	return &mealLogRepository{db: db}
}

func (r *mealLogRepository) Create(ctx context.Context, log *domain.MealLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *mealLogRepository) Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.MealLog, error) {
	var logs []domain.MealLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, from).
		Order("timestamp ASC").
		Find(&logs).Error
	return logs, err
}
