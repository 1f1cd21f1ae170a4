package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthsync/healthsync/internal/domain"
)

type SymptomLogRepository interface {
	Create(ctx context.Context, log *domain.SymptomLog) error
	// Since returns all logs at or after from, oldest first.
	Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.SymptomLog, error)
}

type symptomLogRepository struct {
	db *gorm.DB
}

func NewSymptomLogRepository(db *gorm.DB) SymptomLogRepository {
	return &symptomLogRepository{db: db}
}

func (r *symptomLogRepository) Create(ctx context.Context, log *domain.SymptomLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *symptomLogRepository) Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.SymptomLog, error) {
	var logs []domain.SymptomLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, from).
		Order("timestamp ASC").
		Find(&logs).Error
	return logs, err
}
