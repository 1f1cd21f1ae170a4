package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthsync/healthsync/internal/domain"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.HealthAlert) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.HealthAlert, error)
	MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*domain.HealthAlert, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.HealthAlert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

func (r *alertRepository) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.HealthAlert, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var alerts []domain.HealthAlert
	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, userID, alertID uuid.UUID) (*domain.HealthAlert, error) {
	var alert domain.HealthAlert
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&alert, "id = ? AND user_id = ?", alertID, userID).Error; err != nil {
			return err
		}
		alert.IsRead = true
		return tx.Model(&alert).Update("is_read", true).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}
