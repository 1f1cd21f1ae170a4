package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/pkg/pagination"
)

type ProgressRepository interface {
	Create(ctx context.Context, entry *domain.ProgressEntry) error
	List(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressEntry, error)
	// Since returns all entries at or after from, oldest first.
	Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.ProgressEntry, error)
	GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.ProgressEntry, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(ctx context.Context, entry *domain.ProgressEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *progressRepository) List(ctx context.Context, userID uuid.UUID, filter domain.ProgressFilter) ([]domain.ProgressEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Order("id DESC")

	if filter.From != nil {
		query = query.Where("timestamp >= ?", filter.From)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			query = query.Where(
				"(timestamp < ?) OR (timestamp = ? AND id < ?)",
				cursor.Timestamp, cursor.Timestamp, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var entries []domain.ProgressEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *progressRepository) Since(ctx context.Context, userID uuid.UUID, from time.Time) ([]domain.ProgressEntry, error) {
	var entries []domain.ProgressEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND timestamp >= ?", userID, from).
		Order("timestamp ASC").
		Find(&entries).Error
	return entries, err
}

func (r *progressRepository) GetByClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (*domain.ProgressEntry, error) {
	var entry domain.ProgressEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND client_request_id = ?", userID, clientRequestID).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Not found is not an error for idempotency check
		}
		return nil, err
	}
	return &entry, nil
}
