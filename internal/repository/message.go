package repository

import (
	"context"

	"bazaar/internal/models"
	"bazaar/internal/observability"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for ad message data operations
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByAd(ctx context.Context, adID uint) ([]*models.Message, error)
	CountByAd(ctx context.Context, adID uint) (int64, error)
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	defer r.metrics.TrackQuery("create", "messages")()
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListByAd(ctx context.Context, adID uint) ([]*models.Message, error) {
	defer r.metrics.TrackQuery("list", "messages")()
	// Non-nil so an empty inbox serializes as [] rather than null.
	messages := make([]*models.Message, 0)
	err := r.db.WithContext(ctx).
		Where("ad_id = ?", adID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) CountByAd(ctx context.Context, adID uint) (int64, error) {
	defer r.metrics.TrackQuery("count", "messages")()
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("ad_id = ?", adID).
		Count(&count).Error
	return count, err
}
