package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinash-a11y/insta-clone/internal/domain"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM-backed notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create persists a notification.
func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = uuid.New().String()

	model := domain.NotificationToModel(n)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	n.CreatedAt = model.CreatedAt
	return nil
}

// List returns recipient's notifications newest first, optionally filtered.
func (r *GormNotificationRepository) List(ctx context.Context, recipient, filter string, limit int) ([]*domain.Notification, error) {
	q := r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("recipient = ?", recipient).
		Order("created_at DESC, id DESC")

	switch filter {
	case "", "all":
	case "unread":
		q = q.Where("is_read = ?", false)
	default:
		q = q.Where("type = ?", filter)
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []domain.NotificationModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	notifications := make([]*domain.Notification, 0, len(models))
	for i := range models {
		notifications = append(notifications, models[i].ToDomain())
	}
	return notifications, nil
}

// UnreadCount returns how many unread notifications recipient has.
func (r *GormNotificationRepository) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("recipient = ? AND is_read = ?", recipient, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead marks one of recipient's notifications as read.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, recipient, id string) error {
	result := r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("id = ? AND recipient = ?", id, recipient).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks all of recipient's notifications as read.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipient string) error {
	return r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("recipient = ? AND is_read = ?", recipient, false).
		Update("is_read", true).Error
}

// Ensure interface is satisfied at compile time.
var _ NotificationRepository = (*GormNotificationRepository)(nil)
