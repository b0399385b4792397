package notification

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository is the storage the service needs
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, userID string, f ListFilter, now time.Time) ([]Notification, error)
	CountUnread(ctx context.Context, userID string, now time.Time) (int64, error)
	SetRead(ctx context.Context, n *Notification, read bool, at time.Time) error
	MarkAllAsRead(ctx context.Context, userID string, at time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context, userID string, scope ClearScope) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) List(ctx context.Context, userID string, f ListFilter, now time.Time) ([]Notification, error) {
	q := r.live(ctx, userID, now).Order("created_at DESC")
	if f.OnlyUnread {
		q = q.Where("is_read = ?", false)
	}
	if f.Since != nil {
		q = q.Where("created_at > ?", *f.Since)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []Notification
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string, now time.Time) (int64, error) {
	var n int64
	err := r.live(ctx, userID, now).Model(&Notification{}).Where("is_read = ?", false).Count(&n).Error
	return n, err
}

func (r *NotificationRepository) SetRead(ctx context.Context, n *Notification, read bool, at time.Time) error {
	n.IsRead = read
	n.ReadAt = nil
	if read {
		n.ReadAt = &at
	}
	return r.db.WithContext(ctx).Model(n).Select("is_read", "read_at").Updates(n).Error
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Notification{}, "id = ?", id).Error
}

func (r *NotificationRepository) Clear(ctx context.Context, userID string, scope ClearScope) (int64, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if scope != ClearAll {
		q = q.Where("is_read = ?", true)
	}
	res := q.Delete(&Notification{})
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&Notification{})
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", time.Now().Add(-age)).Delete(&Notification{})
	return res.RowsAffected, res.Error
}

// live scopes to the user's notifications that have not expired.
func (r *NotificationRepository) live(ctx context.Context, userID string, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("expires_at IS NULL OR expires_at > ?", now)
}
