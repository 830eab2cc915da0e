package repository

import (
	"context"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type NotificationFilter struct {
	RecipientID string
	Kind        entity.NotificationKind
	Offset      int
	Limit       int
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	CreateList(ctx context.Context, notifications []*entity.Notification) error
	GetList(ctx context.Context, filter NotificationFilter) ([]entity.Notification, error)
	CountUnviewed(ctx context.Context, recipientID string, kind entity.NotificationKind) (int64, error)
	MarkViewed(ctx context.Context, recipientID string, kind entity.NotificationKind) error

	// GetLike returns the single like row one sender holds on one content
	// record, regardless of its active flag.
	GetLike(ctx context.Context, senderID string, ref entity.ContentRef) (*entity.Notification, error)
	UpdateLike(ctx context.Context, id int64, isActive, isViewed bool) error

	// DeactivateByTarget retracts every notification of the given kinds
	// pointing at one content record. It is idempotent.
	DeactivateByTarget(ctx context.Context, ref entity.ContentRef, kinds ...entity.NotificationKind) error

	// DeactivateLikeBySender retracts the sender's like row on one content
	// record when the vote is cancelled or flipped to a down vote.
	DeactivateLikeBySender(ctx context.Context, senderID string, ref entity.ContentRef) error
}

type notificationRepository struct{}

func NewNotificationRepository() *notificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

func (r *notificationRepository) CreateList(ctx context.Context, notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(notifications).Error
}

func (r *notificationRepository) GetList(
	ctx context.Context, filter NotificationFilter,
) ([]entity.Notification, error) {
	tx := xcontext.DB(ctx).
		Where("recipient_id=? AND kind=? AND is_active=true", filter.RecipientID, filter.Kind).
		Order("updated_at DESC")

	// A zero limit reads the whole inbox of that kind.
	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.Notification
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) CountUnviewed(
	ctx context.Context, recipientID string, kind entity.NotificationKind,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("recipient_id=? AND kind=? AND is_active=true AND is_viewed=false", recipientID, kind).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *notificationRepository) MarkViewed(
	ctx context.Context, recipientID string, kind entity.NotificationKind,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("recipient_id=? AND kind=? AND is_viewed=false", recipientID, kind).
		Update("is_viewed", true).Error
}

func (r *notificationRepository) GetLike(
	ctx context.Context, senderID string, ref entity.ContentRef,
) (*entity.Notification, error) {
	var result entity.Notification
	err := xcontext.DB(ctx).
		Where(
			"sender_id=? AND kind=? AND origin=? AND target_id=?",
			senderID, entity.NotifyLike, ref.Origin, ref.TargetID,
		).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *notificationRepository) UpdateLike(ctx context.Context, id int64, isActive, isViewed bool) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("id=?", id).
		Updates(map[string]any{
			"is_active":  isActive,
			"is_viewed":  isViewed,
			"updated_at": time.Now(),
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *notificationRepository) DeactivateByTarget(
	ctx context.Context, ref entity.ContentRef, kinds ...entity.NotificationKind,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("origin=? AND target_id=? AND is_active=true", ref.Origin, ref.TargetID)

	if len(kinds) > 0 {
		tx = tx.Where("kind IN (?)", kinds)
	}

	return tx.Update("is_active", false).Error
}

func (r *notificationRepository) DeactivateLikeBySender(
	ctx context.Context, senderID string, ref entity.ContentRef,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where(
			"sender_id=? AND kind=? AND origin=? AND target_id=?",
			senderID, entity.NotifyLike, ref.Origin, ref.TargetID,
		).
		Update("is_active", false).Error
}
