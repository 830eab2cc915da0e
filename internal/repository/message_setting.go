package repository

import (
	"context"
	"errors"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MessageSettingRepository interface {
	// Get returns the user's settings, falling back to all-alert defaults
	// when the user never saved any.
	Get(ctx context.Context, userID string) (*entity.MessageSetting, error)

	// GetByUserIDs returns the saved settings of the given users. Users
	// without a row are absent from the result.
	GetByUserIDs(ctx context.Context, userIDs []string) ([]entity.MessageSetting, error)
	Upsert(ctx context.Context, setting *entity.MessageSetting) error
}

type messageSettingRepository struct{}

func NewMessageSettingRepository() *messageSettingRepository {
	return &messageSettingRepository{}
}

func (r *messageSettingRepository) Get(ctx context.Context, userID string) (*entity.MessageSetting, error) {
	var result entity.MessageSetting
	err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entity.MessageSetting{
				UserID:  userID,
				Reply:   entity.PreferenceAlert,
				At:      entity.PreferenceAlert,
				Like:    entity.PreferenceAlert,
				Dynamic: entity.PreferenceAlert,
				System:  entity.PreferenceAlert,
				Private: entity.PreferenceAlert,
			}, nil
		}

		return nil, err
	}

	return &result, nil
}

func (r *messageSettingRepository) GetByUserIDs(
	ctx context.Context, userIDs []string,
) ([]entity.MessageSetting, error) {
	var result []entity.MessageSetting
	err := xcontext.DB(ctx).Find(&result, "user_id IN (?)", userIDs).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageSettingRepository) Upsert(ctx context.Context, setting *entity.MessageSetting) error {
	tx := xcontext.DB(ctx).
		Model(&entity.MessageSetting{}).
		Where("user_id=?", setting.UserID).
		Updates(map[string]any{
			"reply":   setting.Reply,
			"at":      setting.At,
			"like":    setting.Like,
			"dynamic": setting.Dynamic,
			"system":  setting.System,
			"private": setting.Private,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return xcontext.DB(ctx).Create(setting).Error
	}

	return nil
}
