package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var questColumns = map[entity.QuestType]string{
	entity.QuestSign:         "sign_num",
	entity.QuestArticle:      "article_num",
	entity.QuestColumn:       "column_num",
	entity.QuestAdopted:      "adopted_num",
	entity.QuestComment:      "comment_num",
	entity.QuestLike:         "like_num",
	entity.QuestCommentLiked: "comment_liked_num",
	entity.QuestArticleLiked: "article_liked_num",
	entity.QuestCommented:    "commented_num",
	entity.QuestFollowed:     "followed_num",
}

type DailyRepository interface {
	Get(ctx context.Context, userID string, day time.Time) (*entity.Daily, error)

	// Increase bumps the quest counter of the user's row for that day if it
	// is still below cap. It reports whether the counter moved, so callers
	// know whether to grant the reward. The conditional update keeps the cap
	// safe under concurrent completions.
	Increase(ctx context.Context, userID string, day time.Time, quest entity.QuestType, cap int64) (bool, error)
}

type dailyRepository struct{}

func NewDailyRepository() *dailyRepository {
	return &dailyRepository{}
}

func (r *dailyRepository) Get(ctx context.Context, userID string, day time.Time) (*entity.Daily, error) {
	var result entity.Daily
	err := xcontext.DB(ctx).Where("user_id=? AND day=?", userID, day).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *dailyRepository) Increase(
	ctx context.Context, userID string, day time.Time, quest entity.QuestType, cap int64,
) (bool, error) {
	column, ok := questColumns[quest]
	if !ok {
		return false, fmt.Errorf("unknown quest %s", quest)
	}

	if err := r.ensureRow(ctx, userID, day); err != nil {
		return false, err
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Daily{}).
		Where("user_id=? AND day=? AND "+column+"<?", userID, day, cap).
		Update(column, gorm.Expr(column+"+1"))

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *dailyRepository) ensureRow(ctx context.Context, userID string, day time.Time) error {
	err := xcontext.DB(ctx).Create(&entity.Daily{UserID: userID, Day: day}).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		// Another writer may have created the row first.
		var count int64
		countErr := xcontext.DB(ctx).
			Model(&entity.Daily{}).
			Where("user_id=? AND day=?", userID, day).
			Count(&count).Error
		if countErr != nil {
			return countErr
		}

		if count == 0 {
			return err
		}
	}

	return nil
}
