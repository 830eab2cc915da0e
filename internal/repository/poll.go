package repository

import (
	"context"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PollRepository interface {
	Create(ctx context.Context, poll *entity.Poll, options []*entity.PollOption) error
	GetByID(ctx context.Context, id int64) (*entity.Poll, error)
	GetByArticleID(ctx context.Context, articleID int64) (*entity.Poll, error)
	GetOptions(ctx context.Context, pollID int64) ([]entity.PollOption, error)
	AddOptionVotes(ctx context.Context, optionIDs []int64, delta int64) error

	CreateBallot(ctx context.Context, ballot *entity.PollBallot) error
	GetBallot(ctx context.Context, userID string, pollID int64) (*entity.PollBallot, error)
}

type pollRepository struct{}

func NewPollRepository() *pollRepository {
	return &pollRepository{}
}

func (r *pollRepository) Create(
	ctx context.Context, poll *entity.Poll, options []*entity.PollOption,
) error {
	if err := xcontext.DB(ctx).Create(poll).Error; err != nil {
		return err
	}

	for _, option := range options {
		option.PollID = poll.ID
	}

	return xcontext.DB(ctx).Create(options).Error
}

func (r *pollRepository) GetByID(ctx context.Context, id int64) (*entity.Poll, error) {
	var result entity.Poll
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pollRepository) GetByArticleID(ctx context.Context, articleID int64) (*entity.Poll, error) {
	var result entity.Poll
	if err := xcontext.DB(ctx).Take(&result, "article_id=?", articleID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *pollRepository) GetOptions(ctx context.Context, pollID int64) ([]entity.PollOption, error) {
	var result []entity.PollOption
	err := xcontext.DB(ctx).
		Where("poll_id=?", pollID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pollRepository) AddOptionVotes(ctx context.Context, optionIDs []int64, delta int64) error {
	return xcontext.DB(ctx).
		Model(&entity.PollOption{}).
		Where("id IN (?)", optionIDs).
		Update("vote_num", gorm.Expr("vote_num+?", delta)).Error
}

func (r *pollRepository) CreateBallot(ctx context.Context, ballot *entity.PollBallot) error {
	return xcontext.DB(ctx).Create(ballot).Error
}

func (r *pollRepository) GetBallot(
	ctx context.Context, userID string, pollID int64,
) (*entity.PollBallot, error) {
	var result entity.PollBallot
	err := xcontext.DB(ctx).
		Where("user_id=? AND poll_id=?", userID, pollID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
