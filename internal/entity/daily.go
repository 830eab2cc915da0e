package entity

import (
	"time"

	"github.com/forumix/backend/pkg/enum"
)

type QuestType string

var (
	QuestSign         = enum.New(QuestType("sign"))
	QuestArticle      = enum.New(QuestType("article"))
	QuestColumn       = enum.New(QuestType("column"))
	QuestAdopted      = enum.New(QuestType("adopted"))
	QuestComment      = enum.New(QuestType("comment"))
	QuestLike         = enum.New(QuestType("like"))
	QuestCommentLiked = enum.New(QuestType("comment_liked"))
	QuestArticleLiked = enum.New(QuestType("article_liked"))
	QuestCommented    = enum.New(QuestType("commented"))
	QuestFollowed     = enum.New(QuestType("followed"))
)

// QuestReward is the experience granted per completion and the daily cap of
// rewarded completions for each quest.
type QuestReward struct {
	Experience int64
	DailyCap   int64
}

var QuestRewards = map[QuestType]QuestReward{
	QuestSign:         {Experience: 50, DailyCap: 1},
	QuestArticle:      {Experience: 20, DailyCap: 2},
	QuestColumn:       {Experience: 50, DailyCap: 5},
	QuestAdopted:      {Experience: 50, DailyCap: 5},
	QuestComment:      {Experience: 10, DailyCap: 10},
	QuestLike:         {Experience: 5, DailyCap: 10},
	QuestCommentLiked: {Experience: 10, DailyCap: 10},
	QuestArticleLiked: {Experience: 10, DailyCap: 10},
	QuestCommented:    {Experience: 20, DailyCap: 10},
	QuestFollowed:     {Experience: 20, DailyCap: 10},
}

// Daily counts one user's rewarded quest completions for one calendar day.
type Daily struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	// Day is midnight of the calendar day the row covers.
	Day time.Time `gorm:"primaryKey"`

	UpdatedAt time.Time

	SignNum         int64
	ArticleNum      int64
	ColumnNum       int64
	AdoptedNum      int64
	CommentNum      int64
	LikeNum         int64
	CommentLikedNum int64
	ArticleLikedNum int64
	CommentedNum    int64
	FollowedNum     int64
}

// Count returns the rewarded completions of one quest on this day.
func (d Daily) Count(quest QuestType) int64 {
	switch quest {
	case QuestSign:
		return d.SignNum
	case QuestArticle:
		return d.ArticleNum
	case QuestColumn:
		return d.ColumnNum
	case QuestAdopted:
		return d.AdoptedNum
	case QuestComment:
		return d.CommentNum
	case QuestLike:
		return d.LikeNum
	case QuestCommentLiked:
		return d.CommentLikedNum
	case QuestArticleLiked:
		return d.ArticleLikedNum
	case QuestCommented:
		return d.CommentedNum
	case QuestFollowed:
		return d.FollowedNum
	}

	return 0
}
