package entity

import "time"

// Poll attaches a multiple-choice vote to an article.
type Poll struct {
	SnowFlakeBase

	ArticleID int64   `gorm:"uniqueIndex"`
	Article   Article `gorm:"foreignKey:ArticleID"`

	Title string

	// A ballot must select between MinChoices and MaxChoices options.
	MinChoices int
	MaxChoices int

	Deadline time.Time
}

type PollOption struct {
	ID int64 `gorm:"primaryKey"`

	PollID int64 `gorm:"index"`
	Poll   Poll  `gorm:"foreignKey:PollID"`

	Content string
	VoteNum int64
}

// PollBallot is one user's single submission to a poll.
type PollBallot struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	PollID int64 `gorm:"primaryKey"`
	Poll   Poll  `gorm:"foreignKey:PollID"`

	OptionIDs Array[int64] `gorm:"type:text"`
}
