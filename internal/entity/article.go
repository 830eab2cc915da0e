package entity

import "time"

type Article struct {
	SnowFlakeBase

	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Board   string `gorm:"index"`
	Title   string
	Content string
	Summary string

	UpNum      int64
	DownNum    int64
	CommentNum int64
	ViewNum    int64

	// CommentTime is the latest comment activity, used for bump ordering.
	CommentTime time.Time
}

// ArticleDraft keeps at most one unpublished article per user.
type ArticleDraft struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	UpdatedAt time.Time

	Board   string
	Title   string
	Content string
}
