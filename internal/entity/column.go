package entity

import "time"

type Column struct {
	SnowFlakeBase

	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Title   string
	Content string
	Summary string
	Cover   string

	// A draft column is only visible to its author. Publishing clears the
	// flag and fans out a dynamic notification to followers.
	IsDraft bool

	// IsShared marks a column the author republished from an article.
	IsShared bool

	UpNum      int64
	DownNum    int64
	CommentNum int64
	ViewNum    int64

	CommentTime time.Time
}
