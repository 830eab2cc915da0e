package entity

import "time"

type Issue struct {
	SnowFlakeBase

	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Title   string
	Content string

	// AdoptedCommentID is the answer the author accepted, zero if none yet.
	AdoptedCommentID int64

	CommentNum int64
	ViewNum    int64

	CommentTime time.Time
}

type IssueComment struct {
	SnowFlakeBase

	IssueID int64 `gorm:"index"`
	Issue   Issue `gorm:"foreignKey:IssueID"`

	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	Content string

	UpNum   int64
	DownNum int64

	IsAdopted bool
}
