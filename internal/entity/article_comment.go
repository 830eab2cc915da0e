package entity

type ArticleComment struct {
	SnowFlakeBase

	ArticleID int64   `gorm:"index"`
	Article   Article `gorm:"foreignKey:ArticleID"`

	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	// ParentID is zero for a top-level comment. Nested comments always
	// anchor to a top-level parent, so the tree is at most two levels deep.
	ParentID int64 `gorm:"index"`

	// ReplyToID is the user a nested comment answers, which may differ from
	// the parent comment author.
	ReplyToID string

	Content string

	UpNum      int64
	DownNum    int64
	CommentNum int64
}
