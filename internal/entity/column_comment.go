package entity

type ColumnComment struct {
	SnowFlakeBase

	ColumnID int64  `gorm:"index"`
	Column   Column `gorm:"foreignKey:ColumnID"`

	AuthorID string `gorm:"index"`
	Author   User   `gorm:"foreignKey:AuthorID"`

	// ParentID is zero for a top-level comment.
	ParentID int64 `gorm:"index"`

	ReplyToID string

	Content string

	UpNum      int64
	DownNum    int64
	CommentNum int64
}
