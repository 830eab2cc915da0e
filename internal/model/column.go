package model

type Column struct {
	ID     int64     `json:"id"`
	Author ShortUser `json:"author"`

	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Summary string `json:"summary"`
	Cover   string `json:"cover"`

	IsDraft  bool `json:"is_draft"`
	IsShared bool `json:"is_shared"`

	UpNum      int64 `json:"up_num"`
	DownNum    int64 `json:"down_num"`
	CommentNum int64 `json:"comment_num"`
	ViewNum    int64 `json:"view_num"`

	CreatedAt string `json:"created_at"`
	MyVote    string `json:"my_vote,omitempty"`
}

type CreateColumnRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Cover   string `json:"cover"`

	// AsDraft keeps the column invisible until published.
	AsDraft bool `json:"as_draft"`
}

type CreateColumnResponse struct {
	ID int64 `json:"id"`
}

type PublishColumnRequest struct {
	ID int64 `json:"id"`
}

type PublishColumnResponse struct{}

type ShareArticleRequest struct {
	ArticleID int64 `json:"article_id"`
}

type ShareArticleResponse struct {
	ColumnID int64 `json:"column_id"`
}

type GetColumnRequest struct {
	ID int64 `json:"id" form:"id"`
}

type GetColumnResponse struct {
	Column Column `json:"column"`
}

type GetColumnsRequest struct {
	AuthorID string `json:"author_id" form:"author_id"`
	Offset   int    `json:"offset" form:"offset"`
	Limit    int    `json:"limit" form:"limit"`
}

type GetColumnsResponse struct {
	Columns []Column `json:"columns"`
}

type DeleteColumnRequest struct {
	ID int64 `json:"id"`
}

type DeleteColumnResponse struct{}

type CreateColumnCommentRequest struct {
	ColumnID int64    `json:"column_id"`
	ParentID int64    `json:"parent_id"`
	Content  string   `json:"content"`
	AtNames  []string `json:"at_names"`
}

type CreateColumnCommentResponse struct {
	ID int64 `json:"id"`
}

type GetColumnCommentsRequest struct {
	ColumnID int64 `json:"column_id" form:"column_id"`
	ParentID int64 `json:"parent_id" form:"parent_id"`
	Offset   int   `json:"offset" form:"offset"`
	Limit    int   `json:"limit" form:"limit"`
}

type GetColumnCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type DeleteColumnCommentRequest struct {
	ID int64 `json:"id"`
}

type DeleteColumnCommentResponse struct{}
