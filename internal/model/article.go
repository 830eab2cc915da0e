package model

type Article struct {
	ID     int64     `json:"id"`
	Author ShortUser `json:"author"`

	Board   string `json:"board"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	Summary string `json:"summary"`

	UpNum      int64 `json:"up_num"`
	DownNum    int64 `json:"down_num"`
	CommentNum int64 `json:"comment_num"`
	ViewNum    int64 `json:"view_num"`

	CreatedAt   string `json:"created_at"`
	CommentTime string `json:"comment_time"`

	// MyVote is "up", "down", or empty for the requesting user.
	MyVote string `json:"my_vote,omitempty"`
}

type CreateArticleRequest struct {
	Board   string `json:"board"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateArticleResponse struct {
	ID int64 `json:"id"`
}

type UpdateArticleRequest struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateArticleResponse struct{}

type GetArticleRequest struct {
	ID int64 `json:"id" form:"id"`
}

type GetArticleResponse struct {
	Article Article `json:"article"`
}

type GetArticlesRequest struct {
	Board  string `json:"board" form:"board"`
	Order  string `json:"order" form:"order"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetArticlesResponse struct {
	Articles []Article `json:"articles"`
}

type DeleteArticleRequest struct {
	ID int64 `json:"id"`
}

type DeleteArticleResponse struct{}

type SaveArticleDraftRequest struct {
	Board   string `json:"board"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type SaveArticleDraftResponse struct{}

type GetArticleDraftRequest struct{}

type GetArticleDraftResponse struct {
	Board   string `json:"board"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Comment struct {
	ID     int64     `json:"id"`
	Author ShortUser `json:"author"`

	// ReplyTo is set on nested comments answering another user.
	ReplyTo *ShortUser `json:"reply_to,omitempty"`

	Content string `json:"content"`

	UpNum      int64 `json:"up_num"`
	DownNum    int64 `json:"down_num"`
	CommentNum int64 `json:"comment_num"`

	CreatedAt string `json:"created_at"`
	MyVote    string `json:"my_vote,omitempty"`
}

type CreateArticleCommentRequest struct {
	ArticleID int64 `json:"article_id"`

	// ParentID nests the comment under a top-level comment.
	ParentID int64 `json:"parent_id"`

	Content string `json:"content"`

	// AtNames mentions users by name.
	AtNames []string `json:"at_names"`
}

type CreateArticleCommentResponse struct {
	ID int64 `json:"id"`
}

type GetArticleCommentsRequest struct {
	ArticleID int64 `json:"article_id" form:"article_id"`
	ParentID  int64 `json:"parent_id" form:"parent_id"`
	Offset    int   `json:"offset" form:"offset"`
	Limit     int   `json:"limit" form:"limit"`
}

type GetArticleCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type DeleteArticleCommentRequest struct {
	ID int64 `json:"id"`
}

type DeleteArticleCommentResponse struct{}
