package model

type Issue struct {
	ID     int64     `json:"id"`
	Author ShortUser `json:"author"`

	Title   string `json:"title"`
	Content string `json:"content,omitempty"`

	AdoptedCommentID int64 `json:"adopted_comment_id"`

	CommentNum int64 `json:"comment_num"`
	ViewNum    int64 `json:"view_num"`

	CreatedAt string `json:"created_at"`
}

type IssueComment struct {
	ID     int64     `json:"id"`
	Author ShortUser `json:"author"`

	Content string `json:"content"`

	UpNum     int64 `json:"up_num"`
	DownNum   int64 `json:"down_num"`
	IsAdopted bool  `json:"is_adopted"`

	CreatedAt string `json:"created_at"`
	MyVote    string `json:"my_vote,omitempty"`
}

type CreateIssueRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateIssueResponse struct {
	ID int64 `json:"id"`
}

type GetIssueRequest struct {
	ID int64 `json:"id" form:"id"`
}

type GetIssueResponse struct {
	Issue Issue `json:"issue"`
}

type GetIssuesRequest struct {
	OnlyOpen bool `json:"only_open" form:"only_open"`
	Offset   int  `json:"offset" form:"offset"`
	Limit    int  `json:"limit" form:"limit"`
}

type GetIssuesResponse struct {
	Issues []Issue `json:"issues"`
}

type DeleteIssueRequest struct {
	ID int64 `json:"id"`
}

type DeleteIssueResponse struct{}

type CreateIssueCommentRequest struct {
	IssueID int64    `json:"issue_id"`
	Content string   `json:"content"`
	AtNames []string `json:"at_names"`
}

type CreateIssueCommentResponse struct {
	ID int64 `json:"id"`
}

type GetIssueCommentsRequest struct {
	IssueID int64 `json:"issue_id" form:"issue_id"`
	Offset  int   `json:"offset" form:"offset"`
	Limit   int   `json:"limit" form:"limit"`
}

type GetIssueCommentsResponse struct {
	Comments []IssueComment `json:"comments"`
}

type AdoptIssueCommentRequest struct {
	IssueID   int64 `json:"issue_id"`
	CommentID int64 `json:"comment_id"`
}

type AdoptIssueCommentResponse struct{}

type DeleteIssueCommentRequest struct {
	ID int64 `json:"id"`
}

type DeleteIssueCommentResponse struct{}
