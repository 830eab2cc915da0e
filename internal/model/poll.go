package model

type PollOption struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	VoteNum int64  `json:"vote_num"`
}

type Poll struct {
	ID        int64  `json:"id"`
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`

	MinChoices int `json:"min_choices"`
	MaxChoices int `json:"max_choices"`

	Deadline string       `json:"deadline"`
	Options  []PollOption `json:"options"`

	// MyOptionIDs holds the requesting user's submitted choices, empty if
	// they have not voted yet.
	MyOptionIDs []int64 `json:"my_option_ids,omitempty"`
}

type CreatePollRequest struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`

	MinChoices int `json:"min_choices"`
	MaxChoices int `json:"max_choices"`

	Deadline string   `json:"deadline"`
	Options  []string `json:"options"`
}

type CreatePollResponse struct {
	ID int64 `json:"id"`
}

type GetPollRequest struct {
	ArticleID int64 `json:"article_id" form:"article_id"`
}

type GetPollResponse struct {
	Poll Poll `json:"poll"`
}

type SubmitBallotRequest struct {
	PollID    int64   `json:"poll_id"`
	OptionIDs []int64 `json:"option_ids"`
}

type SubmitBallotResponse struct{}
