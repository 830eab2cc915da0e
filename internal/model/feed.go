package model

// FeedItem is one entry of the merged home feed. Exactly one of Article or
// Column is set, according to Origin.
type FeedItem struct {
	Origin  string   `json:"origin"`
	Article *Article `json:"article,omitempty"`
	Column  *Column  `json:"column,omitempty"`
}

type GetFeedRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetFeedResponse struct {
	Items []FeedItem `json:"items"`
}

type GetUserFeedRequest struct {
	// UserID defaults to the requesting user.
	UserID string `json:"user_id" form:"user_id"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetUserFeedResponse struct {
	Items []FeedItem `json:"items"`
}
