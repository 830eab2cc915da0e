package model

type TrendingItem struct {
	Origin   string `json:"origin"`
	TargetID int64  `json:"target_id"`
	Title    string `json:"title"`
	Score    int64  `json:"score"`
	Rank     int    `json:"rank"`
}

type GetTrendingRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetTrendingResponse struct {
	Items []TrendingItem `json:"items"`
}
