package model

type Notification struct {
	ID     int64     `json:"id"`
	Kind   string    `json:"kind"`
	Sender ShortUser `json:"sender"`

	Origin   string `json:"origin"`
	TargetID int64  `json:"target_id"`

	// Preview is a short extract of the content the event points at.
	Preview string `json:"preview,omitempty"`

	IsViewed  bool   `json:"is_viewed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type GetNotificationsRequest struct {
	Kind   string `json:"kind" form:"kind"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type CountUnviewedRequest struct{}

type CountUnviewedResponse struct {
	Reply   int64 `json:"reply"`
	At      int64 `json:"at"`
	Like    int64 `json:"like"`
	Dynamic int64 `json:"dynamic"`
	System  int64 `json:"system"`
	Private int64 `json:"private"`
}

type GetLikeSummaryRequest struct{}

// LikeGroup aggregates the like notifications one content record received.
type LikeGroup struct {
	Origin   string `json:"origin"`
	TargetID int64  `json:"target_id"`
	Preview  string `json:"preview,omitempty"`

	Total    int64 `json:"total"`
	Unviewed int64 `json:"unviewed"`

	LatestSender ShortUser `json:"latest_sender"`
	LatestAt     string    `json:"latest_at"`
}

type GetLikeSummaryResponse struct {
	Groups []LikeGroup `json:"groups"`
}

type MarkViewedRequest struct {
	Kind string `json:"kind"`
}

type MarkViewedResponse struct{}

type GetMessageSettingRequest struct{}

type GetMessageSettingResponse struct {
	Reply   string `json:"reply"`
	At      string `json:"at"`
	Like    string `json:"like"`
	Dynamic string `json:"dynamic"`
	System  string `json:"system"`
	Private string `json:"private"`
}

type UpdateMessageSettingRequest struct {
	Reply   string `json:"reply"`
	At      string `json:"at"`
	Like    string `json:"like"`
	Dynamic string `json:"dynamic"`
	System  string `json:"system"`
	Private string `json:"private"`
}

type UpdateMessageSettingResponse struct{}
