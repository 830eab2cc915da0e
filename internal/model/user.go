package model

type ShortUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type User struct {
	ShortUser

	Introduction string `json:"introduction"`
	FollowingNum int64  `json:"following_num"`
	FollowerNum  int64  `json:"follower_num"`
	UpNum        int64  `json:"up_num"`
	Experience   int64  `json:"experience"`
}

type GetUserRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type GetUserResponse struct {
	User User `json:"user"`

	// IsFollowing reports whether the requesting user follows this user.
	IsFollowing bool `json:"is_following"`
	IsBlocked   bool `json:"is_blocked"`
}

type UpdateUserRequest struct {
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	Introduction string `json:"introduction"`
}

type UpdateUserResponse struct{}

type FollowRequest struct {
	UserID string `json:"user_id"`
}

type FollowResponse struct{}

type UnfollowRequest struct {
	UserID string `json:"user_id"`
}

type UnfollowResponse struct{}

type GetFollowingsRequest struct {
	UserID string `json:"user_id" form:"user_id"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetFollowingsResponse struct {
	Users []ShortUser `json:"users"`
}

type GetFollowersRequest struct {
	UserID string `json:"user_id" form:"user_id"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetFollowersResponse struct {
	Users []ShortUser `json:"users"`
}

type BlockRequest struct {
	UserID string `json:"user_id"`
}

type BlockResponse struct{}

type UnblockRequest struct {
	UserID string `json:"user_id"`
}

type UnblockResponse struct{}

type GetBlocksRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetBlocksResponse struct {
	Users []ShortUser `json:"users"`
}

type SignRequest struct{}

type SignResponse struct {
	Experience int64 `json:"experience"`
}
