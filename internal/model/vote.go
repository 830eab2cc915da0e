package model

// VoteRequest toggles or flips the caller's vote on one content record.
// Sending the same state twice cancels the vote.
type VoteRequest struct {
	Origin   string `json:"origin"`
	TargetID int64  `json:"target_id"`
	IsUp     bool   `json:"is_up"`
}

type VoteResponse struct {
	// State is "up", "down", or empty after the toggle was applied.
	State string `json:"state"`
}
