package models

// Follow is a directed edge in the follow graph. Self-loops are rejected by
// the store; the (follower, followee) pair is unique.
type Follow struct {
	FollowerID int `json:"follower_id"`
	FolloweeID int `json:"followee_id"`
}
