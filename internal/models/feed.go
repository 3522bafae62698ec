package models

import "time"

// FeedEvent records that a user newly added a spot to their ranked list.
// Reorders and score edits never produce events. The spot fields are a
// snapshot taken at emission time.
type FeedEvent struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	Username     string    `json:"username"`
	SpotID       int       `json:"spot_id"`
	SpotName     string    `json:"spot_name"`
	SpotCategory string    `json:"spot_category"`
	Score        float64   `json:"score"`
	Tier         string    `json:"tier"`
	CreatedAt    time.Time `json:"created_at"`
}
