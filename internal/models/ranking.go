package models

import "time"

// Ranking is one entry in one user's ordered list. A user's list is always
// replaced as a whole; individual rankings are never edited in place.
type Ranking struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	SpotID    int       `json:"spot_id"`
	Rank      int       `json:"rank"` // 1-based position in the list
	Score     float64   `json:"score"`
	Tier      string    `json:"tier"`
	Notes     string    `json:"notes"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}

// RankingView is a ranking joined with its resolved spot and derived rating,
// the shape handed back to callers.
type RankingView struct {
	Ranking
	Spot   *Spot  `json:"spot"`
	Rating string `json:"rating"`
}

// RankedItem is one input entry for a full-list replace (index 0 = rank 1).
type RankedItem struct {
	SpotName  string    `json:"spot_name"`
	Score     float64   `json:"score"`
	Notes     string    `json:"notes"`
	PhotoURL  string    `json:"photo_url"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Matchup is a random pair of distinct spots for head-to-head comparison.
type Matchup struct {
	SpotA *Spot `json:"spot_a"`
	SpotB *Spot `json:"spot_b"`
}
