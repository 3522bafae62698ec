package models

// Spot is a study spot, deduplicated by normalized (trimmed, lowercased) name.
// Category is set on first creation and backfilled later only while empty.
type Spot struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
