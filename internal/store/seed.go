package store

import (
	"fmt"
	"time"

	"github.com/stelihq/steli-backend/internal/models"
)

// Seed populates a fresh store with demo data matching the app mockups. The
// store is volatile, so this runs on every boot.
func Seed(s *Store) error {
	now := s.now()

	spots := []struct {
		name     string
		category string
	}{
		{"Dana Porter Library", "Library"},
		{"SLC Silent Study", "Student Center"},
		{"DC Library 2nd Floor", "Library"},
		{"QNC Study Lounge", "Academic Building"},
		{"E7 Coffee Corner", "Academic Building"},
		{"MC Comfy Lounge", "Academic Building"},
		{"PAC Study Room", "Recreation"},
		{"DP 3rd Floor Quiet Zone", "Library"},
	}
	for _, sp := range spots {
		s.GetOrCreateSpot(sp.name, sp.category)
	}

	alex, err := s.CreateUser("alex_zhang", "password", "Alex", "Zhang")
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	s.SetRankings(alex.ID, []models.RankedItem{
		{SpotName: "Dana Porter Library", Score: 9.2,
			Notes:     "Quiet, great for deep work. Outlets everywhere.",
			CreatedAt: now.Add(-2 * 24 * time.Hour)},
		{SpotName: "DC Library 2nd Floor", Score: 8.8,
			Notes:     "Hidden gem. Good natural light.",
			CreatedAt: now.Add(-2 * 24 * time.Hour)},
		{SpotName: "QNC Study Lounge", Score: 8.5,
			Notes:     "Modern vibe, can get busy during midterms.",
			CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{SpotName: "SLC Silent Study", Score: 7.6,
			Notes:     "Decent but lacks outlets near windows.",
			CreatedAt: now.Add(-3 * 24 * time.Hour)},
		{SpotName: "E7 Coffee Corner", Score: 7.2,
			Notes:     "Good for group work, too noisy for solo.",
			CreatedAt: now.Add(-4 * 24 * time.Hour)},
	})

	return nil
}
