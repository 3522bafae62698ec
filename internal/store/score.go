package store

// Rating thresholds split 0-10 into three equal bands. These are exact
// rational boundaries; both sides of a comparison must use the same values.
const (
	badMax  = 10.0 / 3
	okayMax = 20.0 / 3
)

// ScoreToTier converts a numeric score to a letter tier. Bands are inclusive
// on their lower edge.
func ScoreToTier(score float64) string {
	switch {
	case score >= 9.0:
		return "S"
	case score >= 8.0:
		return "A"
	case score >= 7.0:
		return "B"
	case score >= 6.0:
		return "C"
	case score >= 5.0:
		return "D"
	default:
		return "F"
	}
}

// ScoreToRating buckets a score into bad / okay / good.
func ScoreToRating(score float64) string {
	switch {
	case score < badMax:
		return "bad"
	case score < okayMax:
		return "okay"
	default:
		return "good"
	}
}
