package matcher

import "strings"

// tier scores years falling in [min, max].
type tier struct {
	min, max int
	score    float64
}

// experienceBucket maps a level label onto tiered scores. Tiers are
// checked in order, and years outside every tier get the fallback.
type experienceBucket struct {
	name     string
	labels   []string
	tiers    []tier
	fallback float64
}

const anyYears = 1 << 30

// Gaps count more at the junior end than at the senior end, which is
// why this is a table and not a distance formula.
var experienceBuckets = []experienceBucket{
	{
		name:   "fresher",
		labels: []string{"fresher", "entry"},
		tiers: []tier{
			{min: 0, max: 1, score: 1.0},
			{min: 0, max: 2, score: 0.8},
		},
		fallback: 0.6,
	},
	{
		name:   "junior",
		labels: []string{"1-3", "junior"},
		tiers: []tier{
			{min: 1, max: 3, score: 1.0},
			{min: 0, max: 5, score: 0.8},
		},
		fallback: 0.6,
	},
	{
		name:   "mid",
		labels: []string{"3-5", "mid"},
		tiers: []tier{
			{min: 3, max: 5, score: 1.0},
			{min: 2, max: 7, score: 0.8},
		},
		fallback: 0.6,
	},
	{
		name:   "senior",
		labels: []string{"5+", "senior"},
		tiers: []tier{
			{min: 5, max: anyYears, score: 1.0},
			{min: 3, max: anyYears, score: 0.7},
		},
		fallback: 0.4,
	},
}

// Experience scores subject years against a free-form level label.
// Empty or unrecognized labels score neutral.
func Experience(years int, level string) float64 {
	bucket, ok := lookupBucket(level)
	if !ok {
		return neutralExperience
	}
	if years < 0 {
		years = 0
	}
	for _, t := range bucket.tiers {
		if years >= t.min && years <= t.max {
			return t.score
		}
	}
	return bucket.fallback
}

// ExperienceBucket returns the bucket name a label resolves to.
func ExperienceBucket(level string) (string, bool) {
	bucket, ok := lookupBucket(level)
	return bucket.name, ok
}

func lookupBucket(level string) (experienceBucket, bool) {
	label := NormalizeTerm(level)
	if label == "" {
		return experienceBucket{}, false
	}
	for _, bucket := range experienceBuckets {
		for _, l := range bucket.labels {
			if strings.Contains(label, l) {
				return bucket, true
			}
		}
	}
	return experienceBucket{}, false
}
