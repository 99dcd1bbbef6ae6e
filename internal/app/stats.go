package app

import (
	"sort"

	"github.com/khrees2412/talentmatch/pkg/models"
)

// CategoryStats summarizes the stored attempts for one category.
type CategoryStats struct {
	Category       string
	Attempts       int
	AveragePercent float64
	BestPercent    float64
}

// Stats summarizes assessment history.
type Stats struct {
	Total          int
	AveragePercent float64
	Categories     []CategoryStats
	Recent         []*models.AssessmentResult
}

const recentLimit = 5

// AssessmentStats aggregates stored results. profileID 0 covers everyone.
func (a *App) AssessmentStats(profileID int) (Stats, error) {
	results, err := a.Store.GetAssessmentResults(profileID)
	if err != nil {
		return Stats{}, err
	}
	return calculateStats(results), nil
}

// calculateStats expects results newest first, as the store returns them.
func calculateStats(results []*models.AssessmentResult) Stats {
	stats := Stats{Total: len(results)}
	if len(results) == 0 {
		return stats
	}

	byCategory := map[string]*CategoryStats{}
	sum := 0.0
	for _, r := range results {
		pct := r.Percent()
		sum += pct

		cs, ok := byCategory[r.Category]
		if !ok {
			cs = &CategoryStats{Category: r.Category}
			byCategory[r.Category] = cs
		}
		cs.Attempts++
		cs.AveragePercent += pct
		cs.BestPercent = max(cs.BestPercent, pct)
	}

	stats.AveragePercent = sum / float64(len(results))
	for _, cs := range byCategory {
		cs.AveragePercent /= float64(cs.Attempts)
		stats.Categories = append(stats.Categories, *cs)
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		return stats.Categories[i].Category < stats.Categories[j].Category
	})

	stats.Recent = results[:min(recentLimit, len(results))]
	return stats
}
