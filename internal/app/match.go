package app

import (
	"fmt"

	"github.com/khrees2412/talentmatch/internal/export"
	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/khrees2412/talentmatch/pkg/models"
	"go.uber.org/zap"
)

// RankJobs ranks postings for profile and drops results below minScore.
func (a *App) RankJobs(profile models.Profile, postings []models.Posting, topK int, minScore float64) export.MatchReport {
	results := a.Ranker.RankJobs(profile, postings, topK)
	results = matcher.FilterMinScore(results, minScore)

	names := make(map[int]string, len(postings))
	for _, p := range postings {
		names[p.ID] = postingLabel(p)
	}

	return export.MatchReport{
		Title:       "Jobs for " + profileLabel(profile),
		Direction:   string(matcher.DirectionJobs),
		Subject:     profileLabel(profile),
		Results:     results,
		TargetNames: names,
		GeneratedAt: a.now(),
	}
}

// RankCandidates ranks candidates for posting and drops results below minScore.
func (a *App) RankCandidates(posting models.Posting, candidates []models.Profile, topK int, minScore float64) export.MatchReport {
	results := a.Ranker.RankCandidates(posting, candidates, topK)
	results = matcher.FilterMinScore(results, minScore)

	names := make(map[int]string, len(candidates))
	for _, c := range candidates {
		names[c.ID] = profileLabel(c)
	}

	return export.MatchReport{
		Title:       "Candidates for " + postingLabel(posting),
		Direction:   string(matcher.DirectionCandidates),
		Subject:     postingLabel(posting),
		Results:     results,
		TargetNames: names,
		GeneratedAt: a.now(),
	}
}

// MatchJobs ranks every stored posting for the stored profile profileID.
func (a *App) MatchJobs(profileID, topK int, minScore float64) (export.MatchReport, error) {
	profile, err := a.Store.GetProfile(profileID)
	if err != nil {
		return export.MatchReport{}, err
	}
	postings, err := a.Store.GetAllPostings()
	if err != nil {
		return export.MatchReport{}, fmt.Errorf("fetch postings: %w", err)
	}

	a.Logger.Debug("matching jobs", zap.Int("profile_id", profileID), zap.Int("postings", len(postings)))
	return a.RankJobs(*profile, values(postings), topK, minScore), nil
}

// MatchCandidates ranks every stored profile for the stored posting postingID.
func (a *App) MatchCandidates(postingID, topK int, minScore float64) (export.MatchReport, error) {
	posting, err := a.Store.GetPosting(postingID)
	if err != nil {
		return export.MatchReport{}, err
	}
	profiles, err := a.Store.GetAllProfiles()
	if err != nil {
		return export.MatchReport{}, fmt.Errorf("fetch profiles: %w", err)
	}

	a.Logger.Debug("matching candidates", zap.Int("posting_id", postingID), zap.Int("profiles", len(profiles)))
	return a.RankCandidates(*posting, values(profiles), topK, minScore), nil
}

func values[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}

func profileLabel(p models.Profile) string {
	if p.Name == "" {
		return fmt.Sprintf("profile #%d", p.ID)
	}
	return p.Name
}

func postingLabel(p models.Posting) string {
	if p.Company == "" {
		return p.Title
	}
	return p.Title + " at " + p.Company
}
