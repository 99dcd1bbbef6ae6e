package matcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestRanker(t *testing.T, cfg Config, opts ...RankerOption) *Ranker {
	t.Helper()
	opts = append([]RankerOption{WithClock(func() time.Time { return fixedNow })}, opts...)
	r, err := NewRanker(cfg, opts...)
	require.NoError(t, err)
	return r
}

func strongCandidate() models.Profile {
	return models.Profile{
		ID:                1,
		Skills:            []string{"Go", "SQL", "Docker", "Terraform"},
		Location:          "Berlin",
		ExperienceYears:   6,
		Bio:               "Backend engineer building Go services with SQL and Docker",
		PreferredJobTypes: []string{"full-time"},
		SalaryExpectation: "70k",
	}
}

func strongPosting(id int) models.Posting {
	return models.Posting{
		ID:              id,
		Title:           "Backend Engineer",
		SkillsRequired:  []string{"go", "sql", "docker", "kubernetes"},
		Location:        "Berlin",
		ExperienceLevel: "senior",
		Description:     "Backend engineer building Go services with SQL and Docker",
		JobType:         "full-time",
		SalaryRange:     "60k-80k",
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weights above one", func(c *Config) { c.JobsForCandidate.Weights.Skills = 0.9 }},
		{"negative weight", func(c *Config) { c.CandidatesForJob.Weights.Salary = -0.05 }},
		{"zero weights", func(c *Config) { c.JobsForCandidate.Weights = Weights{} }},
		{"only factors that can score zero", func(c *Config) { c.CandidatesForJob.Weights = Weights{Skills: 0.6, Text: 0.4} }},
		{"negative boost", func(c *Config) { c.JobsForCandidate.Boosts.Verified = -1 }},
		{"threshold out of range", func(c *Config) { c.CandidatesForJob.Thresholds.Text = 1.5 }},
		{"zero top k", func(c *Config) { c.CandidatesForJob.TopK = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)

			_, err = NewRanker(cfg)
			assert.Error(t, err)
		})
	}
}

func TestRankJobsEndToEndNeutralDefaults(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	subject := models.Profile{ID: 7, Skills: []string{"python", "teaching"}}
	posting := models.Posting{ID: 9, SkillsRequired: []string{"python", "django", "sql"}}

	results := r.RankJobs(subject, []models.Posting{posting}, 0)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, 7, res.SubjectID)
	assert.Equal(t, 9, res.TargetID)
	assert.InDelta(t, 1.0/3.0, res.SubScores[models.FactorSkills], 1e-9)
	assert.Equal(t, 0.5, res.SubScores[models.FactorLocation])
	assert.Equal(t, 0.7, res.SubScores[models.FactorExperience])
	assert.Equal(t, 0.0, res.SubScores[models.FactorText])
	assert.Equal(t, 0.7, res.SubScores[models.FactorJobType])
	assert.Equal(t, 0.7, res.SubScores[models.FactorSalary])
	assert.Empty(t, res.Reasons)
	// 0.30/3 + 0.20*0.5 + 0.20*0.7 + 0 + 0.10*0.7 + 0.05*0.7
	assert.InDelta(t, 0.445, res.OverallScore, 1e-9)
}

func TestRankJobsReasonsInEvaluationOrder(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	results := r.RankJobs(strongCandidate(), []models.Posting{strongPosting(1)}, 0)
	require.Len(t, results, 1)

	assert.Equal(t, []string{
		"Strong skill match: go, sql, docker",
		"Excellent location match",
		"Perfect experience level match",
		"Profile aligns well with job requirements",
		"Salary meets your expectations",
	}, results[0].Reasons)
}

func TestRankJobsBounds(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	postings := []models.Posting{
		strongPosting(1),
		{ID: 2},
		{ID: 3, SalaryRange: "lakh lakh", ExperienceLevel: "???", Location: "Remote"},
		{ID: 4, SkillsRequired: []string{"go"}, EmployerVerified: true, CreatedAt: fixedNow},
	}
	verified := strongPosting(5)
	verified.EmployerVerified = true
	verified.CreatedAt = fixedNow.Add(-24 * time.Hour)
	postings = append(postings, verified)

	for _, res := range r.RankJobs(strongCandidate(), postings, 10) {
		assert.GreaterOrEqual(t, res.OverallScore, 0.0)
		assert.LessOrEqual(t, res.OverallScore, 1.0)
		for factor, score := range res.SubScores {
			assert.GreaterOrEqual(t, score, 0.0, factor)
			assert.LessOrEqual(t, score, 1.0, factor)
		}
	}
}

func TestRankJobsClampsBoostedScore(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	posting := strongPosting(1)
	posting.SkillsRequired = []string{"go", "sql", "docker"}
	posting.EmployerVerified = true
	posting.CreatedAt = fixedNow

	results := r.RankJobs(strongCandidate(), []models.Posting{posting}, 0)
	require.Len(t, results, 1)
	assert.Equal(t, 1.0, results[0].OverallScore)
}

func TestRankJobsStableForTies(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	weak := models.Posting{SkillsRequired: []string{"cobol"}}
	first, second := weak, weak
	first.ID, second.ID = 1, 2

	results := r.RankJobs(strongCandidate(), []models.Posting{first, second, strongPosting(3)}, 0)
	require.Len(t, results, 3)

	assert.Equal(t, 3, results[0].TargetID)
	assert.Equal(t, 1, results[1].TargetID)
	assert.Equal(t, 2, results[2].TargetID)
	assert.Equal(t, results[1].OverallScore, results[2].OverallScore)
}

func TestRankJobsIdempotent(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	postings := []models.Posting{strongPosting(1), {ID: 2, Location: "Remote"}, strongPosting(3)}
	postings[2].CreatedAt = fixedNow.Add(-48 * time.Hour)

	assert.Equal(t, r.RankJobs(strongCandidate(), postings, 0), r.RankJobs(strongCandidate(), postings, 0))
}

func TestVerifiedBoost(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	plain := models.Posting{ID: 1, SkillsRequired: []string{"go", "rust"}}
	verified := plain
	verified.ID = 2
	verified.EmployerVerified = true

	results := r.RankJobs(strongCandidate(), []models.Posting{plain, verified}, 0)
	require.Len(t, results, 2)

	assert.Equal(t, 2, results[0].TargetID)
	assert.Greater(t, results[0].OverallScore, results[1].OverallScore)
	assert.InDelta(t, results[1].OverallScore*1.10, results[0].OverallScore, 1e-9)
}

func TestRecencyBoostUsesInjectedClock(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	stale := models.Posting{ID: 1, SkillsRequired: []string{"go", "rust"}, CreatedAt: fixedNow.Add(-30 * 24 * time.Hour)}
	fresh := stale
	fresh.ID = 2
	fresh.CreatedAt = fixedNow.Add(-7 * 24 * time.Hour)

	results := r.RankJobs(strongCandidate(), []models.Posting{stale, fresh}, 0)
	require.Len(t, results, 2)

	assert.Equal(t, 2, results[0].TargetID)
	assert.InDelta(t, results[1].OverallScore*1.05, results[0].OverallScore, 1e-9)
}

func TestVerifiedBoostWithSkillHeavyWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JobsForCandidate.Weights = Weights{Skills: 0.95, Salary: 0.05}
	r := newTestRanker(t, cfg)

	// no skill overlap, so only the neutral salary score contributes
	plain := models.Posting{ID: 1, SkillsRequired: []string{"cobol"}}
	verified := plain
	verified.ID = 2
	verified.EmployerVerified = true

	results := r.RankJobs(models.Profile{Skills: []string{"go"}}, []models.Posting{plain, verified}, 0)
	require.Len(t, results, 2)

	assert.Equal(t, 2, results[0].TargetID)
	assert.Positive(t, results[1].OverallScore)
	assert.Greater(t, results[0].OverallScore, results[1].OverallScore)
}

func TestRecencyCountsWholeDays(t *testing.T) {
	window := 7 * 24 * time.Hour

	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"same day", time.Hour, true},
		{"exactly seven days", window, true},
		{"seven and a half days", window + 12*time.Hour, true},
		{"just under eight days", 8*24*time.Hour - time.Second, true},
		{"eight days", 8 * 24 * time.Hour, false},
		{"future dated", -48 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRecent(fixedNow.Add(-tt.age), fixedNow, window))
		})
	}
	assert.False(t, isRecent(time.Time{}, fixedNow, window))
}

func TestRecencyBoostAppliesWithinEighthDay(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	undated := models.Posting{ID: 1, SkillsRequired: []string{"go", "rust"}}
	aging := undated
	aging.ID = 2
	aging.CreatedAt = fixedNow.Add(-(7*24 + 12) * time.Hour)

	results := r.RankJobs(strongCandidate(), []models.Posting{undated, aging}, 0)
	require.Len(t, results, 2)

	assert.Equal(t, 2, results[0].TargetID)
	assert.InDelta(t, results[1].OverallScore*1.05, results[0].OverallScore, 1e-9)
}

func TestRankCandidatesBoostsVerifiedCandidate(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	plain := models.Profile{ID: 1, Skills: []string{"go"}}
	verified := plain
	verified.ID = 2
	verified.Verified = true

	posting := strongPosting(10)
	posting.EmployerVerified = true

	results := r.RankCandidates(posting, []models.Profile{plain, verified}, 0)
	require.Len(t, results, 2)

	assert.Equal(t, 10, results[0].SubjectID)
	assert.Equal(t, 2, results[0].TargetID)
	assert.InDelta(t, results[1].OverallScore*1.10, results[0].OverallScore, 1e-9)
}

func TestRankCandidatesReasons(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	results := r.RankCandidates(strongPosting(1), []models.Profile{strongCandidate()}, 0)
	require.Len(t, results, 1)

	assert.Contains(t, results[0].Reasons, "Local candidate")
	assert.Equal(t, "Strong skill match: go, sql, docker", results[0].Reasons[0])
}

func TestTopKDefaults(t *testing.T) {
	r := newTestRanker(t, DefaultConfig())

	postings := make([]models.Posting, 15)
	for i := range postings {
		postings[i] = models.Posting{ID: i + 1}
	}
	profiles := make([]models.Profile, 25)
	for i := range profiles {
		profiles[i] = models.Profile{ID: i + 1}
	}

	assert.Len(t, r.RankJobs(strongCandidate(), postings, 0), 10)
	assert.Len(t, r.RankJobs(strongCandidate(), postings, 3), 3)
	assert.Len(t, r.RankCandidates(strongPosting(1), profiles, 0), 20)
	assert.Len(t, r.RankJobs(strongCandidate(), nil, 0), 0)
}

func TestParallelMatchesSequential(t *testing.T) {
	seqCfg := DefaultConfig()
	seqCfg.Workers = 1
	parCfg := DefaultConfig()
	parCfg.Workers = 8

	postings := make([]models.Posting, 100)
	for i := range postings {
		p := strongPosting(i + 1)
		p.SkillsRequired = p.SkillsRequired[:i%4+1]
		p.Location = fmt.Sprintf("City %d", i%3)
		p.EmployerVerified = i%5 == 0
		postings[i] = p
	}

	seq := newTestRanker(t, seqCfg).RankJobs(strongCandidate(), postings, 100)
	par := newTestRanker(t, parCfg).RankJobs(strongCandidate(), postings, 100)
	assert.Equal(t, seq, par)
}

type recordingObserver struct {
	direction Direction
	targets   int
	returned  int
}

func (o *recordingObserver) ObserveRanking(d Direction, targets, returned int, _ time.Duration) {
	o.direction, o.targets, o.returned = d, targets, returned
}

func TestObserverIsNotified(t *testing.T) {
	obs := &recordingObserver{}
	r := newTestRanker(t, DefaultConfig(), WithObserver(obs))

	r.RankJobs(strongCandidate(), []models.Posting{strongPosting(1), strongPosting(2), strongPosting(3)}, 2)

	assert.Equal(t, DirectionJobs, obs.direction)
	assert.Equal(t, 3, obs.targets)
	assert.Equal(t, 2, obs.returned)
}

func TestFilterMinScore(t *testing.T) {
	in := []models.MatchResult{{TargetID: 1, OverallScore: 0.9}, {TargetID: 2, OverallScore: 0.4}, {TargetID: 3, OverallScore: 0.7}}

	out := FilterMinScore(in, 0.7)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].TargetID)
	assert.Equal(t, 3, out[1].TargetID)
	assert.Len(t, FilterMinScore(in, 0), 3)
}
