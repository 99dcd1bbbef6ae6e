package matcher

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/khrees2412/talentmatch/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Observer receives statistics for every ranking call.
type Observer interface {
	ObserveRanking(direction Direction, targets, returned int, elapsed time.Duration)
}

// Ranker combines factor scores into ranked, explained results.
// A Ranker is safe for concurrent use.
type Ranker struct {
	cfg      Config
	now      func() time.Time
	logger   *zap.Logger
	observer Observer
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker)

// WithClock sets the clock used for the posting-age boost.
func WithClock(now func() time.Time) RankerOption {
	return func(r *Ranker) { r.now = now }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) RankerOption {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver registers a metrics observer.
func WithObserver(o Observer) RankerOption {
	return func(r *Ranker) { r.observer = o }
}

// NewRanker validates cfg and returns a Ranker bound to it.
func NewRanker(cfg Config, opts ...RankerOption) (*Ranker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Ranker{
		cfg:    cfg,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Config returns the ranker's configuration.
func (r *Ranker) Config() Config {
	return r.cfg
}

// RankJobs ranks postings for one candidate. topK <= 0 uses the configured default.
func (r *Ranker) RankJobs(candidate models.Profile, postings []models.Posting, topK int) []models.MatchResult {
	start := time.Now()
	dc := r.cfg.JobsForCandidate
	now := r.now()
	subject := NormalizeProfile(candidate)

	results := make([]models.MatchResult, len(postings))
	r.forEach(len(postings), func(i int) {
		posting := NormalizePosting(postings[i])
		results[i] = r.score(DirectionJobs, dc, subject, posting, posting.EmployerVerified, now)
		results[i].SubjectID = candidate.ID
		results[i].TargetID = posting.ID
	})

	return r.finish(DirectionJobs, dc, results, topK, start)
}

// RankCandidates ranks candidates for one posting. topK <= 0 uses the configured default.
func (r *Ranker) RankCandidates(posting models.Posting, candidates []models.Profile, topK int) []models.MatchResult {
	start := time.Now()
	dc := r.cfg.CandidatesForJob
	now := r.now()
	subject := NormalizePosting(posting)

	results := make([]models.MatchResult, len(candidates))
	r.forEach(len(candidates), func(i int) {
		candidate := NormalizeProfile(candidates[i])
		results[i] = r.score(DirectionCandidates, dc, candidate, subject, candidate.Verified, now)
		results[i].SubjectID = posting.ID
		results[i].TargetID = candidate.ID
	})

	return r.finish(DirectionCandidates, dc, results, topK, start)
}

// forEach runs fn for every index on a bounded pool. Each call writes only
// its own slot, so no locking is needed.
func (r *Ranker) forEach(n int, fn func(i int)) {
	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Ranker) finish(d Direction, dc DirectionConfig, results []models.MatchResult, topK int, start time.Time) []models.MatchResult {
	total := len(results)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})

	if topK <= 0 {
		topK = dc.TopK
	}
	if len(results) > topK {
		results = results[:topK]
	}

	elapsed := time.Since(start)
	if r.observer != nil {
		r.observer.ObserveRanking(d, total, len(results), elapsed)
	}
	r.logger.Debug("ranked targets",
		zap.String("direction", string(d)),
		zap.Int("targets", total),
		zap.Int("returned", len(results)),
		zap.Duration("elapsed", elapsed),
	)
	return results
}

// score evaluates one profile/posting pair. verified is the flag the
// direction boosts on: the employer for job ranking, the candidate otherwise.
func (r *Ranker) score(d Direction, dc DirectionConfig, p models.Profile, post models.Posting, verified bool, now time.Time) models.MatchResult {
	sub := map[string]float64{
		models.FactorSkills:     SkillMatch(p.Skills, post.SkillsRequired),
		models.FactorLocation:   Location(p.Location, post.Location),
		models.FactorExperience: Experience(p.ExperienceYears, post.ExperienceLevel),
		models.FactorText:       TextSimilarity(p.Bio, post.Description),
		models.FactorJobType:    JobType(p.PreferredJobTypes, post.JobType),
		models.FactorSalary:     Salary(p.SalaryExpectation, post.SalaryRange),
	}

	score := 0.0
	for _, factor := range models.Factors {
		score += dc.Weights.Of(factor) * sub[factor]
	}
	if verified {
		score *= 1 + dc.Boosts.Verified
	}
	if isRecent(post.CreatedAt, now, dc.Boosts.RecentWindow) {
		score *= 1 + dc.Boosts.Recent
	}

	return models.MatchResult{
		OverallScore: clamp01(score),
		SubScores:    sub,
		Reasons:      reasons(d, dc.Thresholds, sub, MatchedSkills(p.Skills, post.SkillsRequired)),
	}
}

// isRecent compares whole elapsed days, so with a 7-day window a posting
// 7d23h old still counts. Future-dated postings are fresh and unknown
// dates are stale.
func isRecent(created, now time.Time, window time.Duration) bool {
	if created.IsZero() {
		return false
	}
	return now.Sub(created).Truncate(day) <= window
}

const day = 24 * time.Hour

type phrasebook struct {
	skills, locationExcellent, locationGood, experience, text, salary string
}

var phrases = map[Direction]phrasebook{
	DirectionJobs: {
		skills:            "Strong skill match: %s",
		locationExcellent: "Excellent location match",
		locationGood:      "Good location compatibility",
		experience:        "Perfect experience level match",
		text:              "Profile aligns well with job requirements",
		salary:            "Salary meets your expectations",
	},
	DirectionCandidates: {
		skills:            "Strong skill match: %s",
		locationExcellent: "Local candidate",
		locationGood:      "Good location compatibility",
		experience:        "Perfect experience level match",
		text:              "Background aligns well with the role",
		salary:            "Salary expectation fits the offered range",
	},
}

// reasons walks the factors in evaluation order.
func reasons(d Direction, t Thresholds, sub map[string]float64, matched []string) []string {
	pb := phrases[d]
	out := []string{}

	if sub[models.FactorSkills] > t.Skills {
		if len(matched) > 3 {
			matched = matched[:3]
		}
		out = append(out, fmt.Sprintf(pb.skills, strings.Join(matched, ", ")))
	}

	switch loc := sub[models.FactorLocation]; {
	case loc > t.Location:
		out = append(out, pb.locationExcellent)
	case loc > t.LocationGood:
		out = append(out, pb.locationGood)
	}

	if sub[models.FactorExperience] > t.Experience {
		out = append(out, pb.experience)
	}
	if sub[models.FactorText] > t.Text {
		out = append(out, pb.text)
	}
	if sub[models.FactorSalary] > t.Salary {
		out = append(out, pb.salary)
	}

	return out
}

// FilterMinScore keeps results scoring at least min, preserving order.
func FilterMinScore(results []models.MatchResult, min float64) []models.MatchResult {
	if min <= 0 {
		return results
	}
	out := results[:0:0]
	for _, res := range results {
		if res.OverallScore >= min {
			out = append(out, res)
		}
	}
	return out
}
