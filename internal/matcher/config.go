package matcher

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/khrees2412/talentmatch/pkg/models"
)

// Direction names which side of the match is being ranked.
type Direction string

const (
	// DirectionJobs ranks postings for one candidate.
	DirectionJobs Direction = "jobs_for_candidate"
	// DirectionCandidates ranks candidates for one posting.
	DirectionCandidates Direction = "candidates_for_job"
)

// Weights is the per-factor weight table. Weights must sum to at most 1.
type Weights struct {
	Skills     float64 `mapstructure:"skills" json:"skills"`
	Location   float64 `mapstructure:"location" json:"location"`
	Experience float64 `mapstructure:"experience" json:"experience"`
	Text       float64 `mapstructure:"text" json:"text"`
	JobType    float64 `mapstructure:"job_type" json:"job_type"`
	Salary     float64 `mapstructure:"salary" json:"salary"`
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	return w.Skills + w.Location + w.Experience + w.Text + w.JobType + w.Salary
}

// Of returns the weight for a factor name.
func (w Weights) Of(factor string) float64 {
	switch factor {
	case models.FactorSkills:
		return w.Skills
	case models.FactorLocation:
		return w.Location
	case models.FactorExperience:
		return w.Experience
	case models.FactorText:
		return w.Text
	case models.FactorJobType:
		return w.JobType
	case models.FactorSalary:
		return w.Salary
	}
	return 0
}

// Boosts are multiplicative: a verified target scores base * (1 + Verified).
// Validate guarantees a positive base, so a boost always raises a score
// that is below 1.
type Boosts struct {
	Verified     float64       `mapstructure:"verified" json:"verified"`
	Recent       float64       `mapstructure:"recent" json:"recent"`
	RecentWindow time.Duration `mapstructure:"recent_window" json:"recent_window"`
}

// Thresholds a sub-score must exceed to produce a reason.
type Thresholds struct {
	Skills       float64 `mapstructure:"skills" json:"skills"`
	Location     float64 `mapstructure:"location" json:"location"`
	LocationGood float64 `mapstructure:"location_good" json:"location_good"`
	Experience   float64 `mapstructure:"experience" json:"experience"`
	Text         float64 `mapstructure:"text" json:"text"`
	Salary       float64 `mapstructure:"salary" json:"salary"`
}

// DirectionConfig tunes one ranking direction.
type DirectionConfig struct {
	Weights    Weights    `mapstructure:"weights" json:"weights"`
	Boosts     Boosts     `mapstructure:"boosts" json:"boosts"`
	Thresholds Thresholds `mapstructure:"thresholds" json:"thresholds"`
	TopK       int        `mapstructure:"top_k" json:"top_k"`
}

// Config is the immutable ranking configuration handed to NewRanker.
type Config struct {
	JobsForCandidate DirectionConfig `mapstructure:"jobs_for_candidate" json:"jobs_for_candidate"`
	CandidatesForJob DirectionConfig `mapstructure:"candidates_for_job" json:"candidates_for_job"`
	// Workers bounds concurrent per-target scoring. Zero uses GOMAXPROCS.
	Workers int `mapstructure:"workers" json:"workers"`
}

// For returns the settings of one direction.
func (c Config) For(d Direction) DirectionConfig {
	if d == DirectionCandidates {
		return c.CandidatesForJob
	}
	return c.JobsForCandidate
}

var defaultThresholds = Thresholds{
	Skills:       0.5,
	Location:     0.8,
	LocationGood: 0.5,
	Experience:   0.8,
	Text:         0.3,
	Salary:       0.8,
}

var defaultBoosts = Boosts{
	Verified:     0.10,
	Recent:       0.05,
	RecentWindow: 7 * 24 * time.Hour,
}

// DefaultConfig returns the canonical weight tables. Candidate ranking leans
// on skills and experience; job ranking gives location and salary more room.
func DefaultConfig() Config {
	return Config{
		JobsForCandidate: DirectionConfig{
			Weights: Weights{
				Skills:     0.30,
				Location:   0.20,
				Experience: 0.20,
				Text:       0.15,
				JobType:    0.10,
				Salary:     0.05,
			},
			Boosts:     defaultBoosts,
			Thresholds: defaultThresholds,
			TopK:       10,
		},
		CandidatesForJob: DirectionConfig{
			Weights: Weights{
				Skills:     0.35,
				Location:   0.15,
				Experience: 0.25,
				Text:       0.15,
				JobType:    0.05,
				Salary:     0.05,
			},
			Boosts:     defaultBoosts,
			Thresholds: defaultThresholds,
			TopK:       20,
		},
	}
}

var ErrInvalidConfig = errors.New("invalid matcher config")

// Validate checks both directions.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	if err := c.JobsForCandidate.validate(); err != nil {
		return fmt.Errorf("%s: %w", DirectionJobs, err)
	}
	if err := c.CandidatesForJob.validate(); err != nil {
		return fmt.Errorf("%s: %w", DirectionCandidates, err)
	}
	return nil
}

func (d DirectionConfig) validate() error {
	for _, factor := range models.Factors {
		if w := d.Weights.Of(factor); w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weight %q must be >= 0", ErrInvalidConfig, factor)
		}
	}
	sum := d.Weights.Sum()
	if sum <= 0 || sum > 1+1e-9 {
		return fmt.Errorf("%w: weights must sum to (0, 1], got %.4f", ErrInvalidConfig, sum)
	}
	// Location, experience, job type and salary never score 0, so a
	// positive weight on one of them keeps every base score above 0 and
	// lets the multiplicative boosts separate otherwise equal targets.
	if d.Weights.Location+d.Weights.Experience+d.Weights.JobType+d.Weights.Salary <= 0 {
		return fmt.Errorf("%w: at least one of location, experience, job_type or salary needs a positive weight", ErrInvalidConfig)
	}
	if d.Boosts.Verified < 0 || d.Boosts.Recent < 0 || d.Boosts.RecentWindow < 0 {
		return fmt.Errorf("%w: boosts must be >= 0", ErrInvalidConfig)
	}
	t := d.Thresholds
	for _, v := range []float64{t.Skills, t.Location, t.LocationGood, t.Experience, t.Text, t.Salary} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: thresholds must lie in [0, 1]", ErrInvalidConfig)
		}
	}
	if d.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be > 0, got %d", ErrInvalidConfig, d.TopK)
	}
	return nil
}
