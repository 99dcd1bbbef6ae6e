package assessment

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/khrees2412/talentmatch/pkg/models"
	"go.uber.org/zap"
)

// GraderConfig tunes the blended grading modes and feedback tiers.
type GraderConfig struct {
	BankPath         string   `mapstructure:"bank_path"`
	LengthTarget     int      `mapstructure:"length_target"`
	LengthWeight     float64  `mapstructure:"length_weight"`
	Vocabulary       []string `mapstructure:"vocabulary"`
	VocabularyWeight float64  `mapstructure:"vocabulary_weight"`
	ExcellentRatio   float64  `mapstructure:"excellent_ratio"`
	GoodRatio        float64  `mapstructure:"good_ratio"`
}

// DefaultGraderConfig returns the standard blend: 70/30 coverage/length
// for communication and 80/20 coverage/vocabulary for teaching.
func DefaultGraderConfig() GraderConfig {
	return GraderConfig{
		LengthTarget:     50,
		LengthWeight:     0.3,
		Vocabulary:       []string{"student-centered", "interactive", "engaging", "differentiated", "inclusive"},
		VocabularyWeight: 0.2,
		ExcellentRatio:   0.8,
		GoodRatio:        0.6,
	}
}

var ErrInvalidGraderConfig = errors.New("invalid grader config")

// Validate checks weights and tier ratios.
func (c GraderConfig) Validate() error {
	switch {
	case c.LengthTarget <= 0:
		return fmt.Errorf("%w: length_target must be > 0", ErrInvalidGraderConfig)
	case c.LengthWeight < 0 || c.LengthWeight > 1:
		return fmt.Errorf("%w: length_weight must lie in [0, 1]", ErrInvalidGraderConfig)
	case c.VocabularyWeight < 0 || c.VocabularyWeight > 1:
		return fmt.Errorf("%w: vocabulary_weight must lie in [0, 1]", ErrInvalidGraderConfig)
	case c.GoodRatio < 0 || c.ExcellentRatio > 1 || c.GoodRatio > c.ExcellentRatio:
		return fmt.Errorf("%w: need 0 <= good_ratio <= excellent_ratio <= 1", ErrInvalidGraderConfig)
	}
	return nil
}

// Grader scores answers against a Bank. It holds no mutable state.
type Grader struct {
	bank   *Bank
	cfg    GraderConfig
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// GraderOption configures a Grader.
type GraderOption func(*Grader)

// WithGraderLogger sets the logger used for rejected calls.
func WithGraderLogger(l *zap.Logger) GraderOption {
	return func(g *Grader) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithGraderClock sets the clock stamped on results.
func WithGraderClock(now func() time.Time) GraderOption {
	return func(g *Grader) { g.now = now }
}

// NewGrader returns a Grader over bank.
func NewGrader(bank *Bank, cfg GraderConfig, opts ...GraderOption) (*Grader, error) {
	if bank == nil {
		return nil, fmt.Errorf("%w: nil bank", ErrInvalidBank)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Grader{
		bank:   bank,
		cfg:    cfg,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Bank returns the bank the grader reads from.
func (g *Grader) Bank() *Bank {
	return g.bank
}

// Grade scores answer for the question at index in category. Unknown
// categories and out-of-range indexes yield a zero score whose Feedback
// explains the problem.
func (g *Grader) Grade(category string, index int, answer string) models.AssessmentResult {
	result := models.AssessmentResult{
		ID:            g.newID(),
		Category:      categoryKey(category),
		QuestionIndex: index,
		CompletedAt:   g.now(),
	}

	cat, ok := g.bank.Category(category)
	if !ok {
		result.Feedback = fmt.Sprintf("Skill not supported: %q", category)
		g.logger.Warn("grading rejected", zap.String("category", category), zap.String("reason", "unknown category"))
		return result
	}
	if index < 0 || index >= len(cat.Questions) {
		result.Feedback = fmt.Sprintf("Invalid question index %d: %s has questions 0-%d", index, cat.Name, len(cat.Questions)-1)
		g.logger.Warn("grading rejected", zap.String("category", cat.Name), zap.Int("index", index), zap.String("reason", "index out of range"))
		return result
	}

	q := cat.Questions[index]
	found := countKeywords(answer, q.ExpectedKeywords)
	coverage := float64(found) / float64(len(q.ExpectedKeywords))

	var fraction float64
	switch cat.Grading {
	case GradingKeywordsLength:
		words := len(strings.Fields(answer))
		length := math.Min(float64(words)/float64(g.cfg.LengthTarget), 1.0)
		fraction = coverage*(1-g.cfg.LengthWeight) + length*g.cfg.LengthWeight
	case GradingKeywordsVocabulary:
		vocab := 0.0
		if len(g.cfg.Vocabulary) > 0 {
			vocab = float64(countKeywords(answer, g.cfg.Vocabulary)) / float64(len(g.cfg.Vocabulary))
		}
		fraction = coverage*(1-g.cfg.VocabularyWeight) + vocab*g.cfg.VocabularyWeight
	default:
		fraction = coverage
	}

	score := int(math.Round(fraction * float64(q.MaxScore)))
	score = max(0, min(score, q.MaxScore))

	result.Score = score
	result.MaxScore = q.MaxScore
	result.KeywordsFound = found
	result.TotalKeywords = len(q.ExpectedKeywords)
	result.Feedback = g.feedback(cat.Feedback, found, len(q.ExpectedKeywords), score, q.MaxScore)
	return result
}

func (g *Grader) feedback(fb Feedback, found, total, score, maxScore int) string {
	tier := fb.Improve
	switch ratio := float64(score) / float64(maxScore); {
	case ratio >= g.cfg.ExcellentRatio:
		tier = fb.Excellent
	case ratio >= g.cfg.GoodRatio:
		tier = fb.Good
	}
	return fmt.Sprintf(fb.Summary, found, total) + " " + tier
}

// countKeywords counts keywords that appear anywhere in text, ignoring case.
func countKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	found := 0
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			found++
		}
	}
	return found
}
