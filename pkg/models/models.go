package models

import "time"

// Profile is a job seeker as seen by the matcher. It is also the target
// shape when candidates are ranked for a posting.
type Profile struct {
	ID                int       `json:"id"`
	Name              string    `json:"name" validate:"max=200"`
	Skills            []string  `json:"skills" validate:"dive,max=100"`
	Location          string    `json:"location" validate:"max=200"`
	ExperienceYears   int       `json:"experience_years" validate:"gte=0,lte=80"`
	Bio               string    `json:"bio"`
	PreferredJobTypes []string  `json:"preferred_job_types" validate:"dive,max=50"`
	SalaryExpectation string    `json:"salary_expectation" validate:"max=100"`
	Verified          bool      `json:"verified"`
	CreatedAt         time.Time `json:"created_at"`
}

// Posting represents a job posting
type Posting struct {
	ID               int       `json:"id"`
	Title            string    `json:"title" validate:"required,max=200"`
	Company          string    `json:"company" validate:"max=200"`
	SkillsRequired   []string  `json:"skills_required" validate:"dive,max=100"`
	Location         string    `json:"location" validate:"max=200"`
	ExperienceLevel  string    `json:"experience_level" validate:"max=50"` // fresher, 1-3, 3-5, senior, ...
	Description      string    `json:"description"`
	JobType          string    `json:"job_type" validate:"max=50"` // full-time, part-time, remote, contract
	SalaryRange      string    `json:"salary_range" validate:"max=100"`
	EmployerVerified bool      `json:"employer_verified"`
	CreatedAt        time.Time `json:"created_at"`
}

// Factor names used as keys in MatchResult.SubScores.
const (
	FactorSkills     = "skills"
	FactorLocation   = "location"
	FactorExperience = "experience"
	FactorText       = "text"
	FactorJobType    = "job_type"
	FactorSalary     = "salary"
)

// Factors lists every factor in evaluation order.
var Factors = []string{
	FactorSkills,
	FactorLocation,
	FactorExperience,
	FactorText,
	FactorJobType,
	FactorSalary,
}

// MatchResult is one scored subject/target pair.
type MatchResult struct {
	SubjectID    int                `json:"subject_id"`
	TargetID     int                `json:"target_id"`
	OverallScore float64            `json:"overall_score"`
	SubScores    map[string]float64 `json:"sub_scores"`
	Reasons      []string           `json:"reasons"`
}

// AssessmentQuestion is a single entry of the question bank
type AssessmentQuestion struct {
	Prompt           string   `json:"prompt" yaml:"prompt" validate:"required"`
	ExpectedKeywords []string `json:"expected_keywords" yaml:"expected_keywords" validate:"required,min=1,dive,required"`
	MaxScore         int      `json:"max_score" yaml:"max_score" validate:"gt=0"`
	Difficulty       string   `json:"difficulty" yaml:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// AssessmentResult is the outcome of grading one answer.
type AssessmentResult struct {
	ID            string    `json:"id"`
	ProfileID     int       `json:"profile_id,omitempty"`
	Category      string    `json:"category"`
	QuestionIndex int       `json:"question_index"`
	Score         int       `json:"score"`
	MaxScore      int       `json:"max_score"`
	Feedback      string    `json:"feedback"`
	KeywordsFound int       `json:"keywords_found"`
	TotalKeywords int       `json:"total_keywords"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Percent returns the score as a percentage of the maximum.
func (r AssessmentResult) Percent() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore) * 100
}
