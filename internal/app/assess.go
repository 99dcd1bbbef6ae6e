package app

import (
	"fmt"

	"github.com/khrees2412/talentmatch/internal/metrics"
	"github.com/khrees2412/talentmatch/pkg/models"
	"go.uber.org/zap"
)

// Assess grades answer and stores the result. profileID 0 records an
// anonymous attempt. Rejected calls return the zero-score result together
// with ErrInvalidArgument and are not stored.
func (a *App) Assess(profileID int, category string, index int, answer string) (models.AssessmentResult, error) {
	if profileID != 0 {
		if _, err := a.Store.GetProfile(profileID); err != nil {
			return models.AssessmentResult{}, err
		}
	}

	result := a.Grader.Grade(category, index, answer)
	result.ProfileID = profileID
	metrics.RecordGrade(result)

	if result.MaxScore == 0 {
		return result, fmt.Errorf("%w: %s", ErrInvalidArgument, result.Feedback)
	}

	if err := a.Store.SaveAssessmentResult(&result); err != nil {
		return result, fmt.Errorf("save assessment: %w", err)
	}

	a.Logger.Info("assessment graded",
		zap.String("id", result.ID),
		zap.String("category", result.Category),
		zap.Int("score", result.Score),
		zap.Int("max_score", result.MaxScore),
	)
	return result, nil
}
