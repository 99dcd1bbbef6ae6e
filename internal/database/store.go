package database

import "github.com/khrees2412/talentmatch/pkg/models"

// Repository exposes the package functions as a value that can be passed
// where a store interface is expected.
type Repository struct{}

func (Repository) GetProfile(id int) (*models.Profile, error) { return GetProfile(id) }
func (Repository) GetPosting(id int) (*models.Posting, error) { return GetPosting(id) }
func (Repository) GetAllProfiles() ([]*models.Profile, error) { return GetAllProfiles() }
func (Repository) GetAllPostings() ([]*models.Posting, error) { return GetAllPostings() }
func (Repository) SaveAssessmentResult(r *models.AssessmentResult) error {
	return SaveAssessmentResult(r)
}

func (Repository) GetAssessmentResults(profileID int) ([]*models.AssessmentResult, error) {
	return GetAssessmentResults(profileID)
}
