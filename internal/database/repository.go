package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/khrees2412/talentmatch/pkg/models"
)

// Profile operations

const profileColumns = `id, name, skills, location, experience_years, bio,
	preferred_job_types, salary_expectation, verified, created_at`

func CreateProfile(p *models.Profile) error {
	skills, err := encodeList(p.Skills)
	if err != nil {
		return err
	}
	jobTypes, err := encodeList(p.PreferredJobTypes)
	if err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO profiles (name, skills, location, experience_years, bio,
			  preferred_job_types, salary_expectation, verified, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := DB.Exec(query, p.Name, skills, p.Location, p.ExperienceYears, p.Bio,
		jobTypes, p.SalaryExpectation, p.Verified, p.CreatedAt)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	p.ID = int(id)
	return nil
}

func UpdateProfile(p *models.Profile) error {
	skills, err := encodeList(p.Skills)
	if err != nil {
		return err
	}
	jobTypes, err := encodeList(p.PreferredJobTypes)
	if err != nil {
		return err
	}

	query := `UPDATE profiles SET name=?, skills=?, location=?, experience_years=?, bio=?,
			  preferred_job_types=?, salary_expectation=?, verified=? WHERE id=?`
	result, err := DB.Exec(query, p.Name, skills, p.Location, p.ExperienceYears, p.Bio,
		jobTypes, p.SalaryExpectation, p.Verified, p.ID)
	if err != nil {
		return err
	}
	return requireAffected(result, "profile", p.ID)
}

func GetProfile(id int) (*models.Profile, error) {
	row := DB.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id=?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %d: %w", id, ErrNotFound)
	}
	return p, err
}

func GetAllProfiles() ([]*models.Profile, error) {
	rows, err := DB.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func DeleteProfile(id int) error {
	result, err := DB.Exec(`DELETE FROM profiles WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "profile", id)
}

// Posting operations

const postingColumns = `id, title, company, skills_required, location, experience_level,
	description, job_type, salary_range, employer_verified, created_at`

func CreatePosting(p *models.Posting) error {
	skills, err := encodeList(p.SkillsRequired)
	if err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO postings (title, company, skills_required, location, experience_level,
			  description, job_type, salary_range, employer_verified, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := DB.Exec(query, p.Title, p.Company, skills, p.Location, p.ExperienceLevel,
		p.Description, p.JobType, p.SalaryRange, p.EmployerVerified, p.CreatedAt)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	p.ID = int(id)
	return nil
}

func GetPosting(id int) (*models.Posting, error) {
	row := DB.QueryRow(`SELECT `+postingColumns+` FROM postings WHERE id=?`, id)
	p, err := scanPosting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("posting %d: %w", id, ErrNotFound)
	}
	return p, err
}

func GetAllPostings() ([]*models.Posting, error) {
	rows, err := DB.Query(`SELECT ` + postingColumns + ` FROM postings ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	postings := []*models.Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

func DeletePosting(id int) error {
	result, err := DB.Exec(`DELETE FROM postings WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "posting", id)
}

// Assessment operations

func SaveAssessmentResult(r *models.AssessmentResult) error {
	var profileID sql.NullInt64
	if r.ProfileID != 0 {
		profileID = sql.NullInt64{Int64: int64(r.ProfileID), Valid: true}
	}

	query := `INSERT INTO skill_assessments (id, profile_id, category, question_index, score,
			  max_score, keywords_found, total_keywords, feedback, completed_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := DB.Exec(query, r.ID, profileID, r.Category, r.QuestionIndex, r.Score,
		r.MaxScore, r.KeywordsFound, r.TotalKeywords, r.Feedback, r.CompletedAt.UTC())
	return err
}

// GetAssessmentResults lists results newest first. profileID 0 lists all.
func GetAssessmentResults(profileID int) ([]*models.AssessmentResult, error) {
	query := `SELECT id, profile_id, category, question_index, score, max_score,
			  keywords_found, total_keywords, feedback, completed_at
			  FROM skill_assessments`
	args := []any{}
	if profileID != 0 {
		query += ` WHERE profile_id=?`
		args = append(args, profileID)
	}
	query += ` ORDER BY completed_at DESC`

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []*models.AssessmentResult{}
	for rows.Next() {
		r := &models.AssessmentResult{}
		var pid sql.NullInt64
		err := rows.Scan(&r.ID, &pid, &r.Category, &r.QuestionIndex, &r.Score, &r.MaxScore,
			&r.KeywordsFound, &r.TotalKeywords, &r.Feedback, &r.CompletedAt)
		if err != nil {
			return nil, err
		}
		r.ProfileID = int(pid.Int64)
		results = append(results, r)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*models.Profile, error) {
	p := &models.Profile{}
	var skills, jobTypes string
	err := s.Scan(&p.ID, &p.Name, &skills, &p.Location, &p.ExperienceYears, &p.Bio,
		&jobTypes, &p.SalaryExpectation, &p.Verified, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.Skills, err = decodeList(skills); err != nil {
		return nil, err
	}
	if p.PreferredJobTypes, err = decodeList(jobTypes); err != nil {
		return nil, err
	}
	return p, nil
}

func scanPosting(s scanner) (*models.Posting, error) {
	p := &models.Posting{}
	var skills string
	err := s.Scan(&p.ID, &p.Title, &p.Company, &skills, &p.Location, &p.ExperienceLevel,
		&p.Description, &p.JobType, &p.SalaryRange, &p.EmployerVerified, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if p.SkillsRequired, err = decodeList(skills); err != nil {
		return nil, err
	}
	return p, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	var items []string
	if s == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return items, nil
}

func requireAffected(result sql.Result, kind string, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}
