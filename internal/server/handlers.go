package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/khrees2412/talentmatch/internal/app"
	"github.com/khrees2412/talentmatch/internal/export"
	"github.com/khrees2412/talentmatch/internal/logger"
	"github.com/khrees2412/talentmatch/internal/records"
	"github.com/khrees2412/talentmatch/pkg/models"
	"go.uber.org/zap"
)

type matchJobsRequest struct {
	Profile   map[string]any   `json:"profile"`
	ProfileID int              `json:"profile_id"`
	Postings  []map[string]any `json:"postings"`
	TopK      int              `json:"top_k"`
	MinScore  float64          `json:"min_score"`
}

type matchCandidatesRequest struct {
	Posting    map[string]any   `json:"posting"`
	PostingID  int              `json:"posting_id"`
	Candidates []map[string]any `json:"candidates"`
	TopK       int              `json:"top_k"`
	MinScore   float64          `json:"min_score"`
}

type rankedResult struct {
	Rank   int    `json:"rank"`
	Target string `json:"target"`
	models.MatchResult
}

type matchResponse struct {
	Direction string         `json:"direction"`
	Subject   string         `json:"subject"`
	Results   []rankedResult `json:"results"`
}

type gradeRequest struct {
	Answer    string `json:"answer"`
	ProfileID int    `json:"profile_id"`
}

type categoryResponse struct {
	Name      string                      `json:"name"`
	Group     string                      `json:"group"`
	Grading   string                      `json:"grading"`
	Questions []models.AssessmentQuestion `json:"questions"`
}

func (s *Server) matchJobs(w http.ResponseWriter, r *http.Request) {
	var req matchJobsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := validateLimits(req.TopK, req.MinScore); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var profile models.Profile
	switch {
	case req.Profile != nil:
		p, err := records.DecodeProfile(req.Profile)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		profile = p
	case req.ProfileID != 0:
		p, err := s.app.Store.GetProfile(req.ProfileID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		profile = *p
	default:
		writeError(w, http.StatusBadRequest, "bad_request", "profile or profile_id is required")
		return
	}

	postings, err := s.postings(req.Postings)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report := s.app.RankJobs(profile, postings, req.TopK, req.MinScore)
	writeJSON(w, http.StatusOK, toResponse(report))
}

func (s *Server) matchCandidates(w http.ResponseWriter, r *http.Request) {
	var req matchCandidatesRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := validateLimits(req.TopK, req.MinScore); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	var posting models.Posting
	switch {
	case req.Posting != nil:
		p, err := records.DecodePosting(req.Posting)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		posting = p
	case req.PostingID != 0:
		p, err := s.app.Store.GetPosting(req.PostingID)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		posting = *p
	default:
		writeError(w, http.StatusBadRequest, "bad_request", "posting or posting_id is required")
		return
	}

	candidates, err := s.candidates(req.Candidates)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report := s.app.RankCandidates(posting, candidates, req.TopK, req.MinScore)
	writeJSON(w, http.StatusOK, toResponse(report))
}

func (s *Server) listAssessments(w http.ResponseWriter, _ *http.Request) {
	cats := s.app.Grader.Bank().Categories()
	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, categoryResponse{
			Name:      c.Name,
			Group:     c.Group,
			Grading:   string(c.Grading),
			Questions: c.Questions,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) gradeAssessment(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "question index must be a number")
		return
	}

	var req gradeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	result, err := s.app.Assess(req.ProfileID, chi.URLParam(r, "category"), index, req.Answer)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// postings decodes inline postings, or loads the stored ones when none are given.
// Inline records without an id are numbered from 1 in request order.
func (s *Server) postings(raw []map[string]any) ([]models.Posting, error) {
	if raw == nil {
		stored, err := s.app.Store.GetAllPostings()
		if err != nil {
			return nil, err
		}
		out := make([]models.Posting, 0, len(stored))
		for _, p := range stored {
			out = append(out, *p)
		}
		return out, nil
	}

	out := make([]models.Posting, 0, len(raw))
	for i, item := range raw {
		p, err := records.DecodePosting(item)
		if err != nil {
			return nil, fmt.Errorf("postings[%d]: %w", i, err)
		}
		if p.ID == 0 {
			p.ID = i + 1
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Server) candidates(raw []map[string]any) ([]models.Profile, error) {
	if raw == nil {
		stored, err := s.app.Store.GetAllProfiles()
		if err != nil {
			return nil, err
		}
		out := make([]models.Profile, 0, len(stored))
		for _, p := range stored {
			out = append(out, *p)
		}
		return out, nil
	}

	out := make([]models.Profile, 0, len(raw))
	for i, item := range raw {
		p, err := records.DecodeProfile(item)
		if err != nil {
			return nil, fmt.Errorf("candidates[%d]: %w", i, err)
		}
		if p.ID == 0 {
			p.ID = i + 1
		}
		out = append(out, p)
	}
	return out, nil
}

// fail maps domain errors onto HTTP statuses. Unknown errors are logged and hidden.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, records.ErrInvalidRecord), errors.Is(err, app.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func validateLimits(topK int, minScore float64) error {
	if topK < 0 {
		return fmt.Errorf("top_k must not be negative, got %d", topK)
	}
	if minScore < 0 || minScore > 1 {
		return fmt.Errorf("min_score must be within [0, 1], got %g", minScore)
	}
	return nil
}

func toResponse(report export.MatchReport) matchResponse {
	resp := matchResponse{
		Direction: report.Direction,
		Subject:   report.Subject,
		Results:   make([]rankedResult, 0, len(report.Results)),
	}
	for i, res := range report.Results {
		resp.Results = append(resp.Results, rankedResult{
			Rank:        i + 1,
			Target:      report.TargetNames[res.TargetID],
			MatchResult: res,
		})
	}
	return resp
}
