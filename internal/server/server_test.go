package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/khrees2412/talentmatch/internal/app"
	"github.com/khrees2412/talentmatch/internal/assessment"
	"github.com/khrees2412/talentmatch/internal/config"
	"github.com/khrees2412/talentmatch/internal/database"
	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	profiles []*models.Profile
	postings []*models.Posting
	saved    []*models.AssessmentResult
}

func (s *stubStore) GetProfile(id int) (*models.Profile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("profile %d: %w", id, database.ErrNotFound)
}

func (s *stubStore) GetPosting(id int) (*models.Posting, error) {
	for _, p := range s.postings {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("posting %d: %w", id, database.ErrNotFound)
}

func (s *stubStore) GetAllProfiles() ([]*models.Profile, error) { return s.profiles, nil }
func (s *stubStore) GetAllPostings() ([]*models.Posting, error) { return s.postings, nil }

func (s *stubStore) SaveAssessmentResult(r *models.AssessmentResult) error {
	s.saved = append(s.saved, r)
	return nil
}

func (s *stubStore) GetAssessmentResults(int) ([]*models.AssessmentResult, error) {
	return s.saved, nil
}

func newTestServer(t *testing.T) (http.Handler, *stubStore) {
	t.Helper()

	store := &stubStore{
		profiles: []*models.Profile{
			{ID: 1, Name: "Ada", Skills: []string{"go", "sql"}, Location: "Berlin", ExperienceYears: 4},
			{ID: 2, Name: "Grace", Skills: []string{"cobol"}, Location: "Lagos"},
		},
		postings: []*models.Posting{
			{ID: 10, Title: "Backend Engineer", Company: "Acme", SkillsRequired: []string{"go"}, Location: "Berlin"},
		},
	}
	cfg := &config.Config{
		Matching:   matcher.DefaultConfig(),
		Assessment: assessment.DefaultGraderConfig(),
	}
	a, err := app.New(cfg, store, nil)
	require.NoError(t, err)

	return New(a).Router(), store
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	do(t, h, http.MethodGet, "/healthz", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "talentmatch_http_requests_total")
}

func TestMatchJobsInline(t *testing.T) {
	h, _ := newTestServer(t)

	body := `{
		"profile": {"name": "Ada", "skills": ["Go"], "location": "Berlin"},
		"postings": [
			{"title": "Chef", "skills_required": ["baking"], "location": "Lagos"},
			{"title": "Gopher", "skills_required": ["go"], "location": "Berlin"}
		]
	}`
	rec := do(t, h, http.MethodPost, "/v1/match/jobs", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(matcher.DirectionJobs), resp.Direction)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1, resp.Results[0].Rank)
	assert.Equal(t, 2, resp.Results[0].TargetID)
	assert.Equal(t, "Gopher", resp.Results[0].Target)
	assert.Contains(t, resp.Results[0].Reasons, "Strong skill match: go")
}

func TestMatchJobsStoredProfile(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/match/jobs", `{"profile_id": 1, "top_k": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 10, resp.Results[0].TargetID)
	assert.Equal(t, "Backend Engineer at Acme", resp.Results[0].Target)
}

func TestMatchCandidatesStored(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/match/candidates", `{"posting_id": 10, "min_score": 0.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp matchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 1, resp.Results[0].TargetID)
	assert.Equal(t, "Ada", resp.Results[0].Target)
}

func TestMatchErrors(t *testing.T) {
	h, _ := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/v1/match/jobs", `{`, http.StatusBadRequest, "bad_request"},
		{"unknown request field", "/v1/match/jobs", `{"profile_id": 1, "nope": true}`, http.StatusBadRequest, "bad_request"},
		{"missing subject", "/v1/match/jobs", `{}`, http.StatusBadRequest, "bad_request"},
		{"negative top_k", "/v1/match/jobs", `{"profile_id": 1, "top_k": -1}`, http.StatusBadRequest, "bad_request"},
		{"min_score out of range", "/v1/match/candidates", `{"posting_id": 10, "min_score": 2}`, http.StatusBadRequest, "bad_request"},
		{"unknown profile", "/v1/match/jobs", `{"profile_id": 99}`, http.StatusNotFound, "not_found"},
		{"unknown posting", "/v1/match/candidates", `{"posting_id": 99}`, http.StatusNotFound, "not_found"},
		{"bad record", "/v1/match/jobs", `{"profile": {"experience_years": -3}}`, http.StatusBadRequest, "invalid_argument"},
		{"posting without title", "/v1/match/candidates", `{"posting": {"company": "Acme"}}`, http.StatusBadRequest, "invalid_argument"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestListAssessments(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/v1/assessments", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cats []categoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Questions)
	}
	assert.Contains(t, names, "python")
	assert.Contains(t, names, "teaching")
}

func TestGradeAssessment(t *testing.T) {
	h, store := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/v1/assessments/python/0",
		`{"answer": "def factorial(n): if n == 0: return 1 else: return n * factorial(n-1)", "profile_id": 1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.AssessmentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 10, result.MaxScore)
	assert.Equal(t, 1, result.ProfileID)
	require.Len(t, store.saved, 1)
}

func TestGradeAssessmentErrors(t *testing.T) {
	h, store := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/assessments/python/x", `{"answer": ""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/assessments/klingon/0", `{"answer": ""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/v1/assessments/python/42", `{"answer": ""}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/v1/assessments/python/0", `{"answer": "", "profile_id": 7}`).Code)
	assert.Empty(t, store.saved)
}
