package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() MatchReport {
	return MatchReport{
		Title:     "Jobs for Ada",
		Direction: "jobs_for_candidate",
		Subject:   "Ada (#1)",
		Results: []models.MatchResult{
			{
				SubjectID:    1,
				TargetID:     7,
				OverallScore: 0.8234,
				SubScores: map[string]float64{
					models.FactorSkills: 0.75, models.FactorLocation: 1, models.FactorExperience: 1,
					models.FactorText: 0.4, models.FactorJobType: 1, models.FactorSalary: 0.7,
				},
				Reasons: []string{"Strong skill match: go, sql", "Excellent location match"},
			},
			{SubjectID: 1, TargetID: 3, OverallScore: 0.445, SubScores: map[string]float64{}},
		},
		TargetNames: map[int]string{7: "Backend Engineer at Acme", 3: "Math Tutor at School"},
		GeneratedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestExportMatchesAddsExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report")

	path, err := ExportMatches(sampleReport(), out)
	require.NoError(t, err)
	assert.Equal(t, out+".xlsx", path)
	assert.FileExists(t, path)

	path, err = ExportMatches(sampleReport(), out+".XLSX")
	require.NoError(t, err)
	assert.Equal(t, out+".XLSX", path)
}

func TestExportMatchesContents(t *testing.T) {
	path, err := ExportMatches(sampleReport(), filepath.Join(t.TempDir(), "report.xlsx"))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, rankingsSheet}, f.GetSheetList())

	title, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Jobs for Ada", title)

	rows, err := f.GetRows(rankingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, rankingHeaders, rows[0])
	assert.Equal(t, []string{"1", "7", "Backend Engineer at Acme", "0.823"}, rows[1][:4])
	assert.Equal(t, "Strong skill match: go, sql; Excellent location match", rows[1][10])
	assert.Equal(t, "Math Tutor at School", rows[2][2])
}
