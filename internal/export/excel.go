package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	rankingsSheet = "Rankings"
)

// MatchReport is the input for ExportMatches.
type MatchReport struct {
	Title       string
	Direction   string
	Subject     string
	Results     []models.MatchResult
	TargetNames map[int]string
	GeneratedAt time.Time
}

var rankingHeaders = []string{
	"Rank", "Target ID", "Target", "Overall",
	"Skills", "Location", "Experience", "Text", "Job Type", "Salary",
	"Reasons",
}

// ExportMatches writes a ranking report to outputPath and returns the path
// actually written, which always ends in .xlsx.
func ExportMatches(report MatchReport, outputPath string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Ensure output path has .xlsx extension
	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return "", err
	}
	if _, err := f.NewSheet(rankingsSheet); err != nil {
		return "", err
	}

	if err := writeSummary(f, report); err != nil {
		return "", fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRankings(f, report); err != nil {
		return "", fmt.Errorf("failed to create rankings sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}
	return outputPath, nil
}

func writeSummary(f *excelize.File, report MatchReport) error {
	f.SetColWidth(summarySheet, "A", "A", 22)
	f.SetColWidth(summarySheet, "B", "B", 50)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	title := report.Title
	if title == "" {
		title = "Match Report"
	}
	f.SetCellValue(summarySheet, "A1", title)
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
	f.MergeCell(summarySheet, "A1", "B1")

	generated := report.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	rows := [][2]any{
		{"Direction:", report.Direction},
		{"Subject:", report.Subject},
		{"Generated:", generated.Format("2006-01-02 15:04:05")},
		{"Results:", len(report.Results)},
	}
	if len(report.Results) > 0 {
		total, best := 0.0, 0.0
		for _, r := range report.Results {
			total += r.OverallScore
			best = max(best, r.OverallScore)
		}
		rows = append(rows,
			[2]any{"Best Score:", fmt.Sprintf("%.1f%%", best*100)},
			[2]any{"Average Score:", fmt.Sprintf("%.1f%%", total/float64(len(report.Results))*100)},
		)
	}

	for i, r := range rows {
		row := i + 3
		label := fmt.Sprintf("A%d", row)
		f.SetCellValue(summarySheet, label, r[0])
		f.SetCellStyle(summarySheet, label, label, labelStyle)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1])
	}
	return nil
}

func writeRankings(f *excelize.File, report MatchReport) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, h := range rankingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(rankingsSheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(rankingHeaders), 1)
	f.SetCellStyle(rankingsSheet, "A1", last, headerStyle)
	f.SetColWidth(rankingsSheet, "C", "C", 30)
	f.SetColWidth(rankingsSheet, "K", "K", 80)

	for i, r := range report.Results {
		values := []any{
			i + 1,
			r.TargetID,
			report.TargetNames[r.TargetID],
			round3(r.OverallScore),
		}
		for _, factor := range models.Factors {
			values = append(values, round3(r.SubScores[factor]))
		}
		values = append(values, strings.Join(r.Reasons, "; "))

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(rankingsSheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
