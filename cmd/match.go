package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/talentmatch/internal/export"
	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/spf13/cobra"
)

var factorLabels = map[string]string{
	models.FactorSkills:     "skills",
	models.FactorLocation:   "location",
	models.FactorExperience: "experience",
	models.FactorText:       "text",
	models.FactorJobType:    "job type",
	models.FactorSalary:     "salary",
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank jobs for a candidate or candidates for a job",
}

var matchJobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Rank saved jobs for a profile",
	Example: `  talentmatch match jobs --profile 1
  talentmatch match jobs --profile 1 --top 5 --min-score 0.5 --xlsx report.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		profileID, _ := cmd.Flags().GetInt("profile")
		if profileID <= 0 {
			return fmt.Errorf("--profile is required")
		}
		top, minScore, err := rankingFlags(cmd)
		if err != nil {
			return err
		}

		report, err := application.MatchJobs(profileID, top, minScore)
		if err != nil {
			return err
		}
		return presentReport(cmd, report)
	},
}

var matchCandidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Rank saved profiles for a job",
	Example: `  talentmatch match candidates --job 3
  talentmatch match candidates --job 3 --top 10 --xlsx shortlist`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		jobID, _ := cmd.Flags().GetInt("job")
		if jobID <= 0 {
			return fmt.Errorf("--job is required")
		}
		top, minScore, err := rankingFlags(cmd)
		if err != nil {
			return err
		}

		report, err := application.MatchCandidates(jobID, top, minScore)
		if err != nil {
			return err
		}
		return presentReport(cmd, report)
	},
}

func rankingFlags(cmd *cobra.Command) (int, float64, error) {
	top, _ := cmd.Flags().GetInt("top")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	if top < 0 {
		return 0, 0, fmt.Errorf("--top must not be negative")
	}
	if minScore < 0 || minScore > 1 {
		return 0, 0, fmt.Errorf("--min-score must be between 0 and 1")
	}
	return top, minScore, nil
}

func presentReport(cmd *cobra.Command, report export.MatchReport) error {
	printReport(cmd, report)

	xlsx, _ := cmd.Flags().GetString("xlsx")
	if xlsx == "" {
		return nil
	}
	path, err := export.ExportMatches(report, xlsx)
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	cmd.Printf("\n✓ Report written to %s\n", path)
	return nil
}

func printReport(cmd *cobra.Command, report export.MatchReport) {
	cmd.Println(titleStyle.Render(report.Title))

	if len(report.Results) == 0 {
		cmd.Println("No matches found.")
		return
	}

	for i, res := range report.Results {
		name := report.TargetNames[res.TargetID]
		cmd.Printf("%s %s %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%2d.", i+1)),
			scoreBar(res.OverallScore),
			scoreStyle(res.OverallScore).Render(fmt.Sprintf("%5.1f%%", res.OverallScore*100)),
			name,
		)

		parts := make([]string, 0, len(models.Factors))
		for _, f := range models.Factors {
			parts = append(parts, fmt.Sprintf("%s %.2f", factorLabels[f], res.SubScores[f]))
		}
		cmd.Printf("    %s\n", dimStyle.Render(strings.Join(parts, " · ")))

		for _, reason := range res.Reasons {
			cmd.Printf("    • %s\n", reason)
		}
	}
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.AddCommand(matchJobsCmd)
	matchCmd.AddCommand(matchCandidatesCmd)

	matchJobsCmd.Flags().Int("profile", 0, "Profile ID to rank jobs for")
	matchCandidatesCmd.Flags().Int("job", 0, "Job ID to rank candidates for")

	for _, c := range []*cobra.Command{matchJobsCmd, matchCandidatesCmd} {
		c.Flags().Int("top", 0, "Number of results (0 uses the configured default)")
		c.Flags().Float64("min-score", 0, "Drop results scoring below this value (0-1)")
		c.Flags().String("xlsx", "", "Also write the ranking to an Excel report")
	}
}
