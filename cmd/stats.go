package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View assessment statistics",
	Long:  "Display average and best scores per assessment category",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		profileID, _ := cmd.Flags().GetInt("profile")

		stats, err := application.AssessmentStats(profileID)
		if err != nil {
			return fmt.Errorf("fetch assessments: %w", err)
		}

		if stats.Total == 0 {
			cmd.Println("No assessments yet. Grade an answer with 'talentmatch assess grade'")
			return nil
		}

		cmd.Println(titleStyle.Render("Assessment Statistics"))

		// Overall stats
		cmd.Printf("\n%s\n", labelStyle.Render("Overview"))
		cmd.Printf("  Total Attempts: %d\n", stats.Total)
		cmd.Printf("  Average Score: %.1f%%\n", stats.AveragePercent)

		cmd.Printf("\n%s\n", labelStyle.Render("By Category"))
		for _, cs := range stats.Categories {
			cmd.Printf("  %-14s %s attempts: %d  avg: %.1f%%  best: %.1f%%\n",
				cs.Category, scoreBar(cs.AveragePercent/100), cs.Attempts, cs.AveragePercent, cs.BestPercent)
		}

		// Recent activity
		cmd.Printf("\n%s\n", labelStyle.Render("Recent Activity"))
		for _, r := range stats.Recent {
			cmd.Printf("  %s: %s question %d scored %d/%d\n",
				r.CompletedAt.Format("Jan 2"), r.Category, r.QuestionIndex, r.Score, r.MaxScore)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Int("profile", 0, "Only include this profile's attempts")
}
