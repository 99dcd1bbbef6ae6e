package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/khrees2412/talentmatch/internal/app"
	"github.com/khrees2412/talentmatch/internal/assessment"
	"github.com/khrees2412/talentmatch/internal/database"
	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Skill assessments",
	Long:  "List assessment questions, grade answers and review assessment history",
}

var listAssessCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List assessment categories and questions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		bank := application.Grader.Bank()

		cats := bank.Categories()
		if len(args) == 1 {
			cat, ok := bank.Category(args[0])
			if !ok {
				return fmt.Errorf("%w: unknown category %q", app.ErrInvalidArgument, args[0])
			}
			cats = []assessment.Category{cat}
		}

		for _, cat := range cats {
			cmd.Println(titleStyle.Render(fmt.Sprintf("%s (%s)", titleCase(cat.Name), cat.Group)))
			for i, q := range cat.Questions {
				cmd.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("[%d]", i)), q.Prompt)
				cmd.Printf("    %s\n", dimStyle.Render(fmt.Sprintf("%s · max %d points", valueOrDash(q.Difficulty), q.MaxScore)))
			}
		}
		return nil
	},
}

var gradeAssessCmd = &cobra.Command{
	Use:   "grade <category> <question-index>",
	Short: "Grade an answer",
	Example: `  talentmatch assess grade python 0 --answer "def factorial(n): ..."
  talentmatch assess grade communication 1 --answer-file answer.txt --profile 2
  cat answer.txt | talentmatch assess grade teaching 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		index, err := questionIndex(args[1])
		if err != nil {
			return err
		}
		answer, err := readAnswer(cmd)
		if err != nil {
			return err
		}
		profileID, _ := cmd.Flags().GetInt("profile")

		result, err := application.Assess(profileID, args[0], index, answer)
		if err != nil {
			return err
		}
		printResult(cmd, result)
		return nil
	},
}

var takeAssessCmd = &cobra.Command{
	Use:   "take <category>",
	Short: "Answer assessment questions interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := appFrom(cmd)
		if err != nil {
			return err
		}
		cat, ok := application.Grader.Bank().Category(args[0])
		if !ok {
			return fmt.Errorf("%w: unknown category %q", app.ErrInvalidArgument, args[0])
		}
		profileID, _ := cmd.Flags().GetInt("profile")

		const done = "Done"
		items := make([]string, 0, len(cat.Questions)+1)
		for i, q := range cat.Questions {
			items = append(items, fmt.Sprintf("%d. %s", i, q.Prompt))
		}
		items = append(items, done)

		for {
			selectPrompt := promptui.Select{
				Label: fmt.Sprintf("Choose a %s question and press ENTER", cat.Name),
				Items: items,
				Size:  len(items),
			}
			idx, choice, err := selectPrompt.Run()
			if err != nil {
				return interrupted(err)
			}
			if choice == done {
				return nil
			}

			answerPrompt := promptui.Prompt{
				Label: "Your answer",
				Validate: func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("answer must not be empty")
					}
					return nil
				},
			}
			answer, err := answerPrompt.Run()
			if err != nil {
				return interrupted(err)
			}

			result, err := application.Assess(profileID, cat.Name, idx, answer)
			if err != nil {
				return err
			}
			printResult(cmd, result)
		}
	},
}

var historyAssessCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stored assessment results",
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, _ := cmd.Flags().GetInt("profile")

		results, err := database.GetAssessmentResults(profileID)
		if err != nil {
			return fmt.Errorf("fetch assessments: %w", err)
		}
		if len(results) == 0 {
			cmd.Println("No assessments yet. Try 'talentmatch assess take python'")
			return nil
		}

		cmd.Println(titleStyle.Render("Assessment History"))
		for _, r := range results {
			who := "anonymous"
			if r.ProfileID != 0 {
				who = fmt.Sprintf("profile #%d", r.ProfileID)
			}
			cmd.Printf("%s %s [%d] %s %s\n",
				dimStyle.Render(r.CompletedAt.Format("Jan 2 15:04")),
				labelStyle.Render(r.Category),
				r.QuestionIndex,
				scoreStyle(r.Percent()/100).Render(fmt.Sprintf("%d/%d", r.Score, r.MaxScore)),
				dimStyle.Render(who),
			)
		}
		return nil
	},
}

func printResult(cmd *cobra.Command, r models.AssessmentResult) {
	cmd.Println(titleStyle.Render(fmt.Sprintf("%s · question %d", titleCase(r.Category), r.QuestionIndex)))
	cmd.Printf("%s %s %s\n",
		labelStyle.Render("Score:"),
		scoreBar(r.Percent()/100),
		scoreStyle(r.Percent()/100).Render(fmt.Sprintf("%d/%d", r.Score, r.MaxScore)),
	)
	cmd.Printf("%s %s\n", labelStyle.Render("Feedback:"), r.Feedback)
}

func questionIndex(arg string) (int, error) {
	var index int
	if _, err := fmt.Sscanf(arg, "%d", &index); err != nil {
		return 0, fmt.Errorf("invalid question index %q: must be a number", arg)
	}
	return index, nil
}

// readAnswer takes --answer, then --answer-file, then stdin.
func readAnswer(cmd *cobra.Command) (string, error) {
	if answer, _ := cmd.Flags().GetString("answer"); answer != "" {
		return answer, nil
	}

	var r io.Reader = cmd.InOrStdin()
	if path, _ := cmd.Flags().GetString("answer-file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open answer file: %w", err)
		}
		defer f.Close()
		r = f
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return string(b), nil
}

func interrupted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(assessCmd)
	assessCmd.AddCommand(listAssessCmd)
	assessCmd.AddCommand(gradeAssessCmd)
	assessCmd.AddCommand(takeAssessCmd)
	assessCmd.AddCommand(historyAssessCmd)

	gradeAssessCmd.Flags().String("answer", "", "Answer text")
	gradeAssessCmd.Flags().String("answer-file", "", "Read the answer from a file")
	for _, c := range []*cobra.Command{gradeAssessCmd, takeAssessCmd, historyAssessCmd} {
		c.Flags().Int("profile", 0, "Profile ID the attempt belongs to (0 for anonymous)")
	}
}
