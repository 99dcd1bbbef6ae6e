package cmd

import (
	"fmt"

	"github.com/khrees2412/talentmatch/internal/database"
	"github.com/khrees2412/talentmatch/internal/records"
	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Manage job postings",
	Long:  "Add, list, view, import and remove job postings",
}

var addJobCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a job posting",
	Example: `  talentmatch job add --title "Software Engineer" --company "Acme Inc" --location "Remote" --skills go,sql
  talentmatch job add --title "Math Tutor" --level "1-3 years" --type part-time --salary "30k-40k"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		company, _ := cmd.Flags().GetString("company")
		skills, _ := cmd.Flags().GetStringSlice("skills")
		location, _ := cmd.Flags().GetString("location")
		level, _ := cmd.Flags().GetString("level")
		description, _ := cmd.Flags().GetString("description")
		jobType, _ := cmd.Flags().GetString("type")
		salary, _ := cmd.Flags().GetString("salary")
		verified, _ := cmd.Flags().GetBool("verified")

		if title == "" {
			return fmt.Errorf("--title is required")
		}

		job := &models.Posting{
			Title:            title,
			Company:          company,
			SkillsRequired:   skills,
			Location:         location,
			ExperienceLevel:  level,
			Description:      description,
			JobType:          jobType,
			SalaryRange:      salary,
			EmployerVerified: verified,
		}

		if err := database.CreatePosting(job); err != nil {
			return fmt.Errorf("save job: %w", err)
		}

		cmd.Printf("✓ Job added: %s (ID: %d)\n", postingTitle(job), job.ID)
		return nil
	},
}

var listJobsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := database.GetAllPostings()
		if err != nil {
			return fmt.Errorf("fetch jobs: %w", err)
		}

		if len(jobs) == 0 {
			cmd.Println("No jobs found. Add jobs with 'talentmatch job add --title TITLE'")
			return nil
		}

		cmd.Println(titleStyle.Render("Saved Jobs"))
		for i, job := range jobs {
			cmd.Printf("\n%s. %s\n", labelStyle.Render(fmt.Sprintf("%d", i+1)), job.Title)
			if job.Company != "" {
				cmd.Printf("   %s %s\n", labelStyle.Render("Company:"), job.Company)
			}
			if job.Location != "" {
				cmd.Printf("   %s %s\n", labelStyle.Render("Location:"), job.Location)
			}
			cmd.Printf("   %s %d\n", labelStyle.Render("ID:"), job.ID)
			cmd.Printf("   %s %s\n", labelStyle.Render("Added:"), job.CreatedAt.Format("Jan 2, 2006"))
		}
		return nil
	},
}

var showJobCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show details of a specific job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := parseID(args[0], "job")
		if err != nil {
			return err
		}

		job, err := database.GetPosting(jobID)
		if err != nil {
			return fmt.Errorf("fetch job: %w", err)
		}

		cmd.Println(titleStyle.Render(job.Title))
		printField(cmd, "Company:", job.Company)
		printField(cmd, "Skills:", joinOrDash(job.SkillsRequired))
		printField(cmd, "Location:", job.Location)
		printField(cmd, "Experience:", job.ExperienceLevel)
		printField(cmd, "Type:", titleCase(job.JobType))
		printField(cmd, "Salary:", job.SalaryRange)
		if job.EmployerVerified {
			printField(cmd, "Employer:", "verified")
		}
		printField(cmd, "Added:", job.CreatedAt.Format("Jan 2, 2006 15:04"))

		if job.Description != "" {
			cmd.Println(labelStyle.Render("\nDescription:"))
			cmd.Println(job.Description)
		}
		return nil
	},
}

var removeJobCmd = &cobra.Command{
	Use:   "remove <job-id>",
	Short: "Remove a job posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobID, err := parseID(args[0], "job")
		if err != nil {
			return err
		}

		// Check if job exists
		job, err := database.GetPosting(jobID)
		if err != nil {
			return err
		}

		if err := database.DeletePosting(jobID); err != nil {
			return fmt.Errorf("remove job: %w", err)
		}

		cmd.Printf("✓ Removed job: %s\n", postingTitle(job))
		return nil
	},
}

var importJobsCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import job postings from a JSON or YAML list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postings, err := records.LoadPostings(args[0])
		if err != nil {
			return err
		}
		for i := range postings {
			postings[i].ID = 0
			if err := database.CreatePosting(&postings[i]); err != nil {
				return fmt.Errorf("save posting #%d: %w", i, err)
			}
		}
		cmd.Printf("✓ Imported %d jobs\n", len(postings))
		return nil
	},
}

func postingTitle(p *models.Posting) string {
	if p.Company == "" {
		return p.Title
	}
	return p.Title + " at " + p.Company
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(addJobCmd)
	jobCmd.AddCommand(listJobsCmd)
	jobCmd.AddCommand(showJobCmd)
	jobCmd.AddCommand(removeJobCmd)
	jobCmd.AddCommand(importJobsCmd)

	// Flags for add command
	addJobCmd.Flags().String("title", "", "Job title")
	addJobCmd.Flags().String("company", "", "Company name")
	addJobCmd.Flags().StringSlice("skills", nil, "Comma-separated required skills")
	addJobCmd.Flags().String("location", "", "Job location")
	addJobCmd.Flags().String("level", "", "Experience level, e.g. fresher, 1-3 years, 3-5 years, senior")
	addJobCmd.Flags().String("description", "", "Job description")
	addJobCmd.Flags().String("type", "", "Job type, e.g. full-time, part-time, contract")
	addJobCmd.Flags().String("salary", "", "Salary range, e.g. 60k-80k")
	addJobCmd.Flags().Bool("verified", false, "Mark the employer as verified")
}
