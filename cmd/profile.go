package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/talentmatch/internal/database"
	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/khrees2412/talentmatch/internal/records"
	"github.com/khrees2412/talentmatch/pkg/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage candidate profiles",
	Long:  "Add, list, view, update, import and remove the candidate profiles used for matching",
}

var addProfileCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a candidate profile",
	Example: `  talentmatch profile add --name "Ada Lovelace" --skills go,sql --location Berlin --experience "5+ years"
  talentmatch profile add --name "Grace" --job-types full-time,remote --salary 80k --verified`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &models.Profile{}
		if err := applyProfileFlags(cmd.Flags(), p); err != nil {
			return err
		}
		if p.Name == "" {
			return fmt.Errorf("--name is required")
		}

		if err := database.CreateProfile(p); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		cmd.Printf("✓ Profile added: %s (ID: %d)\n", p.Name, p.ID)
		return nil
	},
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := database.GetAllProfiles()
		if err != nil {
			return fmt.Errorf("fetch profiles: %w", err)
		}

		if len(profiles) == 0 {
			cmd.Println("No profiles found. Add one with 'talentmatch profile add --name NAME'")
			return nil
		}

		cmd.Println(titleStyle.Render("Profiles"))
		for _, p := range profiles {
			verified := ""
			if p.Verified {
				verified = goodScore.Render(" ✓ verified")
			}
			cmd.Printf("%s %s%s\n", labelStyle.Render(fmt.Sprintf("#%d", p.ID)), p.Name, verified)
			cmd.Printf("   %s\n", dimStyle.Render(fmt.Sprintf("%s · %d yrs · %s",
				joinOrDash(p.Skills), p.ExperienceYears, valueOrDash(p.Location))))
		}
		return nil
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show <profile-id>",
	Short: "Display a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "profile")
		if err != nil {
			return err
		}
		p, err := database.GetProfile(id)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render(p.Name))
		printField(cmd, "ID:", fmt.Sprint(p.ID))
		printField(cmd, "Skills:", joinOrDash(p.Skills))
		printField(cmd, "Location:", p.Location)
		printField(cmd, "Experience:", fmt.Sprintf("%d years", p.ExperienceYears))
		printField(cmd, "Job Types:", strings.Join(p.PreferredJobTypes, ", "))
		printField(cmd, "Salary Expectation:", p.SalaryExpectation)
		if p.Verified {
			printField(cmd, "Verified:", "yes")
		}
		printField(cmd, "Added:", p.CreatedAt.Format("Jan 2, 2006"))
		if p.Bio != "" {
			cmd.Println(labelStyle.Render("\nBio:"))
			cmd.Println(p.Bio)
		}
		return nil
	},
}

var setProfileCmd = &cobra.Command{
	Use:   "set <profile-id>",
	Short: "Update profile fields",
	Example: `  talentmatch profile set 1 --location "Remote"
  talentmatch profile set 1 --skills go,rust,sql --experience 6`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "profile")
		if err != nil {
			return err
		}
		p, err := database.GetProfile(id)
		if err != nil {
			return err
		}

		changed := false
		cmd.Flags().Visit(func(*pflag.Flag) { changed = true })
		if !changed {
			cmd.Println("No fields to update. Use flags like --name, --skills, etc.")
			return nil
		}

		if err := applyProfileFlags(cmd.Flags(), p); err != nil {
			return err
		}
		if err := database.UpdateProfile(p); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		cmd.Println("✓ Profile updated successfully!")
		return nil
	},
}

var removeProfileCmd = &cobra.Command{
	Use:   "remove <profile-id>",
	Short: "Remove a profile and its assessment history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "profile")
		if err != nil {
			return err
		}
		p, err := database.GetProfile(id)
		if err != nil {
			return err
		}
		if err := database.DeleteProfile(id); err != nil {
			return fmt.Errorf("remove profile: %w", err)
		}
		cmd.Printf("✓ Removed profile: %s\n", p.Name)
		return nil
	},
}

var importProfilesCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profiles from a JSON or YAML list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := records.LoadProfiles(args[0])
		if err != nil {
			return err
		}
		for i := range profiles {
			profiles[i].ID = 0
			if err := database.CreateProfile(&profiles[i]); err != nil {
				return fmt.Errorf("save profile #%d: %w", i, err)
			}
		}
		cmd.Printf("✓ Imported %d profiles\n", len(profiles))
		return nil
	},
}

// applyProfileFlags copies the flags the user set onto p.
func applyProfileFlags(flags *pflag.FlagSet, p *models.Profile) error {
	if flags.Changed("name") {
		p.Name, _ = flags.GetString("name")
	}
	if flags.Changed("skills") {
		p.Skills, _ = flags.GetStringSlice("skills")
	}
	if flags.Changed("location") {
		p.Location, _ = flags.GetString("location")
	}
	if flags.Changed("experience") {
		raw, _ := flags.GetString("experience")
		years, ok := matcher.ParseYears(raw).Get()
		if !ok {
			return fmt.Errorf("invalid --experience %q: expected a number of years", raw)
		}
		p.ExperienceYears = years
	}
	if flags.Changed("bio") {
		p.Bio, _ = flags.GetString("bio")
	}
	if flags.Changed("job-types") {
		p.PreferredJobTypes, _ = flags.GetStringSlice("job-types")
	}
	if flags.Changed("salary") {
		p.SalaryExpectation, _ = flags.GetString("salary")
	}
	if flags.Changed("verified") {
		p.Verified, _ = flags.GetBool("verified")
	}
	return nil
}

func addProfileFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "Candidate name")
	flags.StringSlice("skills", nil, "Comma-separated skills")
	flags.String("location", "", "Location")
	flags.String("experience", "", "Years of experience, e.g. 3 or \"5+ years\"")
	flags.String("bio", "", "Free-text bio")
	flags.StringSlice("job-types", nil, "Preferred job types, e.g. full-time,remote")
	flags.String("salary", "", "Salary expectation, e.g. 80k")
	flags.Bool("verified", false, "Mark the candidate as verified")
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(setProfileCmd)
	profileCmd.AddCommand(removeProfileCmd)
	profileCmd.AddCommand(importProfilesCmd)

	addProfileFlags(addProfileCmd.Flags())
	addProfileFlags(setProfileCmd.Flags())
}
