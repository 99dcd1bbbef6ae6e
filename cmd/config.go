package cmd

import (
	"fmt"
	"slices"

	"github.com/khrees2412/talentmatch/internal/config"
	"github.com/khrees2412/talentmatch/internal/matcher"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig
		if cfg == nil {
			return fmt.Errorf("configuration not loaded")
		}

		cmd.Println(titleStyle.Render("Configuration"))
		printField(cmd, "Config File:", config.GetConfigPath())
		printField(cmd, "Database:", cfg.Database.Path)
		printField(cmd, "Server Address:", cfg.Server.Addr)
		printField(cmd, "JSON Logs:", fmt.Sprint(cfg.Log.JSON))
		printField(cmd, "Workers:", fmt.Sprint(cfg.Matching.Workers))

		for _, d := range []matcher.Direction{matcher.DirectionJobs, matcher.DirectionCandidates} {
			dc := cfg.Matching.For(d)
			cmd.Printf("\n%s\n", labelStyle.Render(string(d)))
			cmd.Printf("  top_k: %d\n", dc.TopK)
			cmd.Printf("  weights: skills %.2f, location %.2f, experience %.2f, text %.2f, job_type %.2f, salary %.2f\n",
				dc.Weights.Skills, dc.Weights.Location, dc.Weights.Experience, dc.Weights.Text, dc.Weights.JobType, dc.Weights.Salary)
			cmd.Printf("  boosts: verified %.2f, recent %.2f within %s\n",
				dc.Boosts.Verified, dc.Boosts.Recent, dc.Boosts.RecentWindow)
		}

		bank := cfg.Assessment.BankPath
		if bank == "" {
			bank = "built-in"
		}
		cmd.Printf("\n%s\n", labelStyle.Render("assessment"))
		cmd.Printf("  question bank: %s\n", bank)
		cmd.Printf("  length target: %d words\n", cfg.Assessment.LengthTarget)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  talentmatch config set --key server.addr --value :9090
  talentmatch config set --key matching.jobs_for_candidate.top_k --value 25
  talentmatch config set --key log.json --value true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}
		if !slices.Contains(config.SettableKeys, key) {
			return fmt.Errorf("invalid key. Must be one of: %v", config.SettableKeys)
		}

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("update config: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

var pathConfigCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(config.GetConfigPath())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)
	configCmd.AddCommand(pathConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
