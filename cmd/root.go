package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/talentmatch/internal/app"
	"github.com/khrees2412/talentmatch/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentmatch",
	Short: "Two-sided job matching and skill assessment CLI",
	Long: `Talentmatch ranks job postings for candidates and candidates for postings
using skills, location, experience, text similarity, job type and salary.
It also grades short free-text skill assessments.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		jsonLogs, _ := cmd.Flags().GetBool("json")
		debug, _ := cmd.Flags().GetBool("debug")

		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context(), app.Options{
			ConfigPath: configPath,
			JSONLogs:   jsonLogs,
			Debug:      debug,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := app.SetAppInContext(cmd.Context(), application)
		ctx = logger.ContextWithLogger(ctx, application.Logger)
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application, err := app.FromContext(cmd.Context()); err == nil {
			return application.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.talentmatch/config.yaml)")
	rootCmd.PersistentFlags().Bool("json", false, "log in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
}
