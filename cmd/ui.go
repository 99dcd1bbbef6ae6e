package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/talentmatch/internal/app"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	goodScore = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fairScore = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	poorScore = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// appFrom returns the App installed by the root command.
func appFrom(cmd *cobra.Command) (*app.App, error) {
	return app.FromContext(cmd.Context())
}

func parseID(arg, kind string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q: must be a positive number", kind, arg)
	}
	return id, nil
}

// scoreStyle colours a [0,1] score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 0.7:
		return goodScore
	case score >= 0.4:
		return fairScore
	default:
		return poorScore
	}
}

// scoreBar draws score as a ten-cell bar.
func scoreBar(score float64) string {
	filled := int(score*10 + 0.5)
	filled = max(0, min(filled, 10))
	return scoreStyle(score).Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", 10-filled))
}

func printField(cmd *cobra.Command, label, value string) {
	if value == "" {
		return
	}
	cmd.Printf("%s %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// titleCase converts a string to title case using proper locale-aware capitalization
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
