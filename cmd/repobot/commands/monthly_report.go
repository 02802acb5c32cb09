// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/report"
)

var (
	reportMonth string
	reportOut   string
)

// monthlyReportCmd represents the monthly-report command
var monthlyReportCmd = &cobra.Command{
	Use:   "monthly-report",
	Short: "Summarise a month of repository activity as markdown",
	Long: `Counts issues and pull requests opened and closed in a calendar month,
labels on closed items, and pull request contributors. Authors in the
ignore list are left out.

Usage:
  repobot monthly-report [--month 2026-09] [--out report.md]`,
	Run: func(cmd *cobra.Command, args []string) {
		runMonthlyReport()
	},
}

func init() {
	rootCmd.AddCommand(monthlyReportCmd)

	monthlyReportCmd.Flags().StringVar(&reportMonth, "month", "", "Month as YYYY-MM (default: previous month)")
	monthlyReportCmd.Flags().StringVar(&reportOut, "out", "", "Write the report to a file instead of stdout")
}

func runMonthlyReport() {
	reporter := actions.New()
	ctx := context.Background()

	org, repo := resolveRepo(repoFlag, os.Getenv)
	if org == "" || repo == "" {
		fail(reporter, "--repo owner/name is required (or set GITHUB_REPOSITORY)")
	}

	period, err := report.ParseMonth(reportMonth, time.Now())
	if err != nil {
		fail(reporter, "%v", err)
	}

	gh, err := newGitHubClient(ctx)
	if err != nil {
		fail(reporter, "%v", err)
	}

	cfg, err := loadConfig(ctx, gh)
	if err != nil {
		fail(reporter, "%v", err)
	}

	if verbose {
		fmt.Printf("Collecting activity for %s/%s in %s\n", org, repo, period.Label())
	}
	r, err := report.Collect(ctx, gh, org, repo, period, cfg.IsIgnoredAuthor)
	if err != nil {
		fail(reporter, "Monthly report failed: %v", err)
	}

	md, err := r.Markdown()
	if err != nil {
		fail(reporter, "%v", err)
	}

	if reportOut == "" {
		fmt.Print(md)
		return
	}
	if err := os.WriteFile(reportOut, []byte(md), 0644); err != nil {
		fail(reporter, "Failed to write report: %v", err)
	}
	reporter.SetOutput("reportPath", reportOut)
	fmt.Printf("[repobot] Wrote %s report to %s\n", period.Label(), reportOut)
}
