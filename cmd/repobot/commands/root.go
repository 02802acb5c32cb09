// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

// Package commands holds the repobot cobra commands, one per automation entry point.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile  string
	verbose  bool
	dryRun   bool
	repoFlag string
)

var rootCmd = &cobra.Command{
	Use:     "repobot",
	Short:   "Pull request and issue automation for GitHub Actions",
	Version: Version,
	Long: `repobot labels, comments on and gates pull requests and issues.

Each sub-command is one automation entry point, run by a GitHub Actions
workflow on a single event: it extracts the event context, evaluates the
configured rules, performs zero or more side effects, and exits.

Environment variables:
  GITHUB_TOKEN       Token with issues:write and pull-requests:write permission.
  GITHUB_REPOSITORY  owner/name, used when --repo is not set.
  PR_NUMBER, PR_ACTION, PR_AUTHOR, PR_TITLE, PR_BODY, PR_IS_MERGED, PR_LABELS
                     Optional overrides of the event payload.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: .github/repobot.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log actions without executing them")
	rootCmd.PersistentFlags().StringVar(&repoFlag, "repo", "", "Repository in owner/name format (or set GITHUB_REPOSITORY)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
