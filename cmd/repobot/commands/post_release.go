// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-02-22
// Last Modified: 2026-10-18

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/steps"
)

var releaseVersion string

// postReleaseCmd represents the post-release command
var postReleaseCmd = &cobra.Command{
	Use:   "post-release",
	Short: "Notify and close every item waiting for a release",
	Long: `Comments on every issue and pull request labeled 'pending-release'
(open or closed) with a link to the release, then closes it with the
label removed. Other labels are kept.

Usage:
  repobot post-release --version 2.1.0 [--repo owner/name] [--dry-run]

Environment variables:
  GITHUB_TOKEN     Required. Token with issues:write permission.
  RELEASE_VERSION  Used when --version is not set.`,
	Run: func(cmd *cobra.Command, args []string) {
		runPostRelease()
	},
}

func init() {
	rootCmd.AddCommand(postReleaseCmd)

	postReleaseCmd.Flags().StringVar(&releaseVersion, "version", "", "Released version, with or without a leading 'v' (or set RELEASE_VERSION)")
}

func runPostRelease() {
	reporter := actions.New()
	ctx := context.Background()

	org, repo := resolveRepo(repoFlag, os.Getenv)
	if org == "" || repo == "" {
		fail(reporter, "--repo owner/name is required (or set GITHUB_REPOSITORY)")
	}

	version := releaseVersion
	if version == "" {
		version = os.Getenv("RELEASE_VERSION")
	}
	if steps.NormalizeVersion(version) == "" {
		fail(reporter, "Release version is required (--version or RELEASE_VERSION)")
	}

	gh, err := newGitHubClient(ctx)
	if err != nil {
		fail(reporter, "%v", err)
	}

	cfg, err := loadConfig(ctx, gh)
	if err != nil {
		fail(reporter, "%v", err)
	}

	notifier := steps.NewReleaseNotifier(gh, cfg, reporter, dryRun, verbose)

	fmt.Printf("[repobot] Running post-release for %s/%s...\n", org, repo)
	result, err := notifier.Run(ctx, org, repo, version)
	if err != nil {
		fail(reporter, "Post-release failed: %v", err)
	}

	fmt.Printf("\n=== Post-Release Summary ===\n")
	fmt.Printf("Version:   %s\n", result.Version)
	fmt.Printf("Processed: %d\n", result.Processed)
	fmt.Printf("Notified:  %d\n", result.Notified)
	fmt.Printf("Closed:    %d\n", result.Closed)
	if len(result.Errors) > 0 {
		fmt.Printf("Errors:    %d\n", len(result.Errors))
	}

	resultBytes, err := json.MarshalIndent(result, "", "  ")
	if err == nil {
		fmt.Println("\n=== Detailed Result ===")
		fmt.Println(string(resultBytes))
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
