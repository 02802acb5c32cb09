// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package commands

import (
	"context"
	"fmt"
	"os"

	githubapi "github.com/google/go-github/v60/github"
	"github.com/spf13/cobra"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/event"
	"github.com/aws-powertools/repobot/internal/integrations/github"
)

var (
	artifactRunID int64
	artifactName  string
	artifactDir   string
)

// downloadArtifactCmd represents the download-pr-artifact command
var downloadArtifactCmd = &cobra.Command{
	Use:   "download-pr-artifact",
	Short: "Download and extract the snapshot artifact of the triggering run",
	Long: `Finds the artifact uploaded by the workflow run that triggered this
workflow_run event, downloads it and extracts it into --dir.`,
	Run: func(cmd *cobra.Command, args []string) {
		runDownloadArtifact()
	},
}

func init() {
	rootCmd.AddCommand(downloadArtifactCmd)

	downloadArtifactCmd.Flags().Int64Var(&artifactRunID, "run-id", 0, "Workflow run ID (default: the triggering workflow_run)")
	downloadArtifactCmd.Flags().StringVar(&artifactName, "name", "", "Artifact name (default: snapshot.artifact_name from config, pr)")
	downloadArtifactCmd.Flags().StringVar(&artifactDir, "dir", ".", "Directory to extract into")
}

func runDownloadArtifact() {
	reporter := actions.New()
	ctx := context.Background()

	org, repo := resolveRepo(repoFlag, os.Getenv)
	if org == "" || repo == "" {
		fail(reporter, "--repo owner/name is required (or set GITHUB_REPOSITORY)")
	}

	gh, err := newGitHubClient(ctx)
	if err != nil {
		fail(reporter, "%v", err)
	}

	cfg, err := loadConfig(ctx, gh)
	if err != nil {
		fail(reporter, "%v", err)
	}
	name := artifactName
	if name == "" {
		name = cfg.Snapshot.ArtifactName
	}

	runID := artifactRunID
	if runID == 0 {
		rc, err := reporter.Context()
		if err != nil {
			fail(reporter, "%v", err)
		}
		if runID, err = triggeringRunID(rc.EventName, rc.EventPath); err != nil {
			fail(reporter, "%v", err)
		}
	}

	files, err := downloadArtifact(ctx, gh, org, repo, runID, name, artifactDir)
	if err != nil {
		fail(reporter, "%v", err)
	}
	for _, f := range files {
		fmt.Printf("[repobot] Extracted %s\n", f)
	}
}

// triggeringRunID reads the workflow_run id from a workflow_run event payload.
func triggeringRunID(eventName, eventPath string) (int64, error) {
	if eventName != "workflow_run" {
		return 0, fmt.Errorf("--run-id is required outside workflow_run events (got %q)", eventName)
	}
	data, err := os.ReadFile(eventPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read event payload: %w", err)
	}
	payload, err := event.Parse(eventName, data)
	if err != nil {
		return 0, err
	}
	wr, ok := payload.(*githubapi.WorkflowRunEvent)
	if !ok || wr.GetWorkflowRun().GetID() == 0 {
		return 0, fmt.Errorf("event payload has no workflow_run id")
	}
	return wr.GetWorkflowRun().GetID(), nil
}

// downloadArtifact fetches the named artifact into a temp file and extracts it.
func downloadArtifact(ctx context.Context, gh *github.Client, org, repo string, runID int64, name, dir string) ([]string, error) {
	artifact, err := gh.FindArtifact(ctx, org, repo, runID, name)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Found artifact %s (%d bytes) in run %d\n", artifact.GetName(), artifact.GetSizeInBytes(), runID)
	}

	tmp, err := os.CreateTemp("", "repobot-artifact-*.zip")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if err := gh.DownloadArtifact(ctx, artifact, tmp); err != nil {
		return nil, err
	}

	info, err := tmp.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat artifact archive: %w", err)
	}
	return github.ExtractArtifact(tmp, info.Size(), dir)
}
