// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/event"
)

var snapshotFile string

// savePRCmd represents the save-pr command
var savePRCmd = &cobra.Command{
	Use:   "save-pr",
	Short: "Save the triggering event payload for a follow-up workflow",
	Long: `Writes the event payload of the current run to a snapshot file, to be
uploaded as an artifact and consumed by a privileged workflow_run workflow
through download-pr-artifact and export-pr.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSavePR()
	},
}

// exportPRCmd represents the export-pr command
var exportPRCmd = &cobra.Command{
	Use:   "export-pr",
	Short: "Export a saved snapshot as workflow outputs",
	Long: `Reads a snapshot written by save-pr and sets the outputs prNumber,
prTitle, prBody, prAuthor, prAction, prIsMerged, prLabels and snapshotId.`,
	Run: func(cmd *cobra.Command, args []string) {
		runExportPR()
	},
}

func init() {
	rootCmd.AddCommand(savePRCmd)
	rootCmd.AddCommand(exportPRCmd)

	savePRCmd.Flags().StringVar(&snapshotFile, "file", "", "Snapshot path (default: snapshot.path from config, pr.txt)")
	exportPRCmd.Flags().StringVar(&snapshotFile, "file", "", "Snapshot path (default: snapshot.path from config, pr.txt)")
}

// resolveSnapshotPath prefers the flag over the configured path.
func resolveSnapshotPath(ctx context.Context, reporter *actions.Reporter) string {
	if snapshotFile != "" {
		return snapshotFile
	}
	gh, _ := newGitHubClient(ctx)
	cfg, err := loadConfig(ctx, gh)
	if err != nil {
		fail(reporter, "%v", err)
	}
	return cfg.Snapshot.Path
}

func runSavePR() {
	reporter := actions.New()
	ctx := context.Background()

	rc, err := reporter.Context()
	if err != nil {
		fail(reporter, "%v", err)
	}
	if rc.EventPath == "" {
		fail(reporter, "GITHUB_EVENT_PATH is not set")
	}

	raw, err := os.ReadFile(rc.EventPath)
	if err != nil {
		fail(reporter, "Failed to read event payload: %v", err)
	}

	snap, err := event.NewSnapshot(rc.EventName, raw)
	if err != nil {
		fail(reporter, "Failed to capture event: %v", err)
	}

	path := resolveSnapshotPath(ctx, reporter)
	if err := event.SaveSnapshot(path, snap); err != nil {
		fail(reporter, "%v", err)
	}

	reporter.SetOutput("snapshotId", snap.ID)
	fmt.Printf("[repobot] Saved %s snapshot %s to %s\n", snap.EventName, snap.ID, path)
}

func runExportPR() {
	reporter := actions.New()
	ctx := context.Background()

	path := resolveSnapshotPath(ctx, reporter)
	snap, err := event.LoadSnapshot(path)
	if err != nil {
		fail(reporter, "%v", err)
	}

	ec, err := exportSnapshot(reporter, snap, event.OverridesFromEnv(os.Getenv))
	if err != nil {
		fail(reporter, "Failed to export snapshot: %v", err)
	}
	fmt.Printf("[repobot] Exported #%d (%s) from snapshot %s\n", ec.Number, ec.Action, snap.ID)
}

// exportSnapshot sets the pr* outputs from the snapshot payload.
func exportSnapshot(reporter *actions.Reporter, snap *event.Snapshot, ov event.Overrides) (event.Context, error) {
	ec, err := snap.Context(ov)
	if err != nil {
		return event.Context{}, err
	}

	reporter.SetOutput("prNumber", strconv.Itoa(ec.Number))
	reporter.SetOutput("prTitle", ec.Title)
	reporter.SetOutput("prBody", ec.Body)
	reporter.SetOutput("prAuthor", ec.Author)
	reporter.SetOutput("prAction", ec.Action)
	reporter.SetOutput("prIsMerged", strconv.FormatBool(ec.IsMerged))
	reporter.SetOutput("prLabels", event.JoinLabels(ec.Labels))
	reporter.SetOutput("snapshotId", snap.ID)
	return ec, nil
}
