// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/event"
	"github.com/aws-powertools/repobot/internal/core/pipeline"
	"github.com/aws-powertools/repobot/internal/tui"
)

var (
	workflow  string
	eventName string
	eventPath string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a workflow preset against the triggering event",
	Long: `Run a workflow preset (or the steps listed in the config) against a
pull request or issue event.

Presets:
  on-opened-pr     related issue and acknowledgment checks
  on-label-added   large PR notice
  on-merged-pr     label the related issue as pending release
  label-pr-title   conventional-commit type and area labels

The event is read from GITHUB_EVENT_PATH / GITHUB_EVENT_NAME unless
--event-path / --event-name are given. PR_* environment variables
override payload values.`,
	Run: func(cmd *cobra.Command, args []string) {
		runRun()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&workflow, "workflow", "", "Workflow preset to run (default: config workflow or on-opened-pr)")
	runCmd.Flags().StringVar(&eventName, "event-name", "", "Event name (default: GITHUB_EVENT_NAME)")
	runCmd.Flags().StringVar(&eventPath, "event-path", "", "Path to event payload JSON (default: GITHUB_EVENT_PATH)")
}

func runRun() {
	reporter := actions.New()
	ctx := context.Background()

	org, repo := resolveRepo(repoFlag, os.Getenv)
	if org == "" || repo == "" {
		fail(reporter, "--repo owner/name is required (or set GITHUB_REPOSITORY)")
	}

	ev, err := loadEvent(reporter, eventName, eventPath)
	if err != nil {
		fail(reporter, "Failed to read event: %v", err)
	}

	gh, err := newGitHubClient(ctx)
	if err != nil && !dryRun {
		fail(reporter, "%v", err)
	}

	cfg, err := loadConfig(ctx, gh)
	if err != nil {
		fail(reporter, "%v", err)
	}

	// --workflow overrides both the configured steps and workflow.
	wf, explicit := workflow, cfg.Steps
	if wf == "" {
		wf = cfg.Workflow
	} else {
		explicit = nil
		if _, ok := pipeline.GetPreset(wf); !ok {
			fail(reporter, "Unknown workflow %q", wf)
		}
	}
	stepNames := pipeline.ResolveSteps(explicit, wf)

	deps := &pipeline.Dependencies{
		GitHub:   gh,
		Reporter: reporter,
		DryRun:   dryRun,
	}
	job := &pipelineJob{
		deps:      deps,
		stepNames: stepNames,
		pCtx:      pipeline.NewContext(ctx, org, repo, ev, cfg),
		done:      make(chan struct{}),
	}

	if isCI(os.Getenv) {
		fmt.Printf("[repobot] Running %v on #%d in CI mode (no TUI)\n", stepNames, ev.Number)
		err = job.run(nil, nil)
		printResult(job.pCtx.Result)
	} else {
		// Two messages per step, so steps never block on a closed TUI.
		statusChan := make(chan tui.PipelineStatusMsg, 2*len(stepNames))
		p := tea.NewProgram(tui.NewModel(wf, stepNames, statusChan))

		go job.run(p, statusChan)

		final, tuiErr := p.Run()
		if tuiErr != nil {
			fmt.Printf("Error running TUI: %v\n", tuiErr)
			os.Exit(1)
		}
		err = job.wait()
		if m, ok := final.(tui.Model); ok {
			for _, stepErr := range m.Errors() {
				fmt.Printf("❌ %s\n", stepErr)
			}
		}
	}

	if err != nil {
		fail(reporter, "Run failed: %v", err)
	}
	if job.pCtx.Result.Failed {
		fail(reporter, "Run failed: %d rule(s) require changes on #%d", len(job.pCtx.Result.Errors), ev.Number)
	}
	fmt.Println("[repobot] Pipeline completed")
}

// loadEvent reads the payload and applies the PR_* overrides once.
func loadEvent(reporter *actions.Reporter, name, path string) (event.Context, error) {
	if name == "" || path == "" {
		rc, err := reporter.Context()
		if err != nil {
			return event.Context{}, err
		}
		if name == "" {
			name = rc.EventName
		}
		if path == "" {
			path = rc.EventPath
		}
	}

	overrides := event.OverridesFromEnv(os.Getenv)
	if path == "" {
		if verbose {
			fmt.Println("No event payload; using PR_* overrides only")
		}
		return event.Extract(nil, overrides), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return event.Context{}, fmt.Errorf("failed to read event payload: %w", err)
	}
	payload, err := event.Parse(name, data)
	if err != nil {
		return event.Context{}, err
	}
	return event.Extract(payload, overrides), nil
}
