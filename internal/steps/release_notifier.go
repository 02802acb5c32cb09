// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-02-22
// Last Modified: 2026-10-18

package steps

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"text/template"

	githubapi "github.com/google/go-github/v60/github"
	"golang.org/x/sync/errgroup"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/config"
	"github.com/aws-powertools/repobot/internal/integrations/github"
	"github.com/aws-powertools/repobot/internal/rules"
	"github.com/aws-powertools/repobot/internal/utils/text"
)

// ReleaseNotifyResult holds the summary of a post-release run.
type ReleaseNotifyResult struct {
	Version   string                `json:"version"`
	Processed int                   `json:"processed"`
	Notified  int                   `json:"notified"`
	Closed    int                   `json:"closed"`
	Errors    []string              `json:"errors,omitempty"`
	Details   []ReleaseNotifyDetail `json:"details,omitempty"`
}

// ReleaseNotifyDetail records the outcome for a single issue.
type ReleaseNotifyDetail struct {
	Number int    `json:"number"`
	Action string `json:"action"` // "closed", "close_failed", "comment_failed"
	Reason string `json:"reason,omitempty"`
}

// releaseData is what the post_release templates can reference.
type releaseData struct {
	Org        string
	Repo       string
	Version    string
	ReleaseURL string
}

// ReleaseNotifier comments on every item waiting for a release and closes it.
type ReleaseNotifier struct {
	github   *github.Client
	cfg      *config.Config
	reporter *actions.Reporter
	dryRun   bool
	verbose  bool
}

// NewReleaseNotifier creates a new ReleaseNotifier.
func NewReleaseNotifier(gh *github.Client, cfg *config.Config, reporter *actions.Reporter, dryRun, verbose bool) *ReleaseNotifier {
	return &ReleaseNotifier{
		github:   gh,
		cfg:      cfg,
		reporter: reporter,
		dryRun:   dryRun,
		verbose:  verbose,
	}
}

// NormalizeVersion strips whitespace and a leading "v".
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}

// Run processes every item labeled pending-release, in any state.
// Per-item failures are collected in the result; the error return is
// reserved for failures that stop the run as a whole.
func (rn *ReleaseNotifier) Run(ctx context.Context, org, repo, version string) (*ReleaseNotifyResult, error) {
	if rn.github == nil {
		return nil, fmt.Errorf("GitHub client is required for post-release")
	}

	version = NormalizeVersion(version)
	if version == "" {
		return nil, fmt.Errorf("release version is required")
	}

	comment, err := rn.renderComment(org, repo, version)
	if err != nil {
		return nil, err
	}

	pending := rn.cfg.Labels.PendingRelease
	issues, err := rn.github.ListIssuesByLabel(ctx, org, repo, pending, "all")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch '%s' issues: %w", pending, err)
	}

	if rn.verbose {
		log.Printf("[post-release] Found %d items with '%s' label", len(issues), pending)
	}

	result := &ReleaseNotifyResult{Version: version}
	var mu sync.Mutex
	record := func(d ReleaseNotifyDetail) {
		mu.Lock()
		defer mu.Unlock()
		result.Processed++
		switch d.Action {
		case "closed":
			result.Notified++
			result.Closed++
		case "close_failed":
			result.Notified++
			result.Errors = append(result.Errors, fmt.Sprintf("#%d: %s", d.Number, d.Reason))
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("#%d: %s", d.Number, d.Reason))
		}
		result.Details = append(result.Details, d)
	}

	var g errgroup.Group
	g.SetLimit(max(rn.cfg.PostRelease.Concurrency, 1))

	for _, issue := range issues {
		issue := issue
		g.Go(func() error {
			record(rn.notify(ctx, org, repo, issue.GetNumber(), comment, remainingLabels(issue, pending)))
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(result.Details, func(i, j int) bool {
		return result.Details[i].Number < result.Details[j].Number
	})
	sort.Strings(result.Errors)
	return result, nil
}

// notify comments on one item, then closes it with pending-release removed.
// The close is only attempted after the comment succeeded.
func (rn *ReleaseNotifier) notify(ctx context.Context, org, repo string, number int, comment string, labels []string) ReleaseNotifyDetail {
	detail := ReleaseNotifyDetail{Number: number}
	log.Printf("[post-release] Updating issue number %d", number)

	if rn.dryRun {
		detail.Action = "closed"
		detail.Reason = fmt.Sprintf("DRY RUN: would comment and close with labels %v", labels)
		log.Printf("[post-release] DRY RUN: would notify and close #%d", number)
		return detail
	}

	if err := rn.github.CreateComment(ctx, org, repo, number, comment); err != nil {
		detail.Action = "comment_failed"
		detail.Reason = fmt.Sprintf("failed to notify release: %v", err)
		rn.reporter.Fail("Failed to update issue %d about release: %v", number, err)
		return detail
	}

	if err := rn.github.UpdateIssue(ctx, org, repo, number, "closed", labels); err != nil {
		detail.Action = "close_failed"
		detail.Reason = fmt.Sprintf("failed to close: %v", err)
		rn.reporter.Fail("Failed to close issue %d: %v", number, err)
		return detail
	}

	detail.Action = "closed"
	log.Printf("[post-release] Issue number %d closed and updated", number)
	return detail
}

func (rn *ReleaseNotifier) renderComment(org, repo, version string) (string, error) {
	data := releaseData{Org: org, Repo: repo, Version: version}

	urlTmpl, err := template.New("release_url").Parse(rn.cfg.PostRelease.ReleaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid release_url template: %w", err)
	}
	if data.ReleaseURL, err = rules.Execute(urlTmpl, data); err != nil {
		return "", err
	}

	commentTmpl, err := template.New("comment").Parse(rn.cfg.PostRelease.Comment)
	if err != nil {
		return "", fmt.Errorf("invalid post_release comment template: %w", err)
	}
	body, err := rules.Execute(commentTmpl, data)
	if err != nil {
		return "", err
	}
	return text.BuildComment("post-release", body), nil
}

// remainingLabels keeps every label except the pending one.
func remainingLabels(issue *githubapi.Issue, pending string) []string {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		if name := l.GetName(); name != "" && name != pending {
			labels = append(labels, name)
		}
	}
	return labels
}
