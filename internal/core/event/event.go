// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

// Package event turns a GitHub webhook payload into the typed context
// every rule evaluates against.
package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Context is the flattened view of a pull request or issue event.
type Context struct {
	Action   string   `json:"action"`
	Author   string   `json:"author"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Number   int      `json:"number"`
	IsMerged bool     `json:"is_merged"`
	Labels   []string `json:"labels,omitempty"`
}

// Overrides are values injected by the workflow that take precedence over
// the payload. Zero values mean "not set".
type Overrides struct {
	Number   int
	Action   string
	Author   string
	Title    string
	Body     string
	IsMerged *bool
	Labels   []string
}

// OverridesFromEnv reads the PR_* variables once. Unparsable numbers and
// booleans are ignored rather than rejected.
func OverridesFromEnv(getenv func(string) string) Overrides {
	ov := Overrides{
		Action: strings.ReplaceAll(getenv("PR_ACTION"), `"`, ""),
		Author: strings.ReplaceAll(getenv("PR_AUTHOR"), `"`, ""),
		Title:  getenv("PR_TITLE"),
		Body:   getenv("PR_BODY"),
	}

	if n, err := strconv.Atoi(strings.TrimSpace(getenv("PR_NUMBER"))); err == nil && n > 0 {
		ov.Number = n
	}
	if b, err := strconv.ParseBool(strings.TrimSpace(getenv("PR_IS_MERGED"))); err == nil {
		ov.IsMerged = &b
	}
	if raw := strings.TrimSpace(getenv("PR_LABELS")); raw != "" {
		ov.Labels = SplitLabels(raw)
	}

	return ov
}

// Parse decodes a raw webhook payload for the given event name.
func Parse(eventName string, data []byte) (any, error) {
	payload, err := github.ParseWebHook(eventName, data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s payload: %w", eventName, err)
	}
	return payload, nil
}

// Extract builds a Context from a parsed payload and the overrides.
// It never fails: unknown payload types and missing fields yield zero values.
func Extract(payload any, ov Overrides) Context {
	var ctx Context

	switch ev := payload.(type) {
	case *github.PullRequestEvent:
		pr := ev.GetPullRequest()
		ctx.Action = ev.GetAction()
		ctx.Number = ev.GetNumber()
		if ctx.Number == 0 {
			ctx.Number = pr.GetNumber()
		}
		ctx.Title = pr.GetTitle()
		ctx.Body = pr.GetBody()
		ctx.Author = pr.GetUser().GetLogin()
		ctx.IsMerged = pr.GetMerged()
		if pr != nil {
			ctx.Labels = labelNames(pr.Labels)
		}
	case *github.IssuesEvent:
		issue := ev.GetIssue()
		ctx.Action = ev.GetAction()
		ctx.Number = issue.GetNumber()
		ctx.Title = issue.GetTitle()
		ctx.Body = issue.GetBody()
		ctx.Author = issue.GetUser().GetLogin()
		if issue != nil {
			ctx.Labels = labelNames(issue.Labels)
		}
	case *github.WorkflowRunEvent:
		ctx.Action = ev.GetAction()
		if run := ev.GetWorkflowRun(); run != nil && len(run.PullRequests) > 0 {
			ctx.Number = run.PullRequests[0].GetNumber()
		}
	}

	applyOverrides(&ctx, ov)
	return ctx
}

func applyOverrides(ctx *Context, ov Overrides) {
	if ov.Number != 0 {
		ctx.Number = ov.Number
	}
	if ov.Action != "" {
		ctx.Action = ov.Action
	}
	if ov.Author != "" {
		ctx.Author = ov.Author
	}
	if ov.Title != "" {
		ctx.Title = ov.Title
	}
	if ov.Body != "" {
		ctx.Body = ov.Body
	}
	if ov.IsMerged != nil {
		ctx.IsMerged = *ov.IsMerged
	}
	if ov.Labels != nil {
		ctx.Labels = ov.Labels
	}
}

func labelNames(labels []*github.Label) []string {
	if len(labels) == 0 {
		return nil
	}
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		if name := l.GetName(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// SplitLabels parses a comma-separated label list.
func SplitLabels(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinLabels is the inverse of SplitLabels.
func JoinLabels(labels []string) string {
	return strings.Join(labels, ",")
}
