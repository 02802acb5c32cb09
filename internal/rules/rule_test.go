// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package rules

import (
	"strings"
	"testing"

	"github.com/aws-powertools/repobot/internal/core/config"
	"github.com/aws-powertools/repobot/internal/core/event"
)

const ackBody = "Issue number: 4801\n\nBy submitting this pull request, I confirm that you can use, modify, copy, and redistribute this contribution, under the terms of your choice."

func compileDefaults(t *testing.T) (*config.Config, map[string]*Rule) {
	t.Helper()
	cfg := config.Default()
	compiled, err := Compile(cfg)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	byName := make(map[string]*Rule, len(compiled))
	for _, r := range compiled {
		byName[r.Name] = r
	}
	return cfg, byName
}

func TestCompile_Defaults(t *testing.T) {
	_, byName := compileDefaults(t)

	for _, name := range []string{"related-issue", "acknowledgment", "large-pr"} {
		if _, ok := byName[name]; !ok {
			t.Errorf("Expected default rule %q", name)
		}
	}
	if !byName["large-pr"].NeedsLabels() {
		t.Error("Expected large-pr to read labels")
	}
	if byName["related-issue"].NeedsLabels() {
		t.Error("Expected related-issue to read the body only")
	}
}

func TestCompileRule_Errors(t *testing.T) {
	tests := []struct {
		name string
		rc   config.RuleConfig
	}{
		{"unknown field", config.RuleConfig{Name: "x", Field: "author", Pattern: "a"}},
		{"bad pattern", config.RuleConfig{Name: "x", Field: config.FieldBody, Pattern: "("}},
		{"bad template", config.RuleConfig{Name: "x", Field: config.FieldBody, Pattern: "a", OnMatch: config.OutcomeConfig{Comment: "{{.Broken"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CompileRule(tt.rc, nil); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestGuard_Order(t *testing.T) {
	rule, err := CompileRule(config.RuleConfig{
		Name:       "merged-only",
		Actions:    []string{"closed"},
		MergedOnly: true,
		Field:      config.FieldBody,
		Pattern:    "x",
		OnMatch:    config.OutcomeConfig{Fail: true},
	}, func(login string) bool { return login == "dependabot[bot]" })
	if err != nil {
		t.Fatalf("CompileRule failed: %v", err)
	}

	tests := []struct {
		name   string
		ec     event.Context
		ok     bool
		reason string
	}{
		{"ignored author wins", event.Context{Author: "dependabot[bot]", Action: "opened"}, false, "ignore list"},
		{"wrong action", event.Context{Author: "alice", Action: "opened", IsMerged: true}, false, "closed"},
		{"not merged", event.Context{Author: "alice", Action: "closed"}, false, "merged"},
		{"applies", event.Context{Author: "alice", Action: "closed", IsMerged: true}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, ok := rule.Guard(tt.ec)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !strings.Contains(reason, tt.reason) {
				t.Errorf("Expected reason containing %q, got %q", tt.reason, reason)
			}
		})
	}
}

func TestEvaluate_RelatedIssue(t *testing.T) {
	_, byName := compileDefaults(t)
	rule := byName["related-issue"]

	eval := rule.Evaluate(event.Context{Action: "opened", Author: "alice", Body: ackBody}, nil)
	if eval.Decision != Matched {
		t.Fatalf("Expected match, got %s", eval.Decision)
	}
	if eval.Captures["issue"] != "4801" {
		t.Errorf("Expected issue capture 4801, got %q", eval.Captures["issue"])
	}
	if !eval.Outcome.IsZero() {
		t.Error("Expected no side effects on match")
	}

	eval = rule.Evaluate(event.Context{Action: "opened", Author: "alice", Body: "no reference here"}, nil)
	if eval.Decision != NoMatch {
		t.Fatalf("Expected no-match, got %s", eval.Decision)
	}
	want := []string{config.DefaultBlockLabel, config.DefaultMissingIssueLabel}
	if strings.Join(eval.Outcome.Labels, ",") != strings.Join(want, ",") {
		t.Errorf("Expected labels %v, got %v", want, eval.Outcome.Labels)
	}
	if eval.Outcome.Comment == nil {
		t.Error("Expected a guidance comment")
	}
}

func TestEvaluate_Acknowledgment(t *testing.T) {
	_, byName := compileDefaults(t)
	rule := byName["acknowledgment"]

	if d := rule.Evaluate(event.Context{Action: "opened", Body: ackBody}, nil).Decision; d != Matched {
		t.Errorf("Expected match, got %s", d)
	}

	eval := rule.Evaluate(event.Context{Action: "opened", Body: "Issue number: 1"}, nil)
	if eval.Decision != NoMatch {
		t.Fatalf("Expected no-match, got %s", eval.Decision)
	}
	if eval.Outcome.Labels[1] != config.DefaultMissingAckLabel {
		t.Errorf("Expected %s label, got %v", config.DefaultMissingAckLabel, eval.Outcome.Labels)
	}
}

func TestEvaluate_LargePR(t *testing.T) {
	_, byName := compileDefaults(t)
	rule := byName["large-pr"]
	ec := event.Context{Action: "labeled", Author: "alice"}

	tests := []struct {
		name     string
		labels   []string
		decision Decision
	}{
		{"xxl present", []string{"feature", "size/XXL"}, Matched},
		{"xl only", []string{"size/XL"}, NoMatch},
		{"prefix is not enough", []string{"size/XXL-ish"}, NoMatch},
		{"no labels", nil, NoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := rule.Evaluate(ec, tt.labels)
			if eval.Decision != tt.decision {
				t.Errorf("Expected %s, got %s", tt.decision, eval.Decision)
			}
		})
	}

	eval := rule.Evaluate(ec, []string{"size/XXL"})
	if eval.Outcome.Comment == nil {
		t.Error("Expected large PR comment on match")
	}
	if d := rule.Evaluate(event.Context{Action: "opened"}, []string{"size/XXL"}).Decision; d != Skipped {
		t.Errorf("Expected skip for non-labeled action, got %s", d)
	}
}

func TestEvaluate_IgnoredAuthorSkipsEveryRule(t *testing.T) {
	_, byName := compileDefaults(t)

	for _, author := range []string{"dependabot[bot]", "Dependabot[bot]", "markdownify[bot]"} {
		for name, rule := range byName {
			for _, action := range []string{"opened", "labeled"} {
				eval := rule.Evaluate(event.Context{Action: action, Author: author}, []string{"size/XXL"})
				if eval.Decision != Skipped {
					t.Errorf("rule %s, author %s, action %s: expected skip, got %s", name, author, action, eval.Decision)
				}
				if !eval.Outcome.IsZero() {
					t.Errorf("rule %s: expected no side effects when skipped", name)
				}
			}
		}
	}
}

func TestEvaluate_Title(t *testing.T) {
	rule, err := CompileRule(config.RuleConfig{
		Name:      "no-wip",
		Field:     config.FieldTitle,
		Pattern:   `^WIP`,
		OnMatch:   config.OutcomeConfig{Labels: []string{"do-not-merge"}},
		OnNoMatch: config.OutcomeConfig{},
	}, nil)
	if err != nil {
		t.Fatalf("CompileRule failed: %v", err)
	}

	if d := rule.Evaluate(event.Context{Title: "WIP: tracer"}, nil).Decision; d != Matched {
		t.Errorf("Expected match, got %s", d)
	}
	if d := rule.Evaluate(event.Context{Title: "feat: tracer"}, nil).Decision; d != NoMatch {
		t.Errorf("Expected no-match, got %s", d)
	}
}

func TestOutcomeRender(t *testing.T) {
	cfg := config.Default()
	rule, err := CompileRule(config.RuleConfig{
		Name:    "release",
		Field:   config.FieldBody,
		Pattern: cfg.IssueReference,
		OnMatch: config.OutcomeConfig{
			Comment: "{{.Maintainers}} issue #{{index .Captures \"issue\"}} gets '{{.Label.PendingRelease}}' from PR #{{.Number}}",
		},
	}, nil)
	if err != nil {
		t.Fatalf("CompileRule failed: %v", err)
	}

	ec := event.Context{Number: 10, Body: "Issue number: #55"}
	eval := rule.Evaluate(ec, nil)
	body, err := eval.Outcome.Render(NewCommentData(cfg, ec, eval.Captures))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	want := "@aws-powertools/powertools-python issue #55 gets 'pending-release' from PR #10"
	if body != want {
		t.Errorf("Expected %q, got %q", want, body)
	}

	empty, err := Outcome{}.Render(CommentData{})
	if err != nil || empty != "" {
		t.Errorf("Expected empty render without error, got %q, %v", empty, err)
	}
}
