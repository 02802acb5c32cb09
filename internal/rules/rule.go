// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

// Package rules implements the declarative gating table: every rule is a
// guard, a pattern against one field of the event, and an outcome for
// each side of the match.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/aws-powertools/repobot/internal/core/config"
	"github.com/aws-powertools/repobot/internal/core/event"
)

// Decision is the result of evaluating a rule.
type Decision int

const (
	Skipped Decision = iota
	Matched
	NoMatch
)

func (d Decision) String() string {
	switch d {
	case Matched:
		return "matched"
	case NoMatch:
		return "no-match"
	default:
		return "skipped"
	}
}

// Outcome is the compiled form of config.OutcomeConfig.
type Outcome struct {
	Comment *template.Template
	Labels  []string
	Fail    bool
}

// IsZero reports whether the outcome has no side effects.
func (o Outcome) IsZero() bool {
	return o.Comment == nil && len(o.Labels) == 0 && !o.Fail
}

// Rule is one compiled, immutable row of the gating table.
type Rule struct {
	Name       string
	Actions    []string
	MergedOnly bool
	Field      string
	OnMatch    Outcome
	OnNoMatch  Outcome

	pattern *regexp.Regexp
	ignored func(login string) bool
}

// Evaluation records what a rule decided for one event.
type Evaluation struct {
	Rule       string
	Decision   Decision
	SkipReason string
	Captures   map[string]string
	Outcome    Outcome
}

// Compile builds every rule in the config. The author ignore list is shared by all rules.
func Compile(cfg *config.Config) ([]*Rule, error) {
	compiled := make([]*Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		r, err := CompileRule(rc, cfg.IsIgnoredAuthor)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, r)
	}
	return compiled, nil
}

// CompileRule compiles a single rule. ignored may be nil.
func CompileRule(rc config.RuleConfig, ignored func(login string) bool) (*Rule, error) {
	switch rc.Field {
	case config.FieldTitle, config.FieldBody, config.FieldLabels:
	default:
		return nil, fmt.Errorf("rule '%s': unknown field %q", rc.Name, rc.Field)
	}

	re, err := regexp.Compile(rc.Pattern)
	if err != nil {
		return nil, fmt.Errorf("rule '%s': invalid pattern: %w", rc.Name, err)
	}

	onMatch, err := compileOutcome(rc.Name, rc.OnMatch)
	if err != nil {
		return nil, err
	}
	onNoMatch, err := compileOutcome(rc.Name, rc.OnNoMatch)
	if err != nil {
		return nil, err
	}

	return &Rule{
		Name:       rc.Name,
		Actions:    rc.Actions,
		MergedOnly: rc.MergedOnly,
		Field:      rc.Field,
		OnMatch:    onMatch,
		OnNoMatch:  onNoMatch,
		pattern:    re,
		ignored:    ignored,
	}, nil
}

func compileOutcome(name string, oc config.OutcomeConfig) (Outcome, error) {
	out := Outcome{Labels: oc.Labels, Fail: oc.Fail}
	if oc.Comment == "" {
		return out, nil
	}
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(oc.Comment)
	if err != nil {
		return Outcome{}, fmt.Errorf("rule '%s': invalid comment template: %w", name, err)
	}
	out.Comment = tmpl
	return out, nil
}

// Guard decides whether the rule applies to the event at all.
// Order: ignored author, lifecycle action, merged-only.
func (r *Rule) Guard(ec event.Context) (string, bool) {
	if r.ignored != nil && r.ignored(ec.Author) {
		return "Author in ignore list; skipping...", false
	}
	if len(r.Actions) > 0 && !contains(r.Actions, ec.Action) {
		return fmt.Sprintf("Only run on %s actions; skipping", strings.Join(r.Actions, "/")), false
	}
	if r.MergedOnly && !ec.IsMerged {
		return "Only run on merged PRs; skipping", false
	}
	return "", true
}

// NeedsLabels reports whether the rule reads labels from the API.
func (r *Rule) NeedsLabels() bool {
	return r.Field == config.FieldLabels
}

// Evaluate runs the guard and, if it passes, the pattern. For the labels
// field any label matching the pattern is a match; labels are passed in
// so the caller can refresh them from the API first.
func (r *Rule) Evaluate(ec event.Context, labels []string) Evaluation {
	eval := Evaluation{Rule: r.Name}

	if reason, ok := r.Guard(ec); !ok {
		eval.Decision = Skipped
		eval.SkipReason = reason
		return eval
	}

	var match []string
	switch r.Field {
	case config.FieldTitle:
		match = r.pattern.FindStringSubmatch(ec.Title)
	case config.FieldBody:
		match = r.pattern.FindStringSubmatch(ec.Body)
	case config.FieldLabels:
		for _, l := range labels {
			if match = r.pattern.FindStringSubmatch(l); match != nil {
				break
			}
		}
	}

	if match == nil {
		eval.Decision = NoMatch
		eval.Outcome = r.OnNoMatch
		return eval
	}

	eval.Decision = Matched
	eval.Outcome = r.OnMatch
	eval.Captures = namedCaptures(r.pattern, match)
	return eval
}

func namedCaptures(re *regexp.Regexp, match []string) map[string]string {
	captures := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" || i >= len(match) {
			continue
		}
		captures[name] = match[i]
	}
	return captures
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
