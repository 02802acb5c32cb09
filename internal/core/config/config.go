// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

// Package config handles loading and merging repobot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Default label names used by the Powertools repository.
const (
	DefaultPendingReleaseLabel = "pending-release"
	DefaultBlockLabel          = "do-not-merge"
	DefaultMissingIssueLabel   = "need-issue"
	DefaultMissingAckLabel     = "need-license-agreement-acknowledge"
	DefaultLargePRLabel        = "size/XXL"
	DefaultMaintainers         = "@aws-powertools/powertools-python"

	// DefaultIssueReferencePattern extracts the related issue from a PR body.
	// The named group "issue" carries the number.
	DefaultIssueReferencePattern = `Issue number:[^\d\r\n]+(?P<issue>\d+)`
)

// Rule fields.
const (
	FieldTitle  = "title"
	FieldBody   = "body"
	FieldLabels = "labels"
)

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// Workflow is a preset workflow name (e.g., "on-opened-pr").
	Workflow string `yaml:"workflow,omitempty"`

	// Steps is a custom list of pipeline steps (overrides workflow).
	Steps []string `yaml:"steps,omitempty"`

	// Maintainers is the team handle mentioned when a human must step in.
	Maintainers string `yaml:"maintainers"`

	// IgnoreAuthors lists logins whose PRs and issues are never gated.
	IgnoreAuthors []string `yaml:"ignore_authors,omitempty"`

	// Labels holds the fixed label names.
	Labels LabelsConfig `yaml:"labels"`

	// IssueReference is the pattern used to find the related issue in a PR body.
	IssueReference string `yaml:"issue_reference"`

	// Rules is the declarative gating table.
	Rules []RuleConfig `yaml:"rules,omitempty"`

	// Title configures conventional-commit title classification.
	Title TitleConfig `yaml:"title"`

	// PostRelease configures the release notifier.
	PostRelease PostReleaseConfig `yaml:"post_release"`

	// Snapshot configures the pr.txt hand-off between workflow phases.
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// LabelsConfig holds label names shared across rules.
type LabelsConfig struct {
	PendingRelease string `yaml:"pending_release"`
	Block          string `yaml:"block"`
	MissingIssue   string `yaml:"missing_issue"`
	MissingAck     string `yaml:"missing_acknowledgment"`
	LargePR        string `yaml:"large_pr"`
}

// RuleConfig is one row of the gating table.
type RuleConfig struct {
	Name       string        `yaml:"name"`
	Actions    []string      `yaml:"actions,omitempty"`
	MergedOnly bool          `yaml:"merged_only,omitempty"`
	Field      string        `yaml:"field"`
	Pattern    string        `yaml:"pattern"`
	OnMatch    OutcomeConfig `yaml:"on_match,omitempty"`
	OnNoMatch  OutcomeConfig `yaml:"on_no_match,omitempty"`
}

// OutcomeConfig describes the side effects of a rule decision.
type OutcomeConfig struct {
	Comment string   `yaml:"comment,omitempty"`
	Labels  []string `yaml:"labels,omitempty"`
	Fail    bool     `yaml:"fail,omitempty"`
}

// IsZero reports whether the outcome has no side effects.
func (o OutcomeConfig) IsZero() bool {
	return o.Comment == "" && len(o.Labels) == 0 && !o.Fail
}

// TitleConfig configures the title classifier.
type TitleConfig struct {
	Actions    []string          `yaml:"actions,omitempty"`
	Rules      []TitleRuleConfig `yaml:"rules,omitempty"`
	Areas      []string          `yaml:"areas,omitempty"`
	AreaPrefix string            `yaml:"area_prefix"`
}

// TitleRuleConfig maps a label to a title pattern. Order is significant.
type TitleRuleConfig struct {
	Label   string `yaml:"label"`
	Pattern string `yaml:"pattern"`
}

// PostReleaseConfig configures the post-release notifier.
type PostReleaseConfig struct {
	Concurrency int    `yaml:"concurrency"`
	Comment     string `yaml:"comment"`
	ReleaseURL  string `yaml:"release_url"`
}

// SnapshotConfig configures the pr.txt snapshot.
type SnapshotConfig struct {
	Path         string `yaml:"path"`
	ArtifactName string `yaml:"artifact_name"`
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// parseRaw expands environment variables and unmarshals YAML without defaults.
func parseRaw(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		cfg.applyDefaults()
		return cfg, nil
	}

	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	parentCfg, err := parseRaw(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	// Merge: child overrides parent
	merged := mergeConfigs(parentCfg, cfg)
	merged.applyDefaults()

	return merged, nil
}

// Default returns a config populated with the built-in defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		".github/repobot.yaml",
		".github/repobot.yml",
		".repobot.yaml",
		".repobot.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Maintainers == "" {
		c.Maintainers = DefaultMaintainers
	}
	if c.IgnoreAuthors == nil {
		c.IgnoreAuthors = []string{"dependabot[bot]", "markdownify[bot]"}
	}

	if c.Labels.PendingRelease == "" {
		c.Labels.PendingRelease = DefaultPendingReleaseLabel
	}
	if c.Labels.Block == "" {
		c.Labels.Block = DefaultBlockLabel
	}
	if c.Labels.MissingIssue == "" {
		c.Labels.MissingIssue = DefaultMissingIssueLabel
	}
	if c.Labels.MissingAck == "" {
		c.Labels.MissingAck = DefaultMissingAckLabel
	}
	if c.Labels.LargePR == "" {
		c.Labels.LargePR = DefaultLargePRLabel
	}

	if c.IssueReference == "" {
		c.IssueReference = DefaultIssueReferencePattern
	}
	if len(c.Rules) == 0 {
		c.Rules = defaultRules(c)
	}

	if len(c.Title.Actions) == 0 {
		c.Title.Actions = []string{"opened", "edited", "reopened"}
	}
	if len(c.Title.Rules) == 0 {
		c.Title.Rules = defaultTitleRules()
	}
	if c.Title.Areas == nil {
		c.Title.Areas = defaultAreas()
	}
	if c.Title.AreaPrefix == "" {
		c.Title.AreaPrefix = "area/"
	}

	if c.PostRelease.Concurrency <= 0 {
		c.PostRelease.Concurrency = 5
	}
	if c.PostRelease.Comment == "" {
		c.PostRelease.Comment = "This is now released under [{{.Version}}]({{.ReleaseURL}}) version!"
	}
	if c.PostRelease.ReleaseURL == "" {
		c.PostRelease.ReleaseURL = "https://github.com/{{.Org}}/{{.Repo}}/releases/tag/v{{.Version}}"
	}

	if c.Snapshot.Path == "" {
		c.Snapshot.Path = "pr.txt"
	}
	if c.Snapshot.ArtifactName == "" {
		c.Snapshot.ArtifactName = "pr"
	}
}

func defaultRules(c *Config) []RuleConfig {
	return []RuleConfig{
		{
			Name:    "related-issue",
			Actions: []string{"opened"},
			Field:   FieldBody,
			Pattern: c.IssueReference,
			OnNoMatch: OutcomeConfig{
				Comment: "No related issues found. Please ensure there is an open issue related to this change to avoid significant delays or closure.",
				Labels:  []string{c.Labels.Block, c.Labels.MissingIssue},
			},
		},
		{
			Name:    "acknowledgment",
			Actions: []string{"opened"},
			Field:   FieldBody,
			Pattern: `By submitting this pull request, I confirm that you can use, modify, copy, and redistribute this contribution, under the terms of your choice\.`,
			OnNoMatch: OutcomeConfig{
				Comment: "No acknowledgement section found. Please make sure you used the template to open a PR and didn't remove the acknowledgment section. Check the template here: https://github.com/aws-powertools/powertools-lambda-python/blob/develop/.github/PULL_REQUEST_TEMPLATE.md#acknowledgment",
				Labels:  []string{c.Labels.Block, c.Labels.MissingAck},
			},
		},
		{
			Name:    "large-pr",
			Actions: []string{"labeled"},
			Field:   FieldLabels,
			Pattern: "^" + regexp.QuoteMeta(c.Labels.LargePR) + "$",
			OnMatch: OutcomeConfig{
				Comment: "### ⚠️Large PR detected⚠️\n\nPlease consider breaking into smaller PRs to avoid significant review delays. Ignore if this PR has naturally grown to this size after reviews.",
			},
		},
	}
}

func defaultTitleRules() []TitleRuleConfig {
	const scope = `(\((?P<scope>[^)]+)\))?!?:`
	return []TitleRuleConfig{
		{Label: "feature", Pattern: `^feat` + scope},
		{Label: "bug", Pattern: `^(fix|bug)` + scope},
		{Label: "documentation", Pattern: `^(docs|doc)` + scope},
		{Label: "internal", Pattern: `^chore` + scope},
		{Label: "enhancement", Pattern: `^refactor` + scope},
		{Label: "deprecated", Pattern: `^deprecated` + scope},
	}
}

func defaultAreas() []string {
	return []string{
		"tracer",
		"metrics",
		"utilities",
		"logger",
		"event_handlers",
		"middleware_factory",
		"idempotency",
		"event_sources",
		"feature_flags",
		"parameters",
		"batch",
		"parser",
		"validator",
		"jmespath_util",
		"lambda-layers",
		"typing",
		"data_masking",
	}
}

// Validate checks that every pattern and template in the config compiles.
func (c *Config) Validate() error {
	if _, err := regexp.Compile(c.IssueReference); err != nil {
		return fmt.Errorf("invalid issue_reference pattern: %w", err)
	}

	seen := make(map[string]bool, len(c.Rules))
	for _, r := range c.Rules {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("rule name cannot be empty")
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate rule name: %s", r.Name)
		}
		seen[r.Name] = true

		switch r.Field {
		case FieldTitle, FieldBody, FieldLabels:
		default:
			return fmt.Errorf("rule '%s': unknown field %q", r.Name, r.Field)
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("rule '%s': invalid pattern: %w", r.Name, err)
		}
		if r.OnMatch.IsZero() && r.OnNoMatch.IsZero() {
			return fmt.Errorf("rule '%s': at least one of on_match/on_no_match is required", r.Name)
		}
		for _, tmpl := range []string{r.OnMatch.Comment, r.OnNoMatch.Comment} {
			if _, err := template.New(r.Name).Parse(tmpl); err != nil {
				return fmt.Errorf("rule '%s': invalid comment template: %w", r.Name, err)
			}
		}
	}

	for _, tr := range c.Title.Rules {
		if tr.Label == "" {
			return fmt.Errorf("title rule label cannot be empty")
		}
		if _, err := regexp.Compile(tr.Pattern); err != nil {
			return fmt.Errorf("title rule '%s': invalid pattern: %w", tr.Label, err)
		}
	}

	for name, tmpl := range map[string]string{
		"post_release.comment":     c.PostRelease.Comment,
		"post_release.release_url": c.PostRelease.ReleaseURL,
	} {
		if _, err := template.New(name).Parse(tmpl); err != nil {
			return fmt.Errorf("invalid %s template: %w", name, err)
		}
	}

	return nil
}

// IsIgnoredAuthor reports whether login is in the ignore list (case-insensitive).
func (c *Config) IsIgnoredAuthor(login string) bool {
	for _, a := range c.IgnoreAuthors {
		if strings.EqualFold(a, login) {
			return true
		}
	}
	return false
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent

	if child.Workflow != "" {
		result.Workflow = child.Workflow
	}
	if len(child.Steps) > 0 {
		result.Steps = child.Steps
	}
	if child.Maintainers != "" {
		result.Maintainers = child.Maintainers
	}
	if child.IgnoreAuthors != nil {
		result.IgnoreAuthors = child.IgnoreAuthors
	}

	if child.Labels.PendingRelease != "" {
		result.Labels.PendingRelease = child.Labels.PendingRelease
	}
	if child.Labels.Block != "" {
		result.Labels.Block = child.Labels.Block
	}
	if child.Labels.MissingIssue != "" {
		result.Labels.MissingIssue = child.Labels.MissingIssue
	}
	if child.Labels.MissingAck != "" {
		result.Labels.MissingAck = child.Labels.MissingAck
	}
	if child.Labels.LargePR != "" {
		result.Labels.LargePR = child.Labels.LargePR
	}

	if child.IssueReference != "" {
		result.IssueReference = child.IssueReference
	}

	// Rules: child completely overrides if non-empty
	if len(child.Rules) > 0 {
		result.Rules = child.Rules
	}

	if len(child.Title.Actions) > 0 {
		result.Title.Actions = child.Title.Actions
	}
	if len(child.Title.Rules) > 0 {
		result.Title.Rules = child.Title.Rules
	}
	if child.Title.Areas != nil {
		result.Title.Areas = child.Title.Areas
	}
	if child.Title.AreaPrefix != "" {
		result.Title.AreaPrefix = child.Title.AreaPrefix
	}

	if child.PostRelease.Concurrency != 0 {
		result.PostRelease.Concurrency = child.PostRelease.Concurrency
	}
	if child.PostRelease.Comment != "" {
		result.PostRelease.Comment = child.PostRelease.Comment
	}
	if child.PostRelease.ReleaseURL != "" {
		result.PostRelease.ReleaseURL = child.PostRelease.ReleaseURL
	}

	if child.Snapshot.Path != "" {
		result.Snapshot.Path = child.Snapshot.Path
	}
	if child.Snapshot.ArtifactName != "" {
		result.Snapshot.ArtifactName = child.Snapshot.ArtifactName
	}

	result.Extends = ""
	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = ".github/repobot.yaml"
	}

	return org, repo, branch, path, nil
}
