// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
)

// TestConfigDefaults verifies that default values are applied correctly.
func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Labels.PendingRelease != "pending-release" {
		t.Errorf("Expected PendingRelease to be 'pending-release', got %s", cfg.Labels.PendingRelease)
	}
	if cfg.Maintainers != DefaultMaintainers {
		t.Errorf("Expected Maintainers to be %s, got %s", DefaultMaintainers, cfg.Maintainers)
	}
	if len(cfg.IgnoreAuthors) != 2 {
		t.Errorf("Expected 2 ignored authors, got %d", len(cfg.IgnoreAuthors))
	}
	if len(cfg.Rules) != 3 {
		t.Fatalf("Expected 3 default rules, got %d", len(cfg.Rules))
	}
	if cfg.Rules[0].Pattern != DefaultIssueReferencePattern {
		t.Errorf("Expected related-issue rule to reuse the issue reference pattern, got %s", cfg.Rules[0].Pattern)
	}
	if cfg.Title.Rules[0].Label != "feature" {
		t.Errorf("Expected first title rule to be 'feature', got %s", cfg.Title.Rules[0].Label)
	}
	if cfg.PostRelease.Concurrency != 5 {
		t.Errorf("Expected PostRelease.Concurrency to be 5, got %d", cfg.PostRelease.Concurrency)
	}
	if cfg.Snapshot.Path != "pr.txt" {
		t.Errorf("Expected Snapshot.Path to be 'pr.txt', got %s", cfg.Snapshot.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestDefaultLargePRPatternMatchesLabel(t *testing.T) {
	cfg := Default()
	re := regexp.MustCompile(cfg.Rules[2].Pattern)
	if !re.MatchString("size/XXL") {
		t.Error("Expected large-pr pattern to match 'size/XXL'")
	}
	if re.MatchString("size/XL") {
		t.Error("Expected large-pr pattern not to match 'size/XL'")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("REPOBOT_TEAM", "@acme/maintainers")

	yamlContent := `
maintainers: ${REPOBOT_TEAM}
ignore_authors: []
labels:
  pending_release: awaiting-release
title:
  areas: [tracer]
rules:
  - name: changelog
    actions: [opened]
    field: body
    pattern: "## Changelog"
    on_no_match:
      labels: [needs-changelog]
`
	path := filepath.Join(t.TempDir(), "repobot.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Maintainers != "@acme/maintainers" {
		t.Errorf("Expected env-expanded maintainers, got %q", cfg.Maintainers)
	}
	if len(cfg.IgnoreAuthors) != 0 {
		t.Errorf("Expected explicit empty ignore list to be kept, got %v", cfg.IgnoreAuthors)
	}
	if cfg.Labels.PendingRelease != "awaiting-release" {
		t.Errorf("Expected PendingRelease override, got %s", cfg.Labels.PendingRelease)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Name != "changelog" {
		t.Errorf("Expected custom rule table to replace defaults, got %+v", cfg.Rules)
	}
	if len(cfg.Title.Areas) != 1 {
		t.Errorf("Expected 1 area, got %v", cfg.Title.Areas)
	}
}

func TestLoadWithInheritance(t *testing.T) {
	child := `
extends: acme/.github@main
maintainers: "@acme/child"
`
	parent := `
maintainers: "@acme/parent"
labels:
  block: blocked
post_release:
  concurrency: 2
`
	path := filepath.Join(t.TempDir(), "repobot.yaml")
	if err := os.WriteFile(path, []byte(child), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var fetched string
	cfg, err := LoadWithInheritance(path, func(ref string) ([]byte, error) {
		fetched = ref
		return []byte(parent), nil
	})
	if err != nil {
		t.Fatalf("LoadWithInheritance failed: %v", err)
	}
	if fetched != "acme/.github@main" {
		t.Errorf("Expected fetcher to receive extends ref, got %q", fetched)
	}
	if cfg.Maintainers != "@acme/child" {
		t.Errorf("Expected child maintainers to win, got %s", cfg.Maintainers)
	}
	if cfg.Labels.Block != "blocked" {
		t.Errorf("Expected parent block label, got %s", cfg.Labels.Block)
	}
	if cfg.PostRelease.Concurrency != 2 {
		t.Errorf("Expected parent concurrency 2, got %d", cfg.PostRelease.Concurrency)
	}
	if cfg.Extends != "" {
		t.Errorf("Expected merged config to drop extends, got %q", cfg.Extends)
	}
}

func TestLoadWithInheritanceFetchError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repobot.yaml")
	if err := os.WriteFile(path, []byte("extends: acme/.github@main\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadWithInheritance(path, func(ref string) ([]byte, error) {
		return nil, errors.New("boom")
	})
	if err == nil {
		t.Error("Expected error when parent config cannot be fetched")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad issue reference", func(c *Config) { c.IssueReference = "(" }, true},
		{"bad rule pattern", func(c *Config) { c.Rules[0].Pattern = "[" }, true},
		{"unknown field", func(c *Config) { c.Rules[0].Field = "author" }, true},
		{"duplicate name", func(c *Config) { c.Rules[1].Name = c.Rules[0].Name }, true},
		{"empty name", func(c *Config) { c.Rules[0].Name = " " }, true},
		{"no outcome", func(c *Config) { c.Rules[0].OnNoMatch = OutcomeConfig{} }, true},
		{"bad comment template", func(c *Config) { c.Rules[0].OnNoMatch.Comment = "{{.Broken" }, true},
		{"bad title pattern", func(c *Config) { c.Title.Rules[0].Pattern = "(" }, true},
		{"bad release template", func(c *Config) { c.PostRelease.Comment = "{{" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsIgnoredAuthor(t *testing.T) {
	cfg := Default()

	if !cfg.IsIgnoredAuthor("dependabot[bot]") {
		t.Error("Expected dependabot[bot] to be ignored")
	}
	if !cfg.IsIgnoredAuthor("Markdownify[bot]") {
		t.Error("Expected case-insensitive match")
	}
	if cfg.IsIgnoredAuthor("heitorlessa") {
		t.Error("Expected regular user not to be ignored")
	}
}

// TestParseExtendsRef verifies extends reference parsing.
func TestParseExtendsRef(t *testing.T) {
	tests := []struct {
		name        string
		ref         string
		wantOrg     string
		wantRepo    string
		wantBranch  string
		wantPath    string
		expectError bool
	}{
		{
			name:       "valid ref with default path",
			ref:        "org/repo@main",
			wantOrg:    "org",
			wantRepo:   "repo",
			wantBranch: "main",
			wantPath:   ".github/repobot.yaml",
		},
		{
			name:       "valid ref with custom path",
			ref:        "org/repo@main:custom/path.yaml",
			wantOrg:    "org",
			wantRepo:   "repo",
			wantBranch: "main",
			wantPath:   "custom/path.yaml",
		},
		{
			name:        "invalid ref missing branch",
			ref:         "org/repo",
			expectError: true,
		},
		{
			name:        "invalid ref missing repo",
			ref:         "org@main",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, repo, branch, path, err := ParseExtendsRef(tt.ref)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for ref %s, got nil", tt.ref)
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if org != tt.wantOrg {
				t.Errorf("Expected org %s, got %s", tt.wantOrg, org)
			}
			if repo != tt.wantRepo {
				t.Errorf("Expected repo %s, got %s", tt.wantRepo, repo)
			}
			if branch != tt.wantBranch {
				t.Errorf("Expected branch %s, got %s", tt.wantBranch, branch)
			}
			if path != tt.wantPath {
				t.Errorf("Expected path %s, got %s", tt.wantPath, path)
			}
		})
	}
}
