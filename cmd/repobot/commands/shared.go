// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-02-22
// Last Modified: 2026-10-18

package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws-powertools/repobot/internal/actions"
	"github.com/aws-powertools/repobot/internal/core/config"
	"github.com/aws-powertools/repobot/internal/integrations/github"
)

// resolveRepo returns owner and name from the flag, falling back to GITHUB_REPOSITORY.
func resolveRepo(flagRepo string, getenv func(string) string) (string, string) {
	for _, candidate := range []string{flagRepo, getenv("GITHUB_REPOSITORY")} {
		org, repo, ok := strings.Cut(strings.TrimSpace(candidate), "/")
		org, repo = strings.TrimSpace(org), strings.TrimSpace(repo)
		if ok && org != "" && repo != "" {
			return org, repo
		}
	}
	return "", ""
}

// newGitHubClient builds an authenticated client from GITHUB_TOKEN.
func newGitHubClient(ctx context.Context) (*github.Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	return github.NewClient(ctx, token), nil
}

// configFetcher resolves "extends" references through the contents API.
func configFetcher(ctx context.Context, gh *github.Client) func(ref string) ([]byte, error) {
	return func(ref string) ([]byte, error) {
		org, repo, branch, path, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}
		if gh == nil {
			return nil, fmt.Errorf("GITHUB_TOKEN required to fetch remote config %s", ref)
		}
		return gh.GetFileContent(ctx, org, repo, path, branch)
	}
}

// loadConfig finds, loads and validates the configuration. A missing file
// means defaults; a file that fails to load falls back to defaults with a warning.
func loadConfig(ctx context.Context, gh *github.Client) (*config.Config, error) {
	path := config.FindConfigPath(cfgFile)
	if cfgFile != "" && path == "" {
		return nil, fmt.Errorf("config file %s not found", cfgFile)
	}

	var cfg *config.Config
	if path == "" {
		if verbose {
			fmt.Println("No configuration file found. Using defaults.")
		}
		cfg = config.Default()
	} else {
		loaded, err := config.LoadWithInheritance(path, configFetcher(ctx, gh))
		if err != nil {
			fmt.Printf("Warning: Failed to load config: %v. Using defaults.\n", err)
			loaded = config.Default()
		} else if verbose {
			fmt.Printf("Loaded config from %s\n", path)
		}
		cfg = loaded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// fail reports a fatal error on stdout and as an ::error:: annotation, then exits.
func fail(reporter *actions.Reporter, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("❌ %s\n", msg)
	reporter.Fail("%s", msg)
	os.Exit(1)
}

func isCI(getenv func(string) string) bool {
	return getenv("CI") == "true" || getenv("GITHUB_ACTIONS") == "true"
}
