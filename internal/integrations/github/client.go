// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-10-18

package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
)

// IssuesService is the subset of the go-github issues API used by repobot.
type IssuesService interface {
	Edit(ctx context.Context, owner, repo string, number int, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
	ListLabelsByIssue(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

// ActionsService is the subset of the go-github actions API used by repobot.
type ActionsService interface {
	ListWorkflowRunArtifacts(ctx context.Context, owner, repo string, runID int64, opts *github.ListOptions) (*github.ArtifactList, *github.Response, error)
}

// RepositoriesService is the subset of the go-github repositories API used by repobot.
type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// Client wraps the GitHub API client.
type Client struct {
	client  *github.Client
	issues  IssuesService
	actions ActionsService
	repos   RepositoriesService
}

// NewClientWithServices builds a client around explicit service implementations.
// raw may be nil; it is only needed for artifact downloads.
func NewClientWithServices(raw *github.Client, issues IssuesService, actions ActionsService, repos RepositoriesService) *Client {
	return &Client{
		client:  raw,
		issues:  issues,
		actions: actions,
		repos:   repos,
	}
}

// NewClientFromGitHub wraps an already configured go-github client.
func NewClientFromGitHub(gh *github.Client) *Client {
	return NewClientWithServices(gh, gh.Issues, gh.Actions, gh.Repositories)
}

// CreateComment posts a comment on an issue or pull request.
func (c *Client) CreateComment(ctx context.Context, org, repo string, number int, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}

	comment := &github.IssueComment{
		Body: github.String(body),
	}
	_, _, err := c.issues.CreateComment(ctx, org, repo, number, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// AddLabels adds labels to an issue or pull request.
func (c *Client) AddLabels(ctx context.Context, org, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		return fmt.Errorf("labels cannot be empty")
	}

	_, _, err := c.issues.AddLabelsToIssue(ctx, org, repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}
	return nil
}

// ListLabels returns the label names currently attached to an issue or pull request.
func (c *Client) ListLabels(ctx context.Context, org, repo string, number int) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: 100}

	for {
		labels, resp, err := c.issues.ListLabelsByIssue(ctx, org, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list labels: %w", err)
		}
		for _, l := range labels {
			names = append(names, l.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return names, nil
}

// ListIssues lists one page of repository issues (pull requests included).
func (c *Client) ListIssues(ctx context.Context, org, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error) {
	issues, resp, err := c.issues.ListByRepo(ctx, org, repo, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list issues: %w", err)
	}
	return issues, resp, nil
}

// ListAllIssues walks every page for the given filter. Pull requests are included,
// callers can tell them apart with Issue.IsPullRequest.
func (c *Client) ListAllIssues(ctx context.Context, org, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, error) {
	if opts == nil {
		opts = &github.IssueListByRepoOptions{}
	}
	if opts.PerPage == 0 {
		opts.PerPage = 100
	}

	var all []*github.Issue
	for {
		issues, resp, err := c.ListIssues(ctx, org, repo, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, issues...)
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// ListIssuesByLabel returns every item with the given label in the given state
// ("open", "closed" or "all").
func (c *Client) ListIssuesByLabel(ctx context.Context, org, repo, label, state string) ([]*github.Issue, error) {
	return c.ListAllIssues(ctx, org, repo, &github.IssueListByRepoOptions{
		State:  state,
		Labels: []string{label},
	})
}

// ListIssuesUpdatedSince returns every item updated at or after since.
func (c *Client) ListIssuesUpdatedSince(ctx context.Context, org, repo string, since time.Time) ([]*github.Issue, error) {
	return c.ListAllIssues(ctx, org, repo, &github.IssueListByRepoOptions{
		State: "all",
		Since: since,
	})
}

// UpdateIssue replaces the label set and state of an issue in a single call.
func (c *Client) UpdateIssue(ctx context.Context, org, repo string, number int, state string, labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	req := &github.IssueRequest{
		State:  github.String(state),
		Labels: &labels,
	}
	if _, _, err := c.issues.Edit(ctx, org, repo, number, req); err != nil {
		return fmt.Errorf("failed to update issue: %w", err)
	}
	return nil
}

// GetFileContent fetches a file's decoded content at the given ref.
func (c *Client) GetFileContent(ctx context.Context, org, repo, path, ref string) ([]byte, error) {
	if c.repos == nil {
		return nil, fmt.Errorf("repositories service not configured")
	}

	file, _, _, err := c.repos.GetContents(ctx, org, repo, path, &github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s@%s:%s: %w", org+"/"+repo, ref, path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is not a file", path, org, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}
