// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package github

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-github/v60/github"
)

// FindArtifact returns the artifact with the given name attached to a workflow run.
func (c *Client) FindArtifact(ctx context.Context, org, repo string, runID int64, name string) (*github.Artifact, error) {
	if c.actions == nil {
		return nil, fmt.Errorf("actions service not configured")
	}

	opts := &github.ListOptions{PerPage: 100}
	for {
		list, resp, err := c.actions.ListWorkflowRunArtifacts(ctx, org, repo, runID, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list artifacts for run %d: %w", runID, err)
		}
		if list != nil {
			for _, a := range list.Artifacts {
				if a.GetName() == name {
					return a, nil
				}
			}
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return nil, fmt.Errorf("artifact %q not found in run %d", name, runID)
}

// DownloadArtifact streams the zip archive of an artifact into w.
// The archive endpoint answers with a redirect to blob storage, which the
// underlying HTTP client follows without forwarding the token.
func (c *Client) DownloadArtifact(ctx context.Context, artifact *github.Artifact, w io.Writer) error {
	if c.client == nil {
		return fmt.Errorf("artifact download requires an HTTP-backed GitHub client")
	}
	url := artifact.GetArchiveDownloadURL()
	if url == "" {
		return fmt.Errorf("artifact %q has no download URL", artifact.GetName())
	}

	req, err := c.client.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}
	if _, err := c.client.Do(ctx, req, w); err != nil {
		return fmt.Errorf("failed to download artifact %q: %w", artifact.GetName(), err)
	}
	return nil
}

// ExtractArtifact unpacks a downloaded artifact archive into dir and returns
// the written paths. Entries escaping dir are rejected.
func ExtractArtifact(r io.ReaderAt, size int64, dir string) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact archive: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	root := filepath.Clean(dir)
	var written []string
	for _, f := range zr.File {
		target := filepath.Join(root, f.Name)
		if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
			return nil, fmt.Errorf("artifact entry %q escapes %s", f.Name, dir)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return nil, fmt.Errorf("failed to create %s: %w", target, err)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return nil, err
		}
		written = append(written, target)
	}
	return written, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read %s from artifact: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return nil
}
