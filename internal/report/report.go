// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

// Package report aggregates repository activity for a calendar month and
// renders it as markdown.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	githubapi "github.com/google/go-github/v60/github"

	"github.com/aws-powertools/repobot/internal/integrations/github"
)

// Period is a half-open time range [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Label returns the month as YYYY-MM.
func (p Period) Label() string {
	return p.Start.Format("2006-01")
}

// Contains reports whether t falls in the period.
func (p Period) Contains(t time.Time) bool {
	return !t.IsZero() && !t.Before(p.Start) && t.Before(p.End)
}

// ParseMonth parses YYYY-MM. An empty month means the month before now.
func ParseMonth(month string, now time.Time) (Period, error) {
	var start time.Time
	if strings.TrimSpace(month) == "" {
		y, m, _ := now.UTC().Date()
		start = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	} else {
		t, err := time.Parse("2006-01", strings.TrimSpace(month))
		if err != nil {
			return Period{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
		}
		start = t.UTC()
	}
	return Period{Start: start, End: start.AddDate(0, 1, 0)}, nil
}

// Count is a named counter.
type Count struct {
	Name  string
	Count int
}

// Report is the aggregated activity of one month.
type Report struct {
	Org          string
	Repo         string
	Period       Period
	IssuesOpened int
	IssuesClosed int
	PRsOpened    int
	PRsClosed    int
	Labels       []Count
	Contributors []Count
}

// Aggregate builds the report from items (issues and pull requests).
// Authors for which ignored returns true are left out of contributors.
func Aggregate(org, repo string, period Period, items []*githubapi.Issue, ignored func(string) bool) *Report {
	r := &Report{Org: org, Repo: repo, Period: period}
	labels := make(map[string]int)
	contributors := make(map[string]int)

	for _, item := range items {
		isPR := item.IsPullRequest()
		opened := period.Contains(item.GetCreatedAt().Time)
		closed := period.Contains(item.GetClosedAt().Time)

		switch {
		case isPR && opened:
			r.PRsOpened++
			if login := item.GetUser().GetLogin(); login != "" && (ignored == nil || !ignored(login)) {
				contributors[login]++
			}
		case opened:
			r.IssuesOpened++
		}

		if !closed {
			continue
		}
		if isPR {
			r.PRsClosed++
		} else {
			r.IssuesClosed++
		}
		for _, l := range item.Labels {
			if name := l.GetName(); name != "" {
				labels[name]++
			}
		}
	}

	r.Labels = sortedCounts(labels)
	r.Contributors = sortedCounts(contributors)
	return r
}

func sortedCounts(m map[string]int) []Count {
	counts := make([]Count, 0, len(m))
	for name, n := range m {
		counts = append(counts, Count{Name: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts
}

// Collect fetches every item touched since the start of the period and aggregates it.
func Collect(ctx context.Context, gh *github.Client, org, repo string, period Period, ignored func(string) bool) (*Report, error) {
	if gh == nil {
		return nil, fmt.Errorf("GitHub client is required for the monthly report")
	}
	items, err := gh.ListIssuesUpdatedSince(ctx, org, repo, period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to collect activity for %s: %w", period.Label(), err)
	}
	return Aggregate(org, repo, period, items, ignored), nil
}

var markdownTmpl = template.Must(template.New("report").Parse(`# {{.Org}}/{{.Repo}} - {{.Period.Label}}

| | Opened | Closed |
|---|---|---|
| Issues | {{.IssuesOpened}} | {{.IssuesClosed}} |
| Pull requests | {{.PRsOpened}} | {{.PRsClosed}} |

## Labels on closed items
{{if .Labels}}
| Label | Count |
|---|---|
{{range .Labels}}| {{.Name}} | {{.Count}} |
{{end}}{{else}}
_None_
{{end}}
## Contributors
{{if .Contributors}}
| Author | Pull requests |
|---|---|
{{range .Contributors}}| @{{.Name}} | {{.Count}} |
{{end}}{{else}}
_None_
{{end}}`))

// Markdown renders the report.
func (r *Report) Markdown() (string, error) {
	var sb strings.Builder
	if err := markdownTmpl.Execute(&sb, r); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return sb.String(), nil
}
