// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-13
// Last Modified: 2026-10-18

package text

import (
	"testing"
)

func TestBuildComment(t *testing.T) {
	tests := []struct {
		name   string
		marker string
		body   string
		want   string
	}{
		{
			name:   "body with marker",
			marker: "related-issue",
			body:   "No related issues found.",
			want:   "No related issues found.\n\n<!-- repobot:related-issue -->",
		},
		{
			name:   "whitespace trimmed",
			marker: "large-pr",
			body:   "\n  ### Large PR  \n",
			want:   "### Large PR\n\n<!-- repobot:large-pr -->",
		},
		{
			name:   "no marker name",
			marker: "",
			body:   "plain",
			want:   "plain",
		},
		{
			name:   "empty body",
			marker: "large-pr",
			body:   "   ",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildComment(tt.marker, tt.body)
			if got != tt.want {
				t.Errorf("BuildComment() = %q, want %q", got, tt.want)
			}
		})
	}
}
