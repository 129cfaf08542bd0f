package cmd

import (
	"strings"
	"testing"

	"github.com/rskel/rskel/internal/search"
)

func TestFormatSearchResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result search.Result
		want   []string
	}{
		{
			name: "name match",
			result: search.Result{
				Entry:   search.Entry{Id: 1, Kind: "struct", Path: "demo::Widget", Name: "Widget"},
				Matched: search.DomainNames,
			},
			want: []string{"struct", "demo::Widget", "names"},
		},
		{
			name: "multiple domains",
			result: search.Result{
				Entry:   search.Entry{Id: 4, Kind: "function", Path: "demo::Widget::render", Name: "render"},
				Matched: search.DomainNames | search.DomainSignatures,
			},
			want: []string{"function", "demo::Widget::render", "names, signatures"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line := formatSearchResult(tt.result)
			for _, part := range tt.want {
				if !strings.Contains(line, part) {
					t.Errorf("line %q missing %q", line, part)
				}
			}
		})
	}
}
