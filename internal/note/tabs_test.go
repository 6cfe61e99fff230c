package note

import (
	"reflect"
	"testing"
)

func TestGroupTabs(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []string
	}{
		{
			name:     "consecutive tab lines form one block",
			lines:    []string{"e|--0--", "B|--1--"},
			expected: []string{"```\ne|--0--\nB|--1--\n```"},
		},
		{
			name:     "runs separated by content form two blocks",
			lines:    []string{"e|--0--", "chorus", "B|--1--"},
			expected: []string{"```\ne|--0--\n```", "chorus", "```\nB|--1--\n```"},
		},
		{
			name:     "no tab lines pass through",
			lines:    []string{"verse", "", "chorus"},
			expected: []string{"verse", "", "chorus"},
		},
		{
			name:     "blank line splits a run",
			lines:    []string{"e|--0--", "", "B|--1--"},
			expected: []string{"```\ne|--0--\n```", "", "```\nB|--1--\n```"},
		},
		{
			name:     "empty input",
			lines:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GroupTabs(tt.lines)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("GroupTabs(%v) = %v, expected %v", tt.lines, result, tt.expected)
			}
		})
	}
}

func TestRenderContent(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected string
	}{
		{
			name:     "trims surrounding blanks, keeps internal ones",
			lines:    []string{"", "verse", "", "chorus", ""},
			expected: "verse\n\nchorus",
		},
		{
			name:     "tab block followed by lyrics",
			lines:    []string{"e|--0--", "B|--1--", "Some lyrics"},
			expected: "```\ne|--0--\nB|--1--\n```\nSome lyrics",
		},
		{
			name:     "empty",
			lines:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RenderContent(tt.lines)
			if result != tt.expected {
				t.Errorf("RenderContent(%v) = %q, expected %q", tt.lines, result, tt.expected)
			}
		})
	}
}
