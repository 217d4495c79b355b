package domainconv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractFieldPaths(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single condition",
			input:    "[('state', '=', 'draft')]",
			expected: []string{"state"},
		},
		{
			name:     "Duplicates collapse",
			input:    "['|', ('state', '=', 'draft'), ('state', '=', 'sent')]",
			expected: []string{"state"},
		},
		{
			name:     "Sorted output",
			input:    "[('zip', '=', '1000'), ('active', '=', True)]",
			expected: []string{"active", "zip"},
		},
		{
			name:     "Nested sub-domain",
			input:    "['|', ('a', '=', 1), [('b', '=', 2), ('c', '=', 3)]]",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "Dotted paths kept whole",
			input:    "[('project_id.user_id', '=', user.id)]",
			expected: []string{"project_id.user_id"},
		},
		{
			name:     "Tautology sentinels skipped",
			input:    "[(1, '=', 1), ('name', '=', 'x')]",
			expected: []string{"name"},
		},
		{
			name:     "Operator markers skipped",
			input:    "['&', ('a', '=', 1), ('b', '=', 2)]",
			expected: []string{"a", "b"},
		},
		{
			name:     "Empty domain",
			input:    "[]",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := ExtractFieldPaths(mustParse(t, tt.input))
			if diff := cmp.Diff(tt.expected, paths); diff != "" {
				t.Errorf("paths mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}
