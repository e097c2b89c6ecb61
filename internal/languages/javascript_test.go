package languages

import (
	"reflect"
	"testing"
)

func TestJavaScriptPatterns(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "dot notation",
			src:      `const url = process.env.DATABASE_URL;`,
			expected: []string{"DATABASE_URL"},
		},
		{
			name:     "bracket notation double quotes",
			src:      `const key = process.env["API_KEY"];`,
			expected: []string{"API_KEY"},
		},
		{
			name:     "bracket notation single quotes",
			src:      `const key = process.env['API_KEY'];`,
			expected: []string{"API_KEY"},
		},
		{
			name:     "import.meta.env",
			src:      `const mode = import.meta.env.VITE_API_URL;`,
			expected: []string{"VITE_API_URL"},
		},
		{
			name:     "destructuring",
			src:      `const { API_KEY, DATABASE_URL } = process.env;`,
			expected: []string{"API_KEY", "DATABASE_URL"},
		},
		{
			name:     "destructuring with alias and default",
			src:      `const { PORT: port, HOST = "localhost" } = process.env;`,
			expected: []string{"PORT", "HOST"},
		},
		{
			name:     "template interpolation is invisible",
			src:      "const v = process.env[`PREFIX_${name}`];",
			expected: nil,
		},
		{
			name:     "multiple usages on one line",
			src:      `f(process.env.A, process.env.B);`,
			expected: []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := captureNames(JavaScriptPatterns, tt.src)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
