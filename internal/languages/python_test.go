package languages

import (
	"reflect"
	"testing"
)

func TestPythonPatterns(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "os.environ subscript",
			src:      `url = os.environ["DATABASE_URL"]`,
			expected: []string{"DATABASE_URL", "DATABASE_URL"},
		},
		{
			name:     "os.environ.get",
			src:      `key = os.environ.get("API_KEY", "fallback")`,
			expected: []string{"API_KEY", "API_KEY"},
		},
		{
			name:     "os.getenv single quotes",
			src:      `port = os.getenv('PORT')`,
			expected: []string{"PORT", "PORT"},
		},
		{
			name:     "bare environ from import",
			src:      `token = environ["TOKEN"]`,
			expected: []string{"TOKEN"},
		},
		{
			name:     "bare getenv from import",
			src:      `debug = getenv("DEBUG")`,
			expected: []string{"DEBUG"},
		},
		{
			name:     "f-string name is invisible",
			src:      `v = os.environ[f"PREFIX_{name}"]`,
			expected: nil,
		},
	}

	// The os-prefixed sources intentionally capture twice here: once by the
	// specific pattern, once by its bare form inside it. The extractor's
	// overlap sweep collapses them to one usage.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := captureNames(PythonPatterns, tt.src)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
