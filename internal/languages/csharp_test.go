package languages

import (
	"reflect"
	"testing"
)

func TestCSharpPatterns(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "Environment.GetEnvironmentVariable",
			src:      `var url = Environment.GetEnvironmentVariable("DATABASE_URL");`,
			expected: []string{"DATABASE_URL"},
		},
		{
			name:     "ConfigurationManager.AppSettings",
			src:      `var key = ConfigurationManager.AppSettings["API_KEY"];`,
			expected: []string{"API_KEY"},
		},
		{
			name:     "interpolated name is invisible",
			src:      `var v = Environment.GetEnvironmentVariable($"PREFIX_{name}");`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := captureNames(CSharpPatterns, tt.src)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
