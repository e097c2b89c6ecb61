package languages

import (
	"reflect"
	"testing"
)

func TestJavaPatterns(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "System.getenv",
			src:      `String url = System.getenv("DATABASE_URL");`,
			expected: []string{"DATABASE_URL"},
		},
		{
			name:     "System.getProperty env style",
			src:      `String key = System.getProperty("API_KEY");`,
			expected: []string{"API_KEY"},
		},
		{
			name:     "dotted property names never match",
			src:      `String v = System.getProperty("java.version");`,
			expected: nil,
		},
		{
			name:     "getenv without receiver is not recognized",
			src:      `String v = getenv("HOME");`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := captureNames(JavaPatterns, tt.src)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
