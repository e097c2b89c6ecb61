package languages

import (
	"reflect"
	"testing"
)

func TestRustPatterns(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name:     "env::var",
			src:      `let url = env::var("DATABASE_URL")?;`,
			expected: []string{"DATABASE_URL"},
		},
		{
			name:     "std::env::var",
			src:      `let key = std::env::var("API_KEY").unwrap();`,
			expected: []string{"API_KEY"},
		},
		{
			name:     "env::var_os",
			src:      `let path = env::var_os("CONFIG_PATH");`,
			expected: []string{"CONFIG_PATH"},
		},
		{
			name:     "env macro",
			src:      `const VERSION: &str = env!("BUILD_VERSION");`,
			expected: []string{"BUILD_VERSION"},
		},
		{
			name:     "option_env macro captures twice before the sweep",
			src:      `let v = option_env!("FEATURE_FLAG");`,
			expected: []string{"FEATURE_FLAG", "FEATURE_FLAG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := captureNames(RustPatterns, tt.src)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
