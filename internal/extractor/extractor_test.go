package extractor

import (
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"testing"

	"github.com/jenian/envaudit/internal/analyzer"
	"github.com/jenian/envaudit/internal/scanner"
)

func usageNames(usages []analyzer.UsageSite) []string {
	var names []string
	for _, u := range usages {
		names = append(names, u.Name)
	}
	return names
}

func TestExtract_OverlapDedup(t *testing.T) {
	tests := []struct {
		name     string
		lang     scanner.Language
		src      string
		expected []string
	}{
		{
			name:     "os.environ.get contains bare environ.get",
			lang:     scanner.LanguagePython,
			src:      `key = os.environ.get("API_KEY", None)`,
			expected: []string{"API_KEY"},
		},
		{
			name:     "os.getenv contains bare getenv",
			lang:     scanner.LanguagePython,
			src:      `port = os.getenv("PORT")`,
			expected: []string{"PORT"},
		},
		{
			name:     "option_env contains env macro",
			lang:     scanner.LanguageRust,
			src:      `let flag = option_env!("FEATURE_FLAG");`,
			expected: []string{"FEATURE_FLAG"},
		},
		{
			name:     "bare forms still match on their own",
			lang:     scanner.LanguagePython,
			src:      `token = environ["TOKEN"]`,
			expected: []string{"TOKEN"},
		},
		{
			name:     "adjacent usages are both kept",
			lang:     scanner.LanguagePython,
			src:      `a = os.getenv("FIRST"); b = os.getenv("SECOND")`,
			expected: []string{"FIRST", "SECOND"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usages := Extract([]byte(tt.src), "app.py", tt.lang, nil)
			if got := usageNames(usages); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestExtract_IdentifierPolicy(t *testing.T) {
	src := `const a = process.env["9BAD"];
const b = process.env["GOOD_KEY"];
const c = process.env["ALSO_GOOD_2"];`

	usages := Extract([]byte(src), "app.js", scanner.LanguageJavaScript, nil)
	expected := []string{"GOOD_KEY", "ALSO_GOOD_2"}
	if got := usageNames(usages); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestExtract_IgnorePatterns(t *testing.T) {
	src := `debug = os.getenv("_INTERNAL_DEBUG")
url = os.getenv("DATABASE_URL")
probe = os.getenv("INTERNAL_PROBE")`

	ignores := []*regexp.Regexp{
		regexp.MustCompile(`^_`),
		regexp.MustCompile(`^INTERNAL_`),
	}
	usages := Extract([]byte(src), "app.py", scanner.LanguagePython, ignores)
	expected := []string{"DATABASE_URL"}
	if got := usageNames(usages); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestExtract_Positions(t *testing.T) {
	src := `// config
const a = process.env.FIRST;

const b = process.env["SECOND"];`

	usages := Extract([]byte(src), "app.js", scanner.LanguageJavaScript, nil)
	expected := []analyzer.UsageSite{
		{
			Name:     "FIRST",
			Location: analyzer.Location{Path: "app.js", Line: 2, Column: 23},
			Language: scanner.LanguageJavaScript,
		},
		{
			Name:     "SECOND",
			Location: analyzer.Location{Path: "app.js", Line: 4, Column: 24},
			Language: scanner.LanguageJavaScript,
		},
	}
	if !reflect.DeepEqual(usages, expected) {
		t.Errorf("Expected %+v, got %+v", expected, usages)
	}
}

func TestExtract_Destructuring(t *testing.T) {
	src := `const { API_KEY, DB_URL: url, PORT = 3000 } = process.env;`

	usages := Extract([]byte(src), "app.js", scanner.LanguageJavaScript, nil)
	expected := []string{"API_KEY", "DB_URL", "PORT"}
	if got := usageNames(usages); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// Each name carries its own position inside the braces
	if len(usages) == 3 {
		if usages[0].Location.Column != 9 {
			t.Errorf("Expected API_KEY at column 9, got %d", usages[0].Location.Column)
		}
		if usages[1].Location.Column != 18 {
			t.Errorf("Expected DB_URL at column 18, got %d", usages[1].Location.Column)
		}
	}
}

func TestExtract_UnknownLanguage(t *testing.T) {
	usages := Extract([]byte(`os.Getenv("KEY")`), "file.txt", scanner.LanguageUnknown, nil)
	if usages != nil {
		t.Errorf("Expected no usages for unknown language, got %v", usages)
	}
}

func TestExtractFile(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "main.go")
	content := `package main

func main() {
	_ = os.Getenv("HOME_DIR")
}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	usages, err := ExtractFile(path, scanner.LanguageGo, nil)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if len(usages) != 1 || usages[0].Name != "HOME_DIR" {
		t.Errorf("Expected one HOME_DIR usage, got %v", usages)
	}
	if usages[0].Location.Path != path {
		t.Errorf("Expected path %s, got %s", path, usages[0].Location.Path)
	}
}

func TestExtractFile_Binary(t *testing.T) {
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "data.go")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 'o', 's'}, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := ExtractFile(path, scanner.LanguageGo, nil); err == nil {
		t.Error("Expected an error for binary content")
	}
}

func TestExtractFile_Missing(t *testing.T) {
	if _, err := ExtractFile(filepath.Join(t.TempDir(), "absent.go"), scanner.LanguageGo, nil); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
