package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected Language
	}{
		{"test.js", LanguageJavaScript},
		{"test.jsx", LanguageJavaScript},
		{"test.mjs", LanguageJavaScript},
		{"test.cjs", LanguageJavaScript},
		{"test.ts", LanguageTypeScript},
		{"test.tsx", LanguageTypeScript},
		{"test.py", LanguagePython},
		{"test.rs", LanguageRust},
		{"test.go", LanguageGo},
		{"test.rb", LanguageRuby},
		{"test.php", LanguagePHP},
		{"Test.java", LanguageJava},
		{"Test.cs", LanguageCSharp},
		{"test.txt", LanguageUnknown},
		{"test", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := detectLanguage(tt.path)
			if result != tt.expected {
				t.Errorf("detectLanguage(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name     string
		expected Language
	}{
		{"javascript", LanguageJavaScript},
		{"JS", LanguageJavaScript},
		{"ts", LanguageTypeScript},
		{"python", LanguagePython},
		{"golang", LanguageGo},
		{"c#", LanguageCSharp},
		{"cobol", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseLanguage(tt.name)
			if result != tt.expected {
				t.Errorf("ParseLanguage(%q) = %v, want %v", tt.name, result, tt.expected)
			}
		})
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, "src", "app.js"), "console.log('test');")
	writeTestFile(t, filepath.Join(tmpDir, "src", "main.go"), "package main")
	writeTestFile(t, filepath.Join(tmpDir, "src", "app.py"), "print('test')")
	writeTestFile(t, filepath.Join(tmpDir, "src", "readme.txt"), "readme content")
	writeTestFile(t, filepath.Join(tmpDir, "src", "logo.png"), "not really an image")
	writeTestFile(t, filepath.Join(tmpDir, "node_modules", "lib.js"), "module.exports = {};")
	writeTestFile(t, filepath.Join(tmpDir, ".env"), "API_KEY=x")

	scanner := NewScanner()
	scanner.SetExcludeGlobs([]string{"**/node_modules/**"})

	listing, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// js, go and py survive; txt, png and node_modules content do not
	if len(listing.Sources) != 3 {
		t.Errorf("Expected 3 source files, got %d", len(listing.Sources))
	}
	for _, file := range listing.Sources {
		if filepath.Base(filepath.Dir(file.Path)) == "node_modules" {
			t.Error("Files in node_modules should be excluded")
		}
	}

	if len(listing.EnvFiles) != 1 {
		t.Fatalf("Expected 1 env file, got %d", len(listing.EnvFiles))
	}
	if filepath.Base(listing.EnvFiles[0]) != ".env" {
		t.Errorf("Expected .env, got %s", listing.EnvFiles[0])
	}
}

func TestScanner_ExcludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, "test.js"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "test.go"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "sub", "deep.go"), "test")

	scanner := NewScanner()
	scanner.SetExcludeGlobs([]string{"**/*.go"})

	listing, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(listing.Sources) != 1 {
		t.Fatalf("Expected 1 source file, got %d", len(listing.Sources))
	}
	if listing.Sources[0].Language != LanguageJavaScript {
		t.Errorf("Expected JavaScript file, got %v", listing.Sources[0].Language)
	}
}

func TestScanner_IncludeGlobs(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, "src", "app.js"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "scripts", "run.js"), "test")
	writeTestFile(t, filepath.Join(tmpDir, ".env"), "A=1")

	scanner := NewScanner()
	scanner.SetIncludeGlobs([]string{"src/**"})

	listing, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(listing.Sources) != 1 {
		t.Fatalf("Expected 1 source file, got %d", len(listing.Sources))
	}
	if filepath.Base(listing.Sources[0].Path) != "app.js" {
		t.Errorf("Expected app.js, got %s", listing.Sources[0].Path)
	}

	// Definition files are found regardless of include globs
	if len(listing.EnvFiles) != 1 {
		t.Errorf("Expected 1 env file, got %d", len(listing.EnvFiles))
	}
}

func TestScanner_GitIgnore(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, ".gitignore"), "generated/\nsecret.js\n")
	writeTestFile(t, filepath.Join(tmpDir, "app.js"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "secret.js"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "generated", "out.js"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "sub", ".gitignore"), "local.py\n")
	writeTestFile(t, filepath.Join(tmpDir, "sub", "local.py"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "sub", "kept.py"), "test")

	scanner := NewScanner()
	listing, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	var names []string
	for _, f := range listing.Sources {
		names = append(names, filepath.Base(f.Path))
	}
	if len(names) != 2 {
		t.Fatalf("Expected 2 source files, got %d: %v", len(names), names)
	}
	for _, name := range names {
		if name == "secret.js" || name == "out.js" || name == "local.py" {
			t.Errorf("File %s should be gitignored", name)
		}
	}
}

func TestScanner_EnvFileDiscovery(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, ".env"), "A=1")
	writeTestFile(t, filepath.Join(tmpDir, ".env.production"), "A=1")
	writeTestFile(t, filepath.Join(tmpDir, "deploy", "env.conf"), "A=1")
	// Shares the ".env" prefix but is not a dotenv variant
	writeTestFile(t, filepath.Join(tmpDir, ".envaudit.toml"), "[scan]")
	// Four levels down is beyond the discovery depth for .env variants
	writeTestFile(t, filepath.Join(tmpDir, "a", "b", "c", "d", ".env"), "A=1")

	scanner := NewScanner()
	scanner.SetEnvFileNames([]string{".env", "env.conf"})

	listing, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(listing.EnvFiles) != 3 {
		t.Fatalf("Expected 3 env files, got %d: %v", len(listing.EnvFiles), listing.EnvFiles)
	}
	for _, f := range listing.EnvFiles {
		if filepath.Dir(f) == filepath.Join(tmpDir, "a", "b", "c", "d") {
			t.Errorf("Env file %s is too deep to be discovered", f)
		}
	}
}

func TestScanner_LanguageFilter(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, "app.js"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "main.go"), "test")
	writeTestFile(t, filepath.Join(tmpDir, "app.rb"), "test")

	scanner := NewScanner()
	scanner.SetLanguages([]Language{LanguageGo, LanguageRuby})

	listing, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if len(listing.Sources) != 2 {
		t.Fatalf("Expected 2 source files, got %d", len(listing.Sources))
	}
	for _, f := range listing.Sources {
		if f.Language == LanguageJavaScript {
			t.Error("JavaScript files should be filtered out")
		}
	}
}

func TestScanner_RootErrors(t *testing.T) {
	scanner := NewScanner()

	_, err := scanner.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, ErrRootNotFound) {
		t.Errorf("Expected ErrRootNotFound, got %v", err)
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	writeTestFile(t, file, "not a directory")
	_, err = scanner.Scan(file)
	if !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Expected ErrNotDirectory, got %v", err)
	}
}

func TestScanner_SymlinkCycle(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, filepath.Join(tmpDir, "a", "main.go"), "package main")
	if err := os.Symlink(filepath.Join(tmpDir, "a"), filepath.Join(tmpDir, "a", "loop")); err != nil {
		t.Skipf("Symlinks not supported: %v", err)
	}

	scanner := NewScanner()
	listing, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// The walk terminates and the file is seen exactly once
	if len(listing.Sources) != 1 {
		t.Errorf("Expected 1 source file, got %d", len(listing.Sources))
	}
}
