package languages

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jenian/envaudit/internal/scanner"
)

// captureNames applies every pattern of a list in order and returns the raw
// captured names, without the extractor's overlap sweep. List captures are
// split on commas, keeping the property name left of any alias or default.
func captureNames(patterns []Pattern, src string) []string {
	var names []string
	for _, p := range patterns {
		for _, m := range p.Re.FindAllStringSubmatch(src, -1) {
			got := m[p.Group]
			if !p.List {
				names = append(names, got)
				continue
			}
			for _, part := range strings.Split(got, ",") {
				if i := strings.IndexAny(part, ":="); i >= 0 {
					part = part[:i]
				}
				part = strings.TrimSpace(part)
				if part != "" {
					names = append(names, part)
				}
			}
		}
	}
	return names
}

func TestPatternsFor(t *testing.T) {
	tests := []struct {
		lang      scanner.Language
		wantTable bool
	}{
		{scanner.LanguageJavaScript, true},
		{scanner.LanguageTypeScript, true},
		{scanner.LanguagePython, true},
		{scanner.LanguageRust, true},
		{scanner.LanguageGo, true},
		{scanner.LanguageRuby, true},
		{scanner.LanguagePHP, true},
		{scanner.LanguageJava, true},
		{scanner.LanguageCSharp, true},
		{scanner.LanguageUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			patterns := PatternsFor(tt.lang)
			if tt.wantTable && len(patterns) == 0 {
				t.Errorf("Expected patterns for %v, got none", tt.lang)
			}
			if !tt.wantTable && patterns != nil {
				t.Errorf("Expected no patterns for %v, got %d", tt.lang, len(patterns))
			}
		})
	}
}

func TestPatternsFor_SharedJSTable(t *testing.T) {
	js := PatternsFor(scanner.LanguageJavaScript)
	ts := PatternsFor(scanner.LanguageTypeScript)
	if !reflect.DeepEqual(js, ts) {
		t.Error("JavaScript and TypeScript should share one pattern table")
	}
}
