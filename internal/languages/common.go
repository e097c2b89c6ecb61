package languages

import (
	"regexp"

	"github.com/jenian/envaudit/internal/scanner"
)

// Pattern is one extraction rule: a regex whose capture group holds the
// variable name. List order within a language is the precedence rank; when
// two matches overlap, the earlier-registered pattern's match survives, so
// specific forms are listed before the generic forms they contain.
type Pattern struct {
	Name  string
	Re    *regexp.Regexp
	Group int
	// List marks a capture holding a destructuring body; each identifier in
	// it becomes its own candidate with a span inside the braces.
	List bool
}

// PatternsFor returns the ordered pattern list registered for a language.
// JavaScript and TypeScript share one list. Unknown languages return nil.
func PatternsFor(lang scanner.Language) []Pattern {
	switch lang {
	case scanner.LanguageJavaScript, scanner.LanguageTypeScript:
		return JavaScriptPatterns
	case scanner.LanguagePython:
		return PythonPatterns
	case scanner.LanguageRust:
		return RustPatterns
	case scanner.LanguageGo:
		return GoPatterns
	case scanner.LanguageRuby:
		return RubyPatterns
	case scanner.LanguagePHP:
		return PHPPatterns
	case scanner.LanguageJava:
		return JavaPatterns
	case scanner.LanguageCSharp:
		return CSharpPatterns
	default:
		return nil
	}
}
