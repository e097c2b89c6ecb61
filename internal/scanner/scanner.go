package scanner

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// Language classifies a source file by its extension
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguagePython     Language = "python"
	LanguageRust       Language = "rust"
	LanguageGo         Language = "go"
	LanguageRuby       Language = "ruby"
	LanguagePHP        Language = "php"
	LanguageJava       Language = "java"
	LanguageCSharp     Language = "csharp"
	LanguageUnknown    Language = "unknown"
)

// Definition files are only discovered this many directory levels below the
// scan root. Configured names are resolved against the root itself upstream.
const envFileMaxDepth = 3

// Fatal errors for an unusable scan root. Per-file problems never surface
// here; they are collected as Diags on the Listing instead.
var (
	ErrRootNotFound = errors.New("root path does not exist")
	ErrNotDirectory = errors.New("root path is not a directory")
)

// FileInfo is one candidate source file produced by the walk
type FileInfo struct {
	Path     string
	Language Language
}

// Diag records a non-fatal problem encountered during the walk
type Diag struct {
	Path    string
	Message string
}

// Listing is the result of one walk: source candidates, discovered
// definition files, and any non-fatal walk diagnostics.
type Listing struct {
	Sources  []FileInfo
	EnvFiles []string
	Diags    []Diag
}

// Scanner walks a project tree and filters candidate files.
// Configure it before calling Scan; a Scanner is not safe for concurrent use.
type Scanner struct {
	excludeGlobs []string
	includeGlobs []string
	languages    map[Language]bool
	envNames     map[string]bool
}

// NewScanner creates a scanner with no filters set
func NewScanner() *Scanner {
	return &Scanner{
		languages: map[Language]bool{},
		envNames:  map[string]bool{},
	}
}

// SetExcludeGlobs sets doublestar patterns that drop files and prune
// directories, matched against the slash path relative to the scan root
func (s *Scanner) SetExcludeGlobs(globs []string) {
	s.excludeGlobs = globs
}

// SetIncludeGlobs sets doublestar patterns a source file must match at least
// one of. An empty list includes everything. Definition files are exempt.
func (s *Scanner) SetIncludeGlobs(globs []string) {
	s.includeGlobs = globs
}

// SetLanguages restricts the scan to the given languages. Empty means all.
func (s *Scanner) SetLanguages(langs []Language) {
	s.languages = make(map[Language]bool, len(langs))
	for _, l := range langs {
		s.languages[l] = true
	}
}

// SetEnvFileNames sets extra base names recognized as definition files.
// ".env" and ".env.*" names are always recognized.
func (s *Scanner) SetEnvFileNames(names []string) {
	s.envNames = make(map[string]bool, len(names))
	for _, n := range names {
		s.envNames[n] = true
	}
}

// ParseLanguage maps a user-supplied name to a Language
func ParseLanguage(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "javascript", "js":
		return LanguageJavaScript
	case "typescript", "ts":
		return LanguageTypeScript
	case "python", "py":
		return LanguagePython
	case "rust", "rs":
		return LanguageRust
	case "go", "golang":
		return LanguageGo
	case "ruby", "rb":
		return LanguageRuby
	case "php":
		return LanguagePHP
	case "java":
		return LanguageJava
	case "csharp", "cs", "c#":
		return LanguageCSharp
	default:
		return LanguageUnknown
	}
}

// detectLanguage determines the language from the file extension
func detectLanguage(p string) Language {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	case ".ts", ".tsx", ".mts", ".cts":
		return LanguageTypeScript
	case ".py":
		return LanguagePython
	case ".rs":
		return LanguageRust
	case ".go":
		return LanguageGo
	case ".rb":
		return LanguageRuby
	case ".php":
		return LanguagePHP
	case ".java":
		return LanguageJava
	case ".cs":
		return LanguageCSharp
	default:
		return LanguageUnknown
	}
}

// isBinaryFile checks if a file is likely binary
func isBinaryFile(p string) bool {
	binaryExts := map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
		".pdf": true, ".zip": true, ".tar": true, ".gz": true,
		".exe": true, ".dll": true, ".so": true, ".dylib": true,
		".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
		".ico": true, ".svg": true, ".mp4": true, ".mp3": true,
		".jar": true, ".class": true, ".wasm": true,
	}
	return binaryExts[strings.ToLower(filepath.Ext(p))]
}

// Scan walks rootPath and returns the filtered listing. Each call is a fresh
// walk; nothing is cached across invocations.
func (s *Scanner) Scan(rootPath string) (*Listing, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, rootPath)
		}
		return nil, fmt.Errorf("stat %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, rootPath)
	}

	w := &walker{scanner: s, visited: map[string]bool{}}
	if err := w.walkDir(rootPath, "", 0); err != nil {
		return nil, fmt.Errorf("walking %s: %w", rootPath, err)
	}
	return &w.listing, nil
}

// ignoreScope is one .gitignore file in effect for the subtree below rel
type ignoreScope struct {
	rel     string
	matcher *gitignore.GitIgnore
}

type walker struct {
	scanner *Scanner
	visited map[string]bool // canonical directory identities, guards symlink cycles
	scopes  []ignoreScope
	listing Listing
}

// walkDir recurses into dir. rel is dir's slash path relative to the scan
// root ("" for the root itself); depth counts directory levels below root.
// Only the root call returns an error; failures below it become Diags.
func (w *walker) walkDir(dir, rel string, depth int) error {
	canon, err := filepath.EvalSymlinks(dir)
	if err == nil {
		if w.visited[canon] {
			return nil
		}
		w.visited[canon] = true
	}

	if m, err := gitignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore")); err == nil && m != nil {
		w.scopes = append(w.scopes, ignoreScope{rel: rel, matcher: m})
		defer func() { w.scopes = w.scopes[:len(w.scopes)-1] }()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		childPath := filepath.Join(dir, name)
		childRel := path.Join(rel, name)

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(childPath)
			if err != nil {
				w.diag(childPath, fmt.Sprintf("broken symlink: %v", err))
				continue
			}
			isDir = target.IsDir()
		}

		if w.gitIgnored(childRel, isDir) {
			continue
		}

		if isDir {
			if matchesAnyGlob(w.scanner.excludeGlobs, childRel) {
				continue
			}
			if err := w.walkDir(childPath, childRel, depth+1); err != nil {
				w.diag(childPath, fmt.Sprintf("unreadable directory: %v", err))
			}
			continue
		}

		if matchesAnyGlob(w.scanner.excludeGlobs, childRel) {
			continue
		}
		if depth <= envFileMaxDepth && (w.scanner.envNames[name] || name == ".env" || strings.HasPrefix(name, ".env.")) {
			w.listing.EnvFiles = append(w.listing.EnvFiles, childPath)
			continue
		}
		if len(w.scanner.includeGlobs) > 0 && !matchesAnyGlob(w.scanner.includeGlobs, childRel) {
			continue
		}
		if isBinaryFile(name) {
			continue
		}
		lang := detectLanguage(name)
		if lang == LanguageUnknown {
			continue
		}
		if len(w.scanner.languages) > 0 && !w.scanner.languages[lang] {
			continue
		}
		w.listing.Sources = append(w.listing.Sources, FileInfo{Path: childPath, Language: lang})
	}
	return nil
}

// gitIgnored checks rel against every .gitignore in effect, nearest file
// last. Directory probes carry a trailing slash so dir-only patterns match.
func (w *walker) gitIgnored(rel string, isDir bool) bool {
	for _, scope := range w.scopes {
		probe := rel
		if scope.rel != "" {
			if !strings.HasPrefix(rel, scope.rel+"/") {
				continue
			}
			probe = rel[len(scope.rel)+1:]
		}
		if isDir {
			probe += "/"
		}
		if scope.matcher.MatchesPath(probe) {
			return true
		}
	}
	return false
}

func (w *walker) diag(path, msg string) {
	w.listing.Diags = append(w.listing.Diags, Diag{Path: path, Message: msg})
}

func matchesAnyGlob(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}
