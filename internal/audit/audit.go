package audit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/jenian/envaudit/internal/analyzer"
	"github.com/jenian/envaudit/internal/config"
	"github.com/jenian/envaudit/internal/envfile"
	"github.com/jenian/envaudit/internal/extractor"
	"github.com/jenian/envaudit/internal/rules"
	"github.com/jenian/envaudit/internal/scanner"
)

// Runner executes a full audit: discovery, env parsing, extraction and
// analysis. Configure it before calling Run; a Runner is not safe for
// concurrent use.
type Runner struct {
	cfg    *config.Config
	checks map[analyzer.IssueKind]bool
	logger *slog.Logger
}

// New creates a runner for the given configuration. A nil logger disables
// logging.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{cfg: cfg, logger: logger}
}

// SetChecks restricts the run to the given issue kinds. Empty means all.
func (r *Runner) SetChecks(kinds []analyzer.IssueKind) {
	r.checks = make(map[analyzer.IssueKind]bool, len(kinds))
	for _, k := range kinds {
		r.checks[k] = true
	}
}

// Run audits the project rooted at root and returns the report. Fatal root
// errors and context cancellation abort the run; everything else degrades to
// diagnostics on the report.
func (r *Runner) Run(ctx context.Context, root string) (*analyzer.Report, error) {
	start := time.Now()

	ruleset := rules.Merge(r.cfg.CustomRuleset(), r.cfg.Naming.BuiltinRules)
	ignores := r.compileIgnores()

	listing, err := r.discover(root)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	envPaths := r.resolveEnvFiles(root, listing.EnvFiles)

	var diags []analyzer.Diagnostic
	for _, d := range listing.Diags {
		diags = append(diags, analyzer.Diagnostic{Path: relTo(root, d.Path), Message: d.Message})
	}

	var defs []analyzer.DefinitionSite
	for _, path := range envPaths {
		sites, err := envfile.ParseFile(path)
		if err != nil {
			r.logger.Warn("failed to parse env file", "path", path, "error", err)
			diags = append(diags, analyzer.Diagnostic{Path: relTo(root, path), Message: err.Error()})
			continue
		}
		defs = append(defs, sites...)
	}
	for i := range defs {
		defs[i].Location.Path = relTo(root, defs[i].Location.Path)
	}

	usages, extractDiags, err := r.extract(ctx, listing.Sources, ignores)
	if err != nil {
		return nil, err
	}
	for i := range extractDiags {
		extractDiags[i].Path = relTo(root, extractDiags[i].Path)
	}
	diags = append(diags, extractDiags...)
	for i := range usages {
		usages[i].Location.Path = relTo(root, usages[i].Location.Path)
	}
	sort.Slice(usages, func(i, j int) bool {
		a, b := usages[i].Location, usages[j].Location
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	report := analyzer.Analyze(defs, usages, ruleset, analyzer.Options{
		Checks:      r.checks,
		MinSeverity: r.cfg.MinSeverity(),
		Ignores:     ignores,
	})
	report.Summary.FilesScanned = len(listing.Sources)
	report.Summary.EnvFilesFound = len(envPaths)
	report.Diagnostics = diags
	report.DurationMS = time.Since(start).Milliseconds()

	r.logger.Debug("audit finished",
		"files", report.Summary.FilesScanned,
		"env_files", report.Summary.EnvFilesFound,
		"issues", report.Summary.TotalIssues,
		"duration_ms", report.DurationMS)

	return report, nil
}

// compileIgnores compiles the configured name patterns, skipping any that do
// not compile.
func (r *Runner) compileIgnores() []*regexp.Regexp {
	var ignores []*regexp.Regexp
	for _, pattern := range r.cfg.Naming.IgnorePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			r.logger.Debug("skipping invalid ignore pattern", "pattern", pattern, "error", err)
			continue
		}
		ignores = append(ignores, re)
	}
	return ignores
}

func (r *Runner) discover(root string) (*scanner.Listing, error) {
	sc := scanner.NewScanner()
	sc.SetExcludeGlobs(r.cfg.Scan.Exclude)
	sc.SetIncludeGlobs(r.cfg.Scan.Include)

	var baseNames []string
	for _, f := range r.cfg.Scan.EnvFiles {
		baseNames = append(baseNames, filepath.Base(f))
	}
	sc.SetEnvFileNames(baseNames)

	var langs []scanner.Language
	for _, name := range r.cfg.Scan.Languages {
		lang := scanner.ParseLanguage(name)
		if lang == scanner.LanguageUnknown {
			r.logger.Debug("skipping unknown language", "language", name)
			continue
		}
		langs = append(langs, lang)
	}
	if len(langs) > 0 {
		sc.SetLanguages(langs)
	}

	return sc.Scan(root)
}

// resolveEnvFiles builds the definition file list: configured entries that
// exist, in configuration order, then walk discoveries, without repeats.
func (r *Runner) resolveEnvFiles(root string, discovered []string) []string {
	var paths []string
	seen := make(map[string]bool)

	add := func(path string) {
		clean := filepath.Clean(path)
		if seen[clean] {
			return
		}
		seen[clean] = true
		paths = append(paths, clean)
	}

	for _, entry := range r.cfg.Scan.EnvFiles {
		path := entry
		if !filepath.IsAbs(entry) {
			path = filepath.Join(root, entry)
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		add(path)
	}
	for _, path := range discovered {
		add(path)
	}
	return paths
}

// extract runs the pattern extractor over the sources with a fixed worker
// pool. Each worker appends to private slices; the merge happens after all
// workers finish, so the hot loop takes no locks.
func (r *Runner) extract(ctx context.Context, sources []scanner.FileInfo, ignores []*regexp.Regexp) ([]analyzer.UsageSite, []analyzer.Diagnostic, error) {
	workers := runtime.NumCPU()
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	usageSlices := make([][]analyzer.UsageSite, workers)
	diagSlices := make([][]analyzer.Diagnostic, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for idx := range jobs {
				src := sources[idx]
				sites, err := extractor.ExtractFile(src.Path, src.Language, ignores)
				if err != nil {
					diagSlices[id] = append(diagSlices[id], analyzer.Diagnostic{Path: src.Path, Message: err.Error()})
					continue
				}
				usageSlices[id] = append(usageSlices[id], sites...)
			}
		}(w)
	}

feed:
	for i := range sources {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var usages []analyzer.UsageSite
	var diags []analyzer.Diagnostic
	for w := 0; w < workers; w++ {
		usages = append(usages, usageSlices[w]...)
		diags = append(diags, diagSlices[w]...)
	}
	return usages, diags, nil
}

// relTo converts path to a slash-separated form relative to root for display
func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
