package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jenian/envaudit/internal/analyzer"
	"github.com/jenian/envaudit/internal/audit"
	"github.com/jenian/envaudit/internal/config"
	"github.com/jenian/envaudit/internal/envfile"
	"github.com/jenian/envaudit/internal/output"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:           "envaudit",
		Short:         "Audit environment variable usage across a codebase",
		Long:          "envaudit finds environment variables that are used but never defined, defined but never used, defined twice, or named against convention.",
		Args:          cobra.NoArgs,
		RunE:          runScan,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	scanCmd = &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project and report env var issues",
		Long:  "Recursively scan a directory for environment variable usages and compare them with the project's definition files.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}

	checkCmd = &cobra.Command{
		Use:   "check [path]",
		Short: "Scan and fail when issues reach a severity threshold",
		Long:  "Run a scan and exit with code 1 when any issue at or above the --fail-on severity survives. Intended for CI pipelines.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a " + config.DefaultFileName + " with defaults",
		RunE:  runInit,
	}

	listCmd = &cobra.Command{
		Use:   "list [path]",
		Short: "List defined and used environment variables",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runList,
	}

	compareCmd = &cobra.Command{
		Use:   "compare FILE1 FILE2",
		Short: "Diff two definition files",
		Long:  "Compare two definition files and report variables present in only one of them, plus value differences. Exits with code 1 when the files differ.",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}

	// Global flags
	configPath string
	scanPath   string
	formatName string
	outputFile string
	noColor    bool
	quiet      bool
	verbose    bool

	// Scan flags, also registered on the root and check commands
	checkMissing    bool
	checkUnused     bool
	checkNaming     bool
	checkDuplicates bool
	envFiles        []string
	minSeverity     string
	languages       []string

	// Check flags
	failOn      string
	summaryOnly bool

	// Init flags
	forceInit bool

	// List flags
	listDefined   bool
	listUsed      bool
	listLocations bool
	listValues    bool

	// Compare flags
	showValues bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default: <path>/"+config.DefaultFileName+")")
	pf.StringVarP(&scanPath, "path", "p", ".", "Project root to scan")
	pf.StringVarP(&formatName, "format", "f", "", "Output format: terminal, json, markdown or html")
	pf.StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "Log errors only")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	for _, cmd := range []*cobra.Command{rootCmd, scanCmd, checkCmd} {
		fl := cmd.Flags()
		fl.BoolVar(&checkMissing, "missing", false, "Report variables used but never defined")
		fl.BoolVar(&checkUnused, "unused", false, "Report variables defined but never used")
		fl.BoolVar(&checkNaming, "naming", false, "Report naming convention issues")
		fl.BoolVar(&checkDuplicates, "duplicates", false, "Report duplicate definitions within one file")
		fl.StringSliceVar(&envFiles, "env-file", nil, "Definition file to load (repeatable, overrides config)")
		fl.StringVar(&minSeverity, "severity", "", "Minimum severity to report: info, warning or error")
		fl.StringSliceVar(&languages, "language", nil, "Restrict scanning to a language (repeatable)")
	}

	checkCmd.Flags().StringVar(&failOn, "fail-on", "error", "Severity that fails the check: info, warning or error")
	checkCmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print issue counts only")

	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")

	listCmd.Flags().BoolVar(&listDefined, "defined", false, "List defined variables")
	listCmd.Flags().BoolVar(&listUsed, "used", false, "List used variables")
	listCmd.Flags().BoolVar(&listLocations, "locations", false, "Show where each variable appears")
	listCmd.Flags().BoolVar(&listValues, "values", false, "Show defined values")

	compareCmd.Flags().BoolVar(&showValues, "show-values", false, "Show the differing values")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the scan root and loads the configuration with CLI
// overrides applied.
func loadConfig(args []string) (*config.Config, string, error) {
	path := scanPath
	if len(args) > 0 {
		path = args[0]
	}
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("invalid path: %w", err)
	}

	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(root, config.DefaultFileName)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", err
	}
	applyFlagOverrides(cfg)
	return cfg, root, nil
}

func applyFlagOverrides(cfg *config.Config) {
	if formatName != "" {
		cfg.Output.Format = formatName
	}
	if outputFile != "" {
		cfg.Output.OutputFile = outputFile
	}
	if len(envFiles) > 0 {
		cfg.Scan.EnvFiles = envFiles
	}
	if minSeverity != "" {
		cfg.Output.MinSeverity = minSeverity
	}
	if len(languages) > 0 {
		cfg.Scan.Languages = languages
	}
	if noColor {
		color.NoColor = true
	}
}

// selectedChecks maps the check flags to issue kinds. Empty means all.
func selectedChecks() []analyzer.IssueKind {
	var kinds []analyzer.IssueKind
	if checkMissing {
		kinds = append(kinds, analyzer.KindMissing)
	}
	if checkUnused {
		kinds = append(kinds, analyzer.KindUnused)
	}
	if checkNaming {
		kinds = append(kinds, analyzer.KindNaming)
	}
	if checkDuplicates {
		kinds = append(kinds, analyzer.KindDuplicate)
	}
	return kinds
}

func runAudit(args []string) (*config.Config, *analyzer.Report, error) {
	cfg, root, err := loadConfig(args)
	if err != nil {
		return nil, nil, err
	}

	runner := audit.New(cfg, newLogger())
	if kinds := selectedChecks(); len(kinds) > 0 {
		runner.SetChecks(kinds)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx, root)
	if err != nil {
		return nil, nil, err
	}
	return cfg, report, nil
}

func render(cfg *config.Config, report *analyzer.Report) error {
	f, err := output.New(cfg.Output.Format, output.Options{
		ShowSuggestions: cfg.Output.ShowSuggestions,
		GroupByKind:     cfg.Output.GroupByKind,
	})
	if err != nil {
		return err
	}
	return output.Write(f, report, cfg.Output.OutputFile)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, report, err := runAudit(args)
	if err != nil {
		return err
	}
	return render(cfg, report)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, report, err := runAudit(args)
	if err != nil {
		return err
	}

	threshold := analyzer.ParseSeverity(failOn)
	failing := 0
	for _, issue := range report.Issues {
		if issue.Severity >= threshold {
			failing++
		}
	}

	if summaryOnly {
		s := report.Summary
		fmt.Printf("%d issues: %d errors, %d warnings, %d info\n", s.TotalIssues, s.Errors, s.Warnings, s.Infos)
	} else if err := render(cfg, report); err != nil {
		return err
	}

	if failing > 0 {
		os.Exit(1)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(scanPath)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	path := filepath.Join(root, config.DefaultFileName)

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(config.Template()), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	_, report, err := runAudit(args)
	if err != nil {
		return err
	}

	showDefined := listDefined || !listUsed
	showUsed := listUsed || !listDefined

	if showDefined {
		names, byName := groupDefinitions(report.Definitions)
		fmt.Printf("Defined variables (%d):\n", len(names))
		for _, name := range names {
			sites := byName[name]
			line := "  " + name
			if listValues {
				// Layering semantics: the last definition wins
				line += "=" + sites[len(sites)-1].Value
			}
			if listLocations {
				line += " (" + joinDefLocations(sites) + ")"
			}
			fmt.Println(line)
		}
	}
	if showUsed {
		names, byName := groupUsages(report.Usages)
		if showDefined {
			fmt.Println()
		}
		fmt.Printf("Used variables (%d):\n", len(names))
		for _, name := range names {
			line := "  " + name
			if listLocations {
				line += " (" + joinUsageLocations(byName[name]) + ")"
			}
			fmt.Println(line)
		}
	}
	return nil
}

func groupDefinitions(defs []analyzer.DefinitionSite) ([]string, map[string][]analyzer.DefinitionSite) {
	byName := make(map[string][]analyzer.DefinitionSite)
	var names []string
	for _, d := range defs {
		if _, seen := byName[d.Name]; !seen {
			names = append(names, d.Name)
		}
		byName[d.Name] = append(byName[d.Name], d)
	}
	sort.Strings(names)
	return names, byName
}

func groupUsages(usages []analyzer.UsageSite) ([]string, map[string][]analyzer.UsageSite) {
	byName := make(map[string][]analyzer.UsageSite)
	var names []string
	for _, u := range usages {
		if _, seen := byName[u.Name]; !seen {
			names = append(names, u.Name)
		}
		byName[u.Name] = append(byName[u.Name], u)
	}
	sort.Strings(names)
	return names, byName
}

func joinDefLocations(sites []analyzer.DefinitionSite) string {
	out := ""
	for i, s := range sites {
		if i > 0 {
			out += ", "
		}
		out += s.Location.String()
	}
	return out
}

func joinUsageLocations(sites []analyzer.UsageSite) string {
	out := ""
	for i, s := range sites {
		if i > 0 {
			out += ", "
		}
		out += s.Location.String()
	}
	return out
}

func runCompare(cmd *cobra.Command, args []string) error {
	left, err := envfile.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	right, err := envfile.ParseFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[1], err)
	}

	leftVals := lastValues(left)
	rightVals := lastValues(right)

	var onlyLeft, onlyRight, differ []string
	for name, lv := range leftVals {
		rv, ok := rightVals[name]
		if !ok {
			onlyLeft = append(onlyLeft, name)
		} else if lv != rv {
			differ = append(differ, name)
		}
	}
	for name := range rightVals {
		if _, ok := leftVals[name]; !ok {
			onlyRight = append(onlyRight, name)
		}
	}
	sort.Strings(onlyLeft)
	sort.Strings(onlyRight)
	sort.Strings(differ)

	if len(onlyLeft)+len(onlyRight)+len(differ) == 0 {
		fmt.Println("No differences found.")
		return nil
	}

	if len(onlyLeft) > 0 {
		fmt.Printf("Only in %s (%d):\n", args[0], len(onlyLeft))
		for _, name := range onlyLeft {
			fmt.Println("  " + name)
		}
	}
	if len(onlyRight) > 0 {
		fmt.Printf("Only in %s (%d):\n", args[1], len(onlyRight))
		for _, name := range onlyRight {
			fmt.Println("  " + name)
		}
	}
	if len(differ) > 0 {
		fmt.Printf("Different values (%d):\n", len(differ))
		for _, name := range differ {
			if showValues {
				fmt.Printf("  %s: %q != %q\n", name, leftVals[name], rightVals[name])
			} else {
				fmt.Println("  " + name)
			}
		}
	}

	os.Exit(1)
	return nil
}

// lastValues flattens definition sites to a name/value map, last one wins
func lastValues(defs []analyzer.DefinitionSite) map[string]string {
	vals := make(map[string]string, len(defs))
	for _, d := range defs {
		vals[d.Name] = d.Value
	}
	return vals
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
