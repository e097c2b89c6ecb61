package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jenian/envaudit/internal/analyzer"
)

// DefaultFileName is the config file looked up at the project root
const DefaultFileName = ".envaudit.toml"

// Config represents the .envaudit.toml configuration file
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Naming NamingConfig `toml:"naming"`
	Output OutputConfig `toml:"output"`
}

// ScanConfig controls file discovery and env file resolution
type ScanConfig struct {
	EnvFiles  []string `toml:"env_files"` // Definition files resolved against the scan root
	Include   []string `toml:"include"`   // Globs a source file must match (empty = all)
	Exclude   []string `toml:"exclude"`   // Globs that remove files from the scan
	Languages []string `toml:"languages"` // Restrict scanning to these languages (empty = all)
}

// NamingConfig controls the naming convention checks
type NamingConfig struct {
	BuiltinRules   bool         `toml:"builtin_rules"`   // Apply the builtin rule table
	IgnorePatterns []string     `toml:"ignore_patterns"` // Name regexes excluded from every check
	CustomRules    []CustomRule `toml:"custom_rules"`
}

// CustomRule is a user-defined naming rule
type CustomRule struct {
	Name         string   `toml:"name"`
	Description  string   `toml:"description"`
	Alternatives []string `toml:"alternatives"`
	Preferred    string   `toml:"preferred"`
	Severity     string   `toml:"severity"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Format          string `toml:"format"`           // terminal, json, markdown or html
	ShowSuggestions bool   `toml:"show_suggestions"`
	GroupByKind     bool   `toml:"group_by_kind"`
	MinSeverity     string `toml:"min_severity"`
	OutputFile      string `toml:"output_file"`      // Empty writes to stdout
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			EnvFiles: []string{".env", ".env.local", ".env.example"},
			Include:  []string{"**/*"},
			Exclude: []string{
				"**/node_modules/**",
				"**/target/**",
				"**/vendor/**",
				"**/.git/**",
				"**/dist/**",
				"**/build/**",
				"**/__pycache__/**",
				"**/venv/**",
				"**/.venv/**",
			},
			Languages: []string{},
		},
		Naming: NamingConfig{
			BuiltinRules:   true,
			IgnorePatterns: []string{},
		},
		Output: OutputConfig{
			Format:          "terminal",
			ShowSuggestions: true,
			GroupByKind:     true,
			MinSeverity:     "info",
		},
	}
}

// Load reads the configuration at path. A missing file yields the defaults;
// a present but unparsable file is an error. Values absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// CustomRuleset converts the configured custom rules into analyzer rules,
// keeping configuration order. Unknown severity strings degrade to info.
func (c *Config) CustomRuleset() []analyzer.Rule {
	var ruleset []analyzer.Rule
	for _, cr := range c.Naming.CustomRules {
		ruleset = append(ruleset, analyzer.Rule{
			Name:         cr.Name,
			Description:  cr.Description,
			Alternatives: cr.Alternatives,
			Preferred:    cr.Preferred,
			Severity:     analyzer.ParseSeverity(cr.Severity),
		})
	}
	return ruleset
}

// MinSeverity returns the configured report threshold
func (c *Config) MinSeverity() analyzer.Severity {
	return analyzer.ParseSeverity(c.Output.MinSeverity)
}

// Template returns a commented starter configuration for envaudit init.
// The template itself decodes cleanly.
func Template() string {
	return `# envaudit configuration

[scan]
# Definition files resolved against the scan root, in order.
env_files = [".env", ".env.local", ".env.example"]

# Globs a source file must match before it is scanned. Empty means all files.
include = ["**/*"]

# Globs that remove files and directories from the scan.
exclude = [
  "**/node_modules/**",
  "**/target/**",
  "**/vendor/**",
  "**/.git/**",
  "**/dist/**",
  "**/build/**",
  "**/__pycache__/**",
  "**/venv/**",
  "**/.venv/**",
]

# Restrict scanning to these languages. Empty means all supported languages.
languages = []

[naming]
# Apply the builtin naming convention rules.
builtin_rules = true

# Regular expressions over variable names. Matching names are excluded from
# every check.
ignore_patterns = []

# Custom naming rules, applied after the builtin table.
# [[naming.custom_rules]]
# name         = "company-token"
# description  = "use the namespaced token variable"
# alternatives = ["TOKEN", "AUTH_TOKEN"]
# preferred    = "ACME_TOKEN"
# severity     = "warning"

[output]
# terminal, json, markdown or html.
format = "terminal"

show_suggestions = true
group_by_kind = true

# Lowest severity included in the report: info, warning or error.
min_severity = "info"

# Write the report to this file instead of stdout.
output_file = ""
`
}
