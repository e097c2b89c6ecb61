package analyzer

import (
	"fmt"
	"strings"

	"github.com/jenian/envaudit/internal/scanner"
)

// Severity ranks findings for filtering and CI gating: Error > Warning > Info
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// ParseSeverity maps a configuration string to a Severity.
// Unknown values degrade to Info rather than failing the scan.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError
	case "warning", "warn":
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalJSON emits severities as their lowercase names
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// IssueKind classifies a finding
type IssueKind int

const (
	KindMissing   IssueKind = iota // used in code, defined nowhere
	KindUnused                     // defined, never used
	KindNaming                     // name deviates from a convention rule
	KindDuplicate                  // defined more than once in the same file
)

func (k IssueKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindUnused:
		return "unused"
	case KindNaming:
		return "naming"
	default:
		return "duplicate"
	}
}

// MarshalJSON emits kinds as their lowercase names
func (k IssueKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Location is a position in a scanned file. Line and Column are 1-based;
// Column 0 means the column was not recorded (definition sites).
type Location struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
}

func (l Location) String() string {
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.Path, l.Line)
}

// DefinitionSite records one KEY=VALUE occurrence in a definition file.
// A variable redefined across files or lines keeps every occurrence.
type DefinitionSite struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Location Location `json:"location"`
}

// UsageSite records one read of an environment variable in source code
type UsageSite struct {
	Name     string           `json:"name"`
	Location Location         `json:"location"`
	Language scanner.Language `json:"language"`
}

// Rule describes a naming convention: any defined variable whose name is in
// Alternatives but is not Preferred is a candidate finding.
type Rule struct {
	Name         string
	Description  string
	Alternatives []string
	Preferred    string
	Severity     Severity
}

// Matches reports whether name is a non-preferred alternative of the rule
func (r Rule) Matches(name string) bool {
	if name == r.Preferred {
		return false
	}
	for _, alt := range r.Alternatives {
		if alt == name {
			return true
		}
	}
	return false
}

// Issue is a single finding. Immutable once produced.
type Issue struct {
	Kind       IssueKind  `json:"kind"`
	Severity   Severity   `json:"severity"`
	Name       string     `json:"name"`
	Locations  []Location `json:"locations"`
	Message    string     `json:"message"`
	Suggestion string     `json:"suggestion,omitempty"`
	// Conflict marks a Naming issue where the preferred form is also defined
	Conflict bool `json:"conflict,omitempty"`
}

// Diagnostic is a non-fatal per-file problem, reported apart from Issues
type Diagnostic struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Summary holds the scan counters. Per-severity counts are totals computed
// before minimum-severity filtering; Report.Issues holds the filtered list.
type Summary struct {
	FilesScanned  int `json:"files_scanned"`
	EnvFilesFound int `json:"env_files_found"`
	VarsDefined   int `json:"vars_defined"`
	VarsUsed      int `json:"vars_used"`
	TotalIssues   int `json:"total_issues"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Infos         int `json:"infos"`
}

// Report is the complete result of one audit run
type Report struct {
	Summary     Summary          `json:"summary"`
	Issues      []Issue          `json:"issues"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
	Definitions []DefinitionSite `json:"definitions"`
	Usages      []UsageSite      `json:"usages"`
	DurationMS  int64            `json:"scan_duration_ms"`
}
