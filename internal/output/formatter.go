package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/jenian/envaudit/internal/analyzer"
)

// Formatter renders a report in one output format
type Formatter interface {
	Format(report *analyzer.Report) (string, error)
}

// Options adjust rendering across formats
type Options struct {
	ShowSuggestions bool
	GroupByKind     bool
	Width           int // terminal columns, 0 means detect
}

// New returns the formatter for a format name
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "terminal":
		return &Terminal{opts: opts}, nil
	case "json":
		return &JSON{}, nil
	case "markdown", "md":
		return &Markdown{opts: opts}, nil
	case "html":
		return &HTML{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

// Write renders report with f and writes it to path, or stdout when path is
// empty.
func Write(f Formatter, report *analyzer.Report, path string) error {
	out, err := f.Format(report)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = os.Stdout.WriteString(out)
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}

// kindSections is the display order of the issue groups
var kindSections = []analyzer.IssueKind{
	analyzer.KindMissing,
	analyzer.KindUnused,
	analyzer.KindDuplicate,
	analyzer.KindNaming,
}

func groupIssues(issues []analyzer.Issue) map[analyzer.IssueKind][]analyzer.Issue {
	groups := make(map[analyzer.IssueKind][]analyzer.Issue)
	for _, issue := range issues {
		groups[issue.Kind] = append(groups[issue.Kind], issue)
	}
	return groups
}

// maxLocations caps the locations listed per issue; the rest collapse into
// a "+N more" marker.
const maxLocations = 3

func clippedLocations(locs []analyzer.Location) ([]string, int) {
	shown := len(locs)
	if shown > maxLocations {
		shown = maxLocations
	}
	out := make([]string, shown)
	for i := 0; i < shown; i++ {
		out[i] = locs[i].String()
	}
	return out, len(locs) - shown
}
