package output

import (
	"fmt"
	"strings"

	"github.com/jenian/envaudit/internal/analyzer"
)

// Markdown renders the report for pull requests and wikis
type Markdown struct {
	opts Options
}

func (m *Markdown) Format(report *analyzer.Report) (string, error) {
	var b strings.Builder
	s := report.Summary

	b.WriteString("# envaudit Report\n\n")
	b.WriteString(fmt.Sprintf("- **Files scanned:** %d\n", s.FilesScanned))
	b.WriteString(fmt.Sprintf("- **Env files found:** %d\n", s.EnvFilesFound))
	b.WriteString(fmt.Sprintf("- **Variables defined:** %d\n", s.VarsDefined))
	b.WriteString(fmt.Sprintf("- **Variables used:** %d\n", s.VarsUsed))
	b.WriteString(fmt.Sprintf("- **Scan duration:** %dms\n\n", report.DurationMS))

	if len(report.Issues) == 0 {
		b.WriteString("> **No issues found!** :tada:\n\n")
	} else {
		b.WriteString("| Severity | Count |\n| --- | --- |\n")
		b.WriteString(fmt.Sprintf("| %s Error | %d |\n", severityEmoji(analyzer.SeverityError), s.Errors))
		b.WriteString(fmt.Sprintf("| %s Warning | %d |\n", severityEmoji(analyzer.SeverityWarning), s.Warnings))
		b.WriteString(fmt.Sprintf("| %s Info | %d |\n\n", severityEmoji(analyzer.SeverityInfo), s.Infos))

		groups := groupIssues(report.Issues)
		for _, kind := range kindSections {
			issues := groups[kind]
			if len(issues) == 0 {
				continue
			}
			b.WriteString(fmt.Sprintf("## %s\n\n", markdownTitle(kind)))
			if m.opts.ShowSuggestions {
				b.WriteString("| Variable | Severity | Locations | Suggestion |\n| --- | --- | --- | --- |\n")
			} else {
				b.WriteString("| Variable | Severity | Locations |\n| --- | --- | --- |\n")
			}
			for _, issue := range issues {
				locs, more := clippedLocations(issue.Locations)
				cell := strings.Join(locs, ", ")
				if more > 0 {
					cell += fmt.Sprintf(" +%d more", more)
				}
				if m.opts.ShowSuggestions {
					b.WriteString(fmt.Sprintf("| `%s` | %s | %s | %s |\n",
						issue.Name, severityEmoji(issue.Severity), cell, escapeCell(issue.Suggestion)))
				} else {
					b.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n",
						issue.Name, severityEmoji(issue.Severity), cell))
				}
			}
			b.WriteString("\n")
		}
	}

	if len(report.Diagnostics) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, d := range report.Diagnostics {
			b.WriteString(fmt.Sprintf("- `%s`: %s\n", d.Path, escapeCell(d.Message)))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n_Generated by envaudit_\n")
	return b.String(), nil
}

func markdownTitle(kind analyzer.IssueKind) string {
	switch kind {
	case analyzer.KindMissing:
		return "Missing Variables"
	case analyzer.KindUnused:
		return "Unused Variables"
	case analyzer.KindDuplicate:
		return "Duplicate Definitions"
	case analyzer.KindNaming:
		return "Naming Issues"
	}
	return "Issues"
}

func severityEmoji(sev analyzer.Severity) string {
	switch sev {
	case analyzer.SeverityError:
		return ":x:"
	case analyzer.SeverityWarning:
		return ":warning:"
	}
	return ":information_source:"
}

// escapeCell keeps free text from breaking the table
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
