package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/jenian/envaudit/internal/analyzer"
)

// Terminal renders a report for interactive use. Color is handled by
// fatih/color, which disables itself on non-terminals and honors NO_COLOR.
type Terminal struct {
	opts Options
}

var (
	titleStyle   = color.New(color.Bold)
	missingStyle = color.New(color.FgRed, color.Bold)
	unusedStyle  = color.New(color.FgYellow, color.Bold)
	dupStyle     = color.New(color.FgMagenta, color.Bold)
	namingStyle  = color.New(color.FgCyan, color.Bold)
	warnStyle    = color.New(color.FgYellow, color.Bold)
	okStyle      = color.New(color.FgGreen, color.Bold)
	dimStyle     = color.New(color.FgHiBlack)

	errorName = color.New(color.FgRed)
	warnName  = color.New(color.FgYellow)
	infoName  = color.New(color.FgCyan)
)

func (t *Terminal) Format(report *analyzer.Report) (string, error) {
	var b strings.Builder
	width := t.width()

	b.WriteString(titleStyle.Sprint("envaudit scan results"))
	b.WriteString("\n\n")

	if len(report.Issues) == 0 {
		b.WriteString(okStyle.Sprint("✓ No issues found. All environment variables are properly configured."))
		b.WriteString("\n\n")
	} else if t.opts.GroupByKind {
		groups := groupIssues(report.Issues)
		for _, kind := range kindSections {
			issues := groups[kind]
			if len(issues) == 0 {
				continue
			}
			style := sectionStyle(kind)
			b.WriteString(style.Sprintf("%s (%d)", sectionTitle(kind), len(issues)))
			b.WriteString("\n")
			for _, issue := range issues {
				t.writeIssue(&b, issue, width, false)
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString(titleStyle.Sprintf("ISSUES (%d)", len(report.Issues)))
		b.WriteString("\n")
		for _, issue := range report.Issues {
			t.writeIssue(&b, issue, width, true)
		}
		b.WriteString("\n")
	}

	if len(report.Diagnostics) > 0 {
		b.WriteString(warnStyle.Sprintf("WARNINGS (%d)", len(report.Diagnostics)))
		b.WriteString("\n")
		for _, d := range report.Diagnostics {
			b.WriteString(fmt.Sprintf("  %s: %s\n", d.Path, clip(d.Message, width-len(d.Path)-6)))
		}
		b.WriteString("\n")
	}

	s := report.Summary
	b.WriteString(titleStyle.Sprint("SUMMARY"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Files scanned:   %d\n", s.FilesScanned))
	b.WriteString(fmt.Sprintf("  Env files found: %d\n", s.EnvFilesFound))
	b.WriteString(fmt.Sprintf("  Vars defined:    %d\n", s.VarsDefined))
	b.WriteString(fmt.Sprintf("  Vars used:       %d\n", s.VarsUsed))
	b.WriteString(fmt.Sprintf("  Issues:          %d (%d errors, %d warnings, %d info)\n",
		s.TotalIssues, s.Errors, s.Warnings, s.Infos))
	b.WriteString("\n")
	b.WriteString(dimStyle.Sprintf("Scan completed in %dms", report.DurationMS))
	b.WriteString("\n")

	return b.String(), nil
}

func (t *Terminal) writeIssue(b *strings.Builder, issue analyzer.Issue, width int, tagged bool) {
	name := severityName(issue.Severity).Sprint(issue.Name)
	line := fmt.Sprintf("  %s %s", severityIcon(issue.Severity), name)
	if tagged {
		line += dimStyle.Sprintf(" (%s)", issue.Kind)
	}
	b.WriteString(line)
	b.WriteString("\n")

	locs, more := clippedLocations(issue.Locations)
	for _, loc := range locs {
		b.WriteString("      ")
		b.WriteString(clip(loc, width-6))
		b.WriteString("\n")
	}
	if more > 0 {
		b.WriteString(dimStyle.Sprintf("      +%d more", more))
		b.WriteString("\n")
	}
	if t.opts.ShowSuggestions && issue.Suggestion != "" {
		b.WriteString(dimStyle.Sprintf("      → %s", clip(issue.Suggestion, width-8)))
		b.WriteString("\n")
	}
}

func (t *Terminal) width() int {
	if t.opts.Width > 0 {
		return t.opts.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w
	}
	return 80
}

func sectionTitle(kind analyzer.IssueKind) string {
	switch kind {
	case analyzer.KindMissing:
		return "MISSING ENV VARS"
	case analyzer.KindUnused:
		return "UNUSED ENV VARS"
	case analyzer.KindDuplicate:
		return "DUPLICATE DEFINITIONS"
	case analyzer.KindNaming:
		return "NAMING ISSUES"
	}
	return "ISSUES"
}

func sectionStyle(kind analyzer.IssueKind) *color.Color {
	switch kind {
	case analyzer.KindMissing:
		return missingStyle
	case analyzer.KindUnused:
		return unusedStyle
	case analyzer.KindDuplicate:
		return dupStyle
	case analyzer.KindNaming:
		return namingStyle
	}
	return titleStyle
}

func severityName(sev analyzer.Severity) *color.Color {
	switch sev {
	case analyzer.SeverityError:
		return errorName
	case analyzer.SeverityWarning:
		return warnName
	}
	return infoName
}

func severityIcon(sev analyzer.Severity) string {
	switch sev {
	case analyzer.SeverityError:
		return "✗"
	case analyzer.SeverityWarning:
		return "⚠"
	}
	return "ℹ"
}

// clip truncates s to max runes, marking the cut with an ellipsis
func clip(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
