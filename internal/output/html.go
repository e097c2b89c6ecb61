package output

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/jenian/envaudit/internal/analyzer"
)

// HTML renders a self-contained report page
type HTML struct {
	opts Options
}

type htmlIssue struct {
	Name       string
	Severity   string
	Locations  string
	Suggestion string
}

type htmlSection struct {
	Title  string
	Count  int
	Issues []htmlIssue
}

type htmlPage struct {
	Summary         analyzer.Summary
	DurationMS      int64
	Sections        []htmlSection
	Diagnostics     []analyzer.Diagnostic
	Clean           bool
	ShowSuggestions bool
}

func (h *HTML) Format(report *analyzer.Report) (string, error) {
	page := htmlPage{
		Summary:         report.Summary,
		DurationMS:      report.DurationMS,
		Diagnostics:     report.Diagnostics,
		Clean:           len(report.Issues) == 0,
		ShowSuggestions: h.opts.ShowSuggestions,
	}

	groups := groupIssues(report.Issues)
	for _, kind := range kindSections {
		issues := groups[kind]
		if len(issues) == 0 {
			continue
		}
		section := htmlSection{Title: markdownTitle(kind), Count: len(issues)}
		for _, issue := range issues {
			locs, more := clippedLocations(issue.Locations)
			cell := strings.Join(locs, ", ")
			if more > 0 {
				cell += fmt.Sprintf(" +%d more", more)
			}
			section.Issues = append(section.Issues, htmlIssue{
				Name:       issue.Name,
				Severity:   issue.Severity.String(),
				Locations:  cell,
				Suggestion: issue.Suggestion,
			})
		}
		page.Sections = append(page.Sections, section)
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>envaudit report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 960px; color: #1f2328; }
h1 { border-bottom: 2px solid #d0d7de; padding-bottom: .5rem; }
.cards { display: flex; gap: 1rem; flex-wrap: wrap; margin: 1.5rem 0; }
.card { flex: 1 1 140px; border: 1px solid #d0d7de; border-radius: 8px; padding: 1rem; text-align: center; }
.card .num { font-size: 1.8rem; font-weight: 700; display: block; }
.card .label { color: #57606a; font-size: .85rem; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
th, td { border: 1px solid #d0d7de; padding: .5rem .75rem; text-align: left; font-size: .9rem; }
th { background: #f6f8fa; }
code { background: #f6f8fa; padding: .1rem .3rem; border-radius: 4px; }
.badge { border-radius: 10px; padding: .15rem .6rem; font-size: .75rem; font-weight: 600; color: #fff; }
.badge.error { background: #cf222e; }
.badge.warning { background: #bf8700; }
.badge.info { background: #0969da; }
.clean { background: #dafbe1; border: 1px solid #aceebb; border-radius: 8px; padding: 1rem; font-weight: 600; }
footer { color: #57606a; font-size: .8rem; margin-top: 2rem; }
</style>
</head>
<body>
<h1>envaudit report</h1>
<div class="cards">
<div class="card"><span class="num">{{.Summary.FilesScanned}}</span><span class="label">files scanned</span></div>
<div class="card"><span class="num">{{.Summary.EnvFilesFound}}</span><span class="label">env files</span></div>
<div class="card"><span class="num">{{.Summary.VarsDefined}}</span><span class="label">vars defined</span></div>
<div class="card"><span class="num">{{.Summary.VarsUsed}}</span><span class="label">vars used</span></div>
<div class="card"><span class="num">{{.Summary.TotalIssues}}</span><span class="label">issues</span></div>
</div>
{{if .Clean}}<p class="clean">✓ No issues found. All environment variables are properly configured.</p>{{end}}
{{range .Sections}}<h2>{{.Title}} ({{.Count}})</h2>
<table>
<tr><th>Variable</th><th>Severity</th><th>Locations</th>{{if $.ShowSuggestions}}<th>Suggestion</th>{{end}}</tr>
{{range .Issues}}<tr><td><code>{{.Name}}</code></td><td><span class="badge {{.Severity}}">{{.Severity}}</span></td><td>{{.Locations}}</td>{{if $.ShowSuggestions}}<td>{{.Suggestion}}</td>{{end}}</tr>
{{end}}</table>
{{end}}{{if .Diagnostics}}<h2>Warnings ({{len .Diagnostics}})</h2>
<ul>
{{range .Diagnostics}}<li><code>{{.Path}}</code>: {{.Message}}</li>
{{end}}</ul>
{{end}}<footer>Generated by envaudit in {{.DurationMS}}ms</footer>
</body>
</html>
`))
