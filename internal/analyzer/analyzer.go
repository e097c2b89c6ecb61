package analyzer

import (
	"fmt"
	"regexp"
	"sort"
)

// Options control which checks run and how the final issue list is filtered.
type Options struct {
	// Checks selects the issue kinds to produce; empty means all of them.
	Checks map[IssueKind]bool
	// MinSeverity drops issues below the threshold from the report. The
	// per-severity totals in the summary are counted before filtering.
	MinSeverity Severity
	// Ignores removes matching variable names from every check.
	Ignores []*regexp.Regexp
}

func (o Options) enabled(kind IssueKind) bool {
	if len(o.Checks) == 0 {
		return true
	}
	return o.Checks[kind]
}

func (o Options) ignored(name string) bool {
	for _, re := range o.Ignores {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Analyze reconciles definitions against usages and applies naming rules.
// It is a pure function of its arguments; no state survives an invocation.
func Analyze(defs []DefinitionSite, usages []UsageSite, ruleset []Rule, opts Options) *Report {
	// Index both sides by name, keeping first-seen order for determinism
	defsByName := make(map[string][]DefinitionSite)
	var defNames []string
	for _, d := range defs {
		if _, seen := defsByName[d.Name]; !seen {
			defNames = append(defNames, d.Name)
		}
		defsByName[d.Name] = append(defsByName[d.Name], d)
	}

	usagesByName := make(map[string][]UsageSite)
	var useNames []string
	for _, u := range usages {
		if _, seen := usagesByName[u.Name]; !seen {
			useNames = append(useNames, u.Name)
		}
		usagesByName[u.Name] = append(usagesByName[u.Name], u)
	}

	issues := []Issue{}

	// Missing: used in code but defined nowhere
	if opts.enabled(KindMissing) {
		for _, name := range useNames {
			if opts.ignored(name) {
				continue
			}
			if _, defined := defsByName[name]; defined {
				continue
			}
			sites := usagesByName[name]
			message := fmt.Sprintf("'%s' is used in code but not defined in any .env file", name)
			if len(sites) > 1 {
				message = fmt.Sprintf("'%s' is used in %d locations but not defined in any .env file", name, len(sites))
			}
			issues = append(issues, Issue{
				Kind:       KindMissing,
				Severity:   SeverityError,
				Name:       name,
				Locations:  usageLocations(sites),
				Message:    message,
				Suggestion: fmt.Sprintf("Add %s to your .env file", name),
			})
		}
	}

	// Unused: defined but never read from code
	if opts.enabled(KindUnused) {
		for _, name := range defNames {
			if opts.ignored(name) {
				continue
			}
			if _, used := usagesByName[name]; used {
				continue
			}
			issues = append(issues, Issue{
				Kind:       KindUnused,
				Severity:   SeverityWarning,
				Name:       name,
				Locations:  defLocations(defsByName[name]),
				Message:    fmt.Sprintf("'%s' is defined but never used in code", name),
				Suggestion: fmt.Sprintf("Remove %s from your .env file if it's no longer needed", name),
			})
		}
	}

	// Duplicate: the same name defined more than once within one file.
	// Redefinition across files is layering and stays silent.
	if opts.enabled(KindDuplicate) {
		for _, name := range defNames {
			if opts.ignored(name) {
				continue
			}
			byFile := make(map[string][]DefinitionSite)
			var files []string
			for _, d := range defsByName[name] {
				if _, seen := byFile[d.Location.Path]; !seen {
					files = append(files, d.Location.Path)
				}
				byFile[d.Location.Path] = append(byFile[d.Location.Path], d)
			}
			for _, file := range files {
				sites := byFile[file]
				if len(sites) < 2 {
					continue
				}
				issues = append(issues, Issue{
					Kind:       KindDuplicate,
					Severity:   SeverityInfo,
					Name:       name,
					Locations:  defLocations(sites),
					Message:    fmt.Sprintf("'%s' is defined %d times in %s", name, len(sites), file),
					Suggestion: fmt.Sprintf("Remove the earlier definitions of %s", name),
				})
			}
		}
	}

	// Naming: first matching rule wins, one issue per name at most
	if opts.enabled(KindNaming) {
		for _, name := range defNames {
			if opts.ignored(name) {
				continue
			}
			for _, rule := range ruleset {
				if !rule.Matches(name) {
					continue
				}
				_, conflict := defsByName[rule.Preferred]
				message := fmt.Sprintf("'%s' has a preferred alternative '%s'", name, rule.Preferred)
				if conflict {
					message = fmt.Sprintf("Both '%s' and its preferred form '%s' are defined", name, rule.Preferred)
				}
				suggestion := fmt.Sprintf("Consider using '%s' instead of '%s'", rule.Preferred, name)
				if rule.Description != "" {
					suggestion += fmt.Sprintf(" (%s)", rule.Description)
				}
				issues = append(issues, Issue{
					Kind:       KindNaming,
					Severity:   rule.Severity,
					Name:       name,
					Locations:  defLocations(defsByName[name]),
					Message:    message,
					Suggestion: suggestion,
					Conflict:   conflict,
				})
				break
			}
		}
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Kind != issues[j].Kind {
			return issues[i].Kind < issues[j].Kind
		}
		if issues[i].Name != issues[j].Name {
			return issues[i].Name < issues[j].Name
		}
		pi, pj := firstLocation(issues[i]), firstLocation(issues[j])
		if pi.Path != pj.Path {
			return pi.Path < pj.Path
		}
		return pi.Line < pj.Line
	})

	summary := Summary{
		VarsDefined: len(defNames),
		VarsUsed:    len(useNames),
		TotalIssues: len(issues),
	}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		default:
			summary.Infos++
		}
	}

	filtered := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity >= opts.MinSeverity {
			filtered = append(filtered, issue)
		}
	}

	return &Report{
		Summary:     summary,
		Issues:      filtered,
		Definitions: defs,
		Usages:      usages,
	}
}

func usageLocations(sites []UsageSite) []Location {
	locs := make([]Location, len(sites))
	for i, s := range sites {
		locs[i] = s.Location
	}
	return locs
}

func defLocations(sites []DefinitionSite) []Location {
	locs := make([]Location, len(sites))
	for i, s := range sites {
		locs[i] = s.Location
	}
	return locs
}

func firstLocation(issue Issue) Location {
	if len(issue.Locations) == 0 {
		return Location{}
	}
	return issue.Locations[0]
}
