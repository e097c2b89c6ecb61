package extractor

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jenian/envaudit/internal/analyzer"
	"github.com/jenian/envaudit/internal/languages"
	"github.com/jenian/envaudit/internal/scanner"
)

// identRe is the identifier policy: captured names that fail it are dropped.
// Quoted-context patterns capture a looser charset on purpose, so a leading
// digit is rejected here rather than silently never matching.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// candidate is one raw pattern match before deduplication. start and end
// bound the whole match; nameStart is where the captured name begins.
type candidate struct {
	name      string
	start     int
	end       int
	nameStart int
	rank      int
}

// ExtractFile reads path and extracts usages for the given language.
// Unreadable and binary content come back as errors for the caller to record
// as diagnostics; they never abort a scan.
func ExtractFile(path string, lang scanner.Language, ignores []*regexp.Regexp) ([]analyzer.UsageSite, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if bytes.IndexByte(content, 0) >= 0 || !utf8.Valid(content) {
		return nil, fmt.Errorf("skipping %s: binary or non-UTF-8 content", path)
	}
	return Extract(content, path, lang, ignores), nil
}

// Extract applies the language's pattern table to content and returns the
// deduplicated usage sites, in order of appearance.
//
// Candidates from every pattern are collected with their spans, sorted by
// span start (registration rank breaks ties), then swept once: a candidate
// whose span intersects the previously accepted span is dropped. Finally the
// identifier policy and the configured ignore patterns filter the survivors.
func Extract(content []byte, path string, lang scanner.Language, ignores []*regexp.Regexp) []analyzer.UsageSite {
	patterns := languages.PatternsFor(lang)
	if len(patterns) == 0 {
		return nil
	}
	text := string(content)

	var cands []candidate
	for rank, p := range patterns {
		for _, m := range p.Re.FindAllStringSubmatchIndex(text, -1) {
			gs, ge := m[2*p.Group], m[2*p.Group+1]
			if gs < 0 {
				continue
			}
			if p.List {
				cands = append(cands, splitList(text, gs, ge, rank)...)
				continue
			}
			cands = append(cands, candidate{
				name:      text[gs:ge],
				start:     m[0],
				end:       m[1],
				nameStart: gs,
				rank:      rank,
			})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		if cands[i].rank != cands[j].rank {
			return cands[i].rank < cands[j].rank
		}
		return cands[i].end > cands[j].end
	})

	lines := lineOffsets(text)
	var usages []analyzer.UsageSite
	lastEnd := -1
	for _, c := range cands {
		if c.start < lastEnd {
			continue
		}
		lastEnd = c.end

		if !identRe.MatchString(c.name) {
			continue
		}
		if matchesAny(ignores, c.name) {
			continue
		}

		line, col := position(lines, c.nameStart)
		usages = append(usages, analyzer.UsageSite{
			Name:     c.name,
			Location: analyzer.Location{Path: path, Line: line, Column: col},
			Language: lang,
		})
	}
	return usages
}

// splitList expands a destructuring capture into one candidate per property
// name. Aliases and defaults (NAME: alias, NAME = value) keep only the
// property; spread elements fail the identifier policy downstream.
func splitList(text string, start, end, rank int) []candidate {
	var out []candidate
	segStart := start
	for i := start; i <= end; i++ {
		if i != end && text[i] != ',' {
			continue
		}
		seg := text[segStart:i]
		if cut := strings.IndexAny(seg, ":="); cut >= 0 {
			seg = seg[:cut]
		}
		lead := len(seg) - len(strings.TrimLeft(seg, " \t\r\n"))
		name := strings.TrimSpace(seg)
		if name != "" {
			ns := segStart + lead
			out = append(out, candidate{
				name:      name,
				start:     ns,
				end:       ns + len(name),
				nameStart: ns,
				rank:      rank,
			})
		}
		segStart = i + 1
	}
	return out
}

// lineOffsets returns the byte offset of every line start
func lineOffsets(text string) []int {
	offs := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

// position converts a byte offset to a 1-based line and column
func position(offs []int, off int) (line, col int) {
	i := sort.SearchInts(offs, off+1) - 1
	return i + 1, off - offs[i] + 1
}

func matchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, re := range patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
