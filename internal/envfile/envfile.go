package envfile

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/jenian/envaudit/internal/analyzer"
)

// ParseFile reads a single definition file and returns its definitions in
// file order. Files with a .yml or .yaml extension are treated as
// docker-compose documents, everything else as dotenv.
func ParseFile(path string) ([]analyzer.DefinitionSite, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsYAML(path) {
		return parseCompose(content, path)
	}
	return Parse(content, path), nil
}

// IsYAML reports whether path should be parsed as a YAML document.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// Parse parses dotenv content. Each well-formed KEY=VALUE line yields one
// definition carrying its one-based line number; malformed lines are
// skipped.
func Parse(content []byte, path string) []analyzer.DefinitionSite {
	var defs []analyzer.DefinitionSite

	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Allow the shell export prefix
		if strings.HasPrefix(line, "export ") || strings.HasPrefix(line, "export\t") {
			line = strings.TrimSpace(line[len("export"):])
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		if !validKey(key) {
			continue
		}
		value := trimQuotes(strings.TrimSpace(parts[1]))

		defs = append(defs, analyzer.DefinitionSite{
			Name:     key,
			Value:    value,
			Location: analyzer.Location{Path: path, Line: lineNum},
		})
	}

	return defs
}

// validKey reports whether key is a well-formed variable name. Definition
// files accept names starting with a digit.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}

// trimQuotes removes one pair of matching surrounding quotes
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
