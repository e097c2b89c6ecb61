package languages

import "regexp"

// RubyPatterns recognizes ENV reads with a literal key
var RubyPatterns = []Pattern{
	{
		Name:  "ENV.fetch",
		Re:    regexp.MustCompile(`ENV\.fetch\s*\(\s*['"]([A-Za-z0-9_]+)['"]`),
		Group: 1,
	},
	{
		Name:  "ENV bracket access",
		Re:    regexp.MustCompile(`ENV\[['"]([A-Za-z0-9_]+)['"]\]`),
		Group: 1,
	},
}
