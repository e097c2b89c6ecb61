package languages

import "regexp"

// JavaPatterns recognizes System.getenv and System.getProperty with a
// literal key. Property names with dots (java.version and friends) fall
// outside the quoted capture and are not reported.
var JavaPatterns = []Pattern{
	{
		Name:  "System.getenv",
		Re:    regexp.MustCompile(`System\.getenv\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
	{
		Name:  "System.getProperty",
		Re:    regexp.MustCompile(`System\.getProperty\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
}
