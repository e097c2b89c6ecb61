package languages

import "regexp"

// GoPatterns recognizes the os package accessors with a literal key.
// Setenv counts as a usage: a variable written by the program is still part
// of its environment contract.
var GoPatterns = []Pattern{
	{
		Name:  "os.Getenv",
		Re:    regexp.MustCompile(`os\.Getenv\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
	{
		Name:  "os.LookupEnv",
		Re:    regexp.MustCompile(`os\.LookupEnv\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
	{
		Name:  "os.Setenv",
		Re:    regexp.MustCompile(`os\.Setenv\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
}
