package languages

import "regexp"

// PythonPatterns recognizes os.environ and os.getenv access with a literal
// key. The bare forms cover `from os import environ, getenv`; they are
// registered after the os-prefixed forms, whose matches contain theirs, so
// the overlap sweep keeps exactly one usage per access.
var PythonPatterns = []Pattern{
	{
		Name:  "os.environ.get",
		Re:    regexp.MustCompile(`os\.environ\.get\s*\(\s*['"]([A-Za-z0-9_]+)['"]`),
		Group: 1,
	},
	{
		Name:  "os.environ subscript",
		Re:    regexp.MustCompile(`os\.environ\[['"]([A-Za-z0-9_]+)['"]\]`),
		Group: 1,
	},
	{
		Name:  "os.getenv",
		Re:    regexp.MustCompile(`os\.getenv\s*\(\s*['"]([A-Za-z0-9_]+)['"]`),
		Group: 1,
	},
	{
		Name:  "bare environ.get",
		Re:    regexp.MustCompile(`\benviron\.get\s*\(\s*['"]([A-Za-z0-9_]+)['"]`),
		Group: 1,
	},
	{
		Name:  "bare environ subscript",
		Re:    regexp.MustCompile(`\benviron\[['"]([A-Za-z0-9_]+)['"]\]`),
		Group: 1,
	},
	{
		Name:  "bare getenv",
		Re:    regexp.MustCompile(`\bgetenv\s*\(\s*['"]([A-Za-z0-9_]+)['"]`),
		Group: 1,
	},
}
