package languages

import "regexp"

// PHPPatterns recognizes getenv, the superglobals and Laravel's env helper
// with a literal key. The bare env form carries a word boundary so it does
// not fire inside getenv calls.
var PHPPatterns = []Pattern{
	{
		Name:  "getenv",
		Re:    regexp.MustCompile(`\bgetenv\s*\(\s*['"]([A-Za-z0-9_]+)['"]`),
		Group: 1,
	},
	{
		Name:  "$_ENV access",
		Re:    regexp.MustCompile(`\$_ENV\[['"]([A-Za-z0-9_]+)['"]\]`),
		Group: 1,
	},
	{
		Name:  "$_SERVER access",
		Re:    regexp.MustCompile(`\$_SERVER\[['"]([A-Za-z0-9_]+)['"]\]`),
		Group: 1,
	},
	{
		Name:  "env helper",
		Re:    regexp.MustCompile(`\benv\s*\(\s*['"]([A-Za-z0-9_]+)['"]`),
		Group: 1,
	},
}
