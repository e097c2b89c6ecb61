package languages

import "regexp"

// CSharpPatterns recognizes Environment.GetEnvironmentVariable and legacy
// ConfigurationManager app settings with a literal key
var CSharpPatterns = []Pattern{
	{
		Name:  "Environment.GetEnvironmentVariable",
		Re:    regexp.MustCompile(`Environment\.GetEnvironmentVariable\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
	{
		Name:  "ConfigurationManager.AppSettings",
		Re:    regexp.MustCompile(`ConfigurationManager\.AppSettings\[['"]([A-Za-z0-9_]+)['"]\]`),
		Group: 1,
	},
}
