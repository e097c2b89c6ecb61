package languages

import "regexp"

// RustPatterns recognizes std::env access and the compile-time env macros.
// option_env! precedes env! because its match contains an env! match; the
// overlap sweep then keeps the macro that actually appears in the source.
var RustPatterns = []Pattern{
	{
		Name:  "env::var_os",
		Re:    regexp.MustCompile(`(?:std::)?env::var_os\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
	{
		Name:  "env::var",
		Re:    regexp.MustCompile(`(?:std::)?env::var\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
	{
		Name:  "option_env! macro",
		Re:    regexp.MustCompile(`option_env!\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
	{
		Name:  "env! macro",
		Re:    regexp.MustCompile(`env!\s*\(\s*"([A-Za-z0-9_]+)"`),
		Group: 1,
	},
}
