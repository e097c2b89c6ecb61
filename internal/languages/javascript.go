package languages

import "regexp"

// JavaScriptPatterns covers JavaScript and TypeScript sources: Node's
// process.env in bracket, dot and destructuring form, plus Vite's
// import.meta.env. Quoted captures are deliberately loose; the extractor's
// identifier policy rejects anything that is not a valid variable name.
var JavaScriptPatterns = []Pattern{
	{
		Name:  "process.env bracket access",
		Re:    regexp.MustCompile(`process\.env\[['"]([A-Za-z0-9_]+)['"]\]`),
		Group: 1,
	},
	{
		Name:  "process.env property access",
		Re:    regexp.MustCompile(`process\.env\.([A-Za-z_][A-Za-z0-9_]*)`),
		Group: 1,
	},
	{
		Name:  "import.meta.env property access",
		Re:    regexp.MustCompile(`import\.meta\.env\.([A-Za-z_][A-Za-z0-9_]*)`),
		Group: 1,
	},
	{
		Name:  "process.env destructuring",
		Re:    regexp.MustCompile(`(?:const|let|var)\s*\{([^}]*)\}\s*=\s*process\.env\b`),
		Group: 1,
		List:  true,
	},
}
