package rules

import "github.com/jenian/envaudit/internal/analyzer"

// builtins is the naming convention table shipped with the tool. Order
// matters: the analyzer applies the first rule that matches a name.
var builtins = []analyzer.Rule{
	{
		Name:         "database-url",
		Description:  "standard name for database connection strings",
		Alternatives: []string{"DB_URL", "DB_CONNECTION", "DB_HOST"},
		Preferred:    "DATABASE_URL",
		Severity:     analyzer.SeverityWarning,
	},
	{
		Name:         "redis-url",
		Description:  "standard name for Redis connection strings",
		Alternatives: []string{"REDIS_HOST", "REDIS_CONNECTION"},
		Preferred:    "REDIS_URL",
		Severity:     analyzer.SeverityWarning,
	},
	{
		Name:         "api-key",
		Description:  "conventional name for API keys",
		Alternatives: []string{"APIKEY", "API_SECRET"},
		Preferred:    "API_KEY",
		Severity:     analyzer.SeverityInfo,
	},
	{
		Name:         "secret-key",
		Description:  "conventional name for application secrets",
		Alternatives: []string{"SECRET", "APP_SECRET"},
		Preferred:    "SECRET_KEY",
		Severity:     analyzer.SeverityInfo,
	},
	{
		Name:         "port",
		Description:  "conventional name for the listen port",
		Alternatives: []string{"APP_PORT", "SERVER_PORT", "HTTP_PORT"},
		Preferred:    "PORT",
		Severity:     analyzer.SeverityInfo,
	},
	{
		Name:         "log-level",
		Description:  "conventional name for log verbosity",
		Alternatives: []string{"LOGLEVEL", "LOGGING_LEVEL"},
		Preferred:    "LOG_LEVEL",
		Severity:     analyzer.SeverityInfo,
	},
	{
		Name:         "aws-region",
		Description:  "standard AWS SDK region variable",
		Alternatives: []string{"REGION", "AMAZON_REGION"},
		Preferred:    "AWS_REGION",
		Severity:     analyzer.SeverityInfo,
	},
	{
		Name:         "jwt-secret",
		Description:  "conventional name for JWT signing secrets",
		Alternatives: []string{"JWT_KEY", "TOKEN_SECRET"},
		Preferred:    "JWT_SECRET",
		Severity:     analyzer.SeverityInfo,
	},
}

// Builtins returns a copy of the builtin rule table
func Builtins() []analyzer.Rule {
	out := make([]analyzer.Rule, len(builtins))
	copy(out, builtins)
	return out
}

// Merge combines the builtin table with custom rules. Builtins keep their
// table order and come first; custom rules follow in configuration order, so
// a custom rule never displaces a builtin matching the same name.
func Merge(custom []analyzer.Rule, includeBuiltins bool) []analyzer.Rule {
	var merged []analyzer.Rule
	if includeBuiltins {
		merged = Builtins()
	}
	return append(merged, custom...)
}
