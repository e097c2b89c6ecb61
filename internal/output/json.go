package output

import (
	"encoding/json"

	"github.com/jenian/envaudit/internal/analyzer"
)

// JSON renders the report as indented JSON for machine consumption
type JSON struct{}

func (j *JSON) Format(report *analyzer.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
