package output

import (
	"encoding/json"
)

// JSONFormatter formats an analysis report as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for the report
func (jf *JSONFormatter) Format(report *AnalysisReport) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
