package sped

import "strings"

// Tokenize splits raw SPED text into records. Each non-blank line is
// split on the field delimiter; the empty leading and trailing fields
// produced by the bracketing delimiters are stripped. Records with
// fewer than 3 fields after stripping are silently dropped as
// malformed, trading completeness for robustness against hand-edited
// government exports. Empty input yields an empty slice, never an
// error.
func Tokenize(text string) []Record {
	if text == "" {
		return nil
	}

	var records []Record
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, FieldDelimiter)
		if len(fields) > 0 && fields[0] == "" {
			fields = fields[1:]
		}
		if len(fields) > 0 && fields[len(fields)-1] == "" {
			fields = fields[:len(fields)-1]
		}

		if len(fields) < 3 {
			continue
		}
		records = append(records, Record(fields))
	}
	return records
}
