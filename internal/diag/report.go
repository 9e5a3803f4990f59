package diag

import "encoding/json"

// schemaVersion tags the JSON shape emitted by ErrorReport, so
// downstream tooling can version-detect the wire format.
const schemaVersion = "mach.diagnostic/v1"

// Report is the JSON-serializable form of one Diagnostic.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	File    string         `json:"file"`
	Line    int            `json:"line"`
	Column  int            `json:"column"`
	Data    map[string]any `json:"data,omitempty"`
}

// ErrorReport converts every collected diagnostic into its JSON form,
// computing line/col against src (keyed by file path).
func (s *Sink) ErrorReport(src map[string][]byte) []Report {
	out := make([]Report, 0, len(s.records))
	for _, d := range s.records {
		line, col := d.Tok.Position(src[d.File])
		out = append(out, Report{
			Schema:  schemaVersion,
			Code:    d.Code,
			Phase:   d.Phase,
			Level:   d.Level.String(),
			Message: d.Message,
			File:    d.File,
			Line:    line,
			Column:  col,
			Data:    d.Data,
		})
	}
	return out
}

// ToJSON marshals reports, indented when !compact.
func ToJSON(reports []Report, compact bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(reports)
	} else {
		data, err = json.MarshalIndent(reports, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
