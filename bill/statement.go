package bill

import (
	"errors"
	"strings"
)

// Statement is a downloaded reconciliation report.
//
// The remote format is not XML: a header row of column names, data rows
// with every value prefixed by a backtick, then a summary header row and
// one summary row in the same style.
type Statement struct {
	Columns        []string
	Records        [][]string
	SummaryColumns []string
	Summary        []string
}

// Rows pairs each record with the column names.
func (s *Statement) Rows() []map[string]string {
	rows := make([]map[string]string, 0, len(s.Records))
	for _, rec := range s.Records {
		row := make(map[string]string, len(s.Columns))
		for i, col := range s.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Parse recovers a Statement from the raw tabular body. It is the
// fallback used when the download response fails XML parsing, which is
// the success path for this operation.
func Parse(raw []byte) (*Statement, error) {
	lines := splitLines(string(raw))
	if len(lines) < 2 {
		return nil, errors.New("bill: body is not a tabular statement")
	}

	st := &Statement{Columns: splitRow(lines[0])}
	if len(st.Columns) < 2 {
		return nil, errors.New("bill: header row has no columns")
	}

	i := 1
	for ; i < len(lines) && strings.HasPrefix(lines[i], "`"); i++ {
		st.Records = append(st.Records, splitRow(lines[i]))
	}
	if i < len(lines) {
		st.SummaryColumns = splitRow(lines[i])
		i++
	}
	if i < len(lines) && strings.HasPrefix(lines[i], "`") {
		st.Summary = splitRow(lines[i])
	}
	return st, nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// splitRow splits a comma-separated row, stripping the backtick the
// format prepends to every data value.
func splitRow(line string) []string {
	parts := strings.Split(line, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimPrefix(strings.TrimSpace(p), "`")
	}
	return out
}
