package tableload

import (
	"encoding/csv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Splitter breaks one line of text into fields.
type Splitter interface {
	Split(line string) []string
}

// SplitterFunc adapts a function to the Splitter interface.
type SplitterFunc func(line string) []string

// Split calls f(line).
func (f SplitterFunc) Split(line string) []string {
	return f(line)
}

// CommaSplitter splits on every comma. There is no quoting, escaping, or
// trimming; an empty line yields a single empty field.
var CommaSplitter Splitter = SplitterFunc(func(line string) []string {
	return strings.Split(line, ",")
})

// QuotedSplitter splits one line following RFC 4180 quoting rules, so
// "a,b" stays a single field. Fields may not span lines. A line the csv
// reader rejects falls back to CommaSplitter.
var QuotedSplitter Splitter = SplitterFunc(splitQuoted)

func splitQuoted(line string) []string {
	if line == "" {
		return []string{""}
	}

	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false

	record, err := r.Read()
	if err != nil {
		return CommaSplitter.Split(line)
	}
	return record
}

// SplitterByName resolves a configured splitter name: "comma" or "quoted".
func SplitterByName(name string) (Splitter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "comma":
		return CommaSplitter, nil
	case "quoted", "rfc4180":
		return QuotedSplitter, nil
	default:
		return nil, errors.Newf("unknown splitter %q", name)
	}
}
