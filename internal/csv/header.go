package csv

import (
	"bytes"
	"fmt"
	"strings"
)

// Header is the ordered set of column names parsed from the first logical
// line. Lookups by name are case-insensitive; when two columns fold to the
// same name, the first occurrence wins. Immutable once built.
type Header struct {
	names []string
	index map[string]int
}

func parseHeader(line []byte, delim, quote byte) (*Header, error) {
	h := &Header{
		index: make(map[string]int),
	}

	var buf bytes.Buffer
	off := 0
	for {
		buf.Reset()
		next, ok, err := ReadField(line, off, delim, quote, &buf)
		if err != nil {
			return nil, fmt.Errorf("csv: header: %w", err)
		}
		if !ok {
			break
		}

		name := buf.String()
		h.names = append(h.names, name)

		key := strings.ToLower(name)
		if _, dup := h.index[key]; !dup {
			h.index[key] = len(h.names) - 1
		}
		off = next
	}

	return h, nil
}

// Len returns the number of columns.
func (h *Header) Len() int {
	return len(h.names)
}

// Columns returns the column names in order, with their original casing.
func (h *Header) Columns() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Index resolves a column name to its zero-based position.
func (h *Header) Index(name string) (int, bool) {
	i, ok := h.index[strings.ToLower(name)]
	return i, ok
}
