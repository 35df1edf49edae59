package csv

import (
	"bytes"
	"fmt"
)

// ReadField decodes exactly one field out of a logical line starting at
// off and appends the decoded value to dst (dst is not reset here; that
// is the caller's responsibility). It returns the offset just past the
// field and its trailing delimiter.
//
// The returned offset is len(line)+1 when the field ended at the end of
// the line without a trailing delimiter. ok distinguishes "nothing left
// to read" (off past the end) from a trailing empty field after a final
// delimiter, which is a real, empty field.
func ReadField(line []byte, off int, delim, quote byte, dst *bytes.Buffer) (next int, ok bool, err error) {
	if off < 0 {
		return off, false, fmt.Errorf("%w: %d", errNegativeOffset, off)
	}
	if off > len(line) {
		return off, false, nil
	}

	if off < len(line) && line[off] == quote {
		return readQuoted(line, off, delim, quote, dst)
	}

	i := off
	for i < len(line) {
		b := line[i]
		if b == delim {
			return i + 1, true, nil
		}
		i++
		if b == 0 {
			continue
		}
		dst.WriteByte(b)
	}
	return len(line) + 1, true, nil
}

func readQuoted(line []byte, off int, delim, quote byte, dst *bytes.Buffer) (int, bool, error) {
	i := off + 1 // past the opening quote
	closed := false

	for i < len(line) {
		b := line[i]
		if b == quote {
			// Fold a run of N quotes into N/2 literal quotes; an odd
			// run means the last one closes the field.
			run := 0
			for i+run < len(line) && line[i+run] == quote {
				run++
			}
			for k := 0; k < run/2; k++ {
				dst.WriteByte(quote)
			}
			i += (run / 2) * 2
			if run%2 == 1 {
				i++
				closed = true
				break
			}
			continue
		}
		i++
		if b == 0 {
			continue
		}
		dst.WriteByte(b)
	}

	if !closed {
		return off, false, ErrMalformedQuoting
	}

	// Characters between the closing quote and the next delimiter carry
	// no meaning and are skipped.
	for i < len(line) && line[i] != delim {
		i++
	}
	if i < len(line) {
		return i + 1, true, nil
	}
	return len(line) + 1, true, nil
}
