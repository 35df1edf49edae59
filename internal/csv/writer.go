package csv

import (
	"bufio"
	"io"
)

// Writer re-encodes field sequences as delimited text. A field is wrapped
// in quotes, with every internal quote doubled, whenever it contains the
// delimiter, the quote character, CR, LF or NUL. Empty fields are written
// as nothing.
type Writer struct {
	dst  *bufio.Writer
	opts options
	err  error
}

// NewWriter validates opts and returns a Writer emitting to w.
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	o := newOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Writer{
		dst:  bufio.NewWriter(w),
		opts: o,
	}, nil
}

// Write emits one record terminated by the configured line terminator.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}

	for i, field := range record {
		if i > 0 {
			if err := w.dst.WriteByte(w.opts.delimiter); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(field); err != nil {
			w.err = err
			return err
		}
	}

	var err error
	if w.opts.useCRLF {
		_, err = w.dst.WriteString("\r\n")
	} else {
		err = w.dst.WriteByte('\n')
	}
	if err != nil {
		w.err = err
	}
	return err
}

// WriteAll writes every record, stopping at the first error, and flushes.
func (w *Writer) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) writeField(field string) error {
	if !w.fieldNeedsQuote(field) {
		_, err := w.dst.WriteString(field)
		return err
	}

	if err := w.dst.WriteByte(w.opts.quote); err != nil {
		return err
	}
	for i := 0; i < len(field); i++ {
		if field[i] == w.opts.quote {
			if err := w.dst.WriteByte(w.opts.quote); err != nil {
				return err
			}
		}
		if err := w.dst.WriteByte(field[i]); err != nil {
			return err
		}
	}
	return w.dst.WriteByte(w.opts.quote)
}

func (w *Writer) fieldNeedsQuote(field string) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case w.opts.delimiter, w.opts.quote, '\r', '\n', 0:
			return true
		}
	}
	return false
}
