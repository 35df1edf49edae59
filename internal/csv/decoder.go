package csv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Decoder reads delimited, quoted text records from a chunked stream and
// decodes them into typed field sequences. It is pull-based and
// single-threaded: each ReadRow consumes just enough of the stream to
// complete one logical line. All buffers (the line buffer and one field
// buffer per column) are allocated once and reused, so decoding a row
// performs no per-character allocation.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	opts     options
	splitter *Splitter
	header   *Header
	fields   []bytes.Buffer
	logger   *zap.Logger
}

// NewDecoder validates opts and returns a Decoder reading from r. The
// header must be parsed with ReadHeader before any row or field access.
func NewDecoder(r io.Reader, opts ...Option) (*Decoder, error) {
	o := newOptions(append([]Option{WithExpectHeader(true)}, opts...)...)
	if err := o.validate(); err != nil {
		return nil, err
	}

	splitter := &Splitter{
		reader: bufio.NewReader(r),
		opts:   o,
		state:  stateValueStart,
	}

	return &Decoder{
		opts:     o,
		splitter: splitter,
		logger:   o.logger,
	}, nil
}

// ReadHeader consumes the first logical line and builds the header table.
// It must be called exactly once, before ReadRow.
func (d *Decoder) ReadHeader() (*Header, error) {
	if d.header != nil {
		return nil, fmt.Errorf("%w: header already parsed", ErrConfiguration)
	}

	if err := d.splitter.Next(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: stream holds no header line", ErrPrematureAccess)
		}
		return nil, err
	}

	h, err := parseHeader(d.splitter.Line(), d.opts.delimiter, d.opts.quote)
	if err != nil {
		return nil, err
	}

	d.header = h
	d.fields = make([]bytes.Buffer, h.Len())
	d.splitter.requireNonEmpty()

	d.logger.Debug("header parsed",
		zap.Int("columns", h.Len()),
		zap.Strings("names", h.Columns()),
	)

	return h, nil
}

// Header returns the header table, or nil before ReadHeader.
func (d *Decoder) Header() *Header {
	return d.header
}

// ReadRow decodes the next data line into the decoder's field buffers.
// The decoded values are views valid until the next ReadRow call. It
// returns io.EOF when the stream is exhausted.
func (d *Decoder) ReadRow() error {
	if d.header == nil {
		return ErrPrematureAccess
	}

	if err := d.splitter.Next(); err != nil {
		return err
	}

	// Clear every column first so a failed partial decode never leaks a
	// previous row's values.
	for i := range d.fields {
		d.fields[i].Reset()
	}

	line := d.splitter.Line()
	lineNum := d.splitter.LineNumber()
	off := 0

	for i := range d.fields {
		next, ok, err := ReadField(line, off, d.opts.delimiter, d.opts.quote, &d.fields[i])
		if err != nil {
			return fmt.Errorf("line %d, column %d: %w", lineNum, i, err)
		}
		if !ok {
			return fmt.Errorf("line %d: %w: too few values, got %d, want %d",
				lineNum, ErrRowShape, i, len(d.fields))
		}
		off = next
	}

	// A fully consumed line leaves the cursor exactly one past its end.
	if off != len(line)+1 {
		return fmt.Errorf("line %d: %w: too many values, want %d",
			lineNum, ErrRowShape, len(d.fields))
	}

	return nil
}

// Field returns the decoded value of column i for the current row.
func (d *Decoder) Field(i int) (string, error) {
	if d.header == nil {
		return "", ErrPrematureAccess
	}
	if i < 0 || i >= len(d.fields) {
		return "", fmt.Errorf("%w: column %d out of range [0, %d)", ErrConfiguration, i, len(d.fields))
	}
	return d.fields[i].String(), nil
}

// FieldByName returns the decoded value of the named column for the
// current row. Name resolution is case-insensitive.
func (d *Decoder) FieldByName(name string) (string, error) {
	if d.header == nil {
		return "", ErrPrematureAccess
	}
	i, ok := d.header.Index(name)
	if !ok {
		return "", fmt.Errorf("%w: unknown column %q", ErrConfiguration, name)
	}
	return d.fields[i].String(), nil
}

// Row copies the current row's values into a fresh slice.
func (d *Decoder) Row() ([]string, error) {
	if d.header == nil {
		return nil, ErrPrematureAccess
	}
	row := make([]string, len(d.fields))
	for i := range d.fields {
		row[i] = d.fields[i].String()
	}
	return row, nil
}

// LineNumber returns the identifier of the most recently decoded line.
// The header is line 1, the first data row line 2.
func (d *Decoder) LineNumber() int {
	return d.splitter.LineNumber()
}

// BytesRead returns the total number of bytes consumed from the stream.
func (d *Decoder) BytesRead() int64 {
	return d.splitter.BytesRead()
}
