package csv

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	defaultMaxLineLength = 1 << 20 // 1 MiB per logical line
	defaultMaxReadBytes  = 1 << 30 // 1 GiB per stream
)

type options struct {
	delimiter     byte
	quote         byte
	maxLineLength int
	maxReadBytes  int64
	expectHeader  bool
	useCRLF       bool
	logger        *zap.Logger
}

type Option func(*options)

// WithDelimiter sets the field delimiter. Default is ','.
func WithDelimiter(d byte) Option {
	return func(o *options) {
		o.delimiter = d
	}
}

// WithQuote sets the quote character. Default is '"'.
func WithQuote(q byte) Option {
	return func(o *options) {
		o.quote = q
	}
}

// WithMaxLineLength caps the length of a single logical line, embedded
// line breaks included.
func WithMaxLineLength(n int) Option {
	return func(o *options) {
		o.maxLineLength = n
	}
}

// WithMaxReadBytes caps the total number of bytes consumed from the
// underlying stream.
func WithMaxReadBytes(n int64) Option {
	return func(o *options) {
		o.maxReadBytes = n
	}
}

// WithExpectHeader numbers logical lines starting at 1 instead of 0, so
// line numbers line up with files whose first line is a header.
func WithExpectHeader(expect bool) Option {
	return func(o *options) {
		o.expectHeader = expect
	}
}

// WithCRLF makes the writer terminate records with \r\n.
func WithCRLF(useCRLF bool) Option {
	return func(o *options) {
		o.useCRLF = useCRLF
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts ...Option) options {
	o := options{
		delimiter:     ',',
		quote:         '"',
		maxLineLength: defaultMaxLineLength,
		maxReadBytes:  defaultMaxReadBytes,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) validate() error {
	if o.delimiter == o.quote {
		return fmt.Errorf("%w: delimiter and quote are both %q", ErrConfiguration, o.delimiter)
	}
	for _, c := range []byte{o.delimiter, o.quote} {
		switch c {
		case 0, '\r', '\n':
			return fmt.Errorf("%w: %q cannot be used as a delimiter or quote", ErrConfiguration, c)
		}
	}
	if o.maxLineLength < 1 {
		return fmt.Errorf("%w: max line length must be positive, got %d", ErrConfiguration, o.maxLineLength)
	}
	if o.maxReadBytes < 1 {
		return fmt.Errorf("%w: max read bytes must be positive, got %d", ErrConfiguration, o.maxReadBytes)
	}
	return nil
}
