package csv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

type splitterState int

const (
	// Start of a value: the beginning of a line or the position right
	// after an unquoted delimiter. Only here may a quote open a value.
	stateValueStart = splitterState(iota)

	// Inside a plain, unquoted value.
	stateUnquoted

	// Inside a quoted value, closing quote not seen yet.
	stateQuoted

	// Inside a quoted value and the previous character was a quote. The
	// next character decides whether it was an escape sequence ("" for a
	// literal quote) or the closing quote.
	stateQuotedPendingClose
)

// Splitter consumes a chunked byte stream and produces logical lines, one
// per Next call. A logical line is terminated by a line feed outside of
// quotes, so a quoted value may span raw line breaks and any number of
// underlying reads. The line buffer is reused: callers must consume Line
// before calling Next again.
type Splitter struct {
	reader *bufio.Reader
	opts   options

	buf   bytes.Buffer
	state splitterState
	line  int
	read  int64

	rejectEmpty bool
	done        bool
}

// NewSplitter validates opts and returns a Splitter reading from r.
func NewSplitter(r io.Reader, opts ...Option) (*Splitter, error) {
	o := newOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, err
	}
	s := &Splitter{
		reader: bufio.NewReader(r),
		opts:   o,
		state:  stateValueStart,
	}
	if !o.expectHeader {
		// Lines are numbered from 1 when the first line is a header,
		// from 0 otherwise.
		s.line = -1
	}
	return s, nil
}

// Line returns the raw text of the current logical line. Delimiters and
// quotes are still uninterpreted; the backing buffer is only valid until
// the next call to Next.
func (s *Splitter) Line() []byte {
	return s.buf.Bytes()
}

// LineNumber returns the identifier of the current logical line.
func (s *Splitter) LineNumber() int {
	return s.line
}

// BytesRead returns the total number of bytes consumed from the stream.
func (s *Splitter) BytesRead() int64 {
	return s.read
}

// Next advances to the next logical line, reading as much of the stream
// as needed. It returns io.EOF once the stream is exhausted.
func (s *Splitter) Next() error {
	if s.done {
		return io.EOF
	}

	s.buf.Reset()
	s.state = stateValueStart

	for {
		b, err := s.reader.ReadByte()
		if err == io.EOF {
			s.done = true
			return s.flush()
		}
		if err != nil {
			return fmt.Errorf("csv: read: %w", err)
		}

		s.read++
		if s.read > s.opts.maxReadBytes {
			return fmt.Errorf("%w: stream exceeds %d bytes", ErrLimitExceeded, s.opts.maxReadBytes)
		}

		// NUL bytes are dropped unconditionally.
		if b == 0 {
			continue
		}

		emit, err := s.step(b)
		if err != nil {
			return err
		}
		if emit {
			return s.emit()
		}
	}
}

// step feeds one byte through the state machine. It reports whether the
// byte terminated the current logical line.
func (s *Splitter) step(b byte) (bool, error) {
	switch b {
	case s.opts.quote:
		switch s.state {
		case stateValueStart:
			s.state = stateQuoted
		case stateQuoted:
			s.state = stateQuotedPendingClose
		case stateQuotedPendingClose:
			// Second quote of an escape sequence.
			s.state = stateQuoted
		}
		return false, s.append(b)

	case s.opts.delimiter:
		if s.state == stateQuoted {
			// Delimiter inside a quoted value is content.
			return false, s.append(b)
		}
		s.state = stateValueStart
		return false, s.append(b)

	case '\n':
		if s.state == stateQuoted {
			return false, s.append(b)
		}
		return true, nil

	case '\r':
		if s.state == stateQuoted {
			return false, s.append(b)
		}
		// A bare CR outside of quotes is absorbed without ending the
		// line, so CRLF terminators leave no trace in the line buffer.
		if s.state == stateQuotedPendingClose {
			s.state = stateUnquoted
		}
		return false, nil

	default:
		if s.state != stateQuoted {
			// A resolved closing quote followed by plain characters
			// continues the value unquoted.
			s.state = stateUnquoted
		}
		return false, s.append(b)
	}
}

func (s *Splitter) append(b byte) error {
	s.buf.WriteByte(b)
	if s.buf.Len() > s.opts.maxLineLength {
		return fmt.Errorf("%w: line %d exceeds %d bytes", ErrLimitExceeded, s.line+1, s.opts.maxLineLength)
	}
	return nil
}

// flush handles end of stream: an open quote is fatal, pending content
// becomes one final logical line, pure emptiness emits nothing.
func (s *Splitter) flush() error {
	if s.state == stateQuoted {
		return fmt.Errorf("line %d: %w", s.line+1, ErrMalformedQuoting)
	}
	if s.buf.Len() == 0 {
		return io.EOF
	}
	return s.emit()
}

func (s *Splitter) emit() error {
	s.line++
	if s.rejectEmpty && s.buf.Len() == 0 {
		return fmt.Errorf("line %d: %w: empty line", s.line, ErrRowShape)
	}
	return nil
}

// requireNonEmpty makes the splitter reject empty logical lines. The
// decoder enables it once a header has been established.
func (s *Splitter) requireNonEmpty() {
	s.rejectEmpty = true
}
