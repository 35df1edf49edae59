package csv

import "errors"

var (
	// ErrConfiguration is returned when a decoder or writer is constructed
	// with invalid options, e.g. equal delimiter and quote characters.
	ErrConfiguration = errors.New("csv: invalid configuration")

	// ErrPrematureAccess is returned when rows or fields are accessed
	// before the header line has been parsed.
	ErrPrematureAccess = errors.New("csv: header has not been parsed")

	// ErrMalformedQuoting is returned when a quoted value never finds its
	// closing quote before the end of the line or stream.
	ErrMalformedQuoting = errors.New("csv: quoted value is never closed")

	// ErrRowShape is returned when a data row decodes to fewer or more
	// fields than the header declares.
	ErrRowShape = errors.New("csv: wrong number of fields")

	// ErrLimitExceeded is returned when a logical line exceeds the
	// configured maximum length or the stream exceeds the configured
	// maximum read size.
	ErrLimitExceeded = errors.New("csv: resource limit exceeded")

	errNegativeOffset = errors.New("csv: negative field offset")
)
