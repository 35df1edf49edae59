package file

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal"
	"github.com/scribe-data/scribe/internal/csv"
)

// Source streams records out of a delimited text file. The file's first
// logical line is the header; every subsequent logical line becomes one
// Record.
type Source struct {
	Path string

	decodeOpts []csv.Option
	logger     *zap.Logger
}

type SourceOption func(*Source)

func WithLogger(logger *zap.Logger) SourceOption {
	return func(s *Source) {
		s.logger = logger
	}
}

// WithDecodeOptions forwards dialect and limit options to the decoder.
func WithDecodeOptions(opts ...csv.Option) SourceOption {
	return func(s *Source) {
		s.decodeOpts = append(s.decodeOpts, opts...)
	}
}

func NewSource(path string, opts ...SourceOption) *Source {
	s := Source{
		Path:   path,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

func (s *Source) Name() string {
	return filepath.Base(s.Path)
}

// Snapshot opens the file and parses the header. Records are pulled
// lazily with Next; the caller owns the Close.
func (s *Source) Snapshot(ctx context.Context) (*Snapshot, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}

	dec, err := csv.NewDecoder(f, s.decodeOpts...)
	if err != nil {
		f.Close()
		return nil, err
	}

	header, err := dec.ReadHeader()
	if err != nil {
		f.Close()
		return nil, err
	}

	s.logger.Debug("snapshot opened",
		zap.String("path", s.Path),
		zap.Int("columns", header.Len()),
	)

	return &Snapshot{
		f:       f,
		dec:     dec,
		columns: header.Columns(),
	}, nil
}

type Snapshot struct {
	f       *os.File
	dec     *csv.Decoder
	columns []string
}

func (s *Snapshot) Columns() []string {
	return s.columns
}

// Next decodes one row and returns it as a Record. io.EOF signals that
// the file is exhausted.
func (s *Snapshot) Next() (*internal.Record, error) {
	if err := s.dec.ReadRow(); err != nil {
		return nil, err
	}

	values, err := s.dec.Row()
	if err != nil {
		return nil, err
	}

	return internal.NewRecord(s.columns, values), nil
}

// Line returns the line number of the most recently decoded row.
func (s *Snapshot) Line() int {
	return s.dec.LineNumber()
}

// BytesRead returns the number of bytes consumed from the file so far.
func (s *Snapshot) BytesRead() int64 {
	return s.dec.BytesRead()
}

func (s *Snapshot) Close() error {
	return s.f.Close()
}
