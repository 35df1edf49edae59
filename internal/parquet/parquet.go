package parquet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal"
)

const defaultBatchSizeNumRecords = 10000

// Preserver batches decoded records into parquet files and hands each
// completed file to the repository.
type Preserver struct {
	logger     *zap.Logger
	schema     Schema
	repository internal.Repository
	batchSize  int

	buf       *bytes.Buffer
	writer    *writer.CSVWriter
	pending   int
	batches   int
	preserved int
}

type Option func(*Preserver)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Preserver) {
		p.logger = logger
	}
}

func WithSchema(schema Schema) Option {
	return func(p *Preserver) {
		p.schema = schema
	}
}

func WithRepository(repository internal.Repository) Option {
	return func(p *Preserver) {
		p.repository = repository
	}
}

func WithBatchSizeNumRecords(n int) Option {
	return func(p *Preserver) {
		p.batchSize = n
	}
}

func New(opts ...Option) (*Preserver, error) {
	p := &Preserver{
		logger:    zap.NewNop(),
		batchSize: defaultBatchSizeNumRecords,
	}
	for _, opt := range opts {
		opt(p)
	}

	if len(p.schema) == 0 {
		return nil, fmt.Errorf("parquet: schema is required")
	}
	if p.repository == nil {
		return nil, fmt.Errorf("parquet: repository is required")
	}
	if p.batchSize < 1 {
		return nil, fmt.Errorf("parquet: batch size must be positive, got %d", p.batchSize)
	}

	if err := p.reset(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Preserver) reset() error {
	p.buf = &bytes.Buffer{}
	fw := writerfile.NewWriterFile(p.buf)

	w, err := writer.NewCSVWriter(p.schema.ToGoParquetSchema(), fw, 2)
	if err != nil {
		return fmt.Errorf("parquet: init writer: %w", err)
	}
	p.writer = w
	return nil
}

// Preserve converts one record and appends it to the current batch,
// flushing when the batch is full.
func (p *Preserver) Preserve(ctx context.Context, record *internal.Record) error {
	row, err := p.schema.RecordToParquetRow(record)
	if err != nil {
		return err
	}

	if err := p.writer.Write(row); err != nil {
		return fmt.Errorf("parquet: write row: %w", err)
	}

	p.pending++
	p.preserved++

	if p.pending >= p.batchSize {
		return p.Flush(ctx)
	}
	return nil
}

// Flush finalizes the current parquet file and writes it to the
// repository.
func (p *Preserver) Flush(ctx context.Context) error {
	if p.pending == 0 {
		return nil
	}

	if err := p.writer.WriteStop(); err != nil {
		return fmt.Errorf("parquet: finalize file: %w", err)
	}

	key := fmt.Sprintf("%06d.parquet", p.batches)
	p.logger.Debug("flushing parquet batch",
		zap.String("key", key),
		zap.Int("records", p.pending),
		zap.Int("bytes", p.buf.Len()),
	)

	if err := p.repository.Write(ctx, key, bytes.NewReader(p.buf.Bytes())); err != nil {
		return fmt.Errorf("parquet: write batch %s: %w", key, err)
	}

	p.batches++
	p.pending = 0
	return p.reset()
}

// Close flushes any pending batch.
func (p *Preserver) Close(ctx context.Context) error {
	return p.Flush(ctx)
}

// Count returns the number of records preserved so far.
func (p *Preserver) Count() int {
	return p.preserved
}
