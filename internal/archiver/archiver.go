package archiver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal"
	"github.com/scribe-data/scribe/internal/catalog"
	"github.com/scribe-data/scribe/internal/file"
)

// Preserver converts records into an output format and flushes completed
// batches to a repository.
type Preserver interface {
	Preserve(ctx context.Context, record *internal.Record) error
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
	Count() int
}

type Archiver struct {
	logger     *zap.Logger
	source     *file.Source
	preserver  Preserver
	repository internal.Repository
}

type Option func(*Archiver)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Archiver) {
		a.logger = logger
	}
}

func WithSource(source *file.Source) Option {
	return func(a *Archiver) {
		a.source = source
	}
}

func WithPreserver(preserver Preserver) Option {
	return func(a *Archiver) {
		a.preserver = preserver
	}
}

func WithRepository(repository internal.Repository) Option {
	return func(a *Archiver) {
		a.repository = repository
	}
}

func New(opts ...Option) *Archiver {
	a := Archiver{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return &a
}

func (a *Archiver) Close(ctx context.Context) error {
	return a.preserver.Close(ctx)
}

// Snapshot streams every record out of the source, preserves them, and
// writes a catalog describing the run next to the preserved output.
func (a *Archiver) Snapshot(ctx context.Context, sid uuid.UUID) error {
	cat := catalog.Catalog{
		SnapshotID: sid.String(),
		StartTime:  time.Now().UTC(),
		Source:     a.source.Name(),
	}

	snapshot, err := a.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	defer snapshot.Close()

	a.logger.Info("snapshot started",
		zap.String("snapshot_id", sid.String()),
		zap.String("source", a.source.Name()),
		zap.Strings("columns", snapshot.Columns()),
	)

	runErr := a.drain(ctx, snapshot)

	cat.EndTime = time.Now().UTC()
	cat.NumSourceLines = snapshot.Line()
	cat.NumRecordsProcessed = a.preserver.Count()
	cat.NumBytesRead = snapshot.BytesRead()
	cat.Success = runErr == nil
	if runErr != nil {
		cat.Error = runErr.Error()
	}

	if err := a.writeCatalog(ctx, cat); err != nil {
		a.logger.Error("catalog write failed", zap.Error(err))
		if runErr == nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}

	a.logger.Info("snapshot complete",
		zap.String("snapshot_id", sid.String()),
		zap.Int("records", cat.NumRecordsProcessed),
		zap.Int64("bytes", cat.NumBytesRead),
	)
	return nil
}

func (a *Archiver) drain(ctx context.Context, snapshot *file.Snapshot) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := snapshot.Next()
		if err == io.EOF {
			return a.preserver.Close(ctx)
		}
		if err != nil {
			return err
		}

		if err := a.preserver.Preserve(ctx, record); err != nil {
			return err
		}
	}
}

func (a *Archiver) writeCatalog(ctx context.Context, cat catalog.Catalog) error {
	bs, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return a.repository.Write(ctx, "catalog.json", bytes.NewReader(bs))
}
