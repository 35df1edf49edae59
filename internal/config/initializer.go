package config

import (
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/scribe-data/scribe/internal"
	"github.com/scribe-data/scribe/internal/archiver"
	"github.com/scribe-data/scribe/internal/csv"
	"github.com/scribe-data/scribe/internal/file"
	"github.com/scribe-data/scribe/internal/local"
	"github.com/scribe-data/scribe/internal/parquet"
	"github.com/scribe-data/scribe/internal/preserver"
	"github.com/scribe-data/scribe/internal/s3"
)

// InitializeArchiver wires a runnable archiver out of a parsed config:
// the file source with its dialect, the preserver, and the repository
// the preserved batches land in. prefix namespaces this run's output
// inside the repository, typically the snapshot id.
func InitializeArchiver(scribe *Scribe, prefix string, logger *zap.Logger) (*archiver.Archiver, error) {
	decodeOpts, err := decodeOptions(scribe.Archiver.Source)
	if err != nil {
		return nil, err
	}

	source := file.NewSource(scribe.Archiver.Source.Path,
		file.WithLogger(logger.Named("source")),
		file.WithDecodeOptions(decodeOpts...),
	)

	repository, err := initializeRepository(scribe.Archiver.Repository, prefix, logger)
	if err != nil {
		return nil, err
	}

	p, err := initializePreserver(scribe.Archiver.Preserver, repository, logger)
	if err != nil {
		return nil, err
	}

	return archiver.New(
		archiver.WithLogger(logger.Named("archiver")),
		archiver.WithSource(source),
		archiver.WithPreserver(p),
		archiver.WithRepository(repository),
	), nil
}

func decodeOptions(source Source) ([]csv.Option, error) {
	var opts []csv.Option

	if source.Delimiter != "" {
		if len(source.Delimiter) != 1 {
			return nil, fmt.Errorf("source delimiter must be a single character, got %q", source.Delimiter)
		}
		opts = append(opts, csv.WithDelimiter(source.Delimiter[0]))
	}
	if source.Quote != "" {
		if len(source.Quote) != 1 {
			return nil, fmt.Errorf("source quote must be a single character, got %q", source.Quote)
		}
		opts = append(opts, csv.WithQuote(source.Quote[0]))
	}
	if source.MaxLineLength > 0 {
		opts = append(opts, csv.WithMaxLineLength(source.MaxLineLength))
	}
	if source.MaxReadBytes > 0 {
		opts = append(opts, csv.WithMaxReadBytes(source.MaxReadBytes))
	}

	return opts, nil
}

func initializeRepository(repo Repository, prefix string, logger *zap.Logger) (internal.Repository, error) {
	switch repo.Type {
	case "local":
		return local.New(
			repo.LocalConfig.Path,
			local.WithPrefix(prefix),
			local.WithLogger(logger.Named("repository.local")),
		), nil
	case "s3":
		return s3.New(
			s3.WithRegion(repo.S3Config.Region),
			s3.WithBucket(repo.S3Config.Bucket),
			s3.WithPrefix(path.Join(repo.S3Config.Prefix, prefix)),
			s3.WithEndpoint(repo.S3Config.Endpoint),
			s3.WithForcePathStyle(repo.S3Config.ForcePathStyle),
			s3.WithLogger(logger.Named("repository.s3")),
		), nil
	default:
		return nil, fmt.Errorf("unknown repository type: %q", repo.Type)
	}
}

func initializePreserver(p Preserver, repository internal.Repository, logger *zap.Logger) (archiver.Preserver, error) {
	switch p.Type {
	case "parquet":
		opts := []parquet.Option{
			parquet.WithLogger(logger.Named("preserver.parquet")),
			parquet.WithSchema(ParquetFields(p.Parquet.Schema)),
			parquet.WithRepository(repository),
		}
		if p.BatchSizeNumRecords > 0 {
			opts = append(opts, parquet.WithBatchSizeNumRecords(p.BatchSizeNumRecords))
		}
		return parquet.New(opts...)
	case "stdout":
		return &preserver.Stdout{}, nil
	default:
		return nil, fmt.Errorf("unknown preserver type: %q", p.Type)
	}
}
