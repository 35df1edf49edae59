package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scribe-data/scribe/internal/parquet"
)

type Logger struct {
	Level string `yaml:"level"`
}

type Global struct {
	Logger Logger `yaml:"logger"`
}

// Source describes the delimited text file to decode. Delimiter and
// quote are single-character strings; empty means the default dialect.
type Source struct {
	Path          string `yaml:"path"`
	Delimiter     string `yaml:"delimiter"`
	Quote         string `yaml:"quote"`
	MaxLineLength int    `yaml:"max_line_length"`
	MaxReadBytes  int64  `yaml:"max_read_bytes"`
}

type LocalRepository struct {
	Path string `yaml:"path"`
}

type S3Repository struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

type Repository struct {
	Type        string          `yaml:"type"`
	LocalConfig LocalRepository `yaml:"local"`
	S3Config    S3Repository    `yaml:"s3"`
}

type SchemaField struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	ConvertedType  string `yaml:"converted_type"`
	RepetitionType string `yaml:"repetition_type"`
	Precision      int    `yaml:"precision"`
	Scale          int    `yaml:"scale"`
}

type Parquet struct {
	Schema []SchemaField `yaml:"schema"`
}

type Preserver struct {
	Type                string  `yaml:"type"`
	BatchSizeNumRecords int     `yaml:"batch_size_num_records"`
	Parquet             Parquet `yaml:"parquet"`
}

type Archiver struct {
	Name       string     `yaml:"name"`
	Source     Source     `yaml:"source"`
	Repository Repository `yaml:"repository"`
	Preserver  Preserver  `yaml:"preserver"`
}

type Scribe struct {
	Global   Global   `yaml:"global"`
	Archiver Archiver `yaml:"archiver"`
}

func NewScribeFromFile(fpath string) (*Scribe, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	var scribe Scribe
	if err := yaml.Unmarshal(bs, &scribe); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", fpath, err)
	}

	return &scribe, nil
}

// ParquetFields maps config schema fields onto the preserver's schema.
func ParquetFields(fields []SchemaField) parquet.Schema {
	schema := make(parquet.Schema, len(fields))
	for i, f := range fields {
		schema[i] = parquet.Field{
			Name:           f.Name,
			Type:           f.Type,
			ConvertedType:  f.ConvertedType,
			RepetitionType: f.RepetitionType,
			Precision:      f.Precision,
			Scale:          f.Scale,
		}
	}
	return schema
}

// SchemaToConfigFields is the inverse of ParquetFields, used when
// generating configs from SQL schemas.
func SchemaToConfigFields(schema parquet.Schema) []SchemaField {
	fields := make([]SchemaField, len(schema))
	for i, f := range schema {
		fields[i] = SchemaField{
			Name:           f.Name,
			Type:           f.Type,
			ConvertedType:  f.ConvertedType,
			RepetitionType: f.RepetitionType,
			Precision:      f.Precision,
			Scale:          f.Scale,
		}
	}
	return fields
}
