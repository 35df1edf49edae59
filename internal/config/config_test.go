package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScribeFromFile(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		scribe, err := NewScribeFromFile("../../dev/examples/users.archiver.yml")
		require.NoError(t, err)
		require.NotNil(t, scribe)

		assert.Equal(t, "users-example-1", scribe.Archiver.Name)
		assert.Equal(t, "./dev/fixtures/users.csv", scribe.Archiver.Source.Path)
		assert.Equal(t, ",", scribe.Archiver.Source.Delimiter)
		assert.Equal(t, "local", scribe.Archiver.Repository.Type)
		assert.Equal(t, "parquet", scribe.Archiver.Preserver.Type)
		assert.Equal(t, 5000, scribe.Archiver.Preserver.BatchSizeNumRecords)
		assert.Len(t, scribe.Archiver.Preserver.Parquet.Schema, 5)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewScribeFromFile("does-not-exist.yml")
		assert.Error(t, err)
	})
}

func TestParquetFields(t *testing.T) {
	fields := ParquetFields([]SchemaField{
		{Name: "id", Type: "INT64"},
		{Name: "balance", Type: "BYTE_ARRAY", ConvertedType: "DECIMAL", Precision: 10, Scale: 2},
	})

	require.Len(t, fields, 2)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "DECIMAL", fields[1].ConvertedType)
	assert.Equal(t, 10, fields[1].Precision)
}

func TestDecodeOptions(t *testing.T) {
	t.Run("multi-character delimiter rejected", func(t *testing.T) {
		_, err := decodeOptions(Source{Delimiter: "ab"})
		assert.Error(t, err)
	})

	t.Run("defaults pass through", func(t *testing.T) {
		opts, err := decodeOptions(Source{})
		require.NoError(t, err)
		assert.Empty(t, opts)
	})
}
