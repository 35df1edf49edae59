package archiver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribe-data/scribe/internal/catalog"
	"github.com/scribe-data/scribe/internal/csv"
	"github.com/scribe-data/scribe/internal/file"
	"github.com/scribe-data/scribe/internal/local"
	"github.com/scribe-data/scribe/internal/parquet"
)

func TestArchiverSnapshot(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "users.csv")
	require.NoError(t, os.WriteFile(srcPath, []byte(
		"id,name,email\n"+
			"1,alice,a@example.com\n"+
			"2,\"bob,jr\",b@example.com\n"+
			"3,carol,\n",
	), 0644))

	outDir := filepath.Join(dir, "out")
	repository := local.New(outDir)

	preserver, err := parquet.New(
		parquet.WithRepository(repository),
		parquet.WithSchema(parquet.Schema{
			{Name: "id", Type: "INT64"},
			{Name: "name", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
			{Name: "email", Type: "BYTE_ARRAY", ConvertedType: "UTF8", RepetitionType: "OPTIONAL"},
		}),
		parquet.WithBatchSizeNumRecords(2),
	)
	require.NoError(t, err)

	a := New(
		WithSource(file.NewSource(srcPath)),
		WithPreserver(preserver),
		WithRepository(repository),
	)

	sid := uuid.Must(uuid.NewUUID())
	require.NoError(t, a.Snapshot(ctx, sid))

	// Batch size 2 over 3 records yields two parquet files plus the
	// catalog.
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"000000.parquet", "000001.parquet", "catalog.json"}, names)

	data, err := os.ReadFile(filepath.Join(outDir, "catalog.json"))
	require.NoError(t, err)

	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal(data, &cat))

	assert.True(t, cat.Success)
	assert.Equal(t, sid.String(), cat.SnapshotID)
	assert.Equal(t, "users.csv", cat.Source)
	assert.Equal(t, 3, cat.NumRecordsProcessed)
	assert.Equal(t, 4, cat.NumSourceLines)
	assert.Empty(t, cat.Error)
}

func TestArchiverSnapshotMalformedSource(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	srcPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(srcPath, []byte("a,b\n1,2,3\n"), 0644))

	outDir := filepath.Join(dir, "out")
	repository := local.New(outDir)

	preserver, err := parquet.New(
		parquet.WithRepository(repository),
		parquet.WithSchema(parquet.Schema{
			{Name: "a", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
			{Name: "b", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
		}),
	)
	require.NoError(t, err)

	a := New(
		WithSource(file.NewSource(srcPath)),
		WithPreserver(preserver),
		WithRepository(repository),
	)

	err = a.Snapshot(ctx, uuid.Must(uuid.NewUUID()))
	require.ErrorIs(t, err, csv.ErrRowShape)

	// The failure is still cataloged.
	data, readErr := os.ReadFile(filepath.Join(outDir, "catalog.json"))
	require.NoError(t, readErr)

	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal(data, &cat))
	assert.False(t, cat.Success)
	assert.Contains(t, cat.Error, "wrong number of fields")
}

func TestValidateStream(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		result := validateStream(strings.NewReader("a,b\n1,2\n3,4\n"))
		assert.True(t, result.Valid)
		assert.Equal(t, []string{"a", "b"}, result.Columns)
		assert.Equal(t, 2, result.Records)
		assert.Equal(t, 3, result.Lines)
	})

	t.Run("shape error", func(t *testing.T) {
		result := validateStream(strings.NewReader("a,b\n1\n"))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "wrong number of fields")
	})

	t.Run("unterminated quote", func(t *testing.T) {
		result := validateStream(strings.NewReader("a,b\n\"open,2\n"))
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "never closed")
	})
}
