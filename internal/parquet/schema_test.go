package parquet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribe-data/scribe/internal"
)

func TestToGoParquetSchema(t *testing.T) {
	s := Schema{
		{Name: "id", Type: "INT64"},
		{Name: "name", Type: "BYTE_ARRAY", ConvertedType: "UTF8", RepetitionType: "OPTIONAL"},
		{Name: "price", Type: "INT64", ConvertedType: "DECIMAL", Precision: 10, Scale: 2},
	}

	assert.Equal(t, []string{
		"name=id, type=INT64",
		"name=name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL",
		"name=price, type=INT64, convertedtype=DECIMAL, precision=10, scale=2",
	}, s.ToGoParquetSchema())
}

func TestRecordToParquetRow(t *testing.T) {
	s := Schema{
		{Name: "id", Type: "INT64"},
		{Name: "name", Type: "BYTE_ARRAY", ConvertedType: "UTF8"},
		{Name: "score", Type: "DOUBLE"},
		{Name: "active", Type: "BOOLEAN"},
		{Name: "created", Type: "INT64", ConvertedType: "TIMESTAMP_MILLIS"},
		{Name: "note", Type: "BYTE_ARRAY", ConvertedType: "UTF8", RepetitionType: "OPTIONAL"},
	}

	r := internal.NewRecord(
		[]string{"id", "name", "score", "active", "created", "note"},
		[]string{"42", "alice", "9.5", "true", "2024-01-02T03:04:05Z", ""},
	)

	row, err := s.RecordToParquetRow(r)
	require.NoError(t, err)

	assert.Equal(t, int64(42), row[0])
	assert.Equal(t, "alice", row[1])
	assert.Equal(t, 9.5, row[2])
	assert.Equal(t, true, row[3])
	assert.Equal(t, int64(1704164645000), row[4])
	assert.Nil(t, row[5], "empty optional becomes null")
}

func TestRecordToParquetRowShapeMismatch(t *testing.T) {
	s := Schema{{Name: "id", Type: "INT64"}}
	r := internal.NewRecord([]string{"id", "extra"}, []string{"1", "2"})

	_, err := s.RecordToParquetRow(r)
	assert.Error(t, err)
}

func TestRecordToParquetRowBadValue(t *testing.T) {
	s := Schema{{Name: "id", Type: "INT64"}}
	r := internal.NewRecord([]string{"id"}, []string{"not-a-number"})

	_, err := s.RecordToParquetRow(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "id"`)
}

func TestDecimalStringToInt(t *testing.T) {
	cases := []struct {
		in    string
		scale int
		want  int64
	}{
		{"12.34", 2, 1234},
		{"-12.34", 2, -1234},
		{"12.3", 2, 1230},
		{"12.345", 2, 1234},
		{"12", 2, 1200},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := DecimalStringToInt(tc.in, 10, tc.scale)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Int64())
		})
	}
}

func TestStringToDecimalByteArray(t *testing.T) {
	bs, err := StringToDecimalByteArray("1.00", 4, 2)
	require.NoError(t, err)
	// 100 unscaled, big-endian in (4+1)/2 = 2 bytes.
	assert.Equal(t, []byte{0x00, 0x64}, bs)

	neg, err := StringToDecimalByteArray("-1.00", 4, 2)
	require.NoError(t, err)
	// Two's complement of 100.
	assert.Equal(t, []byte{0xff, 0x9c}, neg)
}

func TestParseCreateTable(t *testing.T) {
	t.Run("invalid sql", func(t *testing.T) {
		_, err := ParseCreateTable("invalid sql")
		assert.Error(t, err)
	})

	t.Run("create table", func(t *testing.T) {
		schema, err := ParseCreateTable(`CREATE TABLE sales (
			id bigint NOT NULL,
			town varchar(255),
			amount numeric(12, 2),
			recorded date
		)`)
		require.NoError(t, err)
		require.Len(t, schema, 4)

		assert.Equal(t, Field{Name: "id", Type: "INT64"}, schema[0])
		assert.Equal(t, "UTF8", schema[1].ConvertedType)
		assert.Equal(t, "OPTIONAL", schema[1].RepetitionType)
		assert.Equal(t, 12, schema[2].Precision)
		assert.Equal(t, 2, schema[2].Scale)
		assert.Equal(t, "DATE", schema[3].ConvertedType)
	})

	t.Run("unsupported column type", func(t *testing.T) {
		_, err := ParseCreateTable("CREATE TABLE t (payload json)")
		assert.Error(t, err)
	})
}
