package parquet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/scribe-data/scribe/internal"
)

// Field describes one parquet column. Types use the parquet physical and
// converted type names (INT64, BYTE_ARRAY, UTF8, TIMESTAMP_MILLIS, ...).
type Field struct {
	Name           string
	Type           string
	ConvertedType  string
	RepetitionType string
	Precision      int
	Scale          int
}

type Schema []Field

// ToGoParquetSchema renders the schema as the metadata strings the
// parquet-go CSV writer expects.
func (s Schema) ToGoParquetSchema() []string {
	schema := make([]string, len(s))
	for i, field := range s {
		parts := []string{
			fmt.Sprintf("name=%s", field.Name),
			fmt.Sprintf("type=%s", field.Type),
		}
		if field.ConvertedType != "" {
			parts = append(parts, fmt.Sprintf("convertedtype=%s", field.ConvertedType))
		}
		if field.ConvertedType == "DECIMAL" {
			parts = append(parts,
				fmt.Sprintf("precision=%d", field.Precision),
				fmt.Sprintf("scale=%d", field.Scale),
			)
		}
		if field.RepetitionType != "" {
			parts = append(parts, fmt.Sprintf("repetitiontype=%s", field.RepetitionType))
		}
		schema[i] = strings.Join(parts, ", ")
	}

	return schema
}

// RecordToParquetRow converts one decoded record into a typed parquet
// row. Record values arrive as strings; each is parsed according to its
// column's declared type. Empty strings on OPTIONAL columns become nulls.
func (s Schema) RecordToParquetRow(r *internal.Record) ([]any, error) {
	if len(s) != r.Len() {
		return nil, fmt.Errorf(
			"schema and record fields mismatch: schema has %d fields, record has %d fields",
			len(s),
			r.Len(),
		)
	}

	row := make([]any, len(s))
	values := r.Values()

	for i, field := range s {
		if values[i] == "" && field.RepetitionType == "OPTIONAL" {
			row[i] = nil
			continue
		}

		v, err := field.convert(values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}
		row[i] = v
	}

	return row, nil
}

func (f Field) convert(value string) (any, error) {
	switch f.Type {
	case "BYTE_ARRAY", "FIXED_LEN_BYTE_ARRAY":
		if f.ConvertedType == "DECIMAL" {
			bs, err := StringToDecimalByteArray(value, f.Precision, f.Scale)
			if err != nil {
				return nil, err
			}
			return string(bs), nil
		}
		return value, nil

	case "INT64":
		switch f.ConvertedType {
		case "TIMESTAMP_MILLIS":
			t, err := parseTimestamp(value)
			if err != nil {
				return nil, err
			}
			return t.UnixMilli(), nil
		case "TIMESTAMP_MICROS":
			t, err := parseTimestamp(value)
			if err != nil {
				return nil, err
			}
			return t.UnixMicro(), nil
		case "DECIMAL":
			unscaled, err := DecimalStringToInt(value, f.Precision, f.Scale)
			if err != nil {
				return nil, err
			}
			return unscaled.Int64(), nil
		}
		return strconv.ParseInt(value, 10, 64)

	case "INT32":
		if f.ConvertedType == "DATE" {
			t, err := time.Parse("2006-01-02", value)
			if err != nil {
				return nil, err
			}
			return int32(t.Unix() / 86400), nil
		}
		n, err := strconv.ParseInt(value, 10, 32)
		return int32(n), err

	case "DOUBLE":
		return strconv.ParseFloat(value, 64)

	case "FLOAT":
		v, err := strconv.ParseFloat(value, 32)
		return float32(v), err

	case "BOOLEAN":
		return strconv.ParseBool(value)
	}

	return nil, fmt.Errorf("unsupported parquet type: %q", f.Type)
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", value)
}
