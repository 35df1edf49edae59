package parquet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"
)

// ParseCreateTable derives a parquet schema from a CREATE TABLE
// statement, so archive configs can be generated instead of hand-written.
func ParseCreateTable(sql string) (Schema, error) {
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parse sql: %w", err)
	}

	ddl, ok := stmt.(*sqlparser.DDL)
	if !ok || ddl.Action != sqlparser.CreateStr || ddl.TableSpec == nil {
		return nil, fmt.Errorf("expected a CREATE TABLE statement")
	}

	var schema Schema
	for _, col := range ddl.TableSpec.Columns {
		f, err := ColumnToField(col)
		if err != nil {
			return nil, err
		}
		schema = append(schema, f)
	}
	return schema, nil
}

// ColumnToField maps one SQL column definition onto a parquet field.
func ColumnToField(col *sqlparser.ColumnDefinition) (Field, error) {
	f := Field{Name: col.Name.String()}

	switch strings.ToLower(col.Type.Type) {
	case "int", "integer", "smallint", "bigint", "serial", "bigserial":
		f.Type = "INT64"
	case "varchar", "char", "character", "text":
		f.Type = "BYTE_ARRAY"
		f.ConvertedType = "UTF8"
	case "timestamp", "datetime", "timestamptz":
		f.Type = "INT64"
		f.ConvertedType = "TIMESTAMP_MILLIS"
	case "date":
		f.Type = "INT32"
		f.ConvertedType = "DATE"
	case "numeric", "decimal":
		f.Type = "INT64"
		f.ConvertedType = "DECIMAL"
		f.Precision = sqlValToInt(col.Type.Length, 18)
		f.Scale = sqlValToInt(col.Type.Scale, 2)
	case "double", "float", "real":
		f.Type = "DOUBLE"
	case "boolean", "bool":
		f.Type = "BOOLEAN"
	default:
		return Field{}, fmt.Errorf("unsupported data type: %q", col.Type.Type)
	}

	if !col.Type.NotNull {
		f.RepetitionType = "OPTIONAL"
	}

	return f, nil
}

func sqlValToInt(v *sqlparser.SQLVal, fallback int) int {
	if v == nil {
		return fallback
	}
	n, err := strconv.Atoi(string(v.Val))
	if err != nil {
		return fallback
	}
	return n
}
