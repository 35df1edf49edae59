package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAllFields drains a line the way the row decoder does.
func readAllFields(t *testing.T, line string) []string {
	t.Helper()

	var fields []string
	var buf bytes.Buffer
	off := 0
	for {
		buf.Reset()
		next, ok, err := ReadField([]byte(line), off, ',', '"', &buf)
		require.NoError(t, err)
		if !ok {
			return fields
		}
		fields = append(fields, buf.String())
		off = next
	}
}

func TestReadFieldSequences(t *testing.T) {
	cases := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"empty middle field", "a,,c", []string{"a", "", "c"}},
		{"trailing delimiter yields trailing empty field", "a,b,", []string{"a", "b", ""}},
		{"single field", "a", []string{"a"}},
		{"single empty line yields one empty field", "", []string{""}},
		{"quoted", `"a","b"`, []string{"a", "b"}},
		{"quoted with delimiter inside", `"a,b",c`, []string{"a,b", "c"}},
		{"escaped quote pair folds to one literal", `"a""b"`, []string{`a"b`}},
		{"run of four quotes folds to two literals", `"a""""b"`, []string{`a""b`}},
		{"field of only an escaped quote", `""""`, []string{`"`}},
		{"empty quoted field", `""`, []string{""}},
		{"quoted with embedded newline", "\"a\nb\",c", []string{"a\nb", "c"}},
		{"junk after closing quote is skipped", `"a"junk,b`, []string{"a", "b"}},
		{"unquoted quote mid-value is content", `a"b,c`, []string{`a"b`, "c"}},
		{"nul bytes dropped in unquoted copy", "a\x00b,c", []string{"ab", "c"}},
		{"nul bytes dropped in quoted copy", "\"a\x00b\",c", []string{"ab", "c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, readAllFields(t, tc.line))
		})
	}
}

func TestReadFieldCursorContract(t *testing.T) {
	line := []byte("a,b")
	var buf bytes.Buffer

	next, ok, err := ReadField(line, 0, ',', '"', &buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, next)
	assert.Equal(t, "a", buf.String())

	buf.Reset()
	next, ok, err = ReadField(line, next, ',', '"', &buf)
	require.NoError(t, err)
	assert.True(t, ok)
	// Ending at end of line without a trailing delimiter leaves the
	// cursor one past the end.
	assert.Equal(t, len(line)+1, next)
	assert.Equal(t, "b", buf.String())

	buf.Reset()
	_, ok, err = ReadField(line, next, ',', '"', &buf)
	require.NoError(t, err)
	assert.False(t, ok, "nothing left to read")
}

func TestReadFieldTrailingEmptyVersusExhausted(t *testing.T) {
	line := []byte("a,")
	var buf bytes.Buffer

	next, ok, err := ReadField(line, 0, ',', '"', &buf)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, next)

	// The cursor sits exactly at the end after a final delimiter: one
	// trailing empty field remains.
	buf.Reset()
	next, ok, err = ReadField(line, next, ',', '"', &buf)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, buf.String())
	assert.Equal(t, len(line)+1, next)
}

func TestReadFieldDoesNotClearDestination(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("prefix-")

	_, ok, err := ReadField([]byte("x"), 0, ',', '"', &buf)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "prefix-x", buf.String())
}

func TestReadFieldErrors(t *testing.T) {
	var buf bytes.Buffer

	t.Run("negative offset", func(t *testing.T) {
		_, _, err := ReadField([]byte("a"), -1, ',', '"', &buf)
		assert.Error(t, err)
	})

	t.Run("unterminated quoted field", func(t *testing.T) {
		_, _, err := ReadField([]byte(`"never closed`), 0, ',', '"', &buf)
		assert.ErrorIs(t, err, ErrMalformedQuoting)
	})

	t.Run("even quote run without close", func(t *testing.T) {
		_, _, err := ReadField([]byte(`"a""`), 0, ',', '"', &buf)
		assert.ErrorIs(t, err, ErrMalformedQuoting)
	})
}

func TestReadFieldCustomDialect(t *testing.T) {
	var buf bytes.Buffer

	next, ok, err := ReadField([]byte("'a;b';c"), 0, ';', '\'', &buf)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a;b", buf.String())
	assert.Equal(t, 6, next)
}
