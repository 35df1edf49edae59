package csv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRecord(t *testing.T, record []string, opts ...Option) string {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, opts...)
	require.NoError(t, err)
	require.NoError(t, w.Write(record))
	require.NoError(t, w.Flush())
	return buf.String()
}

func TestWriterQuotingRules(t *testing.T) {
	cases := []struct {
		name   string
		record []string
		want   string
	}{
		{"plain fields", []string{"a", "b"}, "a,b\n"},
		{"empty fields written as nothing", []string{"", "", ""}, ",,\n"},
		{"delimiter forces quotes", []string{"a,b", "c"}, "\"a,b\",c\n"},
		{"quote is doubled", []string{`a"b`}, "\"a\"\"b\"\n"},
		{"newline forces quotes", []string{"a\nb"}, "\"a\nb\"\n"},
		{"carriage return forces quotes", []string{"a\rb"}, "\"a\rb\"\n"},
		{"nul forces quotes", []string{"a\x00b"}, "\"a\x00b\"\n"},
		{"space alone does not", []string{"a b"}, "a b\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, encodeRecord(t, tc.record))
		})
	}
}

func TestWriterCustomDialect(t *testing.T) {
	got := encodeRecord(t, []string{"a;b", "c"}, WithDelimiter(';'), WithQuote('\''))
	assert.Equal(t, "'a;b';c\n", got)
}

func TestWriterCRLF(t *testing.T) {
	got := encodeRecord(t, []string{"a", "b"}, WithCRLF(true))
	assert.Equal(t, "a,b\r\n", got)
}

func TestWriterWriteAll(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)

	err = w.WriteAll([][]string{{"h1", "h2"}, {"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "h1,h2\n1,2\n", buf.String())
}

func TestWriterConfigValidation(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(&buf, WithDelimiter('x'), WithQuote('x'))
	assert.ErrorIs(t, err, ErrConfiguration)
}
