package gridlib_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twosigma/ngrid/internal/gridlib"
)

func newModel(t *testing.T, input string, hasHeader bool, numSample int) *gridlib.DelimitedModel {
	t.Helper()
	m, err := gridlib.NewDelimitedModel(
		strings.NewReader(input), hasHeader, numSample, 0, "#", "test.csv")
	require.NoError(t, err)
	return m
}

func TestDelimitedModelBasic(t *testing.T) {
	m := newModel(t, "a,b,c\n1,2.5,x\n4,5.5,y\n", true, 10)

	assert.Equal(t, 3, m.NumCols())
	assert.Equal(t, []string{"a", "b", "c"}, m.Names())
	assert.Equal(t, "test.csv", m.Filename())
	assert.Equal(t, ',', m.Delimiter())
	assert.Equal(t,
		[]gridlib.Kind{gridlib.KindInt, gridlib.KindFloat, gridlib.KindStr},
		m.Kinds())

	row, err := m.Row(0)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), 2.5, "x"}, row)

	_, err = m.Row(5)
	assert.ErrorIs(t, err, gridlib.ErrOutOfRange)
	_, err = m.Row(-1)
	assert.ErrorIs(t, err, gridlib.ErrOutOfRange)
}

func TestDelimitedModelNoHeader(t *testing.T) {
	m := newModel(t, "1,2\n3,4\n", false, 10)
	assert.Equal(t, []string{"col1", "col2"}, m.Names())
	assert.Equal(t, 2, m.NumRows())
}

func TestDelimitedModelDelimiterGuess(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  rune
	}{
		{"a,b\n1,2\n", ','},
		{"a\tb\n1\t2\n", '\t'},
		{"a b\n1 2\n", ' '},
		{"a|b\n1|2\n", '|'},
		// On a tie the higher-priority candidate wins.
		{"1|2,3\n4|5,6\n", '|'},
	} {
		m := newModel(t, tc.input, false, 10)
		assert.Equal(t, string(tc.want), string(m.Delimiter()), "input %q", tc.input)
	}
}

func TestDelimitedModelExplicitDelimiter(t *testing.T) {
	m, err := gridlib.NewDelimitedModel(
		strings.NewReader("1;2\n3;4\n"), false, 10, ';', "", "test.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumCols())
	assert.Equal(t, ';', m.Delimiter())
}

func TestDelimitedModelTitlesAndComments(t *testing.T) {
	input := "# report for 2024\n# generated nightly\na,b\n1,2\n# midstream comment\n3,4\n"
	m := newModel(t, input, true, 10)

	assert.Equal(t,
		[]string{"# report for 2024", "# generated nightly"}, m.TitleLines())
	// The midstream comment is dropped, not treated as a title or a row.
	assert.Equal(t, 2, m.NumRows())
}

func TestDelimitedModelCleanup(t *testing.T) {
	// NUL bytes are stripped, blank lines skipped, quotes and spaces
	// trimmed from values.
	input := "a,b\n\n1,\x00 \"x\" \n\n2,y\n"
	m := newModel(t, input, true, 10)
	require.Equal(t, 2, m.NumRows())
	row, err := m.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "x", row[1])
}

func TestDelimitedModelEmptyInput(t *testing.T) {
	_, err := gridlib.NewDelimitedModel(
		strings.NewReader(""), true, 10, 0, "#", "empty.csv")
	assert.ErrorIs(t, err, gridlib.ErrEmptyInput)

	_, err = gridlib.NewDelimitedModel(
		strings.NewReader("# only\n# comments\n"), true, 10, 0, "#", "empty.csv")
	assert.ErrorIs(t, err, gridlib.ErrEmptyInput)

	// A header with no data rows is as empty as no input at all.
	_, err = gridlib.NewDelimitedModel(
		strings.NewReader("a,b\n"), true, 10, 0, "#", "empty.csv")
	assert.ErrorIs(t, err, gridlib.ErrEmptyInput)
}

func bigInput(rows int) string {
	var b strings.Builder
	b.WriteString("id,name\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,item%03d\n", i, i)
	}
	return b.String()
}

func TestDelimitedModelEnsureRows(t *testing.T) {
	m := newModel(t, bigInput(300), true, 10)
	assert.Equal(t, 9, m.NumRows(), "only the sample is materialized up front")
	assert.False(t, m.Done())

	// Each call reads a whole block past the request.
	assert.Equal(t, 0, m.EnsureRows(0))
	assert.GreaterOrEqual(t, m.NumRows(), 200)
	assert.False(t, m.Done())

	// Requests beyond the source settle at the true row count.
	assert.Equal(t, 300, m.EnsureRows(1000))
	assert.Equal(t, 300, m.NumRows())
	assert.True(t, m.Done())

	// Once done, the count is stable.
	assert.Equal(t, 300, m.EnsureRows(math.MaxInt))
	assert.Equal(t, 300, m.NumRows())
	assert.Equal(t, 5, m.EnsureRows(5))
}

func TestDelimitedModelConversionFailure(t *testing.T) {
	// The sample says ints; a later row disagrees. The raw string is
	// kept and the typed formatter renders the overflow marker.
	m := newModel(t, "a\n1\n2\nx\n", true, 3)
	assert.Equal(t, []gridlib.Kind{gridlib.KindInt}, m.Kinds())

	m.EnsureRows(10)
	require.Equal(t, 3, m.NumRows())
	row, err := m.Row(2)
	require.NoError(t, err)
	assert.Equal(t, "x", row[0])

	formatters, err := m.Formatters(gridlib.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "##", formatters[0].Format(row[0]))
}

func TestDelimitedModelShortRows(t *testing.T) {
	// A row with fewer fields than columns reads as empty trailing cells.
	m := newModel(t, "a,b\n1,x\n2\n", true, 10)
	require.Equal(t, 2, m.NumRows())
	row, err := m.Row(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), row[0])
	assert.Equal(t, "", row[1])
}

func TestDelimitedModelFormatters(t *testing.T) {
	m := newModel(t, "a,b,c\n1,2.5,x\n4,5.5,y\n", true, 10)
	formatters, err := m.Formatters(gridlib.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, formatters, 3)

	assert.Equal(t, " 1", formatters[0].Format(int64(1)))
	assert.Equal(t, " 2.5", formatters[1].Format(2.5))
	assert.Equal(t, 4, formatters[2].Width(), "string width clips to the minimum")

	row, err := m.Row(0)
	require.NoError(t, err)
	for c, f := range formatters {
		assert.Len(t, []rune(f.Format(row[c])), f.Width())
	}
}
