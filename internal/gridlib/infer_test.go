package gridlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twosigma/ngrid/internal/gridlib"
)

func TestGuessKind(t *testing.T) {
	for _, tc := range []struct {
		values []string
		want   gridlib.Kind
	}{
		{[]string{"true", "false"}, gridlib.KindBool},
		{[]string{"TRUE", "False"}, gridlib.KindBool},
		{[]string{"1", "2", "3"}, gridlib.KindInt},
		{[]string{"-7", "0", "42"}, gridlib.KindInt},
		{[]string{"1", "2", "3.5"}, gridlib.KindFloat},
		{[]string{"1e3", "2.5"}, gridlib.KindFloat},
		// The empty string reads as NaN, so it stays numeric.
		{[]string{"1.5", ""}, gridlib.KindFloat},
		{[]string{"1", "2", "x"}, gridlib.KindStr},
		{[]string{"yes", "no"}, gridlib.KindStr},
		{[]string{"true", "1"}, gridlib.KindStr},
	} {
		kind, convert := gridlib.GuessKind(tc.values)
		assert.Equal(t, tc.want, kind, "values %v", tc.values)
		require.NotNil(t, convert)
		for _, v := range tc.values {
			_, err := convert(v)
			assert.NoError(t, err, "convert %q as %v", v, kind)
		}
	}
}

// One unparseable value anywhere in the sample demotes the column.
func TestGuessKindDemotion(t *testing.T) {
	kind, _ := gridlib.GuessKind([]string{"1", "2", "3", "4", "oops"})
	assert.Equal(t, gridlib.KindStr, kind)
}

func TestDefaultFormatterInt(t *testing.T) {
	f, err := gridlib.DefaultFormatter(
		gridlib.KindInt, []any{int64(1), int64(22), int64(-333)}, gridlib.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 4, f.Width())
	assert.Equal(t, " 333", f.Format(333))
	assert.Equal(t, "-333", f.Format(-333))
	assert.Equal(t, "####", f.Format(1000))
}

func TestDefaultFormatterFloat(t *testing.T) {
	cfg := gridlib.DefaultConfig()

	// 2.25 needs two fractional digits; 1.5 alone needs one.
	f, err := gridlib.DefaultFormatter(gridlib.KindFloat, []any{1.5, 2.25}, cfg)
	require.NoError(t, err)
	assert.Equal(t, " 1.50", f.Format(1.5))
	assert.Equal(t, " 2.25", f.Format(2.25))

	f, err = gridlib.DefaultFormatter(gridlib.KindFloat, []any{1.5, 120.0}, cfg)
	require.NoError(t, err)
	assert.Equal(t, " 120.0", f.Format(120.0))
	assert.Equal(t, "   1.5", f.Format(1.5))

	// Precision never exceeds the configured maximum.
	f, err = gridlib.DefaultFormatter(
		gridlib.KindFloat, []any{0.12345678901234}, cfg)
	require.NoError(t, err)
	pf, ok := f.(gridlib.PrecisionAdjuster)
	require.True(t, ok)
	assert.Equal(t, cfg.PrecisionMax, pf.Precision())
}

func TestDefaultFormatterStr(t *testing.T) {
	cfg := gridlib.DefaultConfig()

	f, err := gridlib.DefaultFormatter(gridlib.KindStr, []any{"ab", "c"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.StrWidthMin, f.Width(), "narrow columns widen to the minimum")

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	f, err = gridlib.DefaultFormatter(gridlib.KindStr, []any{string(long)}, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.StrWidthMax, f.Width(), "wide columns clip to the maximum")
}

func TestDefaultFormatterBool(t *testing.T) {
	f, err := gridlib.DefaultFormatter(gridlib.KindBool, []any{true, false}, gridlib.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, f.Width())
	assert.Equal(t, "T", f.Format(true))
	assert.Equal(t, "F", f.Format(false))
}

func TestDefaultFormatterTime(t *testing.T) {
	f, err := gridlib.DefaultFormatter(gridlib.KindTime, nil, gridlib.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "2014-09-17T10:07:53Z", f.Format("2014-09-17 10:07:53"))
}
