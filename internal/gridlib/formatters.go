package gridlib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Formatter renders values into fixed-width strings. Width is constant
// for the formatter's lifetime; Format always returns exactly Width
// characters. Values outside the representable range render as the
// overflow marker (a run of '#'), never as a truncated number.
type Formatter interface {
	Width() int
	Format(value any) string
}

// SizeAdjuster is implemented by formatters whose field size can be
// changed interactively. WithSize returns a new formatter; the
// receiver is never mutated.
type SizeAdjuster interface {
	Formatter
	Size() int
	WithSize(size int) Formatter
}

// NoPrecision suppresses the fractional part and the decimal point.
const NoPrecision = -1

// PrecisionAdjuster is implemented by formatters with a fractional
// precision. A precision below zero is normalized to NoPrecision.
type PrecisionAdjuster interface {
	Formatter
	Precision() int
	WithPrecision(precision int) Formatter
}

// Sign selects how the sign column is rendered.
type Sign int

const (
	SignNegative Sign = iota // "-" for negatives, " " otherwise
	SignAlways               // "-" or "+"
	SignNone                 // no sign column; negatives overflow
)

func (s Sign) columns() int {
	if s == SignNone {
		return 0
	}
	return 1
}

func (s Sign) glyph(negative bool) string {
	switch {
	case negative:
		return "-"
	case s == SignAlways:
		return "+"
	default:
		return " "
	}
}

func overflow(width int) string {
	return strings.Repeat("#", width)
}

func validatePad(pad string) (rune, error) {
	r := []rune(pad)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: pad is not a character: %q", ErrInvalidArgument, pad)
	}
	return r[0], nil
}

// signedPad attaches the sign glyph and pads the digit string to the
// full field width. Space padding surrounds the signed value; zero
// padding keeps the sign glyph outermost ("-0007", not "0-007").
func signedPad(digits string, size int, pad rune, sign Sign, negative bool) string {
	if sign == SignNone {
		return padRunes(digits, size, pad, true)
	}
	if pad == '0' {
		return sign.glyph(negative) + padRunes(digits, size, '0', true)
	}
	return padRunes(sign.glyph(negative)+digits, size+1, pad, true)
}

//-----------------------------------------------------------------------------
// Bool

// BoolFormatter renders booleans as one of two literal strings.
type BoolFormatter struct {
	trueStr  string
	falseStr string
	size     int
	padLeft  bool
}

// NewBoolFormatter builds a formatter with the given literals. The
// field size defaults to the longer literal.
func NewBoolFormatter(trueStr, falseStr string) *BoolFormatter {
	size := len([]rune(trueStr))
	if n := len([]rune(falseStr)); n > size {
		size = n
	}
	return &BoolFormatter{trueStr: trueStr, falseStr: falseStr, size: size}
}

func (f *BoolFormatter) Width() int { return f.size }
func (f *BoolFormatter) Size() int  { return f.size }

// WithSize returns a copy with the field size changed.
func (f *BoolFormatter) WithSize(size int) Formatter {
	c := *f
	c.size = size
	return &c
}

// WithPadLeft returns a copy that right-aligns the literal.
func (f *BoolFormatter) WithPadLeft(padLeft bool) *BoolFormatter {
	c := *f
	c.padLeft = padLeft
	return &c
}

func (f *BoolFormatter) Format(value any) string {
	s := f.falseStr
	if truthy(value) {
		s = f.trueStr
	}
	return palideRunes(s, f.size, nil, ' ', 1.0, f.padLeft)
}

//-----------------------------------------------------------------------------
// Int

// IntSpec configures an IntFormatter. Zero-value fields get defaults:
// space padding and SignNegative.
type IntSpec struct {
	Size int // digits, not counting the sign column
	Pad  string
	Sign Sign
}

// IntFormatter renders integers right-aligned in a fixed digit budget.
type IntFormatter struct {
	size  int
	pad   rune
	sign  Sign
	width int
}

func NewIntFormatter(spec IntSpec) (*IntFormatter, error) {
	if spec.Size < 1 {
		return nil, fmt.Errorf("%w: int size %d", ErrInvalidArgument, spec.Size)
	}
	if spec.Pad == "" {
		spec.Pad = " "
	}
	pad, err := validatePad(spec.Pad)
	if err != nil {
		return nil, err
	}
	return &IntFormatter{
		size:  spec.Size,
		pad:   pad,
		sign:  spec.Sign,
		width: spec.Size + spec.Sign.columns(),
	}, nil
}

func (f *IntFormatter) Width() int { return f.width }
func (f *IntFormatter) Size() int  { return f.size }

func (f *IntFormatter) WithSize(size int) Formatter {
	c := *f
	if size < 1 {
		size = 1
	}
	c.size = size
	c.width = size + c.sign.columns()
	return &c
}

func (f *IntFormatter) Format(value any) string {
	n, ok := toInt(value)
	if !ok {
		return overflow(f.width)
	}
	negative := n < 0
	var digits string
	if n == math.MinInt64 {
		digits = strconv.FormatUint(uint64(math.MaxInt64)+1, 10)
	} else if negative {
		digits = strconv.FormatInt(-n, 10)
	} else {
		digits = strconv.FormatInt(n, 10)
	}
	if len(digits) > f.size || (negative && f.sign == SignNone) {
		return overflow(f.width)
	}
	return signedPad(digits, f.size, f.pad, f.sign, negative)
}

//-----------------------------------------------------------------------------
// Float

// FloatSpec configures a FloatFormatter. Size is the integral digit
// budget; Precision is the fractional digit count, or NoPrecision to
// omit the decimal point entirely.
type FloatSpec struct {
	Size      int
	Precision int
	Pad       string
	Sign      Sign
	Point     string
	NaNStr    string
	InfStr    string
}

func (s *FloatSpec) defaults() {
	if s.Pad == "" {
		s.Pad = " "
	}
	if s.Point == "" {
		s.Point = "."
	}
	if s.NaNStr == "" {
		s.NaNStr = "NaN"
	}
	if s.InfStr == "" {
		s.InfStr = "Inf"
	}
}

// FloatFormatter renders floats in fixed-point notation. Values are
// rounded half away from zero at the precision boundary.
type FloatFormatter struct {
	size      int
	precision int
	pad       rune
	sign      Sign
	point     string
	nanStr    string
	infStr    string
	width     int
}

func NewFloatFormatter(spec FloatSpec) (*FloatFormatter, error) {
	spec.defaults()
	if spec.Size < 1 {
		return nil, fmt.Errorf("%w: float size %d", ErrInvalidArgument, spec.Size)
	}
	if spec.Precision < NoPrecision {
		spec.Precision = NoPrecision
	}
	pad, err := validatePad(spec.Pad)
	if err != nil {
		return nil, err
	}
	numWidth := spec.Size
	if spec.Precision != NoPrecision {
		numWidth += len([]rune(spec.Point)) + spec.Precision
	}
	nan, inf, err := nonFiniteLiterals(spec.NaNStr, spec.InfStr, numWidth)
	if err != nil {
		return nil, err
	}
	return &FloatFormatter{
		size:      spec.Size,
		precision: spec.Precision,
		pad:       pad,
		sign:      spec.Sign,
		point:     spec.Point,
		nanStr:    nan,
		infStr:    inf,
		width:     numWidth + spec.Sign.columns(),
	}, nil
}

func nonFiniteLiterals(nan, inf string, numWidth int) (string, string, error) {
	nan = strings.TrimSpace(nan)
	inf = strings.TrimSpace(inf)
	if len([]rune(nan)) > numWidth {
		return "", "", fmt.Errorf("%w: NaN literal %q wider than %d", ErrInvalidArgument, nan, numWidth)
	}
	if len([]rune(inf)) > numWidth {
		return "", "", fmt.Errorf("%w: Inf literal %q wider than %d", ErrInvalidArgument, inf, numWidth)
	}
	return nan, inf, nil
}

// formatNonFinite right-aligns a non-finite literal in the full field.
// NaN never takes a sign glyph; Inf does when negative or SignAlways.
func formatNonFinite(v float64, nan, inf string, sign Sign, width int) string {
	if math.IsNaN(v) {
		return padRunes(nan, width, ' ', true)
	}
	negative := math.IsInf(v, -1)
	switch {
	case negative && sign == SignNone:
		return overflow(width)
	case negative:
		inf = "-" + inf
	case sign == SignAlways:
		inf = "+" + inf
	}
	return padRunes(inf, width, ' ', true)
}

func (f *FloatFormatter) Width() int     { return f.width }
func (f *FloatFormatter) Size() int      { return f.size }
func (f *FloatFormatter) Precision() int { return f.precision }

func (f *FloatFormatter) WithSize(size int) Formatter {
	if size < 1 {
		size = 1
	}
	return f.rebuild(size, f.precision)
}

func (f *FloatFormatter) WithPrecision(precision int) Formatter {
	if precision < 0 {
		precision = NoPrecision
	}
	return f.rebuild(f.size, precision)
}

func (f *FloatFormatter) rebuild(size, precision int) Formatter {
	c, err := NewFloatFormatter(FloatSpec{
		Size:      size,
		Precision: precision,
		Pad:       string(f.pad),
		Sign:      f.sign,
		Point:     f.point,
		NaNStr:    f.nanStr,
		InfStr:    f.infStr,
	})
	if err != nil {
		return f
	}
	return c
}

func (f *FloatFormatter) Format(value any) string {
	v, ok := toFloat(value)
	if !ok {
		return overflow(f.width)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatNonFinite(v, f.nanStr, f.infStr, f.sign, f.width)
	}
	negative := v < 0

	precision := f.precision
	if precision == NoPrecision {
		precision = 0
	}
	mult := math.Pow10(precision)
	scaled := math.Round(math.Abs(v) * mult)
	if math.IsInf(scaled, 0) {
		return overflow(f.width)
	}
	intPart := math.Floor(scaled / mult)
	digits := strconv.FormatFloat(intPart, 'f', 0, 64)
	if len(digits) > f.size || (negative && f.sign == SignNone) {
		return overflow(f.width)
	}
	result := signedPad(digits, f.size, f.pad, f.sign, negative)
	switch {
	case f.precision == NoPrecision:
	case f.precision == 0:
		result += f.point
	default:
		frac := strconv.FormatFloat(scaled-intPart*mult, 'f', 0, 64)
		result += f.point + padRunes(frac, f.precision, '0', true)
	}
	return result
}

//-----------------------------------------------------------------------------
// Scientific float

// EFloatSpec configures an EFloatFormatter. Size is the exponent digit
// budget; Precision is the mantissa's fractional digit count, or
// NoPrecision.
type EFloatSpec struct {
	Size      int
	Precision int
	Sign      Sign
	Point     string
	Exp       string
	NaNStr    string
	InfStr    string
}

// EFloatFormatter renders floats in normalized scientific notation
// with a fixed exponent budget. Rounding that carries the mantissa to
// 10 renormalizes and increments the exponent; an exponent that then
// exceeds the budget '#'-fills the exponent digits only.
type EFloatFormatter struct {
	size      int
	precision int
	sign      Sign
	point     string
	exp       string
	nanStr    string
	infStr    string
	width     int
}

func NewEFloatFormatter(spec EFloatSpec) (*EFloatFormatter, error) {
	if spec.Point == "" {
		spec.Point = "."
	}
	if spec.Exp == "" {
		spec.Exp = "E"
	}
	if spec.NaNStr == "" {
		spec.NaNStr = "NaN"
	}
	if spec.InfStr == "" {
		spec.InfStr = "Inf"
	}
	if spec.Size < 1 {
		return nil, fmt.Errorf("%w: exponent size %d", ErrInvalidArgument, spec.Size)
	}
	if spec.Precision < NoPrecision {
		spec.Precision = NoPrecision
	}
	numWidth := 1
	if spec.Precision != NoPrecision {
		numWidth += len([]rune(spec.Point)) + spec.Precision
	}
	numWidth += len([]rune(spec.Exp)) + 1 + spec.Size
	nan, inf, err := nonFiniteLiterals(spec.NaNStr, spec.InfStr, numWidth)
	if err != nil {
		return nil, err
	}
	return &EFloatFormatter{
		size:      spec.Size,
		precision: spec.Precision,
		sign:      spec.Sign,
		point:     spec.Point,
		exp:       spec.Exp,
		nanStr:    nan,
		infStr:    inf,
		width:     numWidth + spec.Sign.columns(),
	}, nil
}

func (f *EFloatFormatter) Width() int     { return f.width }
func (f *EFloatFormatter) Size() int      { return f.size }
func (f *EFloatFormatter) Precision() int { return f.precision }

func (f *EFloatFormatter) WithSize(size int) Formatter {
	if size < 1 {
		size = 1
	}
	return f.rebuild(size, f.precision)
}

func (f *EFloatFormatter) WithPrecision(precision int) Formatter {
	if precision < 0 {
		precision = NoPrecision
	}
	return f.rebuild(f.size, precision)
}

func (f *EFloatFormatter) rebuild(size, precision int) Formatter {
	c, err := NewEFloatFormatter(EFloatSpec{
		Size:      size,
		Precision: precision,
		Sign:      f.sign,
		Point:     f.point,
		Exp:       f.exp,
		NaNStr:    f.nanStr,
		InfStr:    f.infStr,
	})
	if err != nil {
		return f
	}
	return c
}

func (f *EFloatFormatter) Format(value any) string {
	v, ok := toFloat(value)
	if !ok {
		return overflow(f.width)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatNonFinite(v, f.nanStr, f.infStr, f.sign, f.width)
	}
	negative := v < 0
	if negative && f.sign == SignNone {
		return overflow(f.width)
	}

	precision := f.precision
	if precision == NoPrecision {
		precision = 0
	}
	mant, exponent := splitScientific(math.Abs(v), precision)

	var b strings.Builder
	b.Grow(f.width)
	if f.sign != SignNone {
		b.WriteString(f.sign.glyph(negative))
	}
	b.WriteString(mant[:1])
	switch {
	case f.precision == NoPrecision:
	case f.precision == 0:
		b.WriteString(f.point)
	default:
		b.WriteString(f.point)
		b.WriteString(mant[1:])
	}
	b.WriteString(f.exp)
	if exponent < 0 {
		b.WriteString("-")
		exponent = -exponent
	} else {
		b.WriteString("+")
	}
	digits := strconv.Itoa(exponent)
	if len(digits) > f.size {
		b.WriteString(overflow(f.size))
	} else {
		b.WriteString(padRunes(digits, f.size, '0', true))
	}
	return b.String()
}

// splitScientific returns precision+1 mantissa digits (leading digit
// first) and the decimal exponent of v, which must be finite and >= 0.
// The mantissa rounds half away from zero, the same rule the
// fixed-point formatter applies; a mantissa that rounds up to 10
// renormalizes and carries into the exponent.
func splitScientific(v float64, precision int) (string, int) {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	exponent, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	mant := v / math.Pow10(exponent)
	scaled := math.Round(mant * math.Pow10(precision))
	if scaled >= math.Pow10(precision+1) {
		scaled = math.Pow10(precision)
		exponent++
	}
	digits := strconv.FormatFloat(scaled, 'f', 0, 64)
	return padRunes(digits, precision+1, '0', true), exponent
}

//-----------------------------------------------------------------------------
// String

// StrSpec configures a StrFormatter. Zero-value fields get defaults:
// "..." ellipsis, space padding, position 1.0.
type StrSpec struct {
	Size     int
	Ellipsis string
	Pad      string
	Position float64
	PadLeft  bool

	// NoEllipsis forces an empty ellipsis; Ellipsis == "" means default.
	NoEllipsis bool

	// ElideLeft pins elision to the left edge; Position == 0 means
	// default.
	ElideLeft bool
}

// StrFormatter renders text in a fixed display width, eliding interior
// characters when the text is too long.
type StrFormatter struct {
	size     int
	ellipsis []rune
	pad      rune
	position float64
	padLeft  bool
}

func NewStrFormatter(spec StrSpec) (*StrFormatter, error) {
	if spec.Size < 1 {
		return nil, fmt.Errorf("%w: string size %d", ErrInvalidArgument, spec.Size)
	}
	if spec.Ellipsis == "" && !spec.NoEllipsis {
		spec.Ellipsis = "..."
	}
	if spec.Pad == "" {
		spec.Pad = " "
	}
	if spec.Position == 0 && !spec.ElideLeft {
		spec.Position = 1.0
	}
	if spec.Position < 0 || spec.Position > 1 {
		return nil, fmt.Errorf("%w: position %v out of [0, 1]", ErrInvalidArgument, spec.Position)
	}
	pad, err := validatePad(spec.Pad)
	if err != nil {
		return nil, err
	}
	return &StrFormatter{
		size:     spec.Size,
		ellipsis: []rune(spec.Ellipsis),
		pad:      pad,
		position: spec.Position,
		padLeft:  spec.PadLeft,
	}, nil
}

func (f *StrFormatter) Width() int { return f.size }
func (f *StrFormatter) Size() int  { return f.size }

func (f *StrFormatter) WithSize(size int) Formatter {
	if size < 1 {
		size = 1
	}
	c := *f
	c.size = size
	return &c
}

func (f *StrFormatter) Format(value any) string {
	return palideRunes(
		toText(value), f.size, truncRunes(f.ellipsis, f.size),
		f.pad, f.position, f.padLeft)
}

//-----------------------------------------------------------------------------
// Datetime

// Named datetime format specifications.
var DatetimeFormats = map[string]string{
	"simple":            "2006-01-02 15:04:05",
	"ISO 8601 extended": "2006-01-02T15:04:05Z",
	"ISO 8601":          "20060102T150405Z",
}

// DefaultDatetimeFormat is the layout used for inferred datetime columns.
const DefaultDatetimeFormat = "ISO 8601 extended"

// refInstant is formatted once to measure a layout's rendered width.
var refInstant = time.Date(2014, 9, 17, 10, 7, 53, 123456000, time.UTC)

// TimeFormatter renders instants with a fixed layout. The width is
// measured by formatting a reference instant.
type TimeFormatter struct {
	layout string
	width  int
}

// NewTimeFormatter accepts a Go time layout or a name from
// DatetimeFormats.
func NewTimeFormatter(spec string) *TimeFormatter {
	layout, ok := DatetimeFormats[spec]
	if !ok {
		layout = spec
	}
	return &TimeFormatter{
		layout: layout,
		width:  len([]rune(refInstant.Format(layout))),
	}
}

func (f *TimeFormatter) Width() int { return f.width }

func (f *TimeFormatter) Format(value any) string {
	t, err := EnsureDatetime(value)
	if err != nil {
		return overflow(f.width)
	}
	return palideRunes(t.UTC().Format(f.layout), f.width, nil, ' ', 1.0, false)
}

//-----------------------------------------------------------------------------
// Coercion to formatter domains

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		if b, err := asBool(v); err == nil {
			return b
		}
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func toInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) ||
			v >= math.MaxInt64 || v <= math.MinInt64 {
			return 0, false
		}
		// Round half away from zero, as the float formatters do.
		return int64(math.Round(v)), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := asFloat(v)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func toText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
