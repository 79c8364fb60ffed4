package gridlib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the closed set of column scalar types.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindStr
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Convert turns a raw cell string into a typed value.
type Convert func(string) (any, error)

func asBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: not a bool: %q", ErrConversion, s)
}

func asInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not an int: %q", ErrConversion, s)
	}
	return n, nil
}

// asFloat treats the empty string as NaN.
func asFloat(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: not a float: %q", ErrConversion, s)
	}
	return f, nil
}

func convertFor(kind Kind) Convert {
	switch kind {
	case KindBool:
		return func(s string) (any, error) { return asBool(s) }
	case KindInt:
		return func(s string) (any, error) { return asInt(s) }
	case KindFloat:
		return func(s string) (any, error) { return asFloat(s) }
	default:
		return func(s string) (any, error) { return s, nil }
	}
}

// inferOrder runs from most to least specific; KindStr always succeeds.
var inferOrder = []Kind{KindBool, KindInt, KindFloat, KindStr}

// GuessKind returns the most specific kind that represents every value
// in the sample, and its conversion function. One unparseable value
// anywhere in the sample demotes the whole column.
func GuessKind(values []string) (Kind, Convert) {
	for _, kind := range inferOrder {
		convert := convertFor(kind)
		ok := true
		for _, v := range values {
			if _, err := convert(v); err != nil {
				ok = false
				break
			}
		}
		if ok {
			return kind, convert
		}
	}
	return KindStr, convertFor(KindStr)
}

// digits returns the number of decimal digits in the integral part of
// the magnitude of v (at least 1).
func digits(v float64) int {
	v = math.Abs(v)
	if v < 1 {
		return 1
	}
	return int(math.Floor(math.Log10(v))) + 1
}

// DefaultFormatter chooses a formatter for a column of typed sample
// values, sized so the sample renders without overflow and, for
// floats, with no more precision than the data actually has.
func DefaultFormatter(kind Kind, values []any, cfg Config) (Formatter, error) {
	switch kind {
	case KindInt:
		size := 1
		for _, v := range values {
			if n, ok := toInt(v); ok {
				if d := digits(math.Abs(float64(n))); d > size {
					size = d
				}
			}
		}
		return NewIntFormatter(IntSpec{Size: size})

	case KindFloat:
		var finite []float64
		size := 1
		for _, v := range values {
			f, ok := toFloat(v)
			if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
				continue
			}
			finite = append(finite, f)
			if d := digits(f); d > size {
				size = d
			}
		}
		// Try progressively higher precision until rounding there leaves
		// no residual larger than we are willing to represent at all.
		tol := math.Pow10(-cfg.PrecisionMax) / 2
		precision := cfg.PrecisionMin
		for ; precision < cfg.PrecisionMax; precision++ {
			mult := math.Pow10(precision)
			ok := true
			for _, f := range finite {
				if math.Abs(math.Round(f*mult)/mult-f) >= tol {
					ok = false
					break
				}
			}
			if ok {
				break
			}
		}
		return NewFloatFormatter(FloatSpec{
			Size:      size,
			Precision: precision,
			NaNStr:    cfg.NaNString,
			InfStr:    cfg.InfString,
		})

	case KindStr:
		width := 0
		for _, v := range values {
			if n := len([]rune(toText(v))); n > width {
				width = n
			}
		}
		width = clip(cfg.StrWidthMin, width, cfg.StrWidthMax)
		return NewStrFormatter(StrSpec{Size: width, Ellipsis: cfg.Ellipsis})

	case KindBool:
		return NewBoolFormatter("T", "F"), nil

	case KindTime:
		return NewTimeFormatter(DefaultDatetimeFormat), nil

	default:
		return nil, fmt.Errorf("%w: no formatter for kind %v", ErrInvalidArgument, kind)
	}
}

func clip(min, val, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
