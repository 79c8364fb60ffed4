package gridlib

import (
	"fmt"
	"math"
	"strings"
)

// Pad pads s to a minimum length with the pad character. If left is
// true the padding goes on the left, otherwise on the right. Strings
// already at or beyond length are returned unchanged; Pad never
// truncates. The pad string must be exactly one character.
func Pad(s string, length int, pad string, left bool) (string, error) {
	if len([]rune(pad)) != 1 {
		return "", fmt.Errorf("%w: pad is not a character: %q", ErrInvalidArgument, pad)
	}
	return padRunes(s, length, []rune(pad)[0], left), nil
}

func padRunes(s string, length int, pad rune, left bool) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	fill := strings.Repeat(string(pad), length-n)
	if left {
		return fill + s
	}
	return s + fill
}

// Elide reduces s to at most max characters, replacing elided
// characters with the ellipsis so that the result is exactly max
// characters long whenever s is longer than max. position (0.0-1.0)
// gives the fraction of surviving characters taken from the left end.
func Elide(s string, max int, ellipsis string, position float64) (string, error) {
	ell := []rune(ellipsis)
	if max < len(ell) {
		return "", fmt.Errorf(
			"%w: max length %d shorter than ellipsis %q", ErrInvalidArgument, max, ellipsis)
	}
	if position < 0 || position > 1 {
		return "", fmt.Errorf("%w: position %v out of [0, 1]", ErrInvalidArgument, position)
	}
	return elideRunes(s, max, ell, position), nil
}

func elideRunes(s string, max int, ellipsis []rune, position float64) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	keep := max - len(ellipsis)
	left := int(math.Round(position * float64(keep)))
	right := keep - left
	var b strings.Builder
	b.Grow(max)
	b.WriteString(string(runes[:left]))
	b.WriteString(string(ellipsis))
	if right > 0 {
		b.WriteString(string(runes[len(runes)-right:]))
	}
	return b.String()
}

// Palide elides then pads, so the result is always exactly length
// characters.
func Palide(s string, length int, ellipsis, pad string, position float64, left bool) (string, error) {
	elided, err := Elide(s, length, ellipsis, position)
	if err != nil {
		return "", err
	}
	return Pad(elided, length, pad, left)
}

func palideRunes(s string, length int, ellipsis []rune, pad rune, position float64, left bool) string {
	return padRunes(elideRunes(s, length, ellipsis, position), length, pad, left)
}

// truncRunes clips the ellipsis itself when the field is narrower than
// the configured ellipsis.
func truncRunes(r []rune, max int) []rune {
	if len(r) > max {
		return r[:max]
	}
	return r
}
