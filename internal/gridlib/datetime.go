package gridlib

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Date and time coercion. Instants without an explicit time zone are
// rejected rather than silently assumed, except for the string formats
// below that are documented to assume UTC.

var (
	compactDateRe  = regexp.MustCompile(`^([12]\d\d\d)([01]\d)([0-3]\d)$`)
	hyphenDateRe   = regexp.MustCompile(`^([12]\d\d\d)-([01]?\d)-([0-3]?\d)$`)
	timeSecondsRe  = regexp.MustCompile(`^(\d?\d):(\d\d):(\d\d)$`)
	timeMinutesRe  = regexp.MustCompile(`^(\d?\d):(\d\d)$`)
	datetimeRes    = []*regexp.Regexp{
		regexp.MustCompile(`^([12]\d\d\d)-([01]?\d)-([0-3]?\d) ([0-2]?\d):([0-5]\d):(\d\d)$`),
		regexp.MustCompile(`^([12]\d\d\d)-([01]?\d)-([0-3]\d)T([0-2]?\d):([0-5]\d):(\d\d)Z$`),
	}
)

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// EnsureDate attempts to convert a value to a calendar date, returned
// as a midnight-UTC instant. Accepts a time.Time, a YYYYMMDD int in a
// plausible range, "local-today"/"utc-today", and "YYYYMMDD" or
// "YYYY-MM-DD" strings.
func EnsureDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		y, m, d := v.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case int:
		if 18000000 <= v && v <= 30000000 {
			return dateOf(v/10000, v%10000/100, v%100, value)
		}
	case int64:
		if 18000000 <= v && v <= 30000000 {
			return dateOf(int(v/10000), int(v%10000/100), int(v%100), value)
		}
	case string:
		switch v {
		case "local-today":
			y, m, d := time.Now().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		case "utc-today":
			y, m, d := time.Now().UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		match := compactDateRe.FindStringSubmatch(v)
		if match == nil {
			match = hyphenDateRe.FindStringSubmatch(v)
		}
		if match != nil {
			return dateOf(atoi(match[1]), atoi(match[2]), atoi(match[3]), value)
		}
	}
	return time.Time{}, fmt.Errorf("%w: not a date: %v", ErrConversion, value)
}

func dateOf(y, m, d int, orig any) (time.Time, error) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; reject them instead.
	ty, tm, td := t.Date()
	if ty != y || int(tm) != m || td != d {
		return time.Time{}, fmt.Errorf("%w: not a date: %v", ErrConversion, orig)
	}
	return t, nil
}

// EnsureTime attempts to convert a value to a time of day on the zero
// date. Accepts a time.Time, "local-now"/"utc-now", and "HH:MM[:SS]"
// strings.
func EnsureTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return timeOf(v.Hour(), v.Minute(), v.Second(), value)
	case string:
		switch v {
		case "local-now":
			now := time.Now()
			return timeOf(now.Hour(), now.Minute(), now.Second(), value)
		case "utc-now":
			now := time.Now().UTC()
			return timeOf(now.Hour(), now.Minute(), now.Second(), value)
		}
		if match := timeSecondsRe.FindStringSubmatch(v); match != nil {
			return timeOf(atoi(match[1]), atoi(match[2]), atoi(match[3]), value)
		}
		if match := timeMinutesRe.FindStringSubmatch(v); match != nil {
			return timeOf(atoi(match[1]), atoi(match[2]), 0, value)
		}
	}
	return time.Time{}, fmt.Errorf("%w: not a time: %v", ErrConversion, value)
}

func timeOf(h, m, s int, orig any) (time.Time, error) {
	if h > 23 || m > 59 || s > 59 {
		return time.Time{}, fmt.Errorf("%w: not a time: %v", ErrConversion, orig)
	}
	return time.Date(0, 1, 1, h, m, s, 0, time.UTC), nil
}

// EnsureDatetime attempts to convert a value to a UTC instant.
// Accepts a time.Time, "now", a "YYYY-MM-DD HH:MM:SS" string (assumed
// UTC), and an ISO 8601 "YYYY-MM-DDTHH:MM:SSZ" string.
func EnsureDatetime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		if v == "now" {
			return time.Now().UTC(), nil
		}
		for _, re := range datetimeRes {
			match := re.FindStringSubmatch(v)
			if match == nil {
				continue
			}
			date, err := dateOf(atoi(match[1]), atoi(match[2]), atoi(match[3]), value)
			if err != nil {
				return time.Time{}, err
			}
			clock, err := timeOf(atoi(match[4]), atoi(match[5]), atoi(match[6]), value)
			if err != nil {
				return time.Time{}, err
			}
			return time.Date(
				date.Year(), date.Month(), date.Day(),
				clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: not a datetime: %v", ErrConversion, value)
}
