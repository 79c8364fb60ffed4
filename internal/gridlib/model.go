package gridlib

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
)

// SampleLines is the read-ahead block: EnsureRows always materializes
// at least this many rows past the requested index to amortize I/O.
const SampleLines = 200

// Delimiter candidates for auto-detection, in ascending priority:
// on tied column counts the later candidate wins.
var delimCandidates = []rune{'\t', ' ', ',', '|'}

// Model is the read interface the viewport and renderer consume. Rows
// only grow; column count and identity never change after construction.
type Model interface {
	NumRows() int
	NumCols() int
	Names() []string
	TitleLines() []string
	Filename() string
	Done() bool

	// Row returns the typed values of a materialized row.
	Row(idx int) ([]any, error)

	// EnsureRows materializes rows through idx where possible and
	// returns min(idx, NumRows()).
	EnsureRows(idx int) int

	// Formatters builds the default per-column formatters from the
	// sampled values.
	Formatters(cfg Config) ([]Formatter, error)
}

// DelimitedModel reads incrementally from delimited text, inferring
// column types from an initial sample.
type DelimitedModel struct {
	scanner       *bufio.Scanner
	commentPrefix string
	delim         rune
	filename      string

	names    []string
	kinds    []Kind
	converts []Convert
	titles   []string

	rows       [][]string // raw values, append-only
	sampleSize int        // rows that participated in inference
	done       bool
}

// NewDelimitedModel samples up to numSample data lines from r, guesses
// the delimiter when delim is zero, and infers per-column types.
// commentPrefix may be empty for no comment handling.
func NewDelimitedModel(
	r io.Reader, hasHeader bool, numSample int, delim rune,
	commentPrefix, filename string,
) (*DelimitedModel, error) {
	if numSample < 2 {
		numSample = 2
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	m := &DelimitedModel{
		scanner:       scanner,
		commentPrefix: commentPrefix,
		filename:      filename,
	}

	sample := m.readSampleLines(numSample)
	if len(sample) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyInput, filename)
	}

	if delim == 0 {
		delim = guessDelimiter(sample)
	}
	m.delim = delim

	for _, line := range sample {
		row, err := m.parseLine(line)
		if err != nil {
			continue
		}
		m.rows = append(m.rows, row)
	}

	if hasHeader && len(m.rows) > 0 {
		m.names = m.rows[0]
		m.rows = m.rows[1:]
	}
	if len(m.rows) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyInput, filename)
	}
	if m.names == nil {
		m.names = make([]string, len(m.rows[0]))
		for i := range m.names {
			m.names[i] = fmt.Sprintf("col%d", i+1)
		}
	}
	m.sampleSize = len(m.rows)

	// Transpose the sample and guess a type per column.
	m.kinds = make([]Kind, len(m.names))
	m.converts = make([]Convert, len(m.names))
	for c := range m.names {
		col := make([]string, len(m.rows))
		for i, row := range m.rows {
			if c < len(row) {
				col[i] = row[c]
			}
		}
		m.kinds[c], m.converts[c] = GuessKind(col)
	}
	return m, nil
}

func cleanLine(line string) string {
	return strings.TrimSpace(strings.ReplaceAll(line, "\x00", ""))
}

func cleanRow(row []string) []string {
	for i, v := range row {
		row[i] = strings.Trim(v, " \"")
	}
	return row
}

func (m *DelimitedModel) isComment(line string) bool {
	return m.commentPrefix != "" && strings.HasPrefix(line, m.commentPrefix)
}

// readSampleLines captures leading comment lines as titles, then
// collects up to max data lines.
func (m *DelimitedModel) readSampleLines(max int) []string {
	var lines []string
	leading := true
	for len(lines) < max && m.scanner.Scan() {
		line := cleanLine(m.scanner.Text())
		if line == "" {
			continue
		}
		if m.isComment(line) {
			if leading {
				m.titles = append(m.titles, line)
			}
			continue
		}
		leading = false
		lines = append(lines, line)
	}
	return lines
}

func (m *DelimitedModel) parseLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = m.delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrConversion, line, err)
	}
	return cleanRow(row), nil
}

func parseWith(line string, delim rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return r.Read()
}

// guessDelimiter picks the candidate that yields a consistent column
// count across all sample lines, preferring later candidates on ties.
func guessDelimiter(lines []string) rune {
	best, bestCount := delimCandidates[len(delimCandidates)-1], 0
	for _, delim := range delimCandidates {
		count := 0
		for i, line := range lines {
			row, err := parseWith(line, delim)
			if err != nil {
				count = 0
				break
			}
			if i == 0 {
				count = len(row)
			} else if len(row) != count {
				count = 0
				break
			}
		}
		if count >= bestCount {
			best, bestCount = delim, count
		}
	}
	return best
}

func (m *DelimitedModel) NumRows() int         { return len(m.rows) }
func (m *DelimitedModel) NumCols() int         { return len(m.names) }
func (m *DelimitedModel) Names() []string      { return m.names }
func (m *DelimitedModel) TitleLines() []string { return m.titles }
func (m *DelimitedModel) Filename() string     { return m.filename }
func (m *DelimitedModel) Done() bool           { return m.done }

// Kinds returns the inferred per-column kinds.
func (m *DelimitedModel) Kinds() []Kind { return m.kinds }

// Delimiter returns the delimiter fixed at sampling time.
func (m *DelimitedModel) Delimiter() rune { return m.delim }

// Row converts a materialized row to typed values. A value that no
// longer fits its column's inferred kind is kept as the raw string;
// the typed formatter renders it as the overflow marker.
func (m *DelimitedModel) Row(idx int) ([]any, error) {
	if idx < 0 || idx >= len(m.rows) {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, idx, len(m.rows))
	}
	raw := m.rows[idx]
	row := make([]any, len(m.names))
	for c := range m.names {
		v := ""
		if c < len(raw) {
			v = raw[c]
		}
		typed, err := m.converts[c](v)
		if err != nil {
			row[c] = v
			continue
		}
		row[c] = typed
	}
	return row, nil
}

// EnsureRows pulls rows from the line source until idx plus one block
// is materialized or the source is exhausted. Never decreases NumRows;
// once done, NumRows is stable.
func (m *DelimitedModel) EnsureRows(idx int) int {
	if !m.done {
		target := idx
		if target > math.MaxInt-SampleLines {
			target = math.MaxInt - SampleLines
		}
		for len(m.rows) < target+SampleLines {
			line, ok := m.nextDataLine()
			if !ok {
				m.done = true
				break
			}
			row, err := m.parseLine(line)
			if err != nil {
				continue
			}
			m.rows = append(m.rows, row)
		}
	}
	if idx < len(m.rows) {
		return idx
	}
	return len(m.rows)
}

func (m *DelimitedModel) nextDataLine() (string, bool) {
	for m.scanner.Scan() {
		line := cleanLine(m.scanner.Text())
		if line == "" || m.isComment(line) {
			continue
		}
		return line, true
	}
	return "", false
}

// Formatters derives default per-column formatters from the sample.
func (m *DelimitedModel) Formatters(cfg Config) ([]Formatter, error) {
	formatters := make([]Formatter, len(m.names))
	n := m.sampleSize
	if n > len(m.rows) {
		n = len(m.rows)
	}
	for c := range m.names {
		values := make([]any, 0, n)
		for i := 0; i < n; i++ {
			row, err := m.Row(i)
			if err != nil {
				return nil, err
			}
			values = append(values, row[c])
		}
		f, err := DefaultFormatter(m.kinds[c], values, cfg)
		if err != nil {
			return nil, err
		}
		formatters[c] = f
	}
	return formatters, nil
}
