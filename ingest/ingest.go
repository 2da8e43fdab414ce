// Package ingest reads the Shift-JIS CSV files produced by the
// magnetoresistance measurement rig.
//
// Each file starts with an eight-line preamble. The second line carries the
// probe metadata (CAD number, die position, front and rear lead resistance)
// and the ninth line is the header of the comma-separated data block. Cells
// that do not parse as numbers, including the rig's ∞ overflow marker, poison
// their row; poisoned rows are dropped. The field column H(Oe) is rescaled
// into a derived H_kOe column so downstream analysis works in kilo-oersted.
package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/cwbudde/algo-hyst/curve"
)

const (
	metadataLine = 1
	headerLine   = 8

	// RawFieldColumn is the field column as written by the rig, in oersted.
	RawFieldColumn = "H(Oe)"
)

var (
	ErrMetadata  = errors.New("ingest: metadata line not in the expected form")
	ErrTruncated = errors.New("ingest: file ends before the data header")
)

// clipRe matches the [*Clip]-style markers the rig appends to column names.
var clipRe = regexp.MustCompile(`\[.*\]`)

// Metadata identifies the measured element. Lead resistances are in kΩ.
type Metadata struct {
	CAD    string
	X, Y   int
	RFront float64
	RRear  float64
}

// Title renders the metadata the way chart titles spell it.
func (m *Metadata) Title() string {
	return fmt.Sprintf("X=%d, Y=%d, CAD=%s", m.X, m.Y, m.CAD)
}

// File is one decoded measurement file. Meta is nil when the metadata line
// did not parse; the data block is still returned in that case.
type File struct {
	Meta *Metadata
	Data *curve.Curve
}

// ReadFile opens path and decodes it via Read.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes one measurement file from r.
func Read(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(transform.NewReader(r, japanese.ShiftJIS.NewDecoder()))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	if len(lines) <= headerLine {
		return nil, ErrTruncated
	}

	file := &File{}
	if meta, err := ParseMetadata(lines[metadataLine]); err == nil {
		file.Meta = meta
	}

	data, err := parseData(lines[headerLine:])
	if err != nil {
		return nil, err
	}
	file.Data = data
	return file, nil
}

// ParseMetadata extracts the probe metadata from the second preamble line,
// e.g. "CAD123 Y=10 X=5 R[Front]:1.23kΩ R[Rear]:4.56kΩ".
func ParseMetadata(line string) (*Metadata, error) {
	line = strings.TrimSpace(line)

	cad, _, _ := strings.Cut(line, " ")
	y, err := intAfter(line, "Y=")
	if err != nil {
		return nil, err
	}
	x, err := intAfter(line, "X=")
	if err != nil {
		return nil, err
	}
	front, err := kiloOhmsAfter(line, "R[Front]:", false)
	if err != nil {
		return nil, err
	}
	rear, err := kiloOhmsAfter(line, "R[Rear]:", true)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		CAD:    strings.TrimPrefix(cad, "CAD"),
		X:      x,
		Y:      y,
		RFront: front,
		RRear:  rear,
	}, nil
}

// fieldAfter returns the text after marker, cut at the next space unless
// toEnd is set.
func fieldAfter(line, marker string, toEnd bool) (string, error) {
	_, rest, ok := strings.Cut(line, marker)
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMetadata, marker)
	}
	if !toEnd {
		if i := strings.IndexByte(rest, ' '); i >= 0 {
			rest = rest[:i]
		}
	}
	return rest, nil
}

func intAfter(line, marker string) (int, error) {
	s, err := fieldAfter(line, marker, false)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q after %q", ErrMetadata, s, marker)
	}
	return n, nil
}

func kiloOhmsAfter(line, marker string, toEnd bool) (float64, error) {
	s, err := fieldAfter(line, marker, toEnd)
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, "kΩ", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q after %q", ErrMetadata, s, marker)
	}
	return v, nil
}

// parseData turns the header line plus data records into a Curve. Records
// with any unparseable cell are dropped whole, so the result is gap-free.
func parseData(lines []string) (*curve.Curve, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrTruncated
	}

	names := make([]string, len(records[0]))
	for i, name := range records[0] {
		names[i] = clipRe.ReplaceAllString(strings.TrimSpace(name), "")
	}

	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]float64, len(names))
		keep := true
		for i := range row {
			v := math.NaN()
			if i < len(record) {
				if f, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64); err == nil {
					v = f
				}
			}
			if math.IsNaN(v) {
				keep = false
				break
			}
			row[i] = v
		}
		if keep {
			rows = append(rows, row)
		}
	}

	cols := make([]curve.Column, len(names))
	for i, name := range names {
		vals := make([]float64, len(rows))
		for j, row := range rows {
			vals[j] = row[i]
		}
		cols[i] = curve.Column{Name: name, Values: vals}
	}

	c, err := curve.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	oe, err := c.Column(RawFieldColumn)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	kOe := make([]float64, len(oe))
	for i, v := range oe {
		kOe[i] = v / 1000
	}
	c, err = c.WithColumn(curve.DefaultFieldColumn, kOe)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return c, nil
}
