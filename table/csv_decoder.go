package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/format"
	"github.com/arloliu/esppart/internal/names"
	"github.com/arloliu/esppart/internal/options"
	"github.com/arloliu/esppart/section"
)

// CSV column positions.
const (
	colName = iota
	colType
	colSubType
	colOffset
	colSize
	colFlags

	minColumns = colSize + 1
	maxColumns = colFlags + 1
)

var columnNames = [maxColumns]string{"name", "type", "subtype", "offset", "size", "flags"}

// DecodeCSV decodes a partition table from its CSV text form.
//
// See DecodeCSVReader for the accepted syntax.
func DecodeCSV(text string, opts ...CSVOption) (*Table, error) {
	return DecodeCSVReader(strings.NewReader(text), opts...)
}

// DecodeCSVReader decodes a partition table from CSV rows of the form
//
//	name, type, subtype, offset, size[, flags]
//
// Lines starting with '#' are comments and a leading "name,..." row is
// treated as a header. Unquoted fields are trimmed; quoted fields are kept
// verbatim. Type and subtype accept symbolic names or numbers.
// Offsets and sizes accept decimal, 0x hex and K/M suffixes.
//
// A blank offset places the entry right after the previous one, rounded up
// to the alignment of its type; the first entry starts in the sector after
// the partition table. A blank size is only allowed for data/ota, which
// defaults to 0x2000.
//
// The decoded table is not validated, except that a repeated name fails
// immediately with *errs.DuplicatePartitionsError.
func DecodeCSVReader(r io.Reader, opts ...CSVOption) (*Table, error) {
	cfg := newCSVConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCSV, err)
	}
	lines := strings.Split(string(data), "\n")

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	tracker := names.NewTracker(section.MaxEntries)
	entries := make([]Entry, 0, section.MaxEntries)
	next := cfg.firstOffset()

	for first := true; ; first = false {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errs.ErrCSV, err)
		}

		line, _ := reader.FieldPos(0)
		for i := range record {
			if l, col := reader.FieldPos(i); !isQuoted(lines, l, col) {
				record[i] = strings.TrimSpace(record[i])
			}
		}

		if first && isHeader(record) {
			continue
		}

		e, err := decodeRow(record, line, next)
		if err != nil {
			return nil, err
		}

		if err := tracker.Track(e.Name); err != nil {
			return nil, err
		}

		entries = append(entries, e)
		next = e.End()
	}

	return &Table{entries: entries}, nil
}

func isHeader(record []string) bool {
	return len(record) > colType &&
		strings.EqualFold(record[colName], columnNames[colName]) &&
		strings.EqualFold(record[colType], columnNames[colType])
}

// isQuoted reports whether the field starting at the 1-based line and
// column opens with a quote.
func isQuoted(lines []string, line, col int) bool {
	if line < 1 || line > len(lines) {
		return false
	}
	text := lines[line-1]

	return col >= 1 && col <= len(text) && text[col-1] == '"'
}

// decodeRow parses one CSV record; next is the auto-placement cursor.
func decodeRow(record []string, line int, next uint64) (Entry, error) {
	if len(record) < minColumns || len(record) > maxColumns {
		return Entry{}, fmt.Errorf("%w: line %d: expected %d to %d fields, got %d",
			errs.ErrCSV, line, minColumns, maxColumns, len(record))
	}

	field := func(col int) string {
		if col >= len(record) {
			return ""
		}
		return record[col]
	}
	fail := func(col int, err error) error {
		return &errs.FieldError{Line: line, Field: columnNames[col], Value: field(col), Err: err}
	}

	var e Entry
	var err error

	e.Name = field(colName)
	if err := checkName(e.Name); err != nil {
		return Entry{}, fail(colName, err)
	}

	if e.Type, err = format.ParseType(field(colType)); err != nil {
		return Entry{}, fail(colType, err)
	}

	if e.SubType, err = format.ParseSubType(e.Type, field(colSubType)); err != nil {
		return Entry{}, fail(colSubType, err)
	}

	if field(colOffset) == "" {
		aligned := alignUp(next, e.Type.Alignment())
		if aligned > math.MaxUint32 {
			return Entry{}, fail(colOffset, errs.ErrValueOutOfRange)
		}
		e.Offset = uint32(aligned)
	} else if e.Offset, err = parseNumber(field(colOffset)); err != nil {
		return Entry{}, fail(colOffset, err)
	}

	if field(colSize) == "" && e.IsOtadata() {
		e.Size = format.OtadataSize
	} else if e.Size, err = parseNumber(field(colSize)); err != nil {
		return Entry{}, fail(colSize, err)
	}

	if e.End() > math.MaxUint32+1 {
		return Entry{}, fail(colSize, errs.ErrValueOutOfRange)
	}

	if e.Flags, err = format.ParseFlags(field(colFlags)); err != nil {
		return Entry{}, fail(colFlags, err)
	}

	return e, nil
}

func checkName(name string) error {
	switch {
	case name == "":
		return errs.ErrEmptyName
	case len(name) > section.NameSize:
		return errs.ErrNameTooLong
	case !utf8.ValidString(name):
		return errs.ErrInvalidName
	default:
		return nil
	}
}
