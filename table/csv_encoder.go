package table

import (
	"io"
	"strings"
	"unicode"
)

// CSVHeader is the comment line written before the rows.
const CSVHeader = "# Name, Type, SubType, Offset, Size, Flags"

// EncodeCSV renders the table as CSV text accepted by DecodeCSV.
//
// Types and subtypes use symbolic names when known and hex codes otherwise.
// Offsets are always written explicitly in hex; sizes use M/K suffixes when
// they are whole multiples. Names are quoted when they would otherwise be
// read back differently: a leading '#', surrounding whitespace, commas,
// quotes or line breaks.
func (t *Table) EncodeCSV() string {
	var sb strings.Builder
	_ = t.WriteCSV(&sb) // strings.Builder never fails

	return sb.String()
}

// WriteCSV writes the CSV form of the table to w.
func (t *Table) WriteCSV(w io.Writer) error {
	if _, err := io.WriteString(w, CSVHeader+"\n"); err != nil {
		return err
	}

	row := make([]string, maxColumns)
	for _, e := range t.entries {
		row[colName] = quoteField(e.Name)
		row[colType] = e.Type.String()
		row[colSubType] = e.SubType.Name(e.Type)
		row[colOffset] = formatOffset(e.Offset)
		row[colSize] = formatSize(e.Size)
		row[colFlags] = e.Flags.String()

		if _, err := io.WriteString(w, strings.Join(row, ",")+"\n"); err != nil {
			return err
		}
	}

	return nil
}

func quoteField(field string) string {
	if !fieldNeedsQuotes(field) {
		return field
	}

	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func fieldNeedsQuotes(field string) bool {
	if field == "" {
		return false
	}
	if field[0] == '#' || strings.ContainsAny(field, "\",\r\n") {
		return true
	}

	return strings.TrimFunc(field, unicode.IsSpace) != field
}
