package table

import (
	"github.com/arloliu/esppart/internal/options"
	"github.com/arloliu/esppart/section"
)

// EncodeBinary encodes the table into its on-flash form: one 32-byte record
// per entry in table order, the MD5 checksum record, then 0xFF padding up to
// the table length (0xC00 by default). At least one end marker record is
// always written.
//
// Names longer than 16 bytes are truncated at a rune boundary and names with
// a NUL byte end at the NUL. EncodeBinary never fails and
// does not modify the table.
func (t *Table) EncodeBinary(opts ...EncoderOption) []byte {
	cfg := newEncoderConfig()
	_ = options.Apply(cfg, opts...) // encoder options cannot fail

	used := len(t.entries) * section.RecordSize
	if cfg.checksum {
		used += section.RecordSize
	}
	buf := make([]byte, max(used+section.RecordSize, cfg.tableLength))

	off := 0
	for _, e := range t.entries {
		rec := e.record()
		off = rec.WriteToSlice(buf, off)
	}

	if cfg.checksum {
		sum := section.NewChecksumRecord(buf[:off])
		off = sum.WriteToSlice(buf, off)
	}

	for i := off; i < len(buf); i++ {
		buf[i] = section.FillByte
	}

	return buf
}
