package table

import (
	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/internal/options"
	"github.com/arloliu/esppart/section"
)

// DecodeBinary decodes a binary partition table.
//
// Records are read in order until the all-0xFF end marker. A checksum record,
// if present, is verified against the MD5 of every byte preceding it. Bytes
// after the end marker are ignored.
//
// The decoded entries are not validated; call Validate on the result.
//
// Parameters:
//   - data: Binary table, a whole number of 32-byte records
//   - opts: Decoder options
//
// Returns:
//   - *Table: Decoded table
//   - error: ErrLengthNotMultipleOf32, ErrNoEndMarker, *InvalidChecksumError,
//     or a *RecordError wrapping ErrInvalidMagic / ErrInvalidName
func DecodeBinary(data []byte, opts ...DecoderOption) (*Table, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(data)%section.RecordSize != 0 {
		return nil, errs.ErrLengthNotMultipleOf32
	}

	entries := make([]Entry, 0, min(len(data)/section.RecordSize, section.MaxEntries))
	for off := 0; off < len(data); off += section.RecordSize {
		rec := data[off : off+section.RecordSize]

		switch {
		case section.IsEndMarker(rec):
			return &Table{entries: entries}, nil

		case section.IsChecksumRecord(rec):
			if !cfg.verifyChecksum {
				continue
			}
			stored := section.ParseChecksumRecord(rec)
			computed, ok := stored.Verify(data[:off])
			if !ok {
				return nil, &errs.InvalidChecksumError{
					Expected: stored.Digest[:],
					Computed: computed[:],
				}
			}

		default:
			r, err := section.ParseEntryRecord(rec)
			if err != nil {
				return nil, &errs.RecordError{Index: off / section.RecordSize, Err: err}
			}
			entries = append(entries, entryFromRecord(r))
		}
	}

	return nil, errs.ErrNoEndMarker
}
