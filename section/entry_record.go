package section

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/esppart/endian"
	"github.com/arloliu/esppart/errs"
	"github.com/arloliu/esppart/format"
)

// EntryRecord is the on-flash form of one partition entry. It is a fixed
// size of 32 bytes, all multi-byte fields little-endian.
//
//	Bytes  | Field   | Type     | Description
//	-------|---------|----------|--------------------------------
//	0-1    | Magic   | [2]byte  | AA 50
//	2      | Type    | uint8    | partition type
//	3      | SubType | uint8    | partition subtype
//	4-7    | Offset  | uint32   | absolute flash offset
//	8-11   | Size    | uint32   | length in bytes
//	12-27  | Name    | [16]byte | UTF-8, NUL padded
//	28-31  | Flags   | uint32   | attribute bits
type EntryRecord struct {
	Type    format.Type
	SubType format.SubType
	Offset  uint32
	Size    uint32
	Name    string
	Flags   format.Flags
}

// Bytes returns the record as a 32-byte slice.
func (r *EntryRecord) Bytes() []byte {
	var b [RecordSize]byte
	r.WriteToSlice(b[:], 0)

	return b[:]
}

// WriteToSlice writes the record at offset and returns the next write position.
// Names longer than NameSize bytes are truncated at a rune boundary.
func (r *EntryRecord) WriteToSlice(data []byte, offset int) int {
	engine := endian.GetLittleEndianEngine()
	b := data[offset : offset+RecordSize]

	b[magicOffset] = EntryMagic0
	b[magicOffset+1] = EntryMagic1
	b[typeOffset] = uint8(r.Type)
	b[subTypeOffset] = uint8(r.SubType)
	engine.PutUint32(b[offsetOffset:offsetOffset+4], r.Offset)
	engine.PutUint32(b[sizeOffset:sizeOffset+4], r.Size)

	name := b[nameOffset : nameOffset+NameSize]
	clear(name)
	copy(name, truncateName(r.Name))

	engine.PutUint32(b[flagsOffset:flagsOffset+4], uint32(r.Flags))

	return offset + RecordSize
}

func truncateName(name string) string {
	if len(name) <= NameSize {
		return name
	}

	cut := NameSize
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}

	return name[:cut]
}

// ParseEntryRecord parses an entry record from a byte slice.
//
// Returns:
//   - EntryRecord: Parsed record
//   - error: ErrInvalidRecordSize, ErrInvalidMagic or ErrInvalidName
func ParseEntryRecord(data []byte) (EntryRecord, error) {
	if len(data) < RecordSize {
		return EntryRecord{}, errs.ErrInvalidRecordSize
	}

	if !IsEntryRecord(data) {
		return EntryRecord{}, fmt.Errorf("%w: % x", errs.ErrInvalidMagic, data[magicOffset:magicOffset+2])
	}

	rawName := data[nameOffset : nameOffset+NameSize]
	if i := bytes.IndexByte(rawName, 0); i >= 0 {
		rawName = rawName[:i]
	}
	if !utf8.Valid(rawName) {
		return EntryRecord{}, fmt.Errorf("%w: % x", errs.ErrInvalidName, rawName)
	}

	engine := endian.GetLittleEndianEngine()

	return EntryRecord{
		Type:    format.Type(data[typeOffset]),
		SubType: format.SubType(data[subTypeOffset]),
		Offset:  engine.Uint32(data[offsetOffset : offsetOffset+4]),
		Size:    engine.Uint32(data[sizeOffset : sizeOffset+4]),
		Name:    string(rawName),
		Flags:   format.Flags(engine.Uint32(data[flagsOffset : flagsOffset+4])),
	}, nil
}

// IsEntryRecord reports whether the record starts with the entry magic.
func IsEntryRecord(data []byte) bool {
	return len(data) >= 2 && data[0] == EntryMagic0 && data[1] == EntryMagic1
}

// IsEndMarker reports whether the record consists entirely of FillByte.
func IsEndMarker(data []byte) bool {
	if len(data) < RecordSize {
		return false
	}
	for _, b := range data[:RecordSize] {
		if b != FillByte {
			return false
		}
	}

	return true
}
